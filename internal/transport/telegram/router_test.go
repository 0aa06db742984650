package telegram_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	guardmocks "github.com/fsdevblog/castile-money/internal/guard/mocks"
	"github.com/fsdevblog/castile-money/internal/transport/telegram"
	"github.com/fsdevblog/castile-money/internal/transport/telegram/mocks"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

const (
	adminID int64 = 1
	userID  int64 = 42
	otherID int64 = 43
	minDraw int64 = 5000
)

const testDana = "081234567890"

type RouterTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	ledger   *mocks.MockLedger
	sender   *mocks.MockSender
	admins   *mocks.MockAdmins
	cooldown *guardmocks.MockCooldownTracker
	router   *telegram.Router

	mu   sync.Mutex
	sent []telegram.Reply
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ledger = mocks.NewMockLedger(s.ctrl)
	s.sender = mocks.NewMockSender(s.ctrl)
	s.admins = mocks.NewMockAdmins(s.ctrl)
	s.cooldown = guardmocks.NewMockCooldownTracker(s.ctrl)
	s.sent = nil

	s.ledger.EXPECT().
		GetOrCreateUser(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, name string) (*domain.User, error) {
			return &domain.User{ID: id, DisplayName: name, ReferralCode: domain.ReferralCodeFor(id)}, nil
		}).AnyTimes()
	s.sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r telegram.Reply) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.sent = append(s.sent, r)
			return nil
		}).AnyTimes()
	s.admins.EXPECT().IsAdmin(gomock.Any()).DoAndReturn(func(id int64) bool { return id == adminID }).AnyTimes()
	s.admins.EXPECT().IDs().Return([]int64{adminID}).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)
	s.router = telegram.NewRouter(s.ledger, s.sender, s.cooldown, s.admins, telegram.RouterConfig{
		BotUsername:   "CastileMoney_Bot",
		AdURL:         "https://ads.example.com",
		MinWithdrawal: minDraw,
	}, l)
}

func (s *RouterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func command(from int64, text string) telegram.Event {
	name, args, payload, _ := telegram.ParseCommand(text)
	return telegram.Event{
		Kind:      telegram.EventCommand,
		UserID:    from,
		ChatID:    from,
		FirstName: "Budi",
		Command:   name,
		Args:      args,
		Payload:   payload,
		Text:      text,
	}
}

func callback(from int64, data string) telegram.Event {
	return telegram.Event{
		Kind:         telegram.EventCallback,
		UserID:       from,
		ChatID:       from,
		FirstName:    "Budi",
		CallbackID:   "cb-1",
		CallbackData: data,
	}
}

// repliesTo возвращает отправленные в чат сообщения в порядке отправки.
func (s *RouterTestSuite) repliesTo(chatID int64) []telegram.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []telegram.Reply
	for _, r := range s.sent {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out
}

func (s *RouterTestSuite) lastReplyTo(chatID int64) telegram.Reply {
	replies := s.repliesTo(chatID)
	s.Require().NotEmpty(replies)
	return replies[len(replies)-1]
}

func (s *RouterTestSuite) TestRegistrationFailure() {
	ctrl := gomock.NewController(s.T())
	ledger := mocks.NewMockLedger(ctrl)
	ledger.EXPECT().GetOrCreateUser(gomock.Any(), userID, "Budi").Return(nil, domain.ErrStorage)

	l := logrus.New()
	l.SetOutput(io.Discard)
	router := telegram.NewRouter(ledger, s.sender, s.cooldown, s.admins, telegram.RouterConfig{}, l)
	router.Handle(context.Background(), command(userID, "/balance"))

	s.Contains(s.lastReplyTo(userID).Text, "Terjadi kesalahan")
}

func (s *RouterTestSuite) TestUnknownCommand() {
	s.router.Handle(context.Background(), command(userID, "/nope"))
	s.Contains(s.lastReplyTo(userID).Text, "Perintah tidak dikenal")
}

func (s *RouterTestSuite) TestPlainTextIgnored() {
	s.router.Handle(context.Background(), telegram.Event{Kind: telegram.EventText, UserID: userID, ChatID: userID})
	s.Empty(s.repliesTo(userID))
}

func (s *RouterTestSuite) TestAdminCommandsDenied() {
	for _, text := range []string{"/approve 1", "/reject 1 x", "/add_balance 42 100", "/stats", "/pending", "/broadcast hi"} {
		s.Run(text, func() {
			s.router.Handle(context.Background(), command(userID, text))
			s.Contains(s.lastReplyTo(userID).Text, "tidak memiliki izin")
		})
	}
}

func (s *RouterTestSuite) TestStart() {
	s.Run("without referral", func() {
		s.router.Handle(context.Background(), command(userID, "/start"))
		reply := s.lastReplyTo(userID)
		s.True(reply.Markdown)
		s.Contains(reply.Text, "Rp5.000")
		s.Equal("https://ads.example.com", reply.Keyboard[0][0].WebAppURL)
		s.Equal(telegram.CallbackCheckBalance, reply.Keyboard[1][0].CallbackData)
	})

	s.Run("referral bonus notifies referrer", func() {
		bonus := &domain.Transaction{ID: 7, UserID: otherID, Amount: 1000, Type: domain.TransactionTypeReferral}
		s.ledger.EXPECT().ApplyReferral(gomock.Any(), userID, "REF43").Return(bonus, nil)

		s.router.Handle(context.Background(), command(userID, "/start REF43"))

		s.Contains(s.lastReplyTo(otherID).Text, "Rp1.000")
		s.Contains(s.lastReplyTo(userID).Text, "Castile Money Bot")
	})

	s.Run("referral failure still shows menu", func() {
		s.sent = nil
		s.ledger.EXPECT().ApplyReferral(gomock.Any(), userID, "REF43").Return(nil, domain.ErrStorage)

		s.router.Handle(context.Background(), command(userID, "/start REF43"))

		s.Empty(s.repliesTo(otherID))
		s.Contains(s.lastReplyTo(userID).Text, "Castile Money Bot")
	})
}

func (s *RouterTestSuite) TestMyID() {
	s.router.Handle(context.Background(), command(adminID, "/myid"))
	reply := s.lastReplyTo(adminID)
	s.False(reply.Markdown)
	s.Contains(reply.Text, "User ID: 1")
	s.Contains(reply.Text, "✅ Ya")
}

func (s *RouterTestSuite) TestReferral() {
	s.router.Handle(context.Background(), command(userID, "/referral"))
	s.Contains(s.lastReplyTo(userID).Text, "https://t.me/CastileMoney_Bot?start=REF42")
}

func (s *RouterTestSuite) TestBalance() {
	s.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 6000}, nil)

	s.router.Handle(context.Background(), command(userID, "/balance"))

	reply := s.lastReplyTo(userID)
	s.Contains(reply.Text, "Rp6.000")
	s.Equal(telegram.CallbackWithdraw, reply.Keyboard[1][0].CallbackData)
}

func (s *RouterTestSuite) TestDana() {
	s.Run("usage", func() {
		s.router.Handle(context.Background(), command(userID, "/dana"))
		s.Contains(s.lastReplyTo(userID).Text, "/dana 08xxxxxxxxxx")
	})

	s.Run("invalid number does not consume cooldown", func() {
		s.router.Handle(context.Background(), command(userID, "/dana 12345"))
		s.Contains(s.lastReplyTo(userID).Text, "Nomor DANA tidak valid")
	})

	s.Run("cooldown active", func() {
		s.cooldown.EXPECT().Acquire(gomock.Any(), userID).Return(90*time.Second+time.Millisecond, false, nil)
		s.router.Handle(context.Background(), command(userID, "/dana "+testDana))
		s.Contains(s.lastReplyTo(userID).Text, "91 detik")
	})

	s.Run("insufficient balance", func() {
		s.cooldown.EXPECT().Acquire(gomock.Any(), userID).Return(time.Duration(0), true, nil)
		s.ledger.EXPECT().
			InitiateWithdrawal(gomock.Any(), userID, testDana).
			Return(nil, domain.NewInsufficientBalanceError(4999, minDraw))

		s.router.Handle(context.Background(), command(userID, "/dana "+testDana))
		s.Contains(s.lastReplyTo(userID).Text, "Minimal penarikan adalah Rp5.000")
	})

	s.Run("created and admins notified", func() {
		tx := &domain.Transaction{ID: 11, UserID: userID, Amount: 6000, Type: domain.TransactionTypeWithdraw}
		s.cooldown.EXPECT().Acquire(gomock.Any(), userID).Return(time.Duration(0), true, nil)
		s.ledger.EXPECT().InitiateWithdrawal(gomock.Any(), userID, testDana).Return(tx, nil)

		s.router.Handle(context.Background(), command(userID, "/dana "+testDana))

		s.Contains(s.lastReplyTo(userID).Text, "Transaction ID: 11")
		admin := s.lastReplyTo(adminID)
		s.True(admin.Markdown)
		s.Contains(admin.Text, "/approve 11")
	})

	s.Run("cooldown store failure does not block", func() {
		tx := &domain.Transaction{ID: 12, UserID: userID, Amount: 6000, Type: domain.TransactionTypeWithdraw}
		s.cooldown.EXPECT().Acquire(gomock.Any(), userID).Return(time.Duration(0), false, errors.New("redis down"))
		s.ledger.EXPECT().InitiateWithdrawal(gomock.Any(), userID, testDana).Return(tx, nil)

		s.router.Handle(context.Background(), command(userID, "/dana "+testDana))
		s.Contains(s.lastReplyTo(userID).Text, "Transaction ID: 12")
	})
}

func (s *RouterTestSuite) TestHistory() {
	s.ledger.EXPECT().History(gomock.Any(), userID, uint(0)).Return([]domain.Transaction{
		{ID: 3, Amount: 6000, Type: domain.TransactionTypeWithdraw, Status: domain.TransactionStatusPending},
		{ID: 2, Amount: 6000, Type: domain.TransactionTypeAdminAdd, Status: domain.TransactionStatusCompleted},
	}, nil)

	s.router.Handle(context.Background(), command(userID, "/history"))

	text := s.lastReplyTo(userID).Text
	s.Contains(text, "#3 Penarikan -Rp6.000 (menunggu)")
	s.Contains(text, "#2 Admin +Rp6.000 (selesai)")
}

func (s *RouterTestSuite) TestHelp() {
	s.router.Handle(context.Background(), command(userID, "/help"))
	s.NotContains(s.lastReplyTo(userID).Text, "/approve")

	s.router.Handle(context.Background(), command(adminID, "/help"))
	s.Contains(s.lastReplyTo(adminID).Text, "/approve")
}

func (s *RouterTestSuite) TestApprove() {
	tests := []struct {
		name     string
		text     string
		setup    func()
		expected string
		notified bool
	}{
		{name: "usage", text: "/approve", expected: "/approve [transaction_id]"},
		{name: "not a number", text: "/approve abc", expected: "harus berupa angka"},
		{
			name: "not found",
			text: "/approve 99",
			setup: func() {
				s.ledger.EXPECT().ApproveWithdrawal(gomock.Any(), int64(99)).Return(nil, domain.ErrTransactionNotFound)
			},
			expected: "tidak ditemukan atau sudah diproses",
		},
		{
			name: "already processed",
			text: "/approve 11",
			setup: func() {
				s.ledger.EXPECT().ApproveWithdrawal(gomock.Any(), int64(11)).Return(nil, domain.ErrAlreadyProcessed)
			},
			expected: "tidak ditemukan atau sudah diproses",
		},
		{
			name: "approved",
			text: "/approve 11",
			setup: func() {
				s.ledger.EXPECT().ApproveWithdrawal(gomock.Any(), int64(11)).Return(&domain.Transaction{
					ID: 11, UserID: userID, Amount: 6000, Details: "Withdrawal to DANA " + testDana,
				}, nil)
			},
			expected: "ID 11 telah disetujui",
			notified: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.sent = nil
			if tt.setup != nil {
				tt.setup()
			}
			s.router.Handle(context.Background(), command(adminID, tt.text))
			s.Contains(s.lastReplyTo(adminID).Text, tt.expected)
			if tt.notified {
				s.Contains(s.lastReplyTo(userID).Text, "Penarikan Berhasil")
			} else {
				s.Empty(s.repliesTo(userID))
			}
		})
	}
}

func (s *RouterTestSuite) TestReject() {
	s.Run("reason required", func() {
		s.router.Handle(context.Background(), command(adminID, "/reject 11"))
		s.Contains(s.lastReplyTo(adminID).Text, "/reject [transaction_id] [alasan]")
	})

	s.Run("multi word reason", func() {
		s.ledger.EXPECT().
			RejectWithdrawal(gomock.Any(), int64(11), "nomor *salah* cek lagi").
			Return(&domain.Transaction{ID: 11, UserID: userID, Amount: 6000}, nil)

		s.router.Handle(context.Background(), command(adminID, "/reject 11 nomor *salah* cek lagi"))

		s.Contains(s.lastReplyTo(adminID).Text, "ID 11 telah ditolak")
		user := s.lastReplyTo(userID)
		s.False(user.Markdown)
		s.Contains(user.Text, "Alasan: nomor *salah* cek lagi")
	})
}

func (s *RouterTestSuite) TestAddBalance() {
	s.Run("not numbers", func() {
		s.router.Handle(context.Background(), command(adminID, "/add_balance abc 100"))
		s.Contains(s.lastReplyTo(adminID).Text, "harus berupa angka")
	})

	s.Run("not positive", func() {
		s.ledger.EXPECT().
			RecordAdminAdjustment(gomock.Any(), userID, int64(-5), adminID).
			Return(nil, domain.ErrInvalidAmount)
		s.router.Handle(context.Background(), command(adminID, "/add_balance 42 -5"))
		s.Contains(s.lastReplyTo(adminID).Text, "lebih dari 0")
	})

	s.Run("unknown user", func() {
		s.ledger.EXPECT().
			RecordAdminAdjustment(gomock.Any(), int64(777), int64(100), adminID).
			Return(nil, domain.ErrUserNotFound)
		s.router.Handle(context.Background(), command(adminID, "/add_balance 777 100"))
		s.Contains(s.lastReplyTo(adminID).Text, "Pengguna tidak ditemukan")
	})

	s.Run("credited", func() {
		s.ledger.EXPECT().
			RecordAdminAdjustment(gomock.Any(), userID, int64(6000), adminID).
			Return(&domain.Transaction{ID: 1, UserID: userID, Amount: 6000}, nil)
		s.router.Handle(context.Background(), command(adminID, "/add_balance 42 6000"))
		s.Contains(s.lastReplyTo(adminID).Text, "Saldo Rp6.000 telah ditambahkan ke pengguna 42")
		s.Contains(s.lastReplyTo(userID).Text, "Saldo Ditambahkan")
	})
}

func (s *RouterTestSuite) TestStats() {
	s.Run("invalid days", func() {
		s.router.Handle(context.Background(), command(adminID, "/stats week"))
		s.Contains(s.lastReplyTo(adminID).Text, "hari harus berupa angka")
	})

	s.Run("custom window", func() {
		s.ledger.EXPECT().ComputeStats(gomock.Any(), 30).Return(&domain.StatsSnapshot{
			TotalUsers: 2, ActiveUsers: 1, ActiveWindowDays: 30, WithdrawnAmount: 6000,
		}, nil)
		s.router.Handle(context.Background(), command(adminID, "/stats 30"))
		text := s.lastReplyTo(adminID).Text
		s.Contains(text, "Pengguna Aktif (30 hari): 1")
		s.Contains(text, "Rp6.000")
	})
}

func (s *RouterTestSuite) TestPending() {
	s.ledger.EXPECT().PendingWithdrawals(gomock.Any(), uint(0)).Return(nil, nil)
	s.router.Handle(context.Background(), command(adminID, "/pending"))
	s.Contains(s.lastReplyTo(adminID).Text, "Tidak ada penarikan")
}

func (s *RouterTestSuite) TestBroadcast() {
	s.Run("usage", func() {
		s.router.Handle(context.Background(), command(adminID, "/broadcast"))
		s.Contains(s.lastReplyTo(adminID).Text, "/broadcast [pesan]")
	})

	s.Run("sent to everyone", func() {
		s.sent = nil
		s.ledger.EXPECT().AudienceIDs(gomock.Any()).Return([]int64{adminID, userID, otherID}, nil)

		s.router.Handle(context.Background(), command(adminID, "/broadcast Promo\nbesok"))

		s.Contains(s.lastReplyTo(userID).Text, "Promo\nbesok")
		s.Contains(s.lastReplyTo(otherID).Text, "Pengumuman")
		s.Contains(s.lastReplyTo(adminID).Text, "Berhasil: 3")
	})
}

func (s *RouterTestSuite) TestCallbacks() {
	s.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1").Return(nil).AnyTimes()

	s.Run("unknown data", func() {
		s.router.Handle(context.Background(), callback(userID, "bogus"))
		s.Empty(s.repliesTo(userID))
	})

	s.Run("payment proof", func() {
		s.ledger.EXPECT().ListRecentCompletedWithdrawals(gomock.Any(), gomock.Any()).Return([]domain.WithdrawalProof{
			{MaskedName: "sa****o", Amount: 6000},
		}, nil)
		s.router.Handle(context.Background(), callback(userID, telegram.CallbackPaymentProof))
		reply := s.lastReplyTo(userID)
		s.False(reply.Markdown)
		s.Contains(reply.Text, "1. sa****o: Rp6.000")
	})

	s.Run("withdraw below minimum", func() {
		s.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 100}, nil)
		s.router.Handle(context.Background(), callback(userID, telegram.CallbackWithdraw))
		s.Contains(s.lastReplyTo(userID).Text, "belum mencukupi")
	})

	s.Run("withdraw prompt", func() {
		s.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 7000}, nil)
		s.router.Handle(context.Background(), callback(userID, telegram.CallbackWithdraw))
		s.Contains(s.lastReplyTo(userID).Text, "Saldo Anda: Rp7.000")
	})

	s.Run("referral has back button", func() {
		s.router.Handle(context.Background(), callback(userID, telegram.CallbackReferral))
		reply := s.lastReplyTo(userID)
		s.Equal(telegram.CallbackBackToMain, reply.Keyboard[0][0].CallbackData)
	})

	s.Run("back to main", func() {
		s.router.Handle(context.Background(), callback(userID, telegram.CallbackBackToMain))
		s.Contains(s.lastReplyTo(userID).Text, "Castile Money Bot")
	})
}
