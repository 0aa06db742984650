package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
	"github.com/fsdevblog/castile-money/pkg/uow"
)

const (
	DefaultReferralBonus    int64 = 1000
	DefaultMinWithdrawal    int64 = 5000
	DefaultActiveWindowDays       = 7
	DefaultProofLimit       uint  = 10
	DefaultHistoryLimit     uint  = 10
	DefaultPendingLimit     uint  = 20
)

// maskedNameFallback показывается вместо слишком коротких имен, которые нельзя частично скрыть.
const maskedNameFallback = "User"

var destinationPattern = regexp.MustCompile(`^[0-9]{10,13}$`)

// LedgerSettings параметры начислений и вывода. Нулевые значения заменяются значениями по умолчанию.
type LedgerSettings struct {
	ReferralBonus int64
	MinWithdrawal int64
}

func (s LedgerSettings) withDefaults() LedgerSettings {
	if s.ReferralBonus <= 0 {
		s.ReferralBonus = DefaultReferralBonus
	}
	if s.MinWithdrawal <= 0 {
		s.MinWithdrawal = DefaultMinWithdrawal
	}
	return s
}

// LedgerService ведет балансы пользователей и журнал транзакций. Каждая изменяющая операция выполняется
// одной транзакцией uow.Do: изменение баланса и запись в журнал либо происходят вместе, либо не происходят.
// Права вызывающего сервис не проверяет, это делает транспортный слой.
type LedgerService struct {
	uow      uow.UOW
	userRepo UserRepository
	txRepo   TransactionRepository
	settings LedgerSettings
	now      func() time.Time
}

func NewLedgerService(u uow.UOW, settings LedgerSettings) (*LedgerService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, fmt.Errorf("ledger service: %w", userRepoErr)
	}
	txRepo, txRepoErr := uow.GetRepositoryAs[TransactionRepository](
		u,
		uow.RepositoryName(repoargs.TransactionRepoName),
	)
	if txRepoErr != nil {
		return nil, fmt.Errorf("ledger service: %w", txRepoErr)
	}

	return &LedgerService{
		uow:      u,
		userRepo: userRepo,
		txRepo:   txRepo,
		settings: settings.withDefaults(),
		now:      time.Now,
	}, nil
}

// SetClock подменяет источник времени. Используется в тестах.
func (s *LedgerService) SetClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

func (s *LedgerService) Settings() LedgerSettings {
	return s.settings
}

// GetOrCreateUser создает пользователя при первом обращении, у существующего обновляет время активности.
// Повторные вызовы с тем же id дубликатов не создают.
func (s *LedgerService) GetOrCreateUser(ctx context.Context, id int64, displayName string) (*domain.User, error) {
	user, err := s.userRepo.Upsert(ctx, repoargs.UpsertUser{
		ID:           id,
		DisplayName:  strings.TrimSpace(displayName),
		ReferralCode: domain.ReferralCodeFor(id),
		Now:          s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("get or create user %d: %w", id, err)
	}
	return user, nil
}

// GetUser возвращает domain.ErrUserNotFound, если пользователь ни разу не обращался к боту.
func (s *LedgerService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// ApplyReferral закрепляет нового пользователя за владельцем кода и начисляет владельцу бонус.
// Неизвестный код, собственный код и уже закрепленный пользователь молча игнорируются: в этих случаях
// возвращается nil транзакция без ошибки.
func (s *LedgerService) ApplyReferral(ctx context.Context, newUserID int64, code string) (*domain.Transaction, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, domain.ReferralCodePrefix) {
		return nil, nil
	}

	var bonusTx *domain.Transaction
	txErr := s.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		users, usersErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if usersErr != nil {
			return usersErr //nolint:wrapcheck
		}

		referrer, findErr := users.FindByReferralCode(ctx, code)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return nil
			}
			return findErr //nolint:wrapcheck
		}
		if referrer.ID == newUserID {
			return nil
		}

		// условие referred_by IS NULL проверяется тем же UPDATE, поэтому бонус начисляется не более одного раза.
		attributed, setErr := users.SetReferrer(ctx, newUserID, referrer.ID)
		if setErr != nil {
			return setErr //nolint:wrapcheck
		}
		if !attributed {
			return nil
		}

		var creditErr error
		bonusTx, creditErr = s.credit(ctx, tx, creditArgs{
			userID:  referrer.ID,
			amount:  s.settings.ReferralBonus,
			txType:  domain.TransactionTypeReferral,
			details: fmt.Sprintf("Referral bonus from %d", newUserID),
		})
		return creditErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("apply referral `%s` for user %d: %w", code, newUserID, txErr)
	}
	return bonusTx, nil
}

// RecordAdminAdjustment начисляет amount пользователю targetUserID от имени администратора adminID.
func (s *LedgerService) RecordAdminAdjustment(
	ctx context.Context,
	targetUserID int64,
	amount int64,
	adminID int64,
) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}

	var result *domain.Transaction
	txErr := s.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		var err error
		result, err = s.credit(ctx, tx, creditArgs{
			userID:  targetUserID,
			amount:  amount,
			txType:  domain.TransactionTypeAdminAdd,
			details: fmt.Sprintf("Added by admin %d", adminID),
		})
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("admin %d adjustment for user %d: %w", adminID, targetUserID, txErr)
	}
	return result, nil
}

// RecordAdEarning начисляет вознаграждение за просмотр рекламы. reference идентифицирует событие рекламной
// сети: повтор того же reference возвращает domain.ErrAlreadyProcessed и баланс не меняет.
func (s *LedgerService) RecordAdEarning(
	ctx context.Context,
	userID int64,
	amount int64,
	reference string,
) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}

	var result *domain.Transaction
	txErr := s.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		var err error
		result, err = s.credit(ctx, tx, creditArgs{
			userID:    userID,
			amount:    amount,
			txType:    domain.TransactionTypeAdEarning,
			details:   "Ad view reward",
			reference: reference,
		})
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("ad earning for user %d: %w", userID, txErr)
	}
	return result, nil
}

// InitiateWithdrawal списывает весь баланс пользователя и создает ожидающую заявку на вывод на кошелек
// destination. Частичный вывод не поддерживается.
func (s *LedgerService) InitiateWithdrawal(
	ctx context.Context,
	userID int64,
	destination string,
) (*domain.Transaction, error) {
	if !IsValidDestination(destination) {
		return nil, fmt.Errorf("%w: `%s`", domain.ErrInvalidDestination, destination)
	}

	var withdrawal *domain.Transaction
	txErr := s.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		users, usersErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if usersErr != nil {
			return usersErr //nolint:wrapcheck
		}
		txs, txsErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if txsErr != nil {
			return txsErr //nolint:wrapcheck
		}

		// строка пользователя заблокирована до коммита, параллельный вывод ждет и увидит нулевой баланс.
		user, lockErr := users.FindByIDForUpdate(ctx, userID)
		if lockErr != nil {
			if errors.Is(lockErr, domain.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", domain.ErrUserNotFound, userID)
			}
			return lockErr //nolint:wrapcheck
		}
		if user.Balance < s.settings.MinWithdrawal {
			return domain.NewInsufficientBalanceError(user.Balance, s.settings.MinWithdrawal)
		}

		if _, resetErr := users.ResetBalance(ctx, userID); resetErr != nil {
			return resetErr //nolint:wrapcheck
		}

		var createErr error
		withdrawal, createErr = txs.Create(ctx, repoargs.TransactionCreate{
			UserID:    userID,
			Amount:    user.Balance,
			Type:      domain.TransactionTypeWithdraw,
			Status:    domain.TransactionStatusPending,
			Details:   "Withdrawal to DANA " + destination,
			CreatedAt: s.now(),
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("initiate withdrawal for user %d: %w", userID, txErr)
	}
	return withdrawal, nil
}

// ApproveWithdrawal помечает ожидающий вывод выполненным. Баланс не меняется: он был списан при создании заявки.
func (s *LedgerService) ApproveWithdrawal(ctx context.Context, txID int64) (*domain.Transaction, error) {
	return s.resolveWithdrawal(ctx, txID, domain.TransactionStatusCompleted, "", false)
}

// RejectWithdrawal отклоняет ожидающий вывод, дописывает причину к details и возвращает пользователю ровно
// списанную сумму.
func (s *LedgerService) RejectWithdrawal(ctx context.Context, txID int64, reason string) (*domain.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "no reason given"
	}
	return s.resolveWithdrawal(ctx, txID, domain.TransactionStatusRejected, " - Rejected: "+reason, true)
}

func (s *LedgerService) resolveWithdrawal(
	ctx context.Context,
	txID int64,
	status domain.TransactionStatus,
	detailsSuffix string,
	refund bool,
) (*domain.Transaction, error) {
	var resolved *domain.Transaction
	txErr := s.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		txs, txsErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if txsErr != nil {
			return txsErr //nolint:wrapcheck
		}

		current, findErr := txs.FindByIDForUpdate(ctx, txID)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, txID)
			}
			return findErr //nolint:wrapcheck
		}
		if current.Type != domain.TransactionTypeWithdraw {
			return fmt.Errorf("%w: %d is %s", domain.ErrTransactionNotFound, txID, current.Type)
		}
		if current.Status != domain.TransactionStatusPending {
			return fmt.Errorf("%w: withdrawal %d is %s", domain.ErrAlreadyProcessed, txID, current.Status)
		}

		var resolveErr error
		resolved, resolveErr = txs.Resolve(ctx, repoargs.TransactionResolve{
			ID:            txID,
			Status:        status,
			DetailsSuffix: detailsSuffix,
		})
		if resolveErr != nil {
			// UPDATE обусловлен status = 'pending': пустой результат значит, что заявку уже обработали.
			if errors.Is(resolveErr, domain.ErrRecordNotFound) {
				return fmt.Errorf("%w: withdrawal %d", domain.ErrAlreadyProcessed, txID)
			}
			return resolveErr //nolint:wrapcheck
		}

		if !refund {
			return nil
		}
		users, usersErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if usersErr != nil {
			return usersErr //nolint:wrapcheck
		}
		_, refundErr := users.AddBalance(ctx, resolved.UserID, resolved.Amount)
		return refundErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("resolve withdrawal %d as %s: %w", txID, status, txErr)
	}
	return resolved, nil
}

// ComputeStats собирает агрегаты по пользователям и журналу. windowDays <= 0 заменяется на
// DefaultActiveWindowDays.
func (s *LedgerService) ComputeStats(ctx context.Context, windowDays int) (*domain.StatsSnapshot, error) {
	if windowDays <= 0 {
		windowDays = DefaultActiveWindowDays
	}
	now := s.now()

	users, usersErr := s.userRepo.Aggregate(ctx, now.AddDate(0, 0, -windowDays))
	if usersErr != nil {
		return nil, fmt.Errorf("compute stats: %w", usersErr)
	}
	txs, txsErr := s.txRepo.Aggregate(ctx)
	if txsErr != nil {
		return nil, fmt.Errorf("compute stats: %w", txsErr)
	}

	return &domain.StatsSnapshot{
		TotalUsers:           users.TotalUsers,
		ActiveUsers:          users.ActiveUsers,
		ActiveWindowDays:     windowDays,
		TotalTransactions:    txs.TotalTransactions,
		CompletedWithdrawals: txs.CompletedWithdrawals,
		WithdrawnAmount:      txs.WithdrawnAmount,
		TotalBalance:         users.TotalBalance,
		GeneratedAt:          now,
	}, nil
}

// ListRecentCompletedWithdrawals возвращает последние выполненные выводы, новые первыми, с замаскированными
// именами.
func (s *LedgerService) ListRecentCompletedWithdrawals(
	ctx context.Context,
	limit uint,
) ([]domain.WithdrawalProof, error) {
	if limit == 0 {
		limit = DefaultProofLimit
	}
	rows, err := s.txRepo.RecentCompletedWithdrawals(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent withdrawals: %w", err)
	}
	var proofs = make([]domain.WithdrawalProof, len(rows))
	for i, row := range rows {
		proofs[i] = domain.WithdrawalProof{
			MaskedName: MaskDisplayName(row.DisplayName),
			Amount:     row.Amount,
			CreatedAt:  row.CreatedAt,
		}
	}
	return proofs, nil
}

// History возвращает последние транзакции пользователя.
func (s *LedgerService) History(ctx context.Context, userID int64, limit uint) ([]domain.Transaction, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	txs, err := s.txRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history of user %d: %w", userID, err)
	}
	return txs, nil
}

// PendingWithdrawals возвращает очередь заявок, ожидающих решения администратора.
func (s *LedgerService) PendingWithdrawals(ctx context.Context, limit uint) ([]domain.Transaction, error) {
	if limit == 0 {
		limit = DefaultPendingLimit
	}
	txs, err := s.txRepo.GetPendingWithdrawals(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("pending withdrawals: %w", err)
	}
	return txs, nil
}

// AudienceIDs возвращает id всех пользователей для рассылки.
func (s *LedgerService) AudienceIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("audience ids: %w", err)
	}
	return ids, nil
}

type creditArgs struct {
	userID    int64
	amount    int64
	txType    domain.TransactionType
	details   string
	reference string
}

// credit общий примитив начисления: блокирует пользователя, пишет completed транзакцию и увеличивает баланс.
// Вызывается только внутри uow.Do.
func (s *LedgerService) credit(ctx context.Context, tx uow.TX, args creditArgs) (*domain.Transaction, error) {
	users, usersErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if usersErr != nil {
		return nil, usersErr //nolint:wrapcheck
	}
	txs, txsErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
	if txsErr != nil {
		return nil, txsErr //nolint:wrapcheck
	}

	if _, lockErr := users.FindByIDForUpdate(ctx, args.userID); lockErr != nil {
		if errors.Is(lockErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, args.userID)
		}
		return nil, lockErr //nolint:wrapcheck
	}

	// запись в журнал идет первой: повтор reference обрывает транзакцию до изменения баланса.
	record, createErr := txs.Create(ctx, repoargs.TransactionCreate{
		UserID:    args.userID,
		Amount:    args.amount,
		Type:      args.txType,
		Status:    domain.TransactionStatusCompleted,
		Details:   args.details,
		Reference: args.reference,
		CreatedAt: s.now(),
	})
	if createErr != nil {
		if args.reference != "" && errors.Is(createErr, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: reference `%s`", domain.ErrAlreadyProcessed, args.reference)
		}
		return nil, createErr //nolint:wrapcheck
	}

	if _, addErr := users.AddBalance(ctx, args.userID, args.amount); addErr != nil {
		return nil, addErr //nolint:wrapcheck
	}
	return record, nil
}

// IsValidDestination проверяет номер кошелька DANA: от 10 до 13 цифр.
func IsValidDestination(destination string) bool {
	return destinationPattern.MatchString(destination)
}

// MaskDisplayName оставляет два первых и последний символ имени, остальное заменяет звездочками.
// Имена короче четырех символов целиком заменяются на "User".
func MaskDisplayName(name string) string {
	n := utf8.RuneCountInString(name)
	if n <= 3 { //nolint:mnd
		return maskedNameFallback
	}
	runes := []rune(name)
	return string(runes[:2]) + strings.Repeat("*", n-3) + string(runes[n-1])
}
