package telegram

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/castile-money/internal/domain"
)

// Ledger операции леджера, доступные из чата.
type Ledger interface {
	GetOrCreateUser(ctx context.Context, id int64, displayName string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ApplyReferral(ctx context.Context, newUserID int64, code string) (*domain.Transaction, error)
	RecordAdminAdjustment(ctx context.Context, targetUserID, amount, adminID int64) (*domain.Transaction, error)
	InitiateWithdrawal(ctx context.Context, userID int64, destination string) (*domain.Transaction, error)
	ApproveWithdrawal(ctx context.Context, txID int64) (*domain.Transaction, error)
	RejectWithdrawal(ctx context.Context, txID int64, reason string) (*domain.Transaction, error)
	ComputeStats(ctx context.Context, windowDays int) (*domain.StatsSnapshot, error)
	ListRecentCompletedWithdrawals(ctx context.Context, limit uint) ([]domain.WithdrawalProof, error)
	History(ctx context.Context, userID int64, limit uint) ([]domain.Transaction, error)
	PendingWithdrawals(ctx context.Context, limit uint) ([]domain.Transaction, error)
	AudienceIDs(ctx context.Context) ([]int64, error)
}

// Sender отправляет ответы в мессенджер.
type Sender interface {
	Send(ctx context.Context, reply Reply) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Admins политика доступа вместе со списком администраторов для уведомлений.
type Admins interface {
	IsAdmin(userID int64) bool
	IDs() []int64
}

// Handler обрабатывает нормализованное входящее событие.
type Handler interface {
	Handle(ctx context.Context, event Event)
}
