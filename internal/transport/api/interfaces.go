package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/castile-money/internal/domain"
)

type AdEarningRecorder interface {
	RecordAdEarning(ctx context.Context, userID, amount int64, reference string) (*domain.Transaction, error)
}

type AdminLedger interface {
	ComputeStats(ctx context.Context, windowDays int) (*domain.StatsSnapshot, error)
	ListRecentCompletedWithdrawals(ctx context.Context, limit uint) ([]domain.WithdrawalProof, error)
	PendingWithdrawals(ctx context.Context, limit uint) ([]domain.Transaction, error)
	ApproveWithdrawal(ctx context.Context, txID int64) (*domain.Transaction, error)
	RejectWithdrawal(ctx context.Context, txID int64, reason string) (*domain.Transaction, error)
}

// WithdrawalNotifier уведомляет пользователя о решении по заявке. Реализуется ботом.
type WithdrawalNotifier interface {
	WithdrawalApproved(ctx context.Context, tx *domain.Transaction)
	WithdrawalRejected(ctx context.Context, tx *domain.Transaction, reason string)
}

type AdminPolicy interface {
	IsAdmin(userID int64) bool
}
