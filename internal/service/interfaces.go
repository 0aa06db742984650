package service

import (
	"context"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	Upsert(ctx context.Context, args repoargs.UpsertUser) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error)
	AddBalance(ctx context.Context, id int64, delta int64) (*domain.User, error)
	ResetBalance(ctx context.Context, id int64) (*domain.User, error)
	Aggregate(ctx context.Context, activeSince time.Time) (*repoargs.UserAggregation, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Transaction, error)
	Resolve(ctx context.Context, args repoargs.TransactionResolve) (*domain.Transaction, error)
	Aggregate(ctx context.Context) (*repoargs.TransactionAggregation, error)
	RecentCompletedWithdrawals(ctx context.Context, limit uint) ([]repoargs.CompletedWithdrawal, error)
	GetByUserID(ctx context.Context, userID int64, limit uint) ([]domain.Transaction, error)
	GetPendingWithdrawals(ctx context.Context, limit uint) ([]domain.Transaction, error)
}
