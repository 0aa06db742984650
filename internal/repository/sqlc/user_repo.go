package sqlc

import (
	"context"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
	"github.com/fsdevblog/castile-money/internal/repository/sqlc/sqlcgen"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct {
	q *sqlcgen.Queries
}

func NewUserRepository(conn sqlcgen.DBTX) *UserRepository {
	return &UserRepository{q: sqlcgen.New(conn)}
}

// Upsert создает пользователя или обновляет у существующего last_active_at и, если передано непустое,
// отображаемое имя.
func (u *UserRepository) Upsert(ctx context.Context, args repoargs.UpsertUser) (*domain.User, error) {
	dbUser, err := u.q.Users_Upsert(ctx, sqlcgen.Users_UpsertParams{
		ID:           args.ID,
		DisplayName:  args.DisplayName,
		ReferralCode: args.ReferralCode,
		Now:          timestamptz(args.Now),
	})
	if err != nil {
		return nil, convertErr(err, "upserting user %d", args.ID)
	}
	return convertUserModel(dbUser), nil
}

// FindByID возвращает domain.ErrRecordNotFound если пользователя нет.
func (u *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	dbUser, err := u.q.Users_FindByID(ctx, id)
	if err != nil {
		return nil, convertErr(err, "finding user %d", id)
	}
	return convertUserModel(dbUser), nil
}

// FindByIDForUpdate блокирует строку пользователя до конца транзакции. Вне транзакции блокировка
// снимается сразу после запроса.
func (u *UserRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	dbUser, err := u.q.Users_FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, convertErr(err, "locking user %d", id)
	}
	return convertUserModel(dbUser), nil
}

func (u *UserRepository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	dbUser, err := u.q.Users_FindByReferralCode(ctx, code)
	if err != nil {
		return nil, convertErr(err, "finding user by referral code `%s`", code)
	}
	return convertUserModel(dbUser), nil
}

// SetReferrer проставляет реферера, только если он еще не был установлен. Возвращает false, если
// обновления не произошло.
func (u *UserRepository) SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error) {
	affected, err := u.q.Users_SetReferrer(ctx, sqlcgen.Users_SetReferrerParams{
		ReferrerID: pgtype.Int8{Int64: referrerID, Valid: true},
		ID:         userID,
	})
	if err != nil {
		return false, convertErr(err, "setting referrer %d for user %d", referrerID, userID)
	}
	return affected == 1, nil
}

func (u *UserRepository) AddBalance(ctx context.Context, id int64, delta int64) (*domain.User, error) {
	dbUser, err := u.q.Users_AddBalance(ctx, sqlcgen.Users_AddBalanceParams{Delta: delta, ID: id})
	if err != nil {
		return nil, convertErr(err, "adding %d to balance of user %d", delta, id)
	}
	return convertUserModel(dbUser), nil
}

func (u *UserRepository) ResetBalance(ctx context.Context, id int64) (*domain.User, error) {
	dbUser, err := u.q.Users_ResetBalance(ctx, id)
	if err != nil {
		return nil, convertErr(err, "resetting balance of user %d", id)
	}
	return convertUserModel(dbUser), nil
}

func (u *UserRepository) Aggregate(ctx context.Context, activeSince time.Time) (*repoargs.UserAggregation, error) {
	row, err := u.q.Users_Aggregate(ctx, timestamptz(activeSince))
	if err != nil {
		return nil, convertErr(err, "aggregating users")
	}
	return &repoargs.UserAggregation{
		TotalUsers:   row.TotalUsers,
		ActiveUsers:  row.ActiveUsers,
		TotalBalance: row.TotalBalance,
	}, nil
}

func (u *UserRepository) ListIDs(ctx context.Context) ([]int64, error) {
	ids, err := u.q.Users_ListIDs(ctx)
	if err != nil {
		return nil, convertErr(err, "listing user ids")
	}
	return ids, nil
}

func convertUserModel(dbModel sqlcgen.User) *domain.User {
	user := &domain.User{
		ID:           dbModel.ID,
		DisplayName:  dbModel.DisplayName,
		Balance:      dbModel.Balance,
		ReferralCode: dbModel.ReferralCode,
		JoinedAt:     dbModel.JoinedAt.Time,
		LastActiveAt: dbModel.LastActiveAt.Time,
	}
	if dbModel.ReferredBy.Valid {
		referrer := dbModel.ReferredBy.Int64
		user.ReferredBy = &referrer
	}
	return user
}
