package sqlc

import (
	"context"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
	"github.com/fsdevblog/castile-money/internal/repository/sqlc/sqlcgen"
)

type TransactionRepository struct {
	q *sqlcgen.Queries
}

func NewTransactionRepository(conn sqlcgen.DBTX) *TransactionRepository {
	return &TransactionRepository{q: sqlcgen.New(conn)}
}

// Create добавляет запись в журнал. Повтор непустого Reference возвращает domain.ErrDuplicateKey.
func (r *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	dbTrans, err := r.q.Transactions_Create(ctx, sqlcgen.Transactions_CreateParams{
		UserID:    args.UserID,
		Amount:    args.Amount,
		Type:      sqlcgen.TransactionType(args.Type),
		Status:    sqlcgen.TransactionStatus(args.Status),
		Details:   args.Details,
		Reference: nullableText(args.Reference),
		CreatedAt: timestamptz(args.CreatedAt),
	})
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for user %d", args.Type, args.UserID)
	}
	return convertTransactionModel(dbTrans), nil
}

func (r *TransactionRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Transaction, error) {
	dbTrans, err := r.q.Transactions_FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, convertErr(err, "locking transaction %d", id)
	}
	return convertTransactionModel(dbTrans), nil
}

// Resolve переводит ожидающий вывод в конечный статус и дописывает суффикс к details. Если транзакция уже
// не в статусе pending, возвращает domain.ErrRecordNotFound.
func (r *TransactionRepository) Resolve(
	ctx context.Context,
	args repoargs.TransactionResolve,
) (*domain.Transaction, error) {
	dbTrans, err := r.q.Transactions_Resolve(ctx, sqlcgen.Transactions_ResolveParams{
		Status:        sqlcgen.TransactionStatus(args.Status),
		DetailsSuffix: args.DetailsSuffix,
		ID:            args.ID,
	})
	if err != nil {
		return nil, convertErr(err, "resolving withdrawal %d as %s", args.ID, args.Status)
	}
	return convertTransactionModel(dbTrans), nil
}

func (r *TransactionRepository) Aggregate(ctx context.Context) (*repoargs.TransactionAggregation, error) {
	row, err := r.q.Transactions_Aggregate(ctx)
	if err != nil {
		return nil, convertErr(err, "aggregating transactions")
	}
	return &repoargs.TransactionAggregation{
		TotalTransactions:    row.TotalTransactions,
		CompletedWithdrawals: row.CompletedWithdrawals,
		WithdrawnAmount:      row.WithdrawnAmount,
	}, nil
}

// RecentCompletedWithdrawals возвращает последние выплаты, от новых к старым.
func (r *TransactionRepository) RecentCompletedWithdrawals(
	ctx context.Context,
	limit uint,
) ([]repoargs.CompletedWithdrawal, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := r.q.Transactions_RecentCompletedWithdrawals(ctx, safeLimit)
	if err != nil {
		return nil, convertErr(err, "getting recent completed withdrawals")
	}
	var result = make([]repoargs.CompletedWithdrawal, len(rows))
	for i, row := range rows {
		result[i] = repoargs.CompletedWithdrawal{
			DisplayName: row.DisplayName,
			Amount:      row.Amount,
			CreatedAt:   row.CreatedAt.Time,
		}
	}
	return result, nil
}

// GetByUserID возвращает транзакции пользователя, отсортированные по дате создания по убыванию.
func (r *TransactionRepository) GetByUserID(
	ctx context.Context,
	userID int64,
	limit uint,
) ([]domain.Transaction, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	dbTransactions, err := r.q.Transactions_GetByUserID(ctx, sqlcgen.Transactions_GetByUserIDParams{
		UserID:   userID,
		RowLimit: safeLimit,
	})
	if err != nil {
		return nil, convertErr(err, "getting transactions of user %d", userID)
	}
	return convertTransactionModels(dbTransactions), nil
}

// GetPendingWithdrawals возвращает очередь ожидающих выводов, старые первыми.
func (r *TransactionRepository) GetPendingWithdrawals(ctx context.Context, limit uint) ([]domain.Transaction, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	dbTransactions, err := r.q.Transactions_GetPendingWithdrawals(ctx, safeLimit)
	if err != nil {
		return nil, convertErr(err, "getting pending withdrawals")
	}
	return convertTransactionModels(dbTransactions), nil
}

func convertTransactionModels(models []sqlcgen.Transaction) []domain.Transaction {
	var transactions = make([]domain.Transaction, len(models))
	for i, model := range models {
		transactions[i] = *convertTransactionModel(model)
	}
	return transactions
}

func convertTransactionModel(model sqlcgen.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:        model.ID,
		UserID:    model.UserID,
		Amount:    model.Amount,
		Type:      domain.TransactionType(model.Type),
		Status:    domain.TransactionStatus(model.Status),
		Details:   model.Details,
		CreatedAt: model.CreatedAt.Time,
	}
}
