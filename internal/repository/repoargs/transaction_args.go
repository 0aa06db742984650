package repoargs

import (
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
)

type TransactionCreate struct {
	UserID  int64
	Amount  int64
	Type    domain.TransactionType
	Status  domain.TransactionStatus
	Details string
	// Reference ключ идемпотентности внешнего события. Пустая строка сохраняется как NULL.
	Reference string
	CreatedAt time.Time
}

type TransactionResolve struct {
	ID            int64
	Status        domain.TransactionStatus
	DetailsSuffix string
}

type TransactionAggregation struct {
	TotalTransactions    int64
	CompletedWithdrawals int64
	WithdrawnAmount      int64
}

// CompletedWithdrawal строка выборки последних выплат. Имя пользователя еще не замаскировано.
type CompletedWithdrawal struct {
	DisplayName string
	Amount      int64
	CreatedAt   time.Time
}
