package domain

import (
	"strconv"
	"time"
)

// ReferralCodePrefix префикс реферального кода, за которым следует id пользователя.
const ReferralCodePrefix = "REF"

type User struct {
	ID           int64
	DisplayName  string
	Balance      int64
	ReferralCode string
	ReferredBy   *int64
	JoinedAt     time.Time
	LastActiveAt time.Time
}

// ReferralCodeFor детерминированно выводит реферальный код из id пользователя.
func ReferralCodeFor(userID int64) string {
	return ReferralCodePrefix + strconv.FormatInt(userID, 10)
}

type Transaction struct {
	ID        int64
	UserID    int64
	Amount    int64
	Type      TransactionType
	Status    TransactionStatus
	Details   string
	CreatedAt time.Time
}

// IsPendingWithdrawal сообщает, можно ли еще одобрить или отклонить транзакцию.
func (t *Transaction) IsPendingWithdrawal() bool {
	return t.Type == TransactionTypeWithdraw && t.Status == TransactionStatusPending
}

// StatsSnapshot агрегированная статистика бота на момент GeneratedAt.
type StatsSnapshot struct {
	TotalUsers           int64
	ActiveUsers          int64
	ActiveWindowDays     int
	TotalTransactions    int64
	CompletedWithdrawals int64
	WithdrawnAmount      int64
	TotalBalance         int64
	GeneratedAt          time.Time
}

// WithdrawalProof запись публичного списка выплат. Имя уже замаскировано.
type WithdrawalProof struct {
	MaskedName string
	Amount     int64
	CreatedAt  time.Time
}
