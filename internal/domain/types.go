package domain

type TransactionType string

const (
	TransactionTypeReferral  TransactionType = "referral"
	TransactionTypeAdEarning TransactionType = "ad_earning"
	TransactionTypeWithdraw  TransactionType = "withdraw"
	TransactionTypeAdminAdd  TransactionType = "admin_add"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRejected  TransactionStatus = "rejected"
)
