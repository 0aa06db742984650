package domain

import (
	"errors"
	"fmt"
)

// Ошибки слоя хранения.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrStorage        = errors.New("storage error")
)

// Ошибки бизнес-логики. Все они ожидаемы и показываются пользователю, состояние при этом не меняется.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDestination  = errors.New("invalid destination account")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyProcessed    = errors.New("already processed")
)

// InsufficientBalanceError уточняет ErrInsufficientBalance текущим балансом и минимальной суммой вывода.
type InsufficientBalanceError struct {
	Balance int64
	Minimum int64
}

func NewInsufficientBalanceError(balance, minimum int64) error {
	return &InsufficientBalanceError{Balance: balance, Minimum: minimum}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: balance %d is below minimum %d", ErrInsufficientBalance, e.Balance, e.Minimum)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
