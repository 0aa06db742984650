package guard

import (
	"context"
	"time"
)

// DefaultCooldownWindow интервал между попытками вывода одного пользователя.
const DefaultCooldownWindow = 5 * time.Minute

//go:generate mockgen -source=cooldown.go -destination=mocks/mocks.go -package=mocks

// CooldownTracker ограничивает частоту действий пользователя. Ограничение рекомендательное: оно не влияет на
// корректность леджера, а только гасит повторные нажатия.
type CooldownTracker interface {
	// Acquire фиксирует попытку. Если с прошлой успешной попытки прошло меньше окна, возвращает ok=false и
	// оставшееся время, при этом окно не продлевается.
	Acquire(ctx context.Context, userID int64) (remaining time.Duration, ok bool, err error)
}

// AuthorizationPolicy решает, может ли пользователь выполнять административные операции.
type AuthorizationPolicy interface {
	IsAdmin(userID int64) bool
}
