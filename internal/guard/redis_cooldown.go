package guard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCooldownPrefix = "castile:cooldown:"

// RedisCooldown делит окна между несколькими процессами бота. Ключи истекают сами через PX.
type RedisCooldown struct {
	rdb    redis.Cmdable
	window time.Duration
}

func NewRedisCooldown(rdb redis.Cmdable, window time.Duration) *RedisCooldown {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &RedisCooldown{rdb: rdb, window: window}
}

func (r *RedisCooldown) Acquire(ctx context.Context, userID int64) (time.Duration, bool, error) {
	key := cooldownKey(userID)

	acquired, err := r.rdb.SetNX(ctx, key, "1", r.window).Result()
	if err != nil {
		return 0, false, fmt.Errorf("redis cooldown set `%s`: %w", key, err)
	}
	if acquired {
		return 0, true, nil
	}

	remaining, ttlErr := r.rdb.PTTL(ctx, key).Result()
	if ttlErr != nil {
		return 0, false, fmt.Errorf("redis cooldown ttl `%s`: %w", key, ttlErr)
	}
	// ключ мог истечь между SET и PTTL, тогда отрицательный ttl: считаем окно почти закрытым.
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return remaining, false, nil
}

func cooldownKey(userID int64) string {
	return redisCooldownPrefix + strconv.FormatInt(userID, 10)
}

// ConnectRedis открывает клиента и проверяет соединение.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", addr, err)
	}
	return rdb, nil
}
