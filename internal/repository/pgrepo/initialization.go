// Package pgrepo открывает пул соединений к PostgreSQL и накатывает миграции схемы.
package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxAttempts   uint = 30
	defaultRetryInterval      = 3 * time.Second
)

// ConnectArgs параметры подключения. Нулевые MaxAttempts и RetryInterval заменяются значениями по умолчанию.
type ConnectArgs struct {
	DSN           string
	MigrationsDir string
	MaxAttempts   uint
	RetryInterval time.Duration
}

// Connect пытается подключиться к базе, пока не исчерпает попытки или не будет отменен контекст, после чего
// применяет миграции из ConnectArgs.MigrationsDir.
func Connect(ctx context.Context, args ConnectArgs, l logrus.FieldLogger) (*pgxpool.Pool, error) {
	maxAttempts := args.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	retryInterval := args.RetryInterval
	if retryInterval == 0 {
		retryInterval = defaultRetryInterval
	}

	var (
		pool    *pgxpool.Pool
		connErr error
	)
	for attempt := uint(1); attempt <= maxAttempts; attempt++ {
		pool, connErr = newPostgresConnection(ctx, args.DSN)
		if connErr == nil {
			break
		}
		l.WithError(connErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempt, maxAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", retryInterval.Seconds())

		select {
		case <-ctx.Done():
			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(retryInterval):
		}
	}
	if connErr != nil {
		return nil, fmt.Errorf("init postgres connection after %d attempts: %w", maxAttempts, connErr)
	}

	if err := postgresMigrate(args.MigrationsDir, args.DSN); err != nil {
		pool.Close()
		return nil, err
	}
	l.WithField("dir", args.MigrationsDir).Info("postgres migrations applied")
	return pool, nil
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
