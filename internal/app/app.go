package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/castile-money/internal/config"
	"github.com/fsdevblog/castile-money/internal/guard"
	"github.com/fsdevblog/castile-money/internal/repository/pgrepo"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
	"github.com/fsdevblog/castile-money/internal/repository/sqlc"
	"github.com/fsdevblog/castile-money/internal/service"
	"github.com/fsdevblog/castile-money/internal/transport/api"
	"github.com/fsdevblog/castile-money/internal/transport/telegram"
	"github.com/fsdevblog/castile-money/pkg/uow"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run запускает бота и, если задан RunAddress, HTTP API. Блокирует до сигнала завершения или до ошибки
// одной из частей.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"run_address":    a.Config.RunAddress,
		"redis":          a.Config.RedisAddr != "",
		"admins":         len(a.Config.AdminIDs),
		"min_withdrawal": a.Config.MinWithdrawal,
		"referral_bonus": a.Config.ReferralBonus,
		"cooldown":       a.Config.WithdrawCooldown.String(),
	}).Info("starting app")
	if len(a.Config.AdminIDs) == 0 {
		a.Logger.Warn("ADMIN_IDS is empty: withdrawals can not be approved")
	}

	conn, connErr := pgrepo.Connect(notifyCtx, pgrepo.ConnectArgs{
		DSN:           a.Config.DatabaseDSN,
		MigrationsDir: a.Config.MigrationsDir,
	}, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, service.LedgerSettings{
		ReferralBonus: a.Config.ReferralBonus,
		MinWithdrawal: a.Config.MinWithdrawal,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	cooldown, cooldownErr := a.initCooldown(notifyCtx)
	if cooldownErr != nil {
		return fmt.Errorf("app run: %w", cooldownErr)
	}

	admins := guard.NewStaticAdmins(a.Config.AdminIDs)

	gateway, gwErr := telegram.NewGateway(a.Config.BotToken, a.Logger)
	if gwErr != nil {
		return fmt.Errorf("app run: %w", gwErr)
	}
	gateway.SetWorkers(a.Config.UpdateWorkers)

	router := telegram.NewRouter(services.Ledger, gateway, cooldown, admins, telegram.RouterConfig{
		BotUsername:   a.Config.BotUsername,
		AdURL:         a.Config.AdURL,
		MinWithdrawal: a.Config.MinWithdrawal,
		ReferralBonus: a.Config.ReferralBonus,
	}, a.Logger).SetBroadcastWorkers(a.Config.BroadcastWorkers)

	errChan := make(chan error, 2) //nolint:mnd

	go func() {
		if runErr := gateway.Run(notifyCtx, router); runErr != nil {
			errChan <- runErr
		}
	}()

	if a.Config.RunAddress != "" {
		server, srvErr := a.newHTTPServer(services.Ledger, router.Notifier(), admins)
		if srvErr != nil {
			return fmt.Errorf("app run: %w", srvErr)
		}
		go func() {
			if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
				errChan <- runErr
			}
		}()
		defer a.shutdown(server)
	}

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initCooldown выбирает хранилище окна ожидания: Redis, если он настроен, иначе память процесса.
func (a *App) initCooldown(ctx context.Context) (guard.CooldownTracker, error) {
	if a.Config.RedisAddr == "" {
		memory := guard.NewMemoryCooldown(a.Config.WithdrawCooldown, a.Logger)
		go memory.RunEviction(ctx)
		return memory, nil
	}

	rdb, err := guard.ConnectRedis(ctx, a.Config.RedisAddr)
	if err != nil {
		return nil, err
	}
	a.Logger.WithField("addr", a.Config.RedisAddr).Info("redis cooldown store connected")
	return guard.NewRedisCooldown(rdb, a.Config.WithdrawCooldown), nil
}

func (a *App) newHTTPServer(
	ledger *service.LedgerService,
	notifier api.WithdrawalNotifier,
	policy api.AdminPolicy,
) (*http.Server, error) {
	if a.Config.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := api.New(api.RouterArgs{
		Logger:         a.Logger,
		AdService:      ledger,
		AdminLedger:    ledger,
		Notifier:       notifier,
		Policy:         policy,
		PostbackSecret: a.Config.PostbackSecret,
		JWTSecretKey:   []byte(a.Config.JWTSecret),
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           engine,
		ReadHeaderTimeout: api.DefaultServiceTimeout,
	}, nil
}

func (a *App) shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		a.Logger.WithError(err).Error("http server shutdown")
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// user repo
	userRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqlc.NewUserRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.UserRepoName), userRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// transaction repo
	transactionRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqlc.NewTransactionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.TransactionRepoName),
		transactionRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
