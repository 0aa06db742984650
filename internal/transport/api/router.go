// Package api HTTP сторона бота: постбэк рекламной сети и административное API.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/castile-money/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	HealthRoute       = "/healthz"
	RouteGroup        = "/api"
	AdPostbackRoute   = "/postback/ad"
	AdminGroup        = "/admin"
	AdminStatsRoute   = "/stats"
	AdminRecentRoute  = "/withdrawals/recent"
	AdminPendingRoute = "/withdrawals/pending"
	AdminApproveRoute = "/withdrawals/:id/approve"
	AdminRejectRoute  = "/withdrawals/:id/reject"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	AdService      AdEarningRecorder
	AdminLedger    AdminLedger
	Notifier       WithdrawalNotifier
	Policy         AdminPolicy
	PostbackSecret string
	JWTSecretKey   []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("new api router: %w", err)
	}

	if args.Logger == nil {
		args.Logger = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.Logger(args.Logger))
	r.Use(middlewares.Errors(args.Logger))

	r.GET(HealthRoute, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	postbackHandler := NewPostbackHandler(args.AdService, args.PostbackSecret)
	adminHandler := NewAdminHandler(args.AdminLedger, args.Notifier, args.Logger)

	api := r.Group(RouteGroup)
	api.GET(AdPostbackRoute, postbackHandler.AdView)

	admin := api.Group(AdminGroup)
	admin.Use(middlewares.AdminRequired(args.JWTSecretKey, args.Policy))
	// ниже все роуты группы требуют токена администратора.
	admin.GET(AdminStatsRoute, adminHandler.Stats)
	admin.GET(AdminRecentRoute, adminHandler.RecentWithdrawals)
	admin.GET(AdminPendingRoute, adminHandler.PendingWithdrawals)
	admin.POST(AdminApproveRoute, adminHandler.Approve)
	admin.POST(AdminRejectRoute, adminHandler.Reject)
	return r, nil
}
