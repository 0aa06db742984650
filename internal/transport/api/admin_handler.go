package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	ledger   AdminLedger
	notifier WithdrawalNotifier
	l        *logrus.Entry
}

func NewAdminHandler(ledger AdminLedger, notifier WithdrawalNotifier, l *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		ledger:   ledger,
		notifier: notifier,
		l: l.WithFields(logrus.Fields{
			"component": "api",
			"module":    "admin",
		}),
	}
}

type StatsParams struct {
	Days int `binding:"omitempty,min=1,max=3650" form:"days"`
}

type StatsResponse struct {
	TotalUsers           int64     `json:"total_users"`
	ActiveUsers          int64     `json:"active_users"`
	ActiveWindowDays     int       `json:"active_window_days"`
	TotalTransactions    int64     `json:"total_transactions"`
	CompletedWithdrawals int64     `json:"completed_withdrawals"`
	WithdrawnAmount      int64     `json:"withdrawn_amount"`
	TotalBalance         int64     `json:"total_balance"`
	GeneratedAt          time.Time `json:"generated_at"`
}

// Stats GET RouteGroup + AdminStatsRoute.
func (h *AdminHandler) Stats(c *gin.Context) {
	var params StatsParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	stats, err := h.ledger.ComputeStats(reqCtx, params.Days)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &StatsResponse{
		TotalUsers:           stats.TotalUsers,
		ActiveUsers:          stats.ActiveUsers,
		ActiveWindowDays:     stats.ActiveWindowDays,
		TotalTransactions:    stats.TotalTransactions,
		CompletedWithdrawals: stats.CompletedWithdrawals,
		WithdrawnAmount:      stats.WithdrawnAmount,
		TotalBalance:         stats.TotalBalance,
		GeneratedAt:          stats.GeneratedAt,
	})
}

type ListParams struct {
	Limit uint `binding:"omitempty,max=100" form:"limit"`
}

type ProofResponseItem struct {
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// RecentWithdrawals GET RouteGroup + AdminRecentRoute. Имена в ответе замаскированы так же, как в боте.
func (h *AdminHandler) RecentWithdrawals(c *gin.Context) {
	var params ListParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	proofs, err := h.ledger.ListRecentCompletedWithdrawals(reqCtx, params.Limit)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]ProofResponseItem, len(proofs))
	for i, p := range proofs {
		response[i] = ProofResponseItem{
			Name:      p.MaskedName,
			Amount:    p.Amount,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, response)
}

type TransactionResponse struct {
	ID        int64                    `json:"id"`
	UserID    int64                    `json:"user_id"`
	Amount    int64                    `json:"amount"`
	Type      domain.TransactionType   `json:"type"`
	Status    domain.TransactionStatus `json:"status"`
	Details   string                   `json:"details"`
	CreatedAt string                   `json:"created_at"`
}

func newTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Amount:    tx.Amount,
		Type:      tx.Type,
		Status:    tx.Status,
		Details:   tx.Details,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}

// PendingWithdrawals GET RouteGroup + AdminPendingRoute.
func (h *AdminHandler) PendingWithdrawals(c *gin.Context) {
	var params ListParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	txs, err := h.ledger.PendingWithdrawals(reqCtx, params.Limit)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]TransactionResponse, len(txs))
	for i := range txs {
		response[i] = newTransactionResponse(&txs[i])
	}
	c.JSON(http.StatusOK, response)
}

// Approve POST RouteGroup + AdminApproveRoute.
func (h *AdminHandler) Approve(c *gin.Context) {
	txID, ok := parseTxID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	tx, err := h.ledger.ApproveWithdrawal(reqCtx, txID)
	if err != nil {
		abortWithResolveError(c, err)
		return
	}

	h.l.WithFields(logrus.Fields{
		"admin_id": getAdminIDFromContext(c),
		"tx_id":    tx.ID,
	}).Info("withdrawal approved")
	// уведомление отправляется вне таймаута запроса: операция уже зафиксирована.
	h.notifier.WithdrawalApproved(context.WithoutCancel(c), tx)

	c.JSON(http.StatusOK, newTransactionResponse(tx))
}

type RejectParams struct {
	Reason string `binding:"max_bytes=1024" json:"reason"`
}

// Reject POST RouteGroup + AdminRejectRoute.
func (h *AdminHandler) Reject(c *gin.Context) {
	txID, ok := parseTxID(c)
	if !ok {
		return
	}

	var params RejectParams
	// тело необязательно: без причины сервис подставит свою.
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil && !errors.Is(bindErr, io.EOF) {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	tx, err := h.ledger.RejectWithdrawal(reqCtx, txID, params.Reason)
	if err != nil {
		abortWithResolveError(c, err)
		return
	}

	h.l.WithFields(logrus.Fields{
		"admin_id": getAdminIDFromContext(c),
		"tx_id":    tx.ID,
	}).Info("withdrawal rejected")
	h.notifier.WithdrawalRejected(context.WithoutCancel(c), tx, params.Reason)

	c.JSON(http.StatusOK, newTransactionResponse(tx))
}

func parseTxID(c *gin.Context) (int64, bool) {
	txID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || txID <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return 0, false
	}
	return txID, true
}

func abortWithResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
	case errors.Is(err, domain.ErrAlreadyProcessed):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "transaction already processed"})
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
