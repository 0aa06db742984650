package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// adReferencePrefix пространство ссылок рекламной сети в транзакциях.
const adReferencePrefix = "ad:"

type PostbackHandler struct {
	svs    AdEarningRecorder
	secret []byte
}

func NewPostbackHandler(svs AdEarningRecorder, secret string) *PostbackHandler {
	return &PostbackHandler{
		svs:    svs,
		secret: []byte(secret),
	}
}

type AdPostbackParams struct {
	UserID  int64  `binding:"required"               form:"user_id"`
	Amount  int64  `form:"amount"`
	EventID string `binding:"required,max_bytes=128" form:"event_id"`
}

// AdView GET RouteGroup + AdPostbackRoute. Начисляет вознаграждение за просмотр рекламы. Повтор события
// отвечает 200 и ничего не начисляет, чтобы сеть перестала его повторять.
func (h *PostbackHandler) AdView(c *gin.Context) {
	if !h.validSecret(c.Query("secret")) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid secret"})
		return
	}

	var params AdPostbackParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	tx, err := h.svs.RecordAdEarning(reqCtx, params.UserID, params.Amount, adReferencePrefix+params.EventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyProcessed):
			c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, domain.ErrInvalidAmount):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid amount"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "transaction_id": tx.ID})
}

// validSecret сравнивает за постоянное время. Пустой секрет в конфигурации отключает постбэк.
func (h *PostbackHandler) validSecret(got string) bool {
	if len(h.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), h.secret) == 1
}
