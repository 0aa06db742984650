package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	default:
		return "internal server error"
	}
}

// Errors отдает первую ошибку из c.Errors в виде {"error": "..."}. Текст приватных ошибок наружу
// не уходит, клиент видит только описание статуса, а сама ошибка пишется в лог.
func Errors(l logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		firstErr := c.Errors[0]
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			l.WithError(firstErr.Err).WithField("path", c.FullPath()).Error("request failed")
		}

		// тело уже отправлено обработчиком, ошибка нужна только для лога.
		if c.Writer.Size() > 0 {
			return
		}

		msg := statusErrorText(status)
		if firstErr.IsType(gin.ErrorTypePublic) {
			msg = firstErr.Error()
		}
		c.JSON(status, gin.H{"error": msg})
		c.Abort()
	}
}
