package api

import (
	"github.com/fsdevblog/castile-money/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

// getAdminIDFromContext берет из контекста gin ID текущего администратора. ID устанавливается в
// middlewares.AdminRequired. Если значения в контексте нет, вернется 0.
func getAdminIDFromContext(c *gin.Context) int64 {
	value, exist := c.Get(middlewares.CurrentAdminIDKey)
	if !exist {
		return 0
	}
	adminID, ok := value.(int64)
	if !ok {
		return 0
	}
	return adminID
}
