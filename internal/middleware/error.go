package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/internal/logger"
)

// ErrorHandler recovers from panics in later handlers, logs them and answers
// 500 with a plain-text body
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.FromContext(c.Request.Context(), log).Error("Recovered from panic",
			zap.Any("error", err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		c.Abort()
	})
}
