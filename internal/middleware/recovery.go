package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery returns a middleware that converts panics into logged JSON 500
// responses. It stands in for gin.Recovery() so panics land in the
// structured log with their stack trace instead of gin's plain writer.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				abortWithPanic(c, log, r)
			}
		}()
		c.Next()
	}
}

func abortWithPanic(c *gin.Context, log *slog.Logger, value any) {
	log.ErrorContext(c.Request.Context(), "panic recovered",
		slog.Any("panic", value),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	c.Abort()
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    http.StatusInternalServerError,
		"message": "internal server error",
		"data":    nil,
	})
}
