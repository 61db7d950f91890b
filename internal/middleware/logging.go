package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with method, path, status, user id and
// duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		userID, _ := GetUserID(c) // zero if pre-auth
		status := c.Writer.Status()
		duration := time.Since(start).Milliseconds()

		if status >= 500 {
			slog.Error("request failed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else if status >= 400 {
			slog.Warn("request rejected",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else {
			slog.Info("request ok",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"user_id", userID,
				"duration_ms", duration,
			)
		}
	}
}
