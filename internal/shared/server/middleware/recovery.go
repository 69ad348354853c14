package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/shared/metrics"
	"productfinder-backend/internal/shared/server/respond"
	"productfinder-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. The panic is counted
// per route so a broken catalog entry or answer shape shows up on /metrics.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.IncPanic(route)
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"session_id": SessionIDFromContext(c),
				"route":      route,
				"method":     c.Request.Method,
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Internal(c, "unexpected server error", nil)
		}()
		c.Next()
	}
}
