package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request. Handlers may attach
// "topProduct" and "leadId" to the context to have them logged.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		topProduct, _ := c.Get("topProduct")
		leadID, _ := c.Get("leadId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"session_id":  SessionIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"top_product": topProduct,
			"lead_id":     leadID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
