package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"productfinder-backend/internal/shared/server/respond"
)

const (
	sessionIDKey   = "sessionId"
	sessionIssued  = "sessionIssued"
	sessionHeader  = "X-Session-Id"
	maxSessionIDLn = 128
)

// Session identifies the visitor by the X-Session-Id header, issuing a new
// id when the header is missing or malformed. The id is echoed back.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" || len(id) > maxSessionIDLn {
			id = uuid.NewString()
			c.Set(sessionIssued, true)
		}
		c.Set(sessionIDKey, id)
		c.Writer.Header().Set(sessionHeader, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the visitor session id set by Session.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// sessionIssuedHere reports whether Session generated the id for this
// request instead of reading it from the client.
func sessionIssuedHere(c *gin.Context) bool {
	return c.GetBool(sessionIssued)
}

// AdminAuth requires "Authorization: Bearer <apiKey>". An empty apiKey
// disables the admin surface entirely.
func AdminAuth(apiKey string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(apiKey))
	return func(c *gin.Context) {
		if len(expected) == 0 {
			respond.NotFound(c, "admin api disabled")
			return
		}
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
