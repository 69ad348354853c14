package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/shared/telemetry"
)

// Error codes shared by every handler.
const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeConflict     = "conflict"
	CodeInternal     = "internal_error"
)

// FieldIssue points a validation failure at one request field.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ErrorBody is the error object returned to clients.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts with the error envelope. Client mistakes log at warn,
// server failures at error.
func Error(c *gin.Context, status int, code, message string, details any) {
	abort(c, status, code, message, details, nil)
}

// Validation responds 400 with optional per-field issues.
func Validation(c *gin.Context, message string, issues ...FieldIssue) {
	var details any
	if len(issues) > 0 {
		details = issues
	}
	abort(c, http.StatusBadRequest, CodeValidation, message, details, nil)
}

// NotFound responds 404.
func NotFound(c *gin.Context, message string, issues ...FieldIssue) {
	var details any
	if len(issues) > 0 {
		details = issues
	}
	abort(c, http.StatusNotFound, CodeNotFound, message, details, nil)
}

// Internal responds 500 with a generic message. cause is logged, never sent.
func Internal(c *gin.Context, message string, cause error) {
	abort(c, http.StatusInternalServerError, CodeInternal, message, nil, cause)
}

func abort(c *gin.Context, status int, code, message string, details any, cause error) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"route":      route,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if sessionID := c.GetString("sessionId"); sessionID != "" {
		fields["session_id"] = sessionID
	}
	if cause != nil {
		fields["error"] = cause.Error()
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}
