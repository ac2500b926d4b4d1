// Package respond provides consistent JSON response formatting.
package respond

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body returned by every endpoint.
type Envelope struct {
	Success    bool         `json:"success"`
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Data       interface{}  `json:"data,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Timestamp  string       `json:"timestamp"`
}

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// Error writes an error envelope with the given message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// ValidationError writes a 400-style envelope with per-field details.
func ValidationError(c *gin.Context, status int, message string, errors []FieldError) {
	c.JSON(status, Envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Errors:     errors,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// LogAndError logs the internal error with request context and responds
// with a generic message so internals never leak to the client.
func LogAndError(c *gin.Context, logger *slog.Logger, status int, err error, message string) {
	logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"error", err,
	)
	Error(c, status, message)
}
