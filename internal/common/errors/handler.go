// internal/common/errors/handler.go
package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPHandler converts application errors into HTTP responses with
// standardized bodies. Full error context is logged; response details stay
// at the hint level and never expose raw internals.
type HTTPHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// Respond writes the error response for err on c, aborting the request.
func (h *HTTPHandler) Respond(c *gin.Context, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"path":      c.FullPath(),
		"method":    c.Request.Method,
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
	})

	status, body := h.toResponse(stdErr)
	c.AbortWithStatusJSON(status, body)
}

// normalizeError ensures we always have a StandardError.
func (h *HTTPHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// toResponse maps an error code to an HTTP status and response body.
// Internal failures get a generic message; their details are log-only.
func (h *HTTPHandler) toResponse(stdErr *StandardError) (int, gin.H) {
	switch {
	case stdErr.Code == ErrCodeValidationFailed:
		return http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": stdErr.Details,
		}
	case IsNotFound(stdErr.Code):
		return http.StatusNotFound, gin.H{
			"error":   stdErr.Message,
			"details": stdErr.Details,
		}
	case stdErr.Code == ErrCodeClassificationFailed,
		stdErr.Code == ErrCodeClassifierResponseMalformed,
		stdErr.Code == ErrCodeClassifierAPITimeout:
		return http.StatusInternalServerError, gin.H{
			"error":   "Text analysis failed",
			"details": "The classification backend did not produce a usable result",
		}
	default:
		return http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": "An unexpected error occurred while processing the request",
		}
	}
}
