package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the body returned by every trigger endpoint. The callers are
// machine runtimes, so the shape stays small and stable: status mirrors the
// HTTP code, request_id ties the body back to the logs.
type Envelope[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// Success builds a success envelope. The caller is responsible for writing it
// with c.JSON.
func Success[T any](ctx *gin.Context, status int, data T, message string) Envelope[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return Envelope[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	}
}

// Error builds a failure envelope carrying the error detail (a string or a
// field->message map from validation).
func Error[T any](ctx *gin.Context, status int, message string, detail any) Envelope[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return Envelope[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     detail,
	}
}
