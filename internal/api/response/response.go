// Package response writes JSON bodies. Successful responses carry the bare
// resource; failures carry an Error.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Detail    string `json:"detail"`
	Code      string `json:"code"`
	RequestID string `json:"requestId"`
	Errors    any    `json:"errors,omitempty"`
}

// DeleteResult is the body of a successful delete.
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success writes a successful JSON response.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, data)
}

// Deleted writes the 200 body confirming a delete.
func Deleted(w http.ResponseWriter) {
	JSON(w, http.StatusOK, DeleteResult{Deleted: true})
}

// Err writes an error JSON response. A missing requestID is replaced with a
// fresh one so every error can be correlated.
func Err(w http.ResponseWriter, status int, code string, detail string, requestID string) {
	ErrWithDetails(w, status, code, detail, nil, requestID)
}

// ErrWithDetails writes an error JSON response with per-field details.
func ErrWithDetails(w http.ResponseWriter, status int, code string, detail string, details any, requestID string) {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	JSON(w, status, Error{
		Detail:    detail,
		Code:      code,
		RequestID: requestID,
		Errors:    details,
	})
}
