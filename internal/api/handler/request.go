package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/daap14/liga/internal/api/response"
	"github.com/daap14/liga/internal/api/validation"
	"github.com/daap14/liga/internal/database"
)

const maxBodyBytes = 1 << 20

const unknownFieldPrefix = "json: unknown field "

// decodeAndValidate strictly decodes the JSON body into dst and validates it.
// On failure it writes a 422 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body is invalid",
			[]validation.FieldError{decodeFieldError(err)}, requestID)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body is invalid",
			[]validation.FieldError{{Field: "body", Message: "body must contain a single JSON object"}}, requestID)
		return false
	}

	if fieldErrors := validation.Struct(dst); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return false
	}

	return true
}

func decodeFieldError(err error) validation.FieldError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr):
		return validation.FieldError{Field: typeErr.Field, Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return validation.FieldError{Field: "body", Message: "body must be valid JSON"}
	case errors.As(err, &maxErr):
		return validation.FieldError{Field: "body", Message: fmt.Sprintf("body must be at most %d bytes", maxErr.Limit)}
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		// encoding/json has no typed error for DisallowUnknownFields; it
		// reports `json: unknown field "<name>"` as a plain error. If that text
		// ever changes, the default branch still yields a 422 on body.
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		return validation.FieldError{Field: field, Message: "unknown field " + field}
	default:
		return validation.FieldError{Field: "body", Message: err.Error()}
	}
}

// parseID reads an integer path parameter. On failure it writes a 422 and
// returns false.
func parseID(w http.ResponseWriter, r *http.Request, name string, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid path parameter",
			[]validation.FieldError{{Field: name, Message: name + " must be an integer"}}, requestID)
		return 0, false
	}
	return id, true
}

// parsePage reads the skip and limit query parameters. On failure it writes a
// 422 and returns false.
func parsePage(w http.ResponseWriter, r *http.Request, requestID string) (database.Page, bool) {
	page := database.Page{Offset: 0, Limit: database.DefaultLimit}
	query := r.URL.Query()

	var fieldErrors []validation.FieldError
	parse := func(name string, dst *int) {
		raw := query.Get(name)
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fieldErrors = append(fieldErrors, validation.FieldError{Field: name, Message: name + " must be a non-negative integer"})
			return
		}
		*dst = n
	}
	parse("skip", &page.Offset)
	parse("limit", &page.Limit)

	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid query parameters", fieldErrors, requestID)
		return page, false
	}
	return page, true
}

// writeStorageError translates a repository failure that is not a not-found
// into a response. Causes of 5xx responses are logged and never exposed.
func writeStorageError(w http.ResponseWriter, err error, action string, requestID string) {
	switch {
	case errors.Is(err, database.ErrReferenceNotFound):
		response.Err(w, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND", "A referenced record does not exist", requestID)
	case errors.Is(err, database.ErrDuplicate):
		response.Err(w, http.StatusConflict, "DUPLICATE", "The record already exists", requestID)
	case errors.Is(err, database.ErrReferenced):
		response.Err(w, http.StatusConflict, "REFERENCED", "The record is still referenced by other records", requestID)
	case errors.Is(err, database.ErrPoolExhausted),
		errors.Is(err, database.ErrStorageUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		slog.Error("storage unavailable", "action", action, "error", err, "requestId", requestID)
		response.Err(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "The service is temporarily unavailable, please retry", requestID)
	default:
		slog.Error("failed to "+action, "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+action, requestID)
	}
}
