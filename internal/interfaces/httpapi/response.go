package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pickempool/pickem-api/internal/usecase"
)

// Response bodies are flat JSON objects. Failures carry a single stable
// "error" string keyed off the usecase sentinel taxonomy.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeJSON(ctx, w, errorStatus(err), errorBody{Error: errorMessage(err)})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrLocked):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrUnknownWeek),
		errors.Is(err, usecase.ErrNoGames),
		errors.Is(err, usecase.ErrIncomplete),
		errors.Is(err, usecase.ErrInvalidTeam),
		errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps the user-facing strings for the lock and completeness
// policies byte-stable; everything else surfaces the wrapped error text,
// except internal failures which stay opaque.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrLocked):
		return usecase.ErrLocked.Error()
	case errors.Is(err, usecase.ErrIncomplete):
		return usecase.ErrIncomplete.Error()
	}

	if errorStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
