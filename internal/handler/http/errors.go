package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"product-api/internal/logger"
	"product-api/internal/model"
)

// errorResponse is the JSON error envelope: a stable error kind plus a
// human-readable detail line.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, details string) {
	writeJSON(w, status, errorResponse{Error: kind, Details: details})
}

// writeServiceError maps domain error kinds onto HTTP statuses. Malformed
// identifiers are rejected as invalid input (400) rather than collapsed into
// not-found; store failures are the only server-side kind.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation_error", verr.Error())
	case errors.Is(err, model.ErrMalformedID):
		writeError(w, http.StatusBadRequest, "malformed_id", err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, model.ErrStoreUnavailable):
		logger.Error(ctx, "Store unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "product store unavailable")
	default:
		logger.Error(ctx, "Unhandled error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeError distinguishes a mistyped field from JSON that does not parse
// at all, so a string price fails as a validation error, not a syntax one.
func decodeError(err error) (string, string) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "validation_error", fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	}
	return "invalid_json", err.Error()
}
