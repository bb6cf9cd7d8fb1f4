package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// PersistenceWarningHeader is set when an operation succeeded in memory but
// its snapshot could not be written.
const PersistenceWarningHeader = "X-Persistence-Warning"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInconsistentLedger):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// persistenceWarning sets the warning header when err only reports a failed
// snapshot write and returns the warning text. ok is false for real failures.
func persistenceWarning(w http.ResponseWriter, err error) (warning string, ok bool) {
	if err == nil {
		return "", true
	}
	if !usecase.IsWarning(err) {
		return "", false
	}
	w.Header().Set(PersistenceWarningHeader, "snapshot not saved")
	return err.Error(), true
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
// A missing parameter yields the zero date.
func parseDateQuery(r *http.Request, key string) (domain.Date, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(val)
}
