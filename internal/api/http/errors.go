package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
)

type errorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err's kind. Persistence failures carry no detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == domain.KindPersistence {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, statusFor(kind), errorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// decodeJSON reads exactly one JSON object into v. Unknown fields and
// trailing data are validation errors.
func decodeJSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("%w: content type must be application/json", domain.ErrValidation)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body too large", domain.ErrValidation)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrValidation, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must hold a single object", domain.ErrValidation)
	}
	return nil
}
