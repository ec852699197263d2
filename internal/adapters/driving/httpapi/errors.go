package httpapi

import (
	"errors"
	"net/http"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("httpapi: lookup service is required")

// ErrMissingCatalogueService is returned when the catalogue service is not provided.
var ErrMissingCatalogueService = errors.New("httpapi: catalogue service is required")

// Error codes carried in the JSON error body.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeUnavailable   = "UPSTREAM_UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError is the JSON error body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "Record not found")
	case errors.Is(err, domain.ErrUnknownKind):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "Unknown kind")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, ErrCodeConflict, "Record already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrRemoteUnavailable), errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusBadGateway, ErrCodeUnavailable, "Upstream backend unavailable")
	default:
		logger.Warn("httpapi: internal error: %v", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal error")
	}
}
