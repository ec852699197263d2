package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// Sentinel errors for the REST item source.
var (
	// ErrInvalidBaseURL indicates the configured backend URL is unusable.
	ErrInvalidBaseURL = errors.New("rest: invalid base url")

	// ErrUnknownVariant indicates a request variant name is not recognised.
	ErrUnknownVariant = errors.New("rest: unknown request variant")

	// ErrMalformedResponse indicates a 2xx body that is not a list of rows.
	ErrMalformedResponse = errors.New("rest: malformed response")
)

// StatusError reports a non-2xx response for one variant.
type StatusError struct {
	Code    int
	Variant string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("variant %s: HTTP %d %s", e.Variant, e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is match 429 responses against domain.ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrRateLimited && e.Code == http.StatusTooManyRequests
}
