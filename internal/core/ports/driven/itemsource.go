package driven

import (
	"context"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// ItemSource fetches lookup rows from a remote backend.
// Rows are already normalised into flat items.
type ItemSource interface {
	// List returns every row the backend has for a kind.
	List(ctx context.Context, kind domain.Kind) ([]domain.Item, error)
}
