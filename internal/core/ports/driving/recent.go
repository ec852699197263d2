package driving

import (
	"context"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// RecentService remembers per-kind page state across selector sessions.
type RecentService interface {
	// Remember stores the item last selected for a kind.
	Remember(ctx context.Context, kind domain.Kind, item domain.Item) error

	// Last returns the item last selected for a kind, or nil.
	Last(ctx context.Context, kind domain.Kind) (domain.Item, error)

	// SetLastSearch stores the last search term used for a kind.
	SetLastSearch(ctx context.Context, kind domain.Kind, search string) error

	// LastSearch returns the last search term used for a kind.
	LastSearch(ctx context.Context, kind domain.Kind) string

	// Forget clears all remembered state for a kind.
	Forget(ctx context.Context, kind domain.Kind) error
}
