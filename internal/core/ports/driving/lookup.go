package driving

import (
	"context"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// LookupService serves paginated, searchable lookup lists to selectors.
type LookupService interface {
	// Kinds returns the display defaults of every managed kind.
	Kinds() []domain.KindView

	// View returns the display defaults for one kind.
	View(kind domain.Kind) (domain.KindView, error)

	// Fetch returns one page of items for a kind matching search.
	// It returns an empty slice, never nil, when nothing matches.
	Fetch(ctx context.Context, kind domain.Kind, page int, search string) ([]domain.Item, error)
}
