package driven

import (
	"context"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// RecordStore persists catalogue records.
type RecordStore interface {
	// Save stores or updates a record.
	Save(ctx context.Context, record domain.Record) error

	// Get retrieves a record by kind and ID.
	Get(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, kind domain.Kind, id string) error

	// List returns all records of a kind ordered by name.
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)

	// Search returns one page of records of a kind whose search fields
	// contain the term, ordered by name. It returns an empty slice, not nil,
	// when nothing matches.
	Search(ctx context.Context, req domain.PageRequest) ([]domain.Record, error)
}
