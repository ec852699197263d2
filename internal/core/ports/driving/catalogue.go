package driving

import (
	"context"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// CatalogueService manages catalogue records for the admin commands.
type CatalogueService interface {
	// Add creates a record. An empty ID is assigned a new UUID.
	Add(ctx context.Context, record domain.Record) (*domain.Record, error)

	// Update modifies an existing record.
	Update(ctx context.Context, record domain.Record) error

	// Get retrieves a record.
	Get(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error)

	// Remove deletes a record.
	Remove(ctx context.Context, kind domain.Kind, id string) error

	// List returns all records of a kind.
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)

	// Import saves a batch of records, returning how many were stored.
	Import(ctx context.Context, records []domain.Record) (int, error)
}
