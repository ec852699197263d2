package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// Ensure CatalogueService implements the interface.
var _ driving.CatalogueService = (*CatalogueService)(nil)

// CatalogueService manages catalogue records.
type CatalogueService struct {
	recordStore driven.RecordStore
	now         func() time.Time
}

// NewCatalogueService creates a new catalogue service.
func NewCatalogueService(recordStore driven.RecordStore) *CatalogueService {
	return &CatalogueService{
		recordStore: recordStore,
		now:         time.Now,
	}
}

// Add creates a record. An empty ID is assigned a new UUID.
func (s *CatalogueService) Add(ctx context.Context, record domain.Record) (*domain.Record, error) {
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("add %s: %w", record.Kind, err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	} else {
		existing, err := s.recordStore.Get(ctx, record.Kind, record.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check existing: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%s %s: %w", record.Kind, record.ID, domain.ErrAlreadyExists)
		}
	}

	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.recordStore.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	logger.Debug("Added %s %s (%s)", record.Kind, record.ID, record.Name())
	return &record, nil
}

// Update modifies an existing record.
func (s *CatalogueService) Update(ctx context.Context, record domain.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("update %s: %w", record.Kind, err)
	}
	if record.ID == "" {
		return fmt.Errorf("update %s: missing id: %w", record.Kind, domain.ErrInvalidInput)
	}

	existing, err := s.recordStore.Get(ctx, record.Kind, record.ID)
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = s.now()

	if err := s.recordStore.Save(ctx, record); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// Get retrieves a record.
func (s *CatalogueService) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	return s.recordStore.Get(ctx, kind, id)
}

// Remove deletes a record.
func (s *CatalogueService) Remove(ctx context.Context, kind domain.Kind, id string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	if err := s.recordStore.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("remove %s %s: %w", kind, id, err)
	}
	logger.Debug("Removed %s %s", kind, id)
	return nil
}

// List returns all records of a kind.
func (s *CatalogueService) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	return s.recordStore.List(ctx, kind)
}

// Import saves a batch of records, overwriting any with the same ID.
// It stops at the first invalid record and returns how many were stored.
func (s *CatalogueService) Import(ctx context.Context, records []domain.Record) (int, error) {
	logger.Section("Import")
	logger.Debug("Records: %d", len(records))

	now := s.now()
	stored := 0
	for i := range records {
		record := records[i]
		if err := record.Validate(); err != nil {
			return stored, fmt.Errorf("record %d: %w", i, err)
		}
		if record.ID == "" {
			record.ID = uuid.New().String()
		}

		record.CreatedAt = now
		if existing, err := s.recordStore.Get(ctx, record.Kind, record.ID); err == nil {
			record.CreatedAt = existing.CreatedAt
		}
		record.UpdatedAt = now

		if err := s.recordStore.Save(ctx, record); err != nil {
			return stored, fmt.Errorf("record %d: %w", i, err)
		}
		stored++
	}

	logger.Info("Imported %d records", stored)
	return stored, nil
}
