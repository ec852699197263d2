package mcp

import (
	"context"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
)

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	items []domain.Item
	err   error

	gotKind   domain.Kind
	gotPage   int
	gotSearch string
}

func (m *mockLookupService) Kinds() []domain.KindView {
	views := make([]domain.KindView, 0, len(domain.AllKinds()))
	for _, k := range domain.AllKinds() {
		if v, ok := domain.DefaultKindView(k); ok {
			views = append(views, v)
		}
	}
	return views
}

func (m *mockLookupService) View(kind domain.Kind) (domain.KindView, error) {
	v, ok := domain.DefaultKindView(kind)
	if !ok {
		return domain.KindView{}, domain.ErrUnknownKind
	}
	return v, nil
}

func (m *mockLookupService) Fetch(
	_ context.Context,
	kind domain.Kind,
	page int,
	search string,
) ([]domain.Item, error) {
	m.gotKind, m.gotPage, m.gotSearch = kind, page, search
	if m.err != nil {
		return nil, m.err
	}
	if m.items == nil {
		return []domain.Item{}, nil
	}
	return m.items, nil
}

// mockCatalogueService is a mock implementation of driving.CatalogueService.
type mockCatalogueService struct {
	record *domain.Record
	err    error
}

func (m *mockCatalogueService) Add(_ context.Context, r domain.Record) (*domain.Record, error) {
	return &r, m.err
}

func (m *mockCatalogueService) Update(_ context.Context, _ domain.Record) error {
	return m.err
}

func (m *mockCatalogueService) Get(_ context.Context, _ domain.Kind, _ string) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.record == nil {
		return nil, domain.ErrNotFound
	}
	return m.record, nil
}

func (m *mockCatalogueService) Remove(_ context.Context, _ domain.Kind, _ string) error {
	return m.err
}

func (m *mockCatalogueService) List(_ context.Context, _ domain.Kind) ([]domain.Record, error) {
	return nil, m.err
}

func (m *mockCatalogueService) Import(_ context.Context, records []domain.Record) (int, error) {
	return len(records), m.err
}

var (
	_ driving.LookupService    = (*mockLookupService)(nil)
	_ driving.CatalogueService = (*mockCatalogueService)(nil)
)
