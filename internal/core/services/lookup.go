package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// defaultPageSize is used when no page size is configured.
const defaultPageSize = 20

// LookupService serves paginated lookup lists from the local record store
// or, when an item source is attached, from a remote backend.
type LookupService struct {
	recordStore driven.RecordStore
	itemSource  driven.ItemSource
	pageSize    int
}

// NewLookupService creates a new lookup service.
// A pageSize below 1 falls back to the default of 20.
func NewLookupService(recordStore driven.RecordStore, pageSize int) *LookupService {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return &LookupService{
		recordStore: recordStore,
		pageSize:    pageSize,
	}
}

// SetItemSource switches lookups to a remote item source.
// Passing nil restores store-backed lookups.
func (s *LookupService) SetItemSource(source driven.ItemSource) {
	s.itemSource = source
}

// PageSize returns the number of rows served per page.
func (s *LookupService) PageSize() int {
	return s.pageSize
}

// Kinds returns the display defaults of every managed kind.
func (s *LookupService) Kinds() []domain.KindView {
	kinds := domain.AllKinds()
	views := make([]domain.KindView, 0, len(kinds))
	for _, k := range kinds {
		if view, ok := domain.DefaultKindView(k); ok {
			views = append(views, view)
		}
	}
	return views
}

// View returns the display defaults for one kind.
func (s *LookupService) View(kind domain.Kind) (domain.KindView, error) {
	view, ok := domain.DefaultKindView(kind)
	if !ok {
		return domain.KindView{}, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	return view, nil
}

// Fetch returns one page of items for a kind matching search.
func (s *LookupService) Fetch(
	ctx context.Context, kind domain.Kind, page int, search string,
) ([]domain.Item, error) {
	logger.Section("Lookup")
	logger.Debug("Kind: %s, page: %d, search: %q", kind, page, search)

	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrInvalidInput)
	}

	view, err := s.View(kind)
	if err != nil {
		return nil, err
	}

	req := domain.PageRequest{
		Kind:         kind,
		Page:         page,
		PageSize:     s.pageSize,
		Search:       strings.TrimSpace(search),
		SearchFields: view.SearchFields,
	}

	if s.itemSource != nil {
		return s.fetchRemote(ctx, req)
	}
	return s.fetchStore(ctx, req)
}

// fetchStore pages through the record store, which filters server-side.
func (s *LookupService) fetchStore(ctx context.Context, req domain.PageRequest) ([]domain.Item, error) {
	if s.recordStore == nil {
		return nil, fmt.Errorf("lookup %s: record store unavailable", req.Kind)
	}

	records, err := s.recordStore.Search(ctx, req)
	if err != nil {
		logger.Warn("Lookup failed: %v", err)
		return nil, fmt.Errorf("lookup %s: %w", req.Kind, err)
	}

	items := make([]domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].Item())
	}

	logger.Debug("Store lookup: %d items", len(items))
	return items, nil
}

// fetchRemote loads every row from the item source, then filters and slices
// the page locally.
func (s *LookupService) fetchRemote(ctx context.Context, req domain.PageRequest) ([]domain.Item, error) {
	rows, err := s.itemSource.List(ctx, req.Kind)
	if err != nil {
		logger.Warn("Remote lookup failed: %v", err)
		return nil, fmt.Errorf("lookup %s: %w", req.Kind, err)
	}
	logger.Debug("Remote rows: %d", len(rows))

	matched := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		if domain.MatchesSearch(row, req.SearchFields, req.Search) {
			matched = append(matched, row)
		}
	}
	logger.Debug("After filter: %d", len(matched))

	return applyPagination(matched, req.Offset(), req.PageSize), nil
}

// applyPagination applies offset and limit to items.
func applyPagination(items []domain.Item, offset, limit int) []domain.Item {
	if offset >= len(items) {
		return []domain.Item{}
	}

	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}

	return items[offset:end]
}
