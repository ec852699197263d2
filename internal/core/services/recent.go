package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// Ensure RecentService implements the interface.
var _ driving.RecentService = (*RecentService)(nil)

// RecentService remembers the last selection and search per kind.
type RecentService struct {
	cache driven.Cache
}

// NewRecentService creates a new recent-selection service.
func NewRecentService(cache driven.Cache) *RecentService {
	return &RecentService{cache: cache}
}

func recentPrefix(kind domain.Kind) string {
	return "recent:" + kind.String() + ":"
}

func recentItemKey(kind domain.Kind) string {
	return recentPrefix(kind) + "item"
}

func recentSearchKey(kind domain.Kind) string {
	return recentPrefix(kind) + "search"
}

// Remember stores the item last selected for a kind.
func (s *RecentService) Remember(ctx context.Context, kind domain.Kind, item domain.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if err := s.cache.Set(ctx, recentItemKey(kind), string(data)); err != nil {
		return fmt.Errorf("remember %s: %w", kind, err)
	}
	return nil
}

// Last returns the item last selected for a kind, or nil if none.
func (s *RecentService) Last(ctx context.Context, kind domain.Kind) (domain.Item, error) {
	raw, ok, err := s.cache.Get(ctx, recentItemKey(kind))
	if err != nil {
		return nil, fmt.Errorf("last %s: %w", kind, err)
	}
	if !ok {
		return nil, nil
	}

	var item domain.Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}

// SetLastSearch stores the last search term used for a kind.
// An empty term clears it.
func (s *RecentService) SetLastSearch(ctx context.Context, kind domain.Kind, search string) error {
	if search == "" {
		return s.cache.Delete(ctx, recentSearchKey(kind))
	}
	return s.cache.Set(ctx, recentSearchKey(kind), search)
}

// LastSearch returns the last search term used for a kind.
// Cache errors are logged and treated as no search.
func (s *RecentService) LastSearch(ctx context.Context, kind domain.Kind) string {
	search, _, err := s.cache.Get(ctx, recentSearchKey(kind))
	if err != nil {
		logger.Warn("Read last search for %s: %v", kind, err)
		return ""
	}
	return search
}

// Forget clears all remembered state for a kind.
func (s *RecentService) Forget(ctx context.Context, kind domain.Kind) error {
	return s.cache.Clear(ctx, recentPrefix(kind))
}
