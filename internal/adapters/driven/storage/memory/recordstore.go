package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

type recordKey struct {
	kind domain.Kind
	id   string
}

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[recordKey]domain.Record
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[recordKey]domain.Record),
	}
}

// Save stores or updates a record.
func (s *RecordStore) Save(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Fields = copyFields(record.Fields)
	s.records[recordKey{record.Kind, record.ID}] = record
	return nil
}

// Get retrieves a record by kind and ID.
func (s *RecordStore) Get(_ context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordKey{kind, id}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	record.Fields = copyFields(record.Fields)
	return &record, nil
}

// Delete removes a record.
func (s *RecordStore) Delete(_ context.Context, kind domain.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{kind, id}
	if _, ok := s.records[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns all records of a kind ordered by name.
func (s *RecordStore) List(_ context.Context, kind domain.Kind) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(kind, nil, ""), nil
}

// Search returns one page of records whose search fields contain the term.
func (s *RecordStore) Search(_ context.Context, req domain.PageRequest) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.collect(req.Kind, req.SearchFields, req.Search)

	offset := req.Offset()
	if offset >= len(matched) {
		return []domain.Record{}, nil
	}
	end := len(matched)
	if req.PageSize > 0 && req.PageSize < end-offset {
		end = offset + req.PageSize
	}
	return matched[offset:end], nil
}

// collect returns matching records of a kind sorted by name, then ID.
// Callers must hold the lock.
func (s *RecordStore) collect(kind domain.Kind, fields []string, search string) []domain.Record {
	result := make([]domain.Record, 0)
	for key, record := range s.records {
		if key.kind != kind {
			continue
		}
		if !domain.MatchesSearch(record.Item(), fields, search) {
			continue
		}
		record.Fields = copyFields(record.Fields)
		result = append(result, record)
	}

	sort.Slice(result, func(i, j int) bool {
		ni, nj := strings.ToLower(result[i].Name()), strings.ToLower(result[j].Name())
		if ni != nj {
			return ni < nj
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
