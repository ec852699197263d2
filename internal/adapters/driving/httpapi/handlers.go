package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// listQuery is decoded from the list endpoint's query string. search, q
// and name are accepted as synonyms so every remote request variant works.
type listQuery struct {
	Page     int    `schema:"page"`
	PageSize int    `schema:"page_size"`
	Search   string `schema:"search"`
	Q        string `schema:"q"`
	Name     string `schema:"name"`
}

func (q listQuery) term() string {
	for _, t := range []string{q.Search, q.Q, q.Name} {
		if t != "" {
			return t
		}
	}
	return ""
}

// ListResponse is the body of a list request.
type ListResponse struct {
	Items []domain.Item `json:"items"`
	Count int           `json:"count"`
	Page  int           `json:"page,omitempty"`
}

// KindResponse describes one kind's display defaults.
type KindResponse struct {
	Kind         domain.Kind `json:"kind"`
	Title        string      `json:"title"`
	DisplayKeys  []string    `json:"display_keys"`
	Headers      []string    `json:"headers"`
	SearchFields []string    `json:"search_fields"`
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	views := s.lookup.Kinds()
	out := make([]KindResponse, 0, len(views))
	for _, v := range views {
		out = append(out, KindResponse{
			Kind:         v.Kind,
			Title:        v.Title,
			DisplayKeys:  v.DisplayKeys,
			Headers:      v.Headers,
			SearchFields: v.SearchFields,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleList serves one lookup page when page is given, otherwise every
// matching record. page_size slices the full match list locally.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var q listQuery
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid query parameters")
		return
	}
	if q.Page < 0 || q.PageSize < 0 {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "page and page_size must not be negative")
		return
	}

	if q.Page > 0 && q.PageSize == 0 {
		items, err := s.lookup.Fetch(r.Context(), kind, q.Page, q.term())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ListResponse{Items: items, Count: len(items), Page: q.Page})
		return
	}

	items, err := s.matching(r, kind, q.term())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	page := 0
	if q.PageSize > 0 {
		page = max(q.Page, 1)
		items = slicePage(items, page, q.PageSize)
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: items, Count: len(items), Page: page})
}

func (s *Server) matching(r *http.Request, kind domain.Kind, term string) ([]domain.Item, error) {
	view, err := s.lookup.View(kind)
	if err != nil {
		return nil, err
	}
	records, err := s.catalogue.List(r.Context(), kind)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		item := rec.Item()
		if domain.MatchesSearch(item, view.SearchFields, term) {
			items = append(items, item)
		}
	}
	return items, nil
}

func slicePage(items []domain.Item, page, size int) []domain.Item {
	start := domain.PageRequest{Page: page, PageSize: size}.Offset()
	if start >= len(items) {
		return []domain.Item{}
	}
	end := len(items)
	if size < end-start {
		end = start + size
	}
	return items[start:end]
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rec, err := s.catalogue.Get(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Item())
}

// handleCreate stores a record from a flat JSON object. An "id" field
// becomes the record ID; everything else is kept as fields.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}

	rec := domain.Record{Kind: kind, Fields: make(map[string]any, len(body))}
	for k, v := range body {
		if k == domain.FieldID {
			id, ok := v.(string)
			if !ok {
				writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "id must be a string")
				return
			}
			rec.ID = id
			continue
		}
		rec.Fields[k] = v
	}

	created, err := s.catalogue.Add(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created.Item())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.catalogue.Remove(r.Context(), kind, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
