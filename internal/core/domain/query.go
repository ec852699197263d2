package domain

import "math"

// ListStatus is the observable state of a list selector session.
type ListStatus int

const (
	// StatusClosed means the dialog is not shown and issues no fetches.
	StatusClosed ListStatus = iota
	// StatusLoading means a fetch for the current query is in flight.
	StatusLoading
	// StatusReady means the current page has at least one row.
	StatusReady
	// StatusEmpty means the current page resolved with no rows.
	StatusEmpty
	// StatusError means the last fetch for the current query failed.
	StatusError
)

// String returns the string representation of the status.
func (s ListStatus) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// QueryKey tags a fetch with the query that issued it.
// A result whose key no longer matches the live query is stale.
type QueryKey struct {
	Session uint64
	Page    int
	Search  string
}

// QueryState is the transient state of one selector dialog.
//
// Highlighted is either -1 (nothing highlighted) or a valid index into the
// rendered rows. Page resets to 1 whenever Search changes.
type QueryState struct {
	Page        int
	Search      string
	Open        bool
	Highlighted int
}

// NewQueryState returns a closed state on page 1 with nothing highlighted.
func NewQueryState() QueryState {
	return QueryState{Page: 1, Highlighted: -1}
}

// Key returns the fetch tag for the state within a session.
func (q QueryState) Key(session uint64) QueryKey {
	return QueryKey{Session: session, Page: q.Page, Search: q.Search}
}

// SetSearch updates the effective search term.
// It returns true and resets the page when the term changed.
func (q *QueryState) SetSearch(search string) bool {
	if search == q.Search {
		return false
	}
	q.Search = search
	q.Page = 1
	return true
}

// NextPage advances one page. There is no local upper bound.
func (q *QueryState) NextPage() {
	q.Page++
}

// PrevPage goes back one page, bounded below at 1.
// It returns false when already on the first page.
func (q *QueryState) PrevPage() bool {
	if q.Page <= 1 {
		q.Page = 1
		return false
	}
	q.Page--
	return true
}

// MoveHighlight moves the highlight by delta, clamped to [0, n-1].
// With no rows the highlight stays at -1.
func (q *QueryState) MoveHighlight(delta, n int) {
	if n <= 0 {
		q.Highlighted = -1
		return
	}
	next := q.Highlighted + delta
	if next < 0 {
		next = 0
	}
	if next > n-1 {
		next = n - 1
	}
	q.Highlighted = next
}

// SetHighlight highlights index i when it is valid for n rows.
func (q *QueryState) SetHighlight(i, n int) bool {
	if i < 0 || i >= n {
		return false
	}
	q.Highlighted = i
	return true
}

// ResetHighlight clears the highlight.
func (q *QueryState) ResetHighlight() {
	q.Highlighted = -1
}

// HasHighlight reports whether a valid row is highlighted for n rows.
func (q QueryState) HasHighlight(n int) bool {
	return q.Highlighted >= 0 && q.Highlighted < n
}

// PageRequest describes one page of a catalogue lookup.
type PageRequest struct {
	Kind         Kind
	Page         int
	PageSize     int
	Search       string
	SearchFields []string
}

// Offset returns the zero-based index of the first row of the page.
// Pages too far out to address saturate at math.MaxInt, which every
// caller treats as past the end.
func (r PageRequest) Offset() int {
	if r.Page < 1 || r.PageSize < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}
