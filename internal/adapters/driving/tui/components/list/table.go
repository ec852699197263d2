// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

const (
	// columnGap separates adjacent table columns.
	columnGap = 1

	// minColumnWidth is the narrowest a column is allowed to shrink.
	minColumnWidth = 3

	ellipsis = "…"
)

// Table renders a page of items either as aligned columns or, on narrow
// terminals, as stacked label/value lines per row.
//
// Table does not own navigation: the caller sets the highlighted row and
// the table keeps it scrolled into view.
type Table struct {
	styles      *styles.Styles
	keys        []string
	headers     []string
	widths      map[string]string
	items       []domain.Item
	highlighted int
	offset      int
	width       int
	height      int
	stacked     bool
}

// NewTable creates a new table component.
func NewTable(s *styles.Styles) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Table{
		styles:      s,
		highlighted: -1,
		width:       80,
		height:      10,
	}
}

// Init initialises the table.
func (t *Table) Init() tea.Cmd {
	return nil
}

// SetColumns configures the displayed fields. headers align positionally
// with keys; a missing header falls back to the key itself. widths maps
// a key to a size spec ("12" cells or "30%").
func (t *Table) SetColumns(keys, headers []string, widths map[string]string) {
	t.keys = keys
	t.headers = headers
	t.widths = widths
	t.clampOffset()
}

// Keys returns the configured field keys.
func (t *Table) Keys() []string {
	return t.keys
}

// Header returns the label for column i.
func (t *Table) Header(i int) string {
	if i < len(t.headers) && t.headers[i] != "" {
		return t.headers[i]
	}
	if i < len(t.keys) {
		return t.keys[i]
	}
	return ""
}

// SetItems replaces the rows, clearing the highlight and scroll position.
func (t *Table) SetItems(items []domain.Item) {
	t.items = items
	t.highlighted = -1
	t.offset = 0
}

// Items returns the current rows.
func (t *Table) Items() []domain.Item {
	return t.items
}

// SetHighlighted marks row i and scrolls it into view. Any index outside
// the rows clears the highlight.
func (t *Table) SetHighlighted(i int) {
	if i < 0 || i >= len(t.items) {
		t.highlighted = -1
		return
	}
	t.highlighted = i
	visible := t.VisibleRows()
	if i < t.offset {
		t.offset = i
	}
	if i >= t.offset+visible {
		t.offset = i - visible + 1
	}
	t.clampOffset()
}

// Highlighted returns the highlighted row, or -1.
func (t *Table) Highlighted() int {
	return t.highlighted
}

// SetDimensions sets the component dimensions.
func (t *Table) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.clampOffset()
}

// Width returns the current width.
func (t *Table) Width() int {
	return t.width
}

// Height returns the current height.
func (t *Table) Height() int {
	return t.height
}

// SetStacked switches between the column layout and the stacked layout.
func (t *Table) SetStacked(stacked bool) {
	t.stacked = stacked
	t.clampOffset()
}

// Stacked reports whether rows render as stacked lines.
func (t *Table) Stacked() bool {
	return t.stacked
}

// Count returns the number of rows.
func (t *Table) Count() int {
	return len(t.items)
}

// IsEmpty returns whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return len(t.items) == 0
}

// Offset returns the index of the first visible row.
func (t *Table) Offset() int {
	return t.offset
}

// HeaderHeight returns the lines drawn above the first row.
func (t *Table) HeaderHeight() int {
	if t.stacked {
		return 0
	}
	return 1
}

// RowHeight returns the lines each row occupies.
func (t *Table) RowHeight() int {
	if t.stacked && len(t.keys) > 1 {
		return len(t.keys)
	}
	return 1
}

// VisibleRows returns how many rows fit in the current height.
func (t *Table) VisibleRows() int {
	n := (t.height - t.HeaderHeight()) / t.RowHeight()
	if n < 1 {
		return 1
	}
	return n
}

// RowAt maps a line offset from the top of the table to a row index.
// Returns -1 for the header, blank space below the rows, or an empty table.
func (t *Table) RowAt(line int) int {
	line -= t.HeaderHeight()
	if line < 0 || len(t.items) == 0 {
		return -1
	}
	r := line / t.RowHeight()
	if r >= t.VisibleRows() {
		return -1
	}
	idx := t.offset + r
	if idx >= len(t.items) {
		return -1
	}
	return idx
}

// ColumnWidths resolves the width of every column for the current width.
// Columns with an explicit size take it; the rest share what remains evenly.
func (t *Table) ColumnWidths() []int {
	n := len(t.keys)
	if n == 0 {
		return nil
	}
	avail := t.width - columnGap*(n-1)
	out := make([]int, n)
	fixed, flex := 0, 0
	for i, key := range t.keys {
		w := domain.ResolveSize(t.widths[key], avail, 0)
		if w == 0 {
			flex++
			continue
		}
		if w < minColumnWidth {
			w = minColumnWidth
		}
		out[i] = w
		fixed += w
	}
	remaining := avail - fixed
	if flex > 0 {
		share := remaining / flex
		if share < minColumnWidth {
			share = minColumnWidth
		}
		last := -1
		for i := range out {
			if out[i] == 0 {
				out[i] = share
				last = i
			}
		}
		// Leftover cells from the integer division go to the last flexible column.
		if extra := remaining - share*flex; extra > 0 {
			out[last] += extra
		}
	}
	return out
}

// View renders the visible rows.
func (t *Table) View() string {
	if len(t.items) == 0 {
		return t.styles.Muted.Render("No results")
	}

	visible := t.VisibleRows()
	end := t.offset + visible
	if end > len(t.items) {
		end = len(t.items)
	}

	lines := make([]string, 0, t.HeaderHeight()+visible*t.RowHeight())
	if t.stacked {
		for i := t.offset; i < end; i++ {
			lines = append(lines, t.renderStacked(i)...)
		}
		return strings.Join(lines, "\n")
	}

	widths := t.ColumnWidths()
	headers := make([]string, len(t.keys))
	for i := range t.keys {
		headers[i] = t.Header(i)
	}
	lines = append(lines, t.styles.Header.Render(joinCells(headers, widths, t.width)))
	for i := t.offset; i < end; i++ {
		cells := make([]string, len(t.keys))
		for c, key := range t.keys {
			cells[c] = t.items[i].Field(key)
		}
		lines = append(lines, t.style(i).Render(joinCells(cells, widths, t.width)))
	}
	return strings.Join(lines, "\n")
}

// renderStacked draws one row as a line per display key.
func (t *Table) renderStacked(index int) []string {
	item := t.items[index]
	style := t.style(index)
	if len(t.keys) == 0 {
		return []string{style.Render(fit("", t.width))}
	}

	labelWidth := 0
	for i := range t.keys {
		if w := runewidth.StringWidth(t.Header(i)); w > labelWidth {
			labelWidth = w
		}
	}

	lines := make([]string, 0, len(t.keys))
	for i, key := range t.keys {
		var line string
		if len(t.keys) == 1 {
			line = item.Field(key)
		} else {
			line = runewidth.FillRight(t.Header(i), labelWidth) + "  " + item.Field(key)
		}
		lines = append(lines, style.Render(fit(line, t.width)))
	}
	return lines
}

func (t *Table) style(index int) lipgloss.Style {
	if index == t.highlighted {
		return t.styles.Selected
	}
	return t.styles.Normal
}

func (t *Table) clampOffset() {
	maxOffset := len(t.items) - t.VisibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// joinCells fits each cell to its column and joins them into a line of
// exactly width cells.
func joinCells(cells []string, widths []int, width int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fit(c, widths[i])
	}
	return fit(strings.Join(parts, strings.Repeat(" ", columnGap)), width)
}

// fit truncates s to width display cells, marking the cut with an
// ellipsis, and pads the result to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}
	return runewidth.FillRight(s, width)
}
