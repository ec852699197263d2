// Package selector provides the popup list selector: a modal that pages
// through items supplied by a fetch function, with debounced search,
// keyboard and mouse navigation.
//
// The selector never interprets the items it shows. Callers supply the
// fetch function, the fields to render and what to do with the chosen item.
package selector

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/components/list"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search is fetched.
const DefaultDebounce = 350 * time.Millisecond

// FetchFunc returns one page of items matching search. It must return an
// empty slice rather than an error when nothing matches. ctx is cancelled
// when the selector closes.
type FetchFunc func(ctx context.Context, page int, search string) ([]domain.Item, error)

// Options configures a selector.
type Options struct {
	// Title is the dialog heading.
	Title string

	// Fetch supplies pages of items. Required.
	Fetch FetchFunc

	// OnSelect is called with the chosen item. The caller decides what
	// happens next, including hiding the selector.
	OnSelect func(item domain.Item) tea.Cmd

	// OnClose is called when the user dismisses the dialog.
	OnClose func() tea.Cmd

	// DisplayFieldKeys are the fields rendered as columns, in order.
	DisplayFieldKeys []string

	// SearchFields are the fields Fetch is expected to match. The selector
	// does no local filtering.
	SearchFields []string

	// HeaderNames label the columns, aligned with DisplayFieldKeys.
	HeaderNames []string

	// ColumnWidths maps a field key to a size spec ("12" or "30%").
	// Keys without an entry share the remaining width.
	ColumnWidths map[string]string

	// MaxHeight caps the list region, as a size spec of the terminal height.
	MaxHeight string

	// SearchPlaceholder is shown while the search box is empty.
	SearchPlaceholder string

	// InitialSearch seeds the search box when Open is given no seed.
	InitialSearch string

	// ResponsiveBreakpoint is the terminal width below which rows render
	// stacked. Zero disables the stacked layout.
	ResponsiveBreakpoint int

	// IDField names the field used as a row's identity. Rows without it
	// are identified by position.
	IDField string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// Model is the selector component.
type Model struct {
	id     string
	opts   Options
	styles *styles.Styles
	keymap *keymap.KeyMap

	search  *input.SearchInput
	table   *list.Table
	spinner spinner.Model

	query  domain.QueryState
	status domain.ListStatus
	items  []domain.Item
	err    error

	// session increments on every Open; fetch results carry it in their key.
	session uint64
	// debounceSeq increments on every keystroke and on close so only the
	// newest timer of the current session fires.
	debounceSeq uint64
	// lastInput is the search box value after the previous keystroke.
	lastInput string

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// New creates a closed selector.
func New(opts Options, s *styles.Styles, km *keymap.KeyMap) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	search := input.NewSearchInput(s)
	search.SetPlaceholder(opts.SearchPlaceholder)
	search.Blur()

	table := list.NewTable(s)
	table.SetColumns(opts.DisplayFieldKeys, opts.HeaderNames, opts.ColumnWidths)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Subtitle

	m := &Model{
		id:      uuid.New().String(),
		opts:    opts,
		styles:  s,
		keymap:  km,
		search:  search,
		table:   table,
		spinner: sp,
		query:   domain.NewQueryState(),
		status:  domain.StatusClosed,
		width:   80,
		height:  24,
	}
	m.resize()
	return m
}

// ID returns the instance identifier carried by this selector's messages.
func (m *Model) ID() string {
	return m.id
}

// Options returns the configuration the selector was built with.
func (m *Model) Options() Options {
	return m.opts
}

// Init implements the component contract. A closed selector has nothing to start.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Open shows the dialog and fetches page 1 for the seed search. An empty
// seed falls back to Options.InitialSearch. Opening an open selector
// starts a fresh session.
func (m *Model) Open(initialSearch string) tea.Cmd {
	if m.IsOpen() {
		m.endSession()
	}
	if initialSearch == "" {
		initialSearch = m.opts.InitialSearch
	}

	m.session++
	m.debounceSeq++
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.query = domain.NewQueryState()
	m.query.Open = true
	m.query.Search = initialSearch
	m.items = nil
	m.err = nil
	m.table.SetItems(nil)

	m.search.SetValue(initialSearch)
	m.lastInput = initialSearch
	focus := m.search.Focus()

	logger.Debug("selector %s: open (session %d, search %q)", m.opts.Title, m.session, initialSearch)
	return tea.Batch(focus, m.fetch())
}

// Hide closes the dialog without calling OnClose. Callers use it after a
// selection, or to close the dialog from outside.
func (m *Model) Hide() {
	if !m.IsOpen() {
		return
	}
	m.endSession()
}

// Close dismisses the dialog and reports it through OnClose.
func (m *Model) Close() tea.Cmd {
	if !m.IsOpen() {
		return nil
	}
	m.endSession()
	if m.opts.OnClose != nil {
		return m.opts.OnClose()
	}
	return nil
}

// endSession cancels in-flight fetches and invalidates pending timers.
func (m *Model) endSession() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.debounceSeq++
	m.query.Open = false
	m.status = domain.StatusClosed
	m.search.Blur()
	logger.Debug("selector %s: closed (session %d)", m.opts.Title, m.session)
}

// IsOpen reports whether the dialog is visible.
func (m *Model) IsOpen() bool {
	return m.query.Open
}

// Status returns the current fetch state.
func (m *Model) Status() domain.ListStatus {
	return m.status
}

// Query returns the current query state.
func (m *Model) Query() domain.QueryState {
	return m.query
}

// Items returns the rendered rows.
func (m *Model) Items() []domain.Item {
	return m.items
}

// Err returns the last fetch error, if the selector is in the error state.
func (m *Model) Err() error {
	return m.err
}

// SearchValue returns what is typed in the search box, which may be ahead
// of the debounced query.
func (m *Model) SearchValue() string {
	return m.search.Value()
}

// HighlightedItem returns the highlighted row, or nil.
func (m *Model) HighlightedItem() domain.Item {
	if !m.query.HasHighlight(len(m.items)) {
		return nil
	}
	return m.items[m.query.Highlighted]
}

// CanNextPage reports whether forward paging is allowed. An empty page
// means there is no more data for this query.
func (m *Model) CanNextPage() bool {
	return m.IsOpen() && m.status != domain.StatusEmpty
}

// SetSize sets the terminal dimensions the dialog is centred in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resize()
}

// Update handles messages while the dialog is open.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
		return m, nil
	}
	if !m.IsOpen() {
		return m, nil
	}

	switch msg := msg.(type) {
	case messages.SearchDebounced:
		return m, m.handleDebounce(msg)
	case messages.ItemsFetched:
		m.handleFetched(msg)
		return m, nil
	case spinner.TickMsg:
		if m.status != domain.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Close):
		return m.Close()
	case key.Matches(msg, m.keymap.Select):
		return m.selectHighlighted()
	case key.Matches(msg, m.keymap.Up):
		m.moveHighlight(-1)
		return nil
	case key.Matches(msg, m.keymap.Down):
		m.moveHighlight(1)
		return nil
	case key.Matches(msg, m.keymap.NextPage):
		return m.nextPage()
	case key.Matches(msg, m.keymap.PrevPage):
		return m.prevPage()
	case key.Matches(msg, m.keymap.Retry):
		if m.status != domain.StatusError {
			return nil
		}
		return m.fetch()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	value := m.search.Value()
	if value == m.lastInput {
		return cmd
	}
	m.lastInput = value
	return tea.Batch(cmd, m.debounce(value))
}

// debounce arms a timer for the current keystroke. Earlier timers are
// made stale by the sequence bump and are dropped when they fire.
func (m *Model) debounce(search string) tea.Cmd {
	m.debounceSeq++
	seq := m.debounceSeq
	id := m.id
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return messages.SearchDebounced{SelectorID: id, Seq: seq, Search: search}
	})
}

func (m *Model) handleDebounce(msg messages.SearchDebounced) tea.Cmd {
	if msg.SelectorID != m.id || msg.Seq != m.debounceSeq {
		return nil
	}
	if !m.query.SetSearch(msg.Search) {
		return nil
	}
	return m.fetch()
}

// fetch issues the request for the current query. The result is tagged
// with the query key so a superseded response can be recognised.
func (m *Model) fetch() tea.Cmd {
	if !m.IsOpen() || m.opts.Fetch == nil {
		return nil
	}
	wasLoading := m.status == domain.StatusLoading
	m.status = domain.StatusLoading

	fetchKey := m.query.Key(m.session)
	ctx := m.ctx
	fn := m.opts.Fetch
	id := m.id
	logger.Debug("selector %s: fetch page %d search %q", m.opts.Title, fetchKey.Page, fetchKey.Search)

	cmd := func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = messages.ItemsFetched{
					SelectorID: id,
					Key:        fetchKey,
					Err:        fmt.Errorf("fetch panicked: %v", r),
				}
			}
		}()
		items, err := fn(ctx, fetchKey.Page, fetchKey.Search)
		if err == nil && items == nil {
			items = []domain.Item{}
		}
		return messages.ItemsFetched{SelectorID: id, Key: fetchKey, Items: items, Err: err}
	}

	if wasLoading {
		return cmd
	}
	return tea.Batch(m.spinner.Tick, cmd)
}

func (m *Model) handleFetched(msg messages.ItemsFetched) {
	if msg.SelectorID != m.id {
		return
	}
	if msg.Key != m.query.Key(m.session) {
		logger.Debug("selector %s: dropping stale result for page %d search %q",
			m.opts.Title, msg.Key.Page, msg.Key.Search)
		return
	}

	if msg.Err != nil {
		logger.Warn("selector %s: fetch failed: %v", m.opts.Title, msg.Err)
		m.status = domain.StatusError
		m.err = msg.Err
		m.query.ResetHighlight()
		m.table.SetHighlighted(-1)
		return
	}

	m.err = nil
	m.items = msg.Items
	m.query.ResetHighlight()
	m.table.SetItems(msg.Items)
	if len(msg.Items) == 0 {
		m.status = domain.StatusEmpty
		return
	}
	m.status = domain.StatusReady
}

// navigable reports whether rows are on screen to move over or pick.
func (m *Model) navigable() bool {
	return len(m.items) > 0 && m.status != domain.StatusEmpty && m.status != domain.StatusError
}

func (m *Model) moveHighlight(delta int) {
	if !m.navigable() {
		return
	}
	m.query.MoveHighlight(delta, len(m.items))
	m.table.SetHighlighted(m.query.Highlighted)
}

func (m *Model) highlight(i int) {
	if m.navigable() && m.query.SetHighlight(i, len(m.items)) {
		m.table.SetHighlighted(i)
	}
}

// selectHighlighted hands the highlighted item to OnSelect. Nothing in the
// selector changes afterwards.
func (m *Model) selectHighlighted() tea.Cmd {
	item := m.HighlightedItem()
	if item == nil || !m.navigable() || m.opts.OnSelect == nil {
		return nil
	}
	logger.Debug("selector %s: selected %s", m.opts.Title, item.Key(m.opts.IDField, m.query.Highlighted))
	return m.opts.OnSelect(item)
}

func (m *Model) nextPage() tea.Cmd {
	if !m.CanNextPage() {
		return nil
	}
	m.query.NextPage()
	return m.fetch()
}

func (m *Model) prevPage() tea.Cmd {
	if !m.query.PrevPage() {
		return nil
	}
	return m.fetch()
}
