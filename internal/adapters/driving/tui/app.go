package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/components/selector"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/components/status"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/views/detail"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/views/menu"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// menuView lists the kinds that can be looked up.
	menuView *menu.View

	// detailView shows the last picked item.
	detailView *detail.View

	statusBar *status.Bar

	// views holds the display defaults of each kind by kind.
	views map[domain.Kind]domain.KindView

	// selectors are built on first use and reused, one per kind.
	selectors map[domain.Kind]*selector.Model

	// active is the kind whose selector is open, if any.
	active domain.Kind

	settings domain.SelectorSettings

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrInvalidPorts)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	kinds := ports.Lookup.Kinds()
	views := make(map[domain.Kind]domain.KindView, len(kinds))
	for _, kv := range kinds {
		views[kv.Kind] = kv
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km, kinds),
		detailView:  detail.NewView(s, km),
		statusBar:   status.NewBar(s, km),
		views:       views,
		selectors:   make(map[domain.Kind]*selector.Model, len(kinds)),
		settings:    selectorSettings(ports.Settings),
		currentView: messages.ViewMenu,
		width:       80,
		height:      24,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It loads the remembered selection of every kind for the menu.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("storedesk"),
	}
	for _, e := range a.menuView.Entries() {
		cmds = append(cmds, a.loadRecent(e.Kind))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadRecent(kind domain.Kind) tea.Cmd {
	recent := a.ports.Recent
	ctx := a.ctx
	return func() tea.Msg {
		item, err := recent.Last(ctx, kind)
		return messages.RecentLoaded{Kind: kind, Item: item, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.closeActive()
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case tea.MouseMsg:
		if !a.settings.Mouse {
			return a, nil
		}
		if sel := a.activeSelector(); sel != nil {
			_, cmd = sel.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.KindChosen:
		return a, a.openSelector(msg.Kind)

	case messages.ItemSelected:
		return a, a.handleSelected(msg)

	case messages.SelectorClosed:
		return a, a.handleClosed(msg)

	case messages.ForgetRequested:
		recent := a.ports.Recent
		ctx := a.ctx
		return a, func() tea.Msg {
			return messages.RecentForgotten{Kind: msg.Kind, Err: recent.Forget(ctx, msg.Kind)}
		}

	case messages.RecentLoaded:
		if msg.Err != nil {
			logger.Warn("tui: loading recent %s: %v", msg.Kind, msg.Err)
			return a, nil
		}
		if msg.Item != nil {
			a.menuView.SetLast(msg.Kind, displayName(msg.Item))
		}
		return a, nil

	case messages.RecentForgotten:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.menuView.SetLast(msg.Kind, "")
		a.statusBar.Clear()
		a.statusBar.SetMessage(fmt.Sprintf("Forgot %s", msg.Kind))
		return a, nil

	case messages.SearchDebounced:
		if sel := a.selectorByID(msg.SelectorID); sel != nil {
			_, cmd = sel.Update(msg)
		}
		return a, cmd

	case messages.ItemsFetched:
		if sel := a.selectorByID(msg.SelectorID); sel != nil {
			_, cmd = sel.Update(msg)
			if sel.IsOpen() {
				a.statusBar.SetState(status.StateFor(sel.Status()))
				a.statusBar.SetResultCount(len(sel.Items()))
			}
		}
		return a, cmd

	case spinner.TickMsg:
		if sel := a.activeSelector(); sel != nil {
			_, cmd = sel.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		a.syncHints()
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// forwardKey routes a key press to the active view.
func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewSelector:
		if sel := a.activeSelector(); sel != nil {
			_, cmd = sel.Update(msg)
		}
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	}
	return cmd
}

// openSelector opens the selector for kind, seeded with the last search.
func (a *App) openSelector(kind domain.Kind) tea.Cmd {
	view, ok := a.views[kind]
	if !ok {
		a.setError(fmt.Errorf("%w: %s", ErrUnknownKind, kind))
		return nil
	}

	a.closeActive()

	sel, ok := a.selectors[kind]
	if !ok {
		sel = newKindSelector(a.ports.Lookup, view, a.settings, a.styles, a.keymap)
		a.selectors[kind] = sel
	}
	sel.SetSize(a.width, a.height)

	a.active = kind
	a.currentView = messages.ViewSelector
	a.err = nil
	a.statusBar.Clear()
	a.statusBar.SetState(status.StateLoading)
	a.syncHints()

	return sel.Open(a.ports.Recent.LastSearch(a.ctx, kind))
}

// handleSelected hides the selector, remembers the pick and shows it.
func (a *App) handleSelected(msg messages.ItemSelected) tea.Cmd {
	search := ""
	if sel, ok := a.selectors[msg.Kind]; ok {
		search = sel.Query().Search
		sel.Hide()
	}
	if a.active == msg.Kind {
		a.active = ""
	}

	a.detailView.SetItem(a.views[msg.Kind], msg.Item)
	a.currentView = messages.ViewDetail
	a.menuView.SetLast(msg.Kind, displayName(msg.Item))
	a.statusBar.Clear()
	a.statusBar.SetMessage(fmt.Sprintf("Picked %s", displayName(msg.Item)))
	a.syncHints()

	logger.Debug("tui: picked %s %q", msg.Kind, msg.Item.Field(domain.FieldID))

	recent := a.ports.Recent
	ctx := a.ctx
	kind := msg.Kind
	item := msg.Item
	return func() tea.Msg {
		if err := recent.Remember(ctx, kind, item); err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("remembering %s: %w", kind, err)}
		}
		if err := recent.SetLastSearch(ctx, kind, search); err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("saving search for %s: %w", kind, err)}
		}
		return nil
	}
}

// handleClosed returns to the menu and keeps the search for next time.
func (a *App) handleClosed(msg messages.SelectorClosed) tea.Cmd {
	search := ""
	if sel, ok := a.selectors[msg.Kind]; ok {
		search = sel.Query().Search
	}
	if a.active == msg.Kind {
		a.active = ""
	}
	a.currentView = messages.ViewMenu
	a.statusBar.Clear()
	a.syncHints()

	recent := a.ports.Recent
	ctx := a.ctx
	kind := msg.Kind
	return func() tea.Msg {
		if err := recent.SetLastSearch(ctx, kind, search); err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("saving search for %s: %w", kind, err)}
		}
		return nil
	}
}

// closeActive hides any open selector without reporting a close.
func (a *App) closeActive() {
	if sel := a.activeSelector(); sel != nil {
		sel.Hide()
	}
	a.active = ""
}

func (a *App) activeSelector() *selector.Model {
	if a.active == "" {
		return nil
	}
	sel, ok := a.selectors[a.active]
	if !ok || !sel.IsOpen() {
		return nil
	}
	return sel
}

func (a *App) selectorByID(id string) *selector.Model {
	for _, sel := range a.selectors {
		if sel.ID() == id {
			return sel
		}
	}
	return nil
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) syncHints() {
	if a.currentView == messages.ViewSelector {
		a.statusBar.SetHints(a.keymap.SelectorHelp())
		return
	}
	a.statusBar.SetHints(a.keymap.MenuHelp())
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	base := a.menuView.View()
	if a.currentView == messages.ViewDetail {
		base = a.detailView.View()
	}
	base = a.withStatusBar(base)

	if sel := a.activeSelector(); sel != nil {
		return sel.Overlay(base)
	}
	return base
}

// withStatusBar pins the status bar to the bottom line.
func (a *App) withStatusBar(body string) string {
	lines := strings.Count(body, "\n") + 1
	if gap := a.height - lines - 1; gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + a.statusBar.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.settings.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	_, err := tea.NewProgram(a, opts...).Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Active returns the kind whose selector is open, or "".
func (a *App) Active() domain.Kind {
	if a.activeSelector() == nil {
		return ""
	}
	return a.active
}

// Selector returns the selector built for kind, if any.
func (a *App) Selector(kind domain.Kind) (*selector.Model, bool) {
	sel, ok := a.selectors[kind]
	return sel, ok
}

// Settings returns the selector settings in effect.
func (a *App) Settings() domain.SelectorSettings {
	return a.settings
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height-1)
	a.detailView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
	for _, sel := range a.selectors {
		sel.SetSize(width, height)
	}
}

// displayName picks a human label for an item.
func displayName(item domain.Item) string {
	if name := item.Field(domain.FieldName); name != "" {
		return name
	}
	return item.Field(domain.FieldID)
}
