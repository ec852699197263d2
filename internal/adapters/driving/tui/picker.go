package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/components/selector"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// newKindSelector builds a selector whose pages come from the lookup
// service. Selection and dismissal are reported as ItemSelected and
// SelectorClosed messages tagged with the kind.
func newKindSelector(
	lookup driving.LookupService,
	view domain.KindView,
	cfg domain.SelectorSettings,
	s *styles.Styles,
	km *keymap.KeyMap,
) *selector.Model {
	kind := view.Kind

	opts := selector.Options{
		Title: view.Title,
		Fetch: func(ctx context.Context, page int, search string) ([]domain.Item, error) {
			return lookup.Fetch(ctx, kind, page, search)
		},
		OnSelect: func(item domain.Item) tea.Cmd {
			return func() tea.Msg {
				return messages.ItemSelected{Kind: kind, Item: item}
			}
		},
		OnClose: func() tea.Cmd {
			return func() tea.Msg {
				return messages.SelectorClosed{Kind: kind}
			}
		},
		DisplayFieldKeys:     view.DisplayKeys,
		SearchFields:         view.SearchFields,
		HeaderNames:          view.Headers,
		ColumnWidths:         view.ColumnWidths,
		MaxHeight:            cfg.MaxHeight,
		SearchPlaceholder:    placeholder(view.SearchFields),
		ResponsiveBreakpoint: cfg.Breakpoint,
		IDField:              view.IDField,
		Debounce:             cfg.Debounce(),
	}
	return selector.New(opts, s, km)
}

func placeholder(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fmt.Sprintf("Search by %s...", strings.Join(fields, ", "))
}

// selectorSettings returns the configured selector settings, falling
// back to defaults when no settings service is wired or it fails.
func selectorSettings(svc driving.SettingsService) domain.SelectorSettings {
	defaults := domain.DefaultAppSettings().Selector
	if svc == nil {
		return defaults
	}
	settings, err := svc.Get()
	if err != nil || settings == nil {
		logger.Warn("tui: using default selector settings: %v", err)
		return defaults
	}
	if err := settings.Selector.Validate(); err != nil {
		logger.Warn("tui: invalid selector settings, using defaults: %v", err)
		return defaults
	}
	return settings.Selector
}

// PickApp runs a single selector full screen and exits on the first
// selection or dismissal.
type PickApp struct {
	selector *selector.Model
	kind     domain.Kind
	search   string
	mouse    bool

	chosen    domain.Item
	cancelled bool
}

// Ensure PickApp implements tea.Model.
var _ tea.Model = (*PickApp)(nil)

// NewPickApp creates a one-shot picker for kind seeded with search.
func NewPickApp(lookup driving.LookupService, settings driving.SettingsService, kind domain.Kind, search string) (*PickApp, error) {
	if lookup == nil {
		return nil, fmt.Errorf("creating picker: %w", ErrMissingLookupService)
	}
	view, err := lookup.View(kind)
	if err != nil {
		return nil, fmt.Errorf("creating picker: %w: %s", ErrUnknownKind, kind)
	}

	cfg := selectorSettings(settings)
	return &PickApp{
		selector: newKindSelector(lookup, view, cfg, styles.DefaultStyles(), keymap.DefaultKeyMap()),
		kind:     kind,
		search:   search,
		mouse:    cfg.Mouse,
	}, nil
}

// Init opens the selector.
func (p *PickApp) Init() tea.Cmd {
	return p.selector.Open(p.search)
}

// Update implements tea.Model.
func (p *PickApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			p.selector.Hide()
			p.cancelled = true
			return p, tea.Quit
		}

	case tea.MouseMsg:
		if !p.mouse {
			return p, nil
		}

	case messages.ItemSelected:
		p.selector.Hide()
		p.chosen = msg.Item
		return p, tea.Quit

	case messages.SelectorClosed:
		p.cancelled = true
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.selector, cmd = p.selector.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p *PickApp) View() string {
	return p.selector.View()
}

// Run starts the picker and returns the chosen item. A dismissed picker
// returns a nil item and no error.
func (p *PickApp) Run() (domain.Item, error) {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if p.mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	if _, err := tea.NewProgram(p, opts...).Run(); err != nil {
		return nil, err
	}
	return p.chosen, nil
}

// Chosen returns the selected item, or nil.
func (p *PickApp) Chosen() domain.Item {
	return p.chosen
}

// Cancelled reports whether the picker was dismissed without a selection.
func (p *PickApp) Cancelled() bool {
	return p.cancelled
}

// Kind returns the kind being picked.
func (p *PickApp) Kind() domain.Kind {
	return p.kind
}

// Selector exposes the underlying selector.
func (p *PickApp) Selector() *selector.Model {
	return p.selector
}
