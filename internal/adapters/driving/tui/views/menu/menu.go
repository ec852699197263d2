// Package menu provides the kind menu, the TUI's landing view.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// Entry is one selectable kind in the menu.
type Entry struct {
	Kind  domain.Kind
	Label string
	// Last is the display name of the item last picked for this kind.
	Last string
}

// View lists every lookup kind and opens a selector for the chosen one.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	entries  []Entry
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a menu with one entry per kind view.
func NewView(s *styles.Styles, km *keymap.KeyMap, views []domain.KindView) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	entries := make([]Entry, 0, len(views))
	for _, kv := range views {
		entries = append(entries, Entry{Kind: kv.Kind, Label: label(kv)})
	}

	return &View{
		styles:  s,
		keymap:  km,
		entries: entries,
		width:   80,
		height:  24,
	}
}

// label derives a menu label from the dialog title ("Select Customer" -> "Customer").
func label(kv domain.KindView) string {
	if l, ok := strings.CutPrefix(kv.Title, "Select "); ok && l != "" {
		return l
	}
	if kv.Title != "" {
		return kv.Title
	}
	return kv.Kind.String()
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.MenuUp):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.MenuDown):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Select):
		entry, ok := v.SelectedEntry()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.KindChosen{Kind: entry.Kind}
		}

	case keymap.Matches(keyStr, v.keymap.Clear):
		entry, ok := v.SelectedEntry()
		if !ok || entry.Last == "" {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ForgetRequested{Kind: entry.Kind}
		}

	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, tea.Quit
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Storedesk"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Catalogue Lookups"))
	b.WriteString("\n\n")

	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("No kinds configured"))
		b.WriteString("\n")
	}

	labelWidth := 0
	for _, e := range v.entries {
		labelWidth = max(labelWidth, lipgloss.Width(e.Label))
	}

	for i, e := range v.entries {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Title
		}

		line := cursor + style.Render(e.Label)
		if e.Last != "" {
			pad := strings.Repeat(" ", labelWidth-lipgloss.Width(e.Label)+2)
			line += pad + v.styles.Muted.Render("last: "+e.Last)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Open  [x] Forget  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetLast records the last picked item name for a kind. Empty clears it.
func (v *View) SetLast(kind domain.Kind, name string) {
	for i := range v.entries {
		if v.entries[i].Kind == kind {
			v.entries[i].Last = name
			return
		}
	}
}

// Entries returns the menu entries.
func (v *View) Entries() []Entry {
	return v.entries
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// SelectedEntry returns the entry under the cursor.
func (v *View) SelectedEntry() (Entry, bool) {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return Entry{}, false
	}
	return v.entries[v.selected], true
}
