// Package detail provides the view showing the item picked from a selector.
package detail

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

const maxValueWidth = 60

// View is the picked item view.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	kind         domain.KindView
	item         domain.Item
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		width:  80,
		height: 24,
	}
}

// SetItem sets the item to display along with its kind's display defaults.
func (v *View) SetItem(kind domain.KindView, item domain.Item) {
	v.kind = kind
	v.item = item
	v.scrollOffset = 0
	v.err = nil
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.MenuUp):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(keyStr, v.keymap.MenuDown):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(keyStr, v.keymap.Select):
		if v.kind.Kind == "" {
			return v, nil
		}
		kind := v.kind.Kind
		return v, func() tea.Msg {
			return messages.KindChosen{Kind: kind}
		}
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// visibleLines returns the number of content lines that fit.
func (v *View) visibleLines() int {
	// title, separator, blank, help and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent lists the kind's display fields first, then any other
// fields the item carries in name order.
func (v *View) buildContent() []string {
	if v.item == nil {
		return nil
	}

	lines := make([]string, 0, len(v.item)+2)
	shown := make(map[string]bool, len(v.kind.DisplayKeys))
	for i, k := range v.kind.DisplayKeys {
		shown[k] = true
		label := k
		if i < len(v.kind.Headers) && v.kind.Headers[i] != "" {
			label = v.kind.Headers[i]
		}
		lines = append(lines, v.formatField(label, v.item.Field(k)))
	}

	extra := make([]string, 0, len(v.item))
	for k := range v.item {
		if !shown[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return lines
	}
	sort.Strings(extra)

	lines = append(lines, "", "Other fields:")
	for _, k := range extra {
		lines = append(lines, "  "+v.formatField(k, v.item.Field(k)))
	}
	return lines
}

func (v *View) formatField(label, value string) string {
	value = runewidth.Truncate(value, maxValueWidth, "...")
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	title := "Selection"
	if name, ok := strings.CutPrefix(v.kind.Title, "Select "); ok {
		title = name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.item == nil {
		b.WriteString(v.styles.Muted.Render("Nothing selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderLine(line string) string {
	switch {
	case line == "Other fields:":
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "  "):
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			return v.styles.Muted.Render(line)
		}
		return v.styles.Muted.Render(label+":") + v.styles.Normal.Render(value)
	default:
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			return v.styles.Normal.Render(line)
		}
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [enter] pick again  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Item returns the displayed item.
func (v *View) Item() domain.Item {
	return v.item
}

// Kind returns the kind of the displayed item.
func (v *View) Kind() domain.Kind {
	return v.kind.Kind
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
