// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
)

// DefaultPlaceholder is shown while the search box is empty.
const DefaultPlaceholder = "Type to search..."

// minInputWidth keeps the box usable on very narrow terminals.
const minInputWidth = 8

// SearchInput wraps a bubbles textinput with search-specific styling.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = DefaultPlaceholder
	ti.Prompt = "/ "
	ti.Focus()
	ti.CharLimit = 256

	in := &SearchInput{
		textinput: ti,
		styles:    s,
	}
	in.SetWidth(50)
	return in
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input, prefixed by the label when one is set.
func (s *SearchInput) View() string {
	field := s.styles.InputField.Render(s.textinput.View())
	if s.label == "" {
		return field
	}
	label := s.styles.Title.Render(s.label)
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value and moves the cursor to its end.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
}

// SetPlaceholder sets the text shown while the input is empty.
// An empty placeholder restores the default.
func (s *SearchInput) SetPlaceholder(placeholder string) {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	s.textinput.Placeholder = placeholder
}

// Placeholder returns the current placeholder text.
func (s *SearchInput) Placeholder() string {
	return s.textinput.Placeholder
}

// SetLabel sets the label drawn to the left of the box. Empty hides it.
func (s *SearchInput) SetLabel(label string) {
	s.label = label
	s.SetWidth(s.width)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the total rendered width of the component.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Border, padding, prompt, label and one cell for the cursor.
	frame := s.styles.InputField.GetHorizontalFrameSize()
	inputWidth := width - frame - lipgloss.Width(s.textinput.Prompt) - lipgloss.Width(s.label) - 1
	if inputWidth < minInputWidth {
		inputWidth = minInputWidth
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
