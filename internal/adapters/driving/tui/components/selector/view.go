package selector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

const (
	maxModalWidth = 100
	minModalWidth = 24

	// defaultListHeight applies when MaxHeight is unset or invalid.
	defaultListHeight = 10

	// screenMargin keeps a strip of backdrop visible around the dialog.
	screenMargin = 2

	titleHeight  = 1
	footerHeight = 1
)

// geometry is where the dialog sits on screen. All coordinates are cells
// from the top-left of the terminal.
type geometry struct {
	x, y          int // modal box, border included
	width, height int
	contentX      int
	contentY      int
	contentWidth  int
	listY         int
	listHeight    int
}

func (g geometry) contains(x, y int) bool {
	return x >= g.x && x < g.x+g.width && y >= g.y && y < g.y+g.height
}

// modalWidth is the outer width of the dialog, border included.
func (m *Model) modalWidth() int {
	width := m.width - 2*screenMargin
	if width > maxModalWidth {
		width = maxModalWidth
	}
	if width < minModalWidth {
		width = m.width
	}
	return width
}

// layout derives the dialog geometry from the terminal size and options.
func (m *Model) layout() geometry {
	frameX, frameY := m.styles.ModalFrame()

	width := m.modalWidth()
	contentWidth := width - 2*frameX
	if contentWidth < 1 {
		contentWidth = 1
	}

	inputHeight := lipgloss.Height(m.search.View())
	chrome := 2*frameY + titleHeight + inputHeight + footerHeight

	listHeight := domain.ResolveSize(m.opts.MaxHeight, m.height, defaultListHeight)
	if avail := m.height - chrome - screenMargin; listHeight > avail {
		listHeight = avail
	}
	if listHeight < 1 {
		listHeight = 1
	}

	height := chrome + listHeight
	x := (m.width - width) / 2
	y := (m.height - height) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return geometry{
		x:            x,
		y:            y,
		width:        width,
		height:       height,
		contentX:     x + frameX,
		contentY:     y + frameY,
		contentWidth: contentWidth,
		listY:        y + frameY + titleHeight + inputHeight,
		listHeight:   listHeight,
	}
}

// resize pushes the current geometry down to the child components.
func (m *Model) resize() {
	frameX, _ := m.styles.ModalFrame()
	m.search.SetWidth(m.modalWidth() - 2*frameX)

	g := m.layout()
	m.table.SetDimensions(g.contentWidth, g.listHeight)
	m.table.SetStacked(m.opts.ResponsiveBreakpoint > 0 && m.width < m.opts.ResponsiveBreakpoint)
}

// View renders the dialog centred over an empty backdrop. A closed
// selector renders nothing.
func (m *Model) View() string {
	if !m.IsOpen() {
		return ""
	}
	return m.Overlay("")
}

// Overlay draws the dialog over base, dimming what it covers around it.
// A closed selector returns base unchanged.
func (m *Model) Overlay(base string) string {
	if !m.IsOpen() {
		return base
	}

	g := m.layout()
	modal := strings.Split(m.renderModal(g), "\n")
	backdrop := lipgloss.NewStyle().
		Foreground(m.styles.Theme().Muted).
		Background(m.styles.Theme().Backdrop)

	baseLines := strings.Split(base, "\n")
	out := make([]string, m.height)
	for row := 0; row < m.height; row++ {
		plain := ""
		if row < len(baseLines) {
			plain = ansi.Strip(baseLines[row])
		}
		plain = padRight(plain, m.width)

		mi := row - g.y
		if mi < 0 || mi >= len(modal) {
			out[row] = backdrop.Render(plain)
			continue
		}
		left := ansi.Truncate(plain, g.x, "")
		right := ansi.Cut(plain, g.x+g.width, m.width)
		out[row] = backdrop.Render(left) + modal[mi] + backdrop.Render(right)
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderModal(g geometry) string {
	sections := []string{
		m.renderTitle(g.contentWidth),
		m.search.View(),
		m.renderList(g.contentWidth, g.listHeight),
		m.renderFooter(g.contentWidth),
	}
	// Every line is cut or padded to the content width so the border
	// lands exactly where layout expects it.
	lines := strings.Split(strings.Join(sections, "\n"), "\n")
	for i, line := range lines {
		lines[i] = padRight(line, g.contentWidth)
	}
	return m.styles.Modal.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTitle(width int) string {
	title := m.styles.Title.Render(m.opts.Title)
	if m.status == domain.StatusLoading {
		title += " " + m.spinner.View()
	}
	closeGlyph := m.styles.Close.Render(styles.CloseGlyph)

	room := width - lipgloss.Width(closeGlyph) - 1
	if lipgloss.Width(title) > room {
		title = ansi.Truncate(title, room, "…")
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(closeGlyph)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + closeGlyph
}

// renderList fills exactly height lines so the dialog keeps its size
// across loading, empty and error states.
func (m *Model) renderList(width, height int) string {
	var content string
	switch {
	case m.status == domain.StatusError:
		retry := m.keymap.Retry.Help()
		content = m.styles.Error.Render(ansi.Truncate("Error: "+m.err.Error(), width, "…")) +
			"\n\n" + m.styles.Muted.Render(fmt.Sprintf("%s retry", retry.Key))
	case m.status == domain.StatusEmpty:
		content = m.styles.Muted.Render("No results")
	case m.status == domain.StatusLoading && len(m.items) == 0:
		content = m.styles.Muted.Render("Loading...")
	default:
		content = m.table.View()
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter(width int) string {
	status := fmt.Sprintf("Page %d", m.query.Page)
	switch m.status {
	case domain.StatusReady, domain.StatusLoading:
		if n := len(m.items); n > 0 {
			status += fmt.Sprintf(" · %d items", n)
		}
	case domain.StatusEmpty:
		if m.query.Page > 1 {
			status += " · no more results"
		}
	case domain.StatusError, domain.StatusClosed:
	}

	hints := make([]string, 0, 3)
	if m.query.Page > 1 {
		hints = append(hints, m.keymap.PrevPage.Help().Key+" prev")
	}
	if m.CanNextPage() {
		hints = append(hints, m.keymap.NextPage.Help().Key+" next")
	}
	hints = append(hints, m.keymap.Close.Help().Key+" close")

	line := status + "  " + strings.Join(hints, "  ")
	return m.styles.Muted.Render(ansi.Truncate(line, width, "…"))
}

// handleMouse maps terminal coordinates onto the dialog.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	g := m.layout()

	//nolint:exhaustive // only press and motion matter
	switch msg.Action {
	case tea.MouseActionMotion:
		if i := m.rowAt(g, msg.X, msg.Y); i >= 0 {
			m.highlight(i)
		}
		return nil
	case tea.MouseActionPress:
	default:
		return nil
	}

	//nolint:exhaustive // wheel and left button only
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveHighlight(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveHighlight(1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if !g.contains(msg.X, msg.Y) || m.onCloseGlyph(g, msg.X, msg.Y) {
		return m.Close()
	}
	if i := m.rowAt(g, msg.X, msg.Y); i >= 0 {
		m.highlight(i)
		return m.selectHighlighted()
	}
	return nil
}

func (m *Model) rowAt(g geometry, x, y int) int {
	if m.status == domain.StatusError || m.status == domain.StatusEmpty {
		return -1
	}
	if x < g.contentX || x >= g.contentX+g.contentWidth {
		return -1
	}
	if y < g.listY || y >= g.listY+g.listHeight {
		return -1
	}
	return m.table.RowAt(y - g.listY)
}

func (m *Model) onCloseGlyph(g geometry, x, y int) bool {
	right := g.contentX + g.contentWidth
	return y == g.contentY && x >= right-lipgloss.Width(styles.CloseGlyph)-1 && x < right
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return ansi.Truncate(s, width, "")
}
