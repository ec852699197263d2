package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/styles"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

func testViews() []domain.KindView {
	return []domain.KindView{
		{Kind: domain.KindCustomer, Title: "Select Customer"},
		{Kind: domain.KindItem, Title: "Select Item"},
		{Kind: domain.KindTax, Title: "Tax Codes"},
		{Kind: domain.KindUser},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil, testViews())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.Len(t, view.Entries(), 4)
	assert.Equal(t, 0, view.Selected())
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestNewView_Labels(t *testing.T) {
	view := NewView(nil, nil, testViews())

	labels := make([]string, 0, 4)
	for _, e := range view.Entries() {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"Customer", "Item", "Tax Codes", "user"}, labels)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, testViews())

	assert.Nil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, testViews())

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil, nil, testViews())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(runes("j"))
	view.Update(runes("j"))
	assert.Equal(t, 3, view.Selected())

	// Stops at the last entry.
	view.Update(runes("j"))
	assert.Equal(t, 3, view.Selected())

	view.Update(runes("k"))
	assert.Equal(t, 2, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_Enter(t *testing.T) {
	view := NewView(nil, nil, testViews())
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	chosen, ok := msg.(messages.KindChosen)
	require.True(t, ok)
	assert.Equal(t, domain.KindItem, chosen.Kind)
}

func TestView_Update_Enter_NoEntries(t *testing.T) {
	view := NewView(nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_Update_Forget(t *testing.T) {
	view := NewView(nil, nil, testViews())

	_, cmd := view.Update(runes("x"))
	assert.Nil(t, cmd, "nothing remembered yet")

	view.SetLast(domain.KindCustomer, "Acme")
	_, cmd = view.Update(runes("x"))
	require.NotNil(t, cmd)

	forget, ok := cmd().(messages.ForgetRequested)
	require.True(t, ok)
	assert.Equal(t, domain.KindCustomer, forget.Kind)
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil, nil, testViews())

	_, cmd := view.Update(runes("q"))
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView_SetLast(t *testing.T) {
	view := NewView(nil, nil, testViews())

	view.SetLast(domain.KindItem, "Bolt")
	view.SetLast(domain.KindColor, "Red")

	assert.Equal(t, "Bolt", view.Entries()[1].Last)
	for _, e := range view.Entries() {
		assert.NotEqual(t, "Red", e.Last)
	}

	view.SetLast(domain.KindItem, "")
	assert.Empty(t, view.Entries()[1].Last)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, testViews())

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_View(t *testing.T) {
	view := NewView(nil, nil, testViews())
	view.SetDimensions(80, 24)
	view.SetLast(domain.KindCustomer, "Acme Traders")

	out := view.View()

	assert.Contains(t, out, "Storedesk")
	assert.Contains(t, out, "Customer")
	assert.Contains(t, out, "Tax Codes")
	assert.Contains(t, out, "last: Acme Traders")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "[Enter] Open")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "No kinds configured")
}

func TestView_SelectedEntry(t *testing.T) {
	view := NewView(nil, nil, testViews())

	entry, ok := view.SelectedEntry()
	require.True(t, ok)
	assert.Equal(t, domain.KindCustomer, entry.Kind)

	empty := NewView(nil, nil, nil)
	_, ok = empty.SelectedEntry()
	assert.False(t, ok)
}
