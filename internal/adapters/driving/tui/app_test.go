package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui/messages"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// cmdTimeout drops commands that block, such as cursor blinks.
const cmdTimeout = 150 * time.Millisecond

func newTestPorts() *Ports {
	return &Ports{
		Lookup: customerLookup(),
		Recent: &MockRecentService{},
		Settings: &MockSettingsService{GetFunc: func() (*domain.AppSettings, error) {
			s := domain.DefaultAppSettings()
			s.Selector.DebounceMs = 5
			return &s, nil
		}},
	}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

// drain runs cmd and expands batches, giving up on commands that block.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			results := make([][]tea.Msg, len(msg))
			var wg sync.WaitGroup
			for i, c := range msg {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results[i] = drain(c)
				}()
			}
			wg.Wait()
			var out []tea.Msg
			for _, r := range results {
				out = append(out, r...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(cmdTimeout):
		return nil
	}
}

// pump feeds app-level messages produced by cmd back into the app until
// none remain. It returns every message seen.
func pump(app *App, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		switch msg.(type) {
		case messages.ItemsFetched, messages.SearchDebounced,
			messages.ItemSelected, messages.SelectorClosed,
			messages.KindChosen, messages.ForgetRequested,
			messages.RecentLoaded, messages.RecentForgotten,
			messages.ViewChanged, messages.ErrorOccurred:
			_, next := app.Update(msg)
			queue = append(queue, drain(next)...)
		}
	}
	return seen
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(app *App, msg tea.Msg) []tea.Msg {
	_, cmd := app.Update(msg)
	return pump(app, cmd)
}

func hasQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Equal(t, 5, app.Settings().DebounceMs)
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Recent: &MockRecentService{}})

	assert.ErrorIs(t, err, ErrMissingLookupService)
	assert.Nil(t, app)

	app, err = NewApp(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestNewApp_SettingsFallback(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = &MockSettingsService{GetFunc: func() (*domain.AppSettings, error) {
		return nil, errors.New("unreadable")
	}}

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Selector, app.Settings())
}

func TestNewApp_NoSettingsService(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = nil

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Selector, app.Settings())
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init_LoadsRecent(t *testing.T) {
	ports := newTestPorts()
	recent := ports.Recent.(*MockRecentService)
	require.NoError(t, recent.Remember(context.Background(), domain.KindCustomer,
		domain.Item{"id": "C009", "name": "Zen Mart"}))
	app := newTestApp(t, ports)

	pump(app, app.Init())

	assert.Contains(t, app.View(), "last: Zen Mart")
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Menu(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	out := app.View()

	assert.Contains(t, out, "Storedesk")
	assert.Contains(t, out, "Customer")
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestApp_OpenSelector(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	send(app, key(tea.KeyEnter))

	assert.Equal(t, messages.ViewSelector, app.CurrentView())
	assert.Equal(t, domain.KindCustomer, app.Active())

	sel, ok := app.Selector(domain.KindCustomer)
	require.True(t, ok)
	assert.True(t, sel.IsOpen())
	assert.Equal(t, domain.StatusReady, sel.Status())
	assert.Len(t, sel.Items(), 3)

	out := app.View()
	assert.Contains(t, out, "Select Customer")
	assert.Contains(t, out, "Acme Traders")
}

func TestApp_OpenSelector_UnknownKind(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	send(app, messages.KindChosen{Kind: domain.Kind("nope")})

	assert.ErrorIs(t, app.Err(), ErrUnknownKind)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_OpenSelector_SeedsLastSearch(t *testing.T) {
	ports := newTestPorts()
	require.NoError(t, ports.Recent.SetLastSearch(context.Background(), domain.KindCustomer, "acme"))
	app := newTestApp(t, ports)

	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	sel, _ := app.Selector(domain.KindCustomer)
	assert.Equal(t, "acme", sel.SearchValue())
	assert.Len(t, sel.Items(), 2)
}

func TestApp_SelectItem(t *testing.T) {
	ports := newTestPorts()
	app := newTestApp(t, ports)
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	send(app, key(tea.KeyDown))
	send(app, key(tea.KeyDown))
	send(app, key(tea.KeyEnter))

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
	assert.Equal(t, domain.Kind(""), app.Active())

	sel, _ := app.Selector(domain.KindCustomer)
	assert.False(t, sel.IsOpen())

	last, err := ports.Recent.Last(context.Background(), domain.KindCustomer)
	require.NoError(t, err)
	assert.Equal(t, "C002", last.Field("id"))

	out := app.View()
	assert.Contains(t, out, "Bolt Supplies")
	assert.Contains(t, out, "Picked Bolt Supplies")
}

func TestApp_SelectItem_RememberFails(t *testing.T) {
	ports := newTestPorts()
	ports.Recent = &MockRecentService{RememberFunc: func(context.Context, domain.Kind, domain.Item) error {
		return errors.New("disk full")
	}}
	app := newTestApp(t, ports)
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	send(app, key(tea.KeyDown))
	send(app, key(tea.KeyEnter))

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "disk full")
}

func TestApp_CloseSelector_SavesSearch(t *testing.T) {
	ports := newTestPorts()
	app := newTestApp(t, ports)
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	// Debounce is 5ms so each timer fires inside drain.
	for _, r := range "bolt" {
		send(app, runes(string(r)))
	}
	sel, _ := app.Selector(domain.KindCustomer)
	require.Equal(t, "bolt", sel.Query().Search)

	send(app, key(tea.KeyEsc))

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, sel.IsOpen())
	assert.Equal(t, "bolt", ports.Recent.LastSearch(context.Background(), domain.KindCustomer))
}

func TestApp_TypedSearch_Fetches(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	var cmds []tea.Cmd
	for _, r := range "bolt" {
		_, cmd := app.Update(runes(string(r)))
		cmds = append(cmds, cmd)
	}
	// Only the last keystroke's timer survives.
	for _, c := range cmds {
		pump(app, c)
	}

	sel, _ := app.Selector(domain.KindCustomer)
	assert.Equal(t, "bolt", sel.Query().Search)
	require.Len(t, sel.Items(), 1)
	assert.Equal(t, "Bolt Supplies", sel.Items()[0].Field("name"))
}

func TestApp_Detail_Back(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})
	send(app, key(tea.KeyDown))
	send(app, key(tea.KeyEnter))
	require.Equal(t, messages.ViewDetail, app.CurrentView())

	send(app, key(tea.KeyEsc))

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "last: Acme Traders")
}

func TestApp_Detail_PickAgain(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})
	send(app, key(tea.KeyDown))
	send(app, key(tea.KeyEnter))

	send(app, key(tea.KeyEnter))

	assert.Equal(t, messages.ViewSelector, app.CurrentView())
	assert.Equal(t, domain.KindCustomer, app.Active())
}

func TestApp_Forget(t *testing.T) {
	ports := newTestPorts()
	app := newTestApp(t, ports)
	send(app, messages.KindChosen{Kind: domain.KindCustomer})
	send(app, key(tea.KeyDown))
	send(app, key(tea.KeyEnter))
	send(app, key(tea.KeyEsc))
	require.Contains(t, app.View(), "last: Acme Traders")

	send(app, runes("x"))

	assert.NotContains(t, app.View(), "last: Acme Traders")
	last, _ := ports.Recent.Last(context.Background(), domain.KindCustomer)
	assert.Nil(t, last)
}

func TestApp_StaleFetchAfterClose(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	_, cmd := app.Update(messages.KindChosen{Kind: domain.KindCustomer})
	msgs := drain(cmd)

	// Close before the first page arrives.
	send(app, key(tea.KeyEsc))
	for _, m := range msgs {
		app.Update(m)
	}

	sel, _ := app.Selector(domain.KindCustomer)
	assert.False(t, sel.IsOpen())
	assert.Empty(t, sel.Items())
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Mouse_ClickSelects(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})
	out := app.View()

	lines := strings.Split(out, "\n")
	row := -1
	for i, l := range lines {
		if strings.Contains(l, "Bolt Supplies") {
			row = i
			break
		}
	}
	require.GreaterOrEqual(t, row, 0)

	send(app, tea.MouseMsg{X: 50, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
	assert.Contains(t, app.View(), "Bolt Supplies")
}

func TestApp_Mouse_Disabled(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = &MockSettingsService{GetFunc: func() (*domain.AppSettings, error) {
		s := domain.DefaultAppSettings()
		s.Selector.Mouse = false
		return &s, nil
	}}
	app := newTestApp(t, ports)
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	// A click outside the dialog would close it if mouse input were on.
	send(app, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, messages.ViewSelector, app.CurrentView())
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	msgs := send(app, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, hasQuit(msgs))
	assert.Equal(t, domain.Kind(""), app.Active())
}

func TestApp_Menu_QuitKey(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	msgs := send(app, runes("q"))

	assert.True(t, hasQuit(msgs))
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	msgs := send(app, messages.Quit{})

	assert.True(t, hasQuit(msgs))
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	send(app, messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "Error: boom")
}

func TestApp_SelectorOverlayKeepsSize(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})

	lines := strings.Split(app.View(), "\n")

	assert.Len(t, lines, 30)
}

func TestApp_ReusesSelector(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	send(app, messages.KindChosen{Kind: domain.KindCustomer})
	first, _ := app.Selector(domain.KindCustomer)
	send(app, key(tea.KeyEsc))

	send(app, messages.KindChosen{Kind: domain.KindCustomer})
	second, _ := app.Selector(domain.KindCustomer)

	assert.Same(t, first, second)
	assert.True(t, second.IsOpen())
}

func TestPickApp(t *testing.T) {
	p, err := NewPickApp(customerLookup(), nil, domain.KindCustomer, "acme")
	require.NoError(t, err)

	_, cmd := p.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)

	feed := func(cmd tea.Cmd) []tea.Msg {
		var seen []tea.Msg
		queue := drain(cmd)
		for len(queue) > 0 {
			msg := queue[0]
			queue = queue[1:]
			seen = append(seen, msg)
			switch msg.(type) {
			case messages.ItemsFetched, messages.ItemSelected, messages.SelectorClosed:
				_, next := p.Update(msg)
				queue = append(queue, drain(next)...)
			}
		}
		return seen
	}

	feed(p.Init())
	assert.Equal(t, domain.KindCustomer, p.Kind())
	assert.Equal(t, "acme", p.Selector().SearchValue())
	require.Len(t, p.Selector().Items(), 2)
	assert.Contains(t, p.View(), "Acme Hardware")

	_, cmd = p.Update(key(tea.KeyDown))
	feed(cmd)
	_, cmd = p.Update(key(tea.KeyEnter))
	msgs := feed(cmd)

	assert.True(t, hasQuit(msgs))
	assert.False(t, p.Cancelled())
	assert.Equal(t, "C001", p.Chosen().Field("id"))
	assert.False(t, p.Selector().IsOpen())
}

func TestPickApp_Cancel(t *testing.T) {
	p, err := NewPickApp(customerLookup(), nil, domain.KindCustomer, "")
	require.NoError(t, err)
	p.Init()

	_, cmd := p.Update(key(tea.KeyEsc))
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	_, cmd = p.Update(msgs[0])

	assert.True(t, hasQuit(drain(cmd)))
	assert.True(t, p.Cancelled())
	assert.Nil(t, p.Chosen())
}

func TestNewPickApp_Errors(t *testing.T) {
	_, err := NewPickApp(nil, nil, domain.KindCustomer, "")
	assert.ErrorIs(t, err, ErrMissingLookupService)

	_, err = NewPickApp(customerLookup(), nil, domain.Kind("nope"), "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "", placeholder(nil))
	assert.Equal(t, "Search by name, phone...", placeholder([]string{"name", "phone"}))
}
