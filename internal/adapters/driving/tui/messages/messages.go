// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// SearchDebounced is delivered when a selector's debounce timer expires.
// Seq identifies the keystroke that armed the timer; only the latest one fires a fetch.
type SearchDebounced struct {
	SelectorID string
	Seq        uint64
	Search     string
}

// ItemsFetched carries one page of items back to the selector that asked for it.
type ItemsFetched struct {
	SelectorID string
	Key        domain.QueryKey
	Items      []domain.Item
	Err        error
}

// ItemSelected is sent when the user commits a row in a selector.
type ItemSelected struct {
	Kind domain.Kind
	Item domain.Item
}

// SelectorClosed is sent when a selector is dismissed without a selection.
type SelectorClosed struct {
	Kind domain.Kind
}

// KindChosen asks the app to open the selector for a kind.
type KindChosen struct {
	Kind domain.Kind
}

// ForgetRequested asks the app to clear the remembered selection for a kind.
type ForgetRequested struct {
	Kind domain.Kind
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the kind menu.
	ViewMenu ViewType = iota
	// ViewSelector is an open list selector.
	ViewSelector
	// ViewDetail shows the record chosen from a selector.
	ViewDetail
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSelector:
		return "selector"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// RecentLoaded carries the last remembered selection for a kind.
type RecentLoaded struct {
	Kind domain.Kind
	Item domain.Item
	Err  error
}

// RecentForgotten signals the remembered selection for a kind was cleared.
type RecentForgotten struct {
	Kind domain.Kind
	Err  error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}
