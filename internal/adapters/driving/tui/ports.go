// Package tui provides an interactive terminal user interface for storedesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Lookup pages through records of a kind. Required.
	Lookup driving.LookupService

	// Recent remembers the last selection and search per kind. Required.
	Recent driving.RecentService

	// Settings supplies selector tuning. Optional; defaults apply when nil.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(lookup driving.LookupService, recent driving.RecentService) *Ports {
	return &Ports{
		Lookup: lookup,
		Recent: recent,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	if p.Recent == nil {
		return ErrMissingRecentService
	}
	return nil
}
