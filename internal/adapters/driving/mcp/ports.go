package mcp

import (
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lookup serves paginated lookups.
	Lookup driving.LookupService

	// Catalogue reads individual records. Optional; record resources are
	// not found without it.
	Catalogue driving.CatalogueService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	return nil
}
