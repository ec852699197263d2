// Package mcp provides an MCP (Model Context Protocol) server adapter for storedesk.
// It lets AI assistants page through catalogue lookups the same way the TUI selector does.
package mcp

import "errors"

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("mcp: lookup service is required")

// ErrInvalidPage is returned when a lookup asks for a page below 1.
var ErrInvalidPage = errors.New("mcp: page must be at least 1")
