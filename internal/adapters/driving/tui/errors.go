package tui

import "errors"

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("tui: lookup service is required")

// ErrMissingRecentService is returned when the recent selection service is not provided.
var ErrMissingRecentService = errors.New("tui: recent service is required")

// ErrUnknownKind is returned when a picker is built for a kind with no view.
var ErrUnknownKind = errors.New("tui: unknown kind")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
