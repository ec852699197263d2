// Package domain defines the core business entities for storedesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: An opaque field-to-value mapping handed to list selectors
//   - Record: A catalogue row (customer, colour, design, tax, user, group, item)
//   - Kind / KindView: The catalogue entity types and their display defaults
//   - QueryState / QueryKey: Transient list selector state and fetch tags
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
