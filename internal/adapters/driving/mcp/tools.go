package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

// LookupInput is the input schema for the lookup tool.
type LookupInput struct {
	Kind   string `json:"kind" jsonschema:"the catalogue kind to look up, e.g. customer or item"`
	Search string `json:"search,omitempty" jsonschema:"case-insensitive text matched against the kind's search fields"`
	Page   int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
}

// LookupOutput is the output schema for the lookup tool.
type LookupOutput struct {
	Items []map[string]any `json:"items"`
	Count int              `json:"count"`
	Page  int              `json:"page"`
}

// KindsInput is the input schema for the kinds tool.
type KindsInput struct{}

// KindsOutput is the output schema for the kinds tool.
type KindsOutput struct {
	Kinds []KindOutput `json:"kinds"`
}

// KindOutput describes one lookup kind.
type KindOutput struct {
	Kind         string   `json:"kind"`
	Title        string   `json:"title"`
	Fields       []string `json:"fields"`
	SearchFields []string `json:"search_fields"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup",
		Description: "Page through catalogue records of a kind, optionally filtered by a search term",
	}, s.handleLookup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "kinds",
		Description: "List the catalogue kinds available to the lookup tool",
	}, s.handleKinds)
}

// handleLookup handles the lookup tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return nil, LookupOutput{}, fmt.Errorf("kind %q: %w", input.Kind, err)
	}

	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, LookupOutput{}, ErrInvalidPage
	}

	items, err := s.ports.Lookup.Fetch(ctx, kind, page, input.Search)
	if err != nil {
		return nil, LookupOutput{}, err
	}

	output := LookupOutput{
		Items: make([]map[string]any, len(items)),
		Count: len(items),
		Page:  page,
	}
	for i, item := range items {
		output.Items[i] = item
	}

	return nil, output, nil
}

// handleKinds handles the kinds tool invocation.
func (s *Server) handleKinds(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ KindsInput,
) (*mcp.CallToolResult, KindsOutput, error) {
	views := s.ports.Lookup.Kinds()
	output := KindsOutput{Kinds: make([]KindOutput, len(views))}
	for i, v := range views {
		output.Kinds[i] = KindOutput{
			Kind:         v.Kind.String(),
			Title:        v.Title,
			Fields:       v.DisplayKeys,
			SearchFields: v.SearchFields,
		}
	}
	return nil, output, nil
}
