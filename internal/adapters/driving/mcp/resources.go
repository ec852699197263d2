package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for storedesk resources.
	uriScheme = "storedesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "kinds",
		Name:        "kinds",
		Description: "Catalogue kinds with their display fields",
		MIMEType:    "application/json",
	}, s.handleKindsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{kind}/{id}",
		Name:        "record",
		Description: "A single catalogue record",
		MIMEType:    "application/json",
	}, s.handleRecordResource)
}

// handleKindsResource returns the kind list as JSON.
func (s *Server) handleKindsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type kindInfo struct {
		Kind  string `json:"kind"`
		Title string `json:"title"`
	}

	views := s.ports.Lookup.Kinds()
	infos := make([]kindInfo, len(views))
	for i, v := range views {
		infos[i] = kindInfo{Kind: v.Kind.String(), Title: v.Title}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling kinds: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRecordResource returns one record as JSON.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalogue == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	kindName, id := extractRecordRef(req.Params.URI)
	if kindName == "" || id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	kind, err := domain.ParseKind(kindName)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Catalogue.Get(ctx, kind, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	data, err := json.MarshalIndent(rec.Item(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling record: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRecordRef splits a URI like storedesk://records/{kind}/{id}.
func extractRecordRef(uri string) (kind, id string) {
	const prefix = uriScheme + "records/"

	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return "", ""
	}
	kind, id, ok = strings.Cut(rest, "/")
	if !ok || strings.Contains(id, "/") {
		return "", ""
	}
	return kind, id
}
