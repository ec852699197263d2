package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleKindsResource(t *testing.T) {
	server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
	require.NoError(t, err)

	result, err := server.handleKindsResource(context.Background(), makeReadResourceRequest("storedesk://kinds"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var kinds []map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &kinds))
	require.Len(t, kinds, len(domain.AllKinds()))
	assert.Equal(t, "customer", kinds[0]["kind"])
}

func TestServer_handleRecordResource(t *testing.T) {
	ctx := context.Background()
	const uri = "storedesk://records/customer/C001"

	t.Run("returns the record", func(t *testing.T) {
		now := time.Now()
		catalogue := &mockCatalogueService{record: &domain.Record{
			ID:        "C001",
			Kind:      domain.KindCustomer,
			Fields:    map[string]any{"name": "Acme Traders"},
			CreatedAt: now,
			UpdatedAt: now,
		}}
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}, Catalogue: catalogue})
		require.NoError(t, err)

		result, err := server.handleRecordResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.Contains(t, result.Contents[0].Text, `"name": "Acme Traders"`)
		assert.Contains(t, result.Contents[0].Text, `"id": "C001"`)
	})

	t.Run("not found without catalogue", func(t *testing.T) {
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
		require.NoError(t, err)

		_, err = server.handleRecordResource(ctx, makeReadResourceRequest(uri))

		assert.Error(t, err)
	})

	t.Run("not found for missing record", func(t *testing.T) {
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}, Catalogue: &mockCatalogueService{}})
		require.NoError(t, err)

		_, err = server.handleRecordResource(ctx, makeReadResourceRequest(uri))

		assert.Error(t, err)
	})

	t.Run("catalogue error is wrapped", func(t *testing.T) {
		catalogue := &mockCatalogueService{err: errors.New("disk full")}
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}, Catalogue: catalogue})
		require.NoError(t, err)

		_, err = server.handleRecordResource(ctx, makeReadResourceRequest(uri))

		assert.ErrorContains(t, err, "getting record: disk full")
	})

	t.Run("invalid uri", func(t *testing.T) {
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}, Catalogue: &mockCatalogueService{}})
		require.NoError(t, err)

		_, err = server.handleRecordResource(ctx, makeReadResourceRequest("storedesk://invalid/uri"))

		assert.Error(t, err)
	})
}

func TestExtractRecordRef(t *testing.T) {
	tests := []struct {
		uri      string
		wantKind string
		wantID   string
	}{
		{"storedesk://records/customer/C001", "customer", "C001"},
		{"storedesk://records/items/I-9", "items", "I-9"},
		{"storedesk://records/customer", "", ""},
		{"storedesk://records/customer/a/b", "", ""},
		{"other://records/customer/C001", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			kind, id := extractRecordRef(tt.uri)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
