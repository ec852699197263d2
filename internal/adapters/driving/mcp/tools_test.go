package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

func TestServer_handleLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a page of items", func(t *testing.T) {
		lookup := &mockLookupService{
			items: []domain.Item{
				{"id": "C001", "name": "Acme Traders"},
				{"id": "C003", "name": "Acme Hardware"},
			},
		}
		server, err := NewServer(&Ports{Lookup: lookup})
		require.NoError(t, err)

		_, output, err := server.handleLookup(ctx, nil, LookupInput{Kind: "customers", Search: "acme", Page: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 2, output.Page)
		assert.Equal(t, "Acme Traders", output.Items[0]["name"])
		assert.Equal(t, domain.KindCustomer, lookup.gotKind)
		assert.Equal(t, 2, lookup.gotPage)
		assert.Equal(t, "acme", lookup.gotSearch)
	})

	t.Run("default page is 1", func(t *testing.T) {
		lookup := &mockLookupService{}
		server, err := NewServer(&Ports{Lookup: lookup})
		require.NoError(t, err)

		_, output, err := server.handleLookup(ctx, nil, LookupInput{Kind: "item"})

		require.NoError(t, err)
		assert.Equal(t, 1, lookup.gotPage)
		assert.Equal(t, 1, output.Page)
		assert.NotNil(t, output.Items)
		assert.Zero(t, output.Count)
	})

	t.Run("negative page is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
		require.NoError(t, err)

		_, _, err = server.handleLookup(ctx, nil, LookupInput{Kind: "item", Page: -1})

		assert.ErrorIs(t, err, ErrInvalidPage)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
		require.NoError(t, err)

		_, _, err = server.handleLookup(ctx, nil, LookupInput{Kind: "widget"})

		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})

	t.Run("lookup error is returned", func(t *testing.T) {
		lookup := &mockLookupService{err: errors.New("upstream down")}
		server, err := NewServer(&Ports{Lookup: lookup})
		require.NoError(t, err)

		_, _, err = server.handleLookup(ctx, nil, LookupInput{Kind: "item"})

		assert.EqualError(t, err, "upstream down")
	})
}

func TestServer_handleKinds(t *testing.T) {
	server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
	require.NoError(t, err)

	_, output, err := server.handleKinds(context.Background(), nil, KindsInput{})

	require.NoError(t, err)
	require.Len(t, output.Kinds, len(domain.AllKinds()))
	assert.Equal(t, "customer", output.Kinds[0].Kind)
	assert.Equal(t, "Select Customer", output.Kinds[0].Title)
	assert.NotEmpty(t, output.Kinds[0].Fields)
	assert.NotEmpty(t, output.Kinds[0].SearchFields)
}
