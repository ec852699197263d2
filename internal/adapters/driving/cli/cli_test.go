package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/adapters/driven/storage/memory"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/services"
)

// setupTestServices wires in-memory services seeded with a few records
// and returns a cleanup function.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store := memory.NewRecordStore()
	catalogue := services.NewCatalogueService(store)
	_, err := catalogue.Import(context.Background(), []domain.Record{
		{ID: "C001", Kind: domain.KindCustomer, Fields: map[string]any{"name": "Acme Traders", "phone": "555-0100", "city": "Pune"}},
		{ID: "C002", Kind: domain.KindCustomer, Fields: map[string]any{"name": "Bolt Supplies", "phone": "555-0101", "city": "Goa"}},
		{ID: "C003", Kind: domain.KindCustomer, Fields: map[string]any{"name": "Acme Hardware", "phone": "555-0102", "city": "Pune"}},
		{ID: "I001", Kind: domain.KindItem, Fields: map[string]any{"name": "Hex Bolt", "rate": 4.5}},
	})
	require.NoError(t, err)

	SetServices(&Services{
		Lookup:    services.NewLookupService(store, 2),
		Catalogue: catalogue,
		Recent:    services.NewRecentService(memory.NewCache()),
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
	})

	return resetState
}

// resetState clears services and flag values between rootCmd runs.
func resetState() {
	teardownServices(nil, nil) //nolint:errcheck
	SetServices(nil)

	verbose, dataDir, remoteURL, ephemeral = false, "", "", false
	pickSearch, pickJSON = "", false
	listPage, listSearch, listJSON = 1, "", false
	recordID, recordFields, recordJSON = "", map[string]string{}, false
	serveAddr, serveWatch = ":8080", ""
}

// execute runs rootCmd with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
