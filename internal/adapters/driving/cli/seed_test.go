package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

const testSeed = `records:
  - kind: colours
    id: RED
    fields:
      name: Red
  - kind: tax
    id: GST5
    fields:
      name: GST 5%
      rate: 5
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeedCmd_Imports(t *testing.T) {
	defer setupTestServices(t)()
	path := writeSeed(t, testSeed)

	out, err := execute(t, "seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 records from "+path)

	rec, err := catalogueService.Get(context.Background(), domain.KindTax, "GST5")
	require.NoError(t, err)
	assert.Equal(t, "GST 5%", rec.Name())
}

func TestSeedCmd_MissingFile(t *testing.T) {
	defer setupTestServices(t)()

	_, err := execute(t, "seed", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorContains(t, err, "read seed")
}

func TestSeedCmd_InvalidRecord(t *testing.T) {
	defer setupTestServices(t)()
	path := writeSeed(t, "records:\n  - kind: color\n    id: X\n")

	_, err := execute(t, "seed", path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeedCmd_NotConfigured(t *testing.T) {
	defer resetState()

	assert.EqualError(t, runSeed(seedCmd, []string{"x.yaml"}), "catalogue service not configured")
}
