package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".storedesk"), dir)
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0o600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("remote.url", "http://erp.local"))

	val, ok := store.Get("remote.url")
	assert.True(t, ok)
	assert.Equal(t, "http://erp.local", val)
	assert.Equal(t, "http://erp.local", store.GetString("remote.url"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("selector.page_size", 25))
	require.NoError(t, store.Set("selector.mouse", false))
	require.NoError(t, store.Set("remote.url", "http://erp.local"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[selector]")
	assert.Contains(t, content, "page_size = 25")
	assert.Contains(t, content, "[remote]")
	assert.NotContains(t, content, "'selector.page_size'")
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("selector.debounce_ms", 200))
	require.NoError(t, store.Set("selector.mouse", true))
	require.NoError(t, store.Set("selector.max_height", "40%"))
	require.NoError(t, store.Set("remote.variants", []string{"q", "list"}))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 200, reloaded.GetInt("selector.debounce_ms"))
	assert.True(t, reloaded.GetBool("selector.mouse"))
	assert.Equal(t, "40%", reloaded.GetString("selector.max_height"))
	assert.Equal(t, []string{"q", "list"}, reloaded.GetStringSlice("remote.variants"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[selector]
debounce_ms = 300.0
breakpoint = 80
max_height = "20"

[remote]
url = "http://erp.local"
variants = "search, q"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 300, store.GetInt("selector.debounce_ms"))
	assert.Equal(t, 80, store.GetInt("selector.breakpoint"))
	assert.Equal(t, "20", store.GetString("selector.max_height"))
	assert.Equal(t, "http://erp.local", store.GetString("remote.url"))
	assert.Equal(t, []string{"search", "q"}, store.GetStringSlice("remote.variants"))
}

func TestConfigStore_GetInt_FractionalFloat(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("selector.debounce_ms", 3.5))

	assert.Zero(t, store.GetInt("selector.debounce_ms"))
}

func TestConfigStore_GetBool_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("selector.mouse", "yes"))

	assert.False(t, store.GetBool("selector.mouse"))
}

func TestConfigStore_Set_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("remote", "http://erp.local"))

	err = store.Set("remote.url", "http://erp.local")
	assert.Error(t, err)
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["selector.breakpoint"] = 90
	store.mu.Unlock()

	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 90, reloaded.GetInt("selector.breakpoint"))
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("remote.url", "x"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0o700))

	assert.Error(t, store.Set("remote.url", "y"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("remote.url", "x"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("selector.page_size", n+1)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("selector.page_size")
		}()
	}
	wg.Wait()

	assert.Positive(t, store.GetInt("selector.page_size"))
}

func TestFlattenAndNestMap(t *testing.T) {
	flat := map[string]any{"a.b": 1, "a.c": "x", "d": true}

	nested, err := nestMap(flat)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 1, "c": "x"}, "d": true}, nested)

	assert.Equal(t, flat, flattenMap(nested, ""))
}
