package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
	assert.Empty(t, store.Keys())
}

func TestConfigStore_SaveWritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("index.backend", "bleve"))
	require.NoError(t, store.Set("search.max_results", 20))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[index]")
	assert.Regexp(t, `backend = ['"]bleve['"]`, string(data))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("index.backend", "memory"))
	require.NoError(t, store.Set("refresh.interval", 15))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "memory", reloaded.GetString("index.backend"))
	assert.Equal(t, 15, reloaded.GetInt("refresh.interval"))
	assert.Equal(t, []string{"index.backend", "refresh.interval"}, reloaded.Keys())
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[watch]\nseed_file = \"/tmp/seed.json\"\n\n[sync]\nhistory_limit = 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/seed.json", store.GetString("watch.seed_file"))
	assert.Equal(t, 5, store.GetInt("sync.history_limit"))
}

func TestConfigStore_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_SetInvalidKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("", 1))
	assert.Error(t, store.Set("index.", 1))
}

func TestConfigStore_DeleteAndTypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("a.b", "text"))
	assert.Equal(t, 0, store.GetInt("a.b"))
	assert.Equal(t, "", store.GetString("missing"))

	require.NoError(t, store.Delete("a.b"))
	_, ok := store.Get("a.b")
	assert.False(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"index.backend":      "sqlite",
		"search.cache_size":  10,
		"search.max_results": 0,
		"top":                true,
	})

	assert.Equal(t, map[string]any{
		"index":  map[string]any{"backend": "sqlite"},
		"search": map[string]any{"cache_size": 10, "max_results": 0},
		"top":    true,
	}, nested)
	assert.Equal(t, map[string]any{
		"index.backend":      "sqlite",
		"search.cache_size":  10,
		"search.max_results": 0,
		"top":                true,
	}, flattenMap(nested, ""))
}
