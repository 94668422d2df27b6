package dedup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "processed_listings.json"))
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := tempStore(t)

	seen, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_listings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	seen, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	in := map[string]struct{}{
		"VAC1000012345": {},
		"VAC1000067890": {},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// save(load()) leaves the observable content unchanged
	require.NoError(t, store.Save(ctx, out))
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, again)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, map[string]struct{}{"VAC1": {}}))
	require.NoError(t, store.Save(ctx, map[string]struct{}{"VAC1": {}, "VAC2": {}}))

	seen, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestFileStore_WritesJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_listings.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), map[string]struct{}{"b": {}, "a": {}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal(b, &ids))
	assert.Equal(t, []string{"a", "b"}, ids)

	// no temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
