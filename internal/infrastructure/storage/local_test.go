package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageStore(t *testing.T) {
	assets := filepath.Join(t.TempDir(), "assets")
	store, err := NewLocalStorage(assets, "/assets")
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "staged-cover.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o600))

	publicPath, err := store.Store(context.Background(), src, "staged-cover.png")
	require.NoError(t, err)
	assert.Equal(t, "/assets/staged-cover.png", publicPath)

	data, err := os.ReadFile(filepath.Join(assets, "staged-cover.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "staged file should be gone")
}

func TestLocalStorageRejectsPathNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/assets")
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../escape.png", "nested/cover.png"} {
		_, err := store.Store(context.Background(), "/does/not/matter", name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestLocalStorageMissingSource(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/assets")
	require.NoError(t, err)

	_, err = store.Store(context.Background(), filepath.Join(t.TempDir(), "gone.png"), "gone.png")
	require.Error(t, err)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpeg"), 0o600))

	require.NoError(t, copyFile(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	// destination exists: O_EXCL refuses to overwrite
	require.Error(t, copyFile(src, dst))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}
