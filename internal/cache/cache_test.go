package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReturnsViewsForExistingCacheFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C.mft"), []byte("fake-mft-bytes"), 0o644))

	views, err := Open(dir, "C")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, byte('C'), views[0].DriveLetter)
	assert.Equal(t, []byte("fake-mft-bytes"), views[0].Data)
}

func TestOpenFailsWhenNoCacheFilesExist(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir, "Z")
	assert.Error(t, err)
}

func TestOpenSkipsDrivesWithNoCacheFileButSucceedsIfAnyMatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C.mft"), []byte("data"), 0o644))

	views, err := Open(dir, "C,D")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, byte('C'), views[0].DriveLetter)
}

func TestSyncRefusesToOverwriteExistingCacheFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "C.mft")
	require.NoError(t, os.WriteFile(existing, []byte("already here"), 0o644))

	err := Sync(context.Background(), dir, "C", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyCached)

	// The existing file must be untouched.
	data, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	assert.Equal(t, "already here", string(data))
}
