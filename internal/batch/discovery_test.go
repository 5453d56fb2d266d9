package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte{}, 0o600))
	}
}

func TestDiscoverImageFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "4-西单-1.png", "10-国贸-1.jpg", "notes.txt", "sub/18-太平湖-1.png")

	files, err := discoverImageFiles([]string{dir}, false, "")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files[0], "10-国贸-1.jpg")
	assert.Contains(t, files[1], "4-西单-1.png")
}

func TestDiscoverImageFiles_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "4-西单-1.png", "sub/18-太平湖-1.png")

	files, err := discoverImageFiles([]string{dir}, true, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverImageFiles_RouteFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "18-太平湖-1.png", "18-亦庄-1.png", "1-四惠-1.png", "180-x-1.png")

	files, err := discoverImageFiles([]string{dir}, false, "18")
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, filepath.Base(f) == "18-太平湖-1.png" || filepath.Base(f) == "18-亦庄-1.png")
	}
}

func TestDiscoverImageFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "4-西单-1.jpeg")

	files, err := discoverImageFiles([]string{filepath.Join(dir, "4-西单-1.jpeg")}, false, "")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscoverImageFiles_MissingPath(t *testing.T) {
	_, err := discoverImageFiles([]string{"/nonexistent/dir"}, false, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}
