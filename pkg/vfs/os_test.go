package vfs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickd/internal/errors"
)

func seedTempTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "raw.bin"), []byte{0, 1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	return dir
}

func TestOSReadFolder(t *testing.T) {
	dir := seedTempTree(t)

	entries, err := OS{}.ReadFolder(dir, ReadOptions{ShowHidden: true})
	require.NoError(t, err)

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	require.Contains(t, byName, "sub")
	assert.True(t, byName["sub"].IsDir())
	assert.Equal(t, filepath.Join(dir, "sub"), byName["sub"].Path)

	require.Contains(t, byName, "report.txt")
	assert.True(t, byName["report.txt"].IsFile())
	assert.Equal(t, int64(5), byName["report.txt"].Size)
	assert.False(t, byName["report.txt"].ModTime.IsZero())
}

func TestOSReadFolderHidden(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dot-prefix hiding is disabled on windows")
	}
	dir := seedTempTree(t)

	entries, err := OS{}.ReadFolder(dir, ReadOptions{})
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name, "."), "hidden entry %q listed", e.Name)
	}
}

func TestOSReadFolderFilter(t *testing.T) {
	dir := seedTempTree(t)

	txtOnly := func(p string) bool { return filepath.Ext(p) == ".txt" }
	entries, err := OS{}.ReadFolder(dir, ReadOptions{NameFilter: txtOnly})
	require.NoError(t, err)

	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"sub", "report.txt"}, names)
}

func TestOSReadFolderMissing(t *testing.T) {
	_, err := OS{}.ReadFolder(filepath.Join(t.TempDir(), "ghost"), ReadOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestOSCreateDir(t *testing.T) {
	dir := t.TempDir()

	target := filepath.Join(dir, "fresh")
	require.NoError(t, OS{}.CreateDir(target))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	err = OS{}.CreateDir(target)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	err = OS{}.CreateDir(filepath.Join(dir, "missing", "nested"))
	assert.Error(t, err)
}

func TestOSRename(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "old.txt")
	to := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(from, []byte("content"), 0o644))

	require.NoError(t, OS{}.Rename(from, to))

	_, err := os.Stat(from)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	err = OS{}.Rename(filepath.Join(dir, "ghost"), filepath.Join(dir, "other"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
