// Package testutils collects small helpers shared by tests across the
// module.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pickd/pkg/vfs"
)

// PickerBackend returns an in-memory backend seeded with the tree most
// dialog and host tests navigate: two directories and a few text files
// under /work, one of them hidden.
func PickerBackend() *vfs.Memory {
	return vfs.NewMemory().
		AddDir("/work/docs").
		AddDir("/work/src").
		AddFile("/work/docs/readme.md", 512).
		AddFile("/work/notes.txt", 64).
		AddFile("/work/report.txt", 128).
		AddFile("/work/.hidden", 1)
}

// CreateTestFilesWithContent creates test files with specific content,
// making parent directories as needed
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTestDirs creates empty directories under dir
func CreateTestDirs(t *testing.T, dir string, names ...string) {
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
