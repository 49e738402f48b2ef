// Package vfs defines the storage backend contract the dialog controller
// browses through, together with the two bundled implementations: OS for
// the host filesystem and Memory for tests and demos.
package vfs

import (
	"os"
	"strings"
)

// ReadOptions controls which entries ReadFolder returns.
type ReadOptions struct {
	// ShowSystem includes entries whose metadata could not be read
	// (KindUnknown).
	ShowSystem bool
	// ShowHidden includes dot-prefixed names.
	ShowHidden bool
	// NameFilter accepts or rejects non-directory entries by path. A nil
	// filter accepts everything. Directories are never filtered so
	// navigation is never blocked.
	NameFilter func(path string) bool
}

// Backend is the pluggable storage capability set the dialog depends on.
// All calls are synchronous; implementations are expected to be fast.
type Backend interface {
	// CreateDir creates exactly one directory level. It never creates
	// intermediate parents.
	CreateDir(path string) error
	// Rename moves from to to. It fails when from does not exist or to's
	// parent does not exist; overwrite behavior at to is backend-defined.
	Rename(from, to string) error
	// ReadFolder returns the unordered set of entries directly contained
	// in path, filtered per opts.
	ReadFolder(path string, opts ReadOptions) ([]Entry, error)
}

// VolumeLister is implemented by backends that can enumerate platform
// volume roots. The roots are surfaced ahead of listings in enumeration
// order, unsorted.
type VolumeLister interface {
	Volumes() []Entry
}

// Separated is implemented by backends whose path separator differs from
// the host's.
type Separated interface {
	Separator() string
}

// SeparatorFor returns b's path separator, defaulting to the host's.
func SeparatorFor(b Backend) string {
	if s, ok := b.(Separated); ok {
		return s.Separator()
	}
	return string(os.PathSeparator)
}

// keepEntry applies the ReadOptions rules shared by all backends:
// metadata-unknown entries are system entries, name filters see only
// non-directories, and dot-prefixed names count as hidden.
func keepEntry(e Entry, opts ReadOptions) bool {
	if !e.IsDir() {
		if !opts.ShowSystem && !e.IsFile() {
			return false
		}
		if opts.NameFilter != nil && !opts.NameFilter(e.Path) {
			return false
		}
	}
	if !opts.ShowHidden && strings.HasPrefix(e.Name, ".") {
		return false
	}
	return true
}
