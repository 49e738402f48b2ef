package vfs

import "time"

// EntryKind classifies a directory entry. KindUnknown means metadata could
// not be read; such entries are neither files nor directories and are
// treated as system entries.
type EntryKind int

const (
	KindUnknown EntryKind = iota
	KindFile
	KindDir
)

// Entry is one object surfaced by a listing: a file, a directory, or a
// synthetic volume root. Entries are plain values; a copy taken for a
// command stays valid after the listing it came from has been replaced.
type Entry struct {
	// Name is the display name. It is the base name of Path except for
	// volume roots, which keep the root string itself ("C:\", "/").
	Name string
	// Path is the absolute path in the backend's own syntax.
	Path string
	Kind EntryKind
	// Size and ModTime are display metadata; zero when unknown. Size is
	// only meaningful for files.
	Size    int64
	ModTime time.Time
	// Selected is owned by the dialog's selection model.
	Selected bool
}

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool { return e.Kind == KindFile }

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Kind == KindDir }
