package vfs

import (
	"os"
	"path/filepath"
	"runtime"
	"syscall"

	"pickd/internal/errors"
)

// OS is the Backend backed by the host filesystem.
type OS struct{}

// CreateDir creates a single directory level.
func (OS) CreateDir(path string) error {
	if err := os.Mkdir(path, 0755); err != nil {
		return wrapOSError("create directory failed", path, err)
	}
	return nil
}

// Rename moves a file or directory.
func (OS) Rename(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return wrapOSError("rename failed", from, err)
	}
	return nil
}

// ReadFolder lists the directory at path. Dot-name suppression follows
// Unix conventions and is skipped on Windows, where hidden files are an
// attribute rather than a naming rule.
func (OS) ReadFolder(path string, opts ReadOptions) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, wrapOSError("read folder failed", path, err)
	}
	if runtime.GOOS == "windows" {
		opts.ShowHidden = true
	}
	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		e := newOSEntry(path, de)
		if !keepEntry(e, opts) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// newOSEntry resolves one directory entry, following symlinks the way
// stat does. Entries whose metadata cannot be read stay KindUnknown.
func newOSEntry(dir string, de os.DirEntry) Entry {
	e := Entry{Name: de.Name(), Path: filepath.Join(dir, de.Name())}
	info, err := de.Info()
	if err == nil && info.Mode()&os.ModeSymlink != 0 {
		info, err = os.Stat(e.Path)
	}
	if err != nil {
		return e
	}
	switch {
	case info.IsDir():
		e.Kind = KindDir
		e.ModTime = info.ModTime()
	case info.Mode().IsRegular():
		e.Kind = KindFile
		e.Size = info.Size()
		e.ModTime = info.ModTime()
	}
	return e
}

// wrapOSError translates an os-level failure into the application error
// taxonomy so callers can test on kinds.
func wrapOSError(msg, path string, err error) error {
	kind := errors.Unknown
	switch {
	case os.IsNotExist(err):
		kind = errors.NotFound
	case os.IsExist(err):
		kind = errors.AlreadyExists
	case os.IsPermission(err):
		kind = errors.PermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		kind = errors.NotADirectory
	}
	return errors.NewPathError(msg, path, kind, err)
}
