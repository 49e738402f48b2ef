package dialog

import "pickd/pkg/vfs"

// Anchor names the nine screen positions a host window can be pinned
// to.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// Option configures a Dialog at construction time.
type Option func(*Dialog)

// WithStartPath opens the dialog at path instead of the process
// working directory.
func WithStartPath(path string) Option {
	return func(d *Dialog) { d.cursor = path }
}

// WithDefaultFilename prefills the filename edit, typically to suggest
// a save-as name. The name comes back after every refresh until the
// user selects an entry or types over it.
func WithDefaultFilename(name string) Option {
	return func(d *Dialog) { d.defaultFilename = name }
}

// WithBackend replaces the real filesystem with b.
func WithBackend(b vfs.Backend) Option {
	return func(d *Dialog) { d.backend = b }
}

// WithMultiSelect lets several entries be flagged at once.
func WithMultiSelect() Option {
	return func(d *Dialog) { d.multiSelect = true }
}

// WithShowHidden starts with dot-prefixed names visible.
func WithShowHidden() Option {
	return func(d *Dialog) { d.showHidden = true }
}

// WithShowSystem lists entries whose metadata cannot be read.
func WithShowSystem() Option {
	return func(d *Dialog) { d.showSystem = true }
}

// WithKeepOnTop asks the host to keep the dialog window above others.
func WithKeepOnTop() Option {
	return func(d *Dialog) { d.keepOnTop = true }
}

// WithoutResize asks the host for a fixed-size window.
func WithoutResize() Option {
	return func(d *Dialog) { d.resizable = false }
}

// WithoutRenameButton hides the rename action.
func WithoutRenameButton() Option {
	return func(d *Dialog) { d.showRename = false }
}

// WithoutNewFolderButton hides the create-directory action.
func WithoutNewFolderButton() Option {
	return func(d *Dialog) { d.showNewFolder = false }
}

// WithoutVolumeRoots suppresses the volume roots the backend would
// otherwise prepend to every listing.
func WithoutVolumeRoots() Option {
	return func(d *Dialog) { d.showVolumes = false }
}

// WithFilter keeps only non-directory entries whose path satisfies fn.
// Directories are always listed. SelectFolder dialogs override this
// with a reject-all filter.
func WithFilter(fn func(path string) bool) Option {
	return func(d *Dialog) { d.nameFilter = fn }
}

// WithFilenameFilter gates typed names: CanSave and multi-select
// CanOpen only accept names satisfying fn.
func WithFilenameFilter(fn func(name string) bool) Option {
	return func(d *Dialog) { d.filenameFilter = fn }
}

// WithDefaultSize sets the host window's initial content size.
func WithDefaultSize(w, h float32) Option {
	return func(d *Dialog) { d.defaultSize = [2]float32{w, h} }
}

// WithPosition fixes the host window's initial position.
func WithPosition(x, y float32) Option {
	return func(d *Dialog) {
		d.position = &[2]float32{x, y}
	}
}

// WithAnchor pins the host window to a screen anchor plus offset.
func WithAnchor(a Anchor, dx, dy float32) Option {
	return func(d *Dialog) {
		d.anchored = true
		d.anchorAt = a
		d.anchorOffset = [2]float32{dx, dy}
	}
}

// WithLabels overlays the built-in strings with every non-empty field
// of l.
func WithLabels(l Labels) Option {
	return func(d *Dialog) { d.labels = mergeLabels(d.labels, l) }
}

func mergeLabels(base, over Labels) Labels {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&base.TitleSelectFolder, over.TitleSelectFolder)
	merge(&base.TitleOpenFile, over.TitleOpenFile)
	merge(&base.TitleSaveFile, over.TitleSaveFile)
	merge(&base.DirIcon, over.DirIcon)
	merge(&base.FileIcon, over.FileIcon)
	merge(&base.ParentButton, over.ParentButton)
	merge(&base.RefreshButton, over.RefreshButton)
	merge(&base.NewFolderButton, over.NewFolderButton)
	merge(&base.RenameButton, over.RenameButton)
	merge(&base.OpenButton, over.OpenButton)
	merge(&base.SaveButton, over.SaveButton)
	merge(&base.CancelButton, over.CancelButton)
	merge(&base.ShowHiddenCheckbox, over.ShowHiddenCheckbox)
	merge(&base.FileFieldLabel, over.FileFieldLabel)
	merge(&base.NewFolderName, over.NewFolderName)
	return base
}
