// Package dialog implements an embeddable file and folder picker. The
// Dialog owns navigation, listing, selection, filename completion, and
// confirmation; the host owns rendering and input. Each frame the host
// draws from the Dialog's accessors, queues at most one Command on a
// Frame, and calls Show to apply it. Storage access goes through a
// pluggable vfs.Backend, so the picker runs against the real
// filesystem, an archive, or an in-memory tree without changing hosts.
package dialog

import (
	"os"

	"pickd/internal/errors"
	"pickd/internal/log"
	"pickd/pkg/complete"
	"pickd/pkg/vfs"
)

// Kind selects what the dialog picks.
type Kind int

const (
	// SelectFolder picks a directory; files are never listed.
	SelectFolder Kind = iota
	// OpenFile picks an existing file.
	OpenFile
	// SaveFile picks a target name, existing or not.
	SaveFile
)

func (k Kind) String() string {
	switch k {
	case OpenFile:
		return "open-file"
	case SaveFile:
		return "save-file"
	default:
		return "select-folder"
	}
}

// State is the dialog's lifecycle position.
type State int

const (
	// Closed dialogs render nothing and ignore commands.
	Closed State = iota
	// Open dialogs are visible and accept one command per frame.
	Open
	// Cancelled is reported for a single frame after the user backed
	// out; the next Show returns Closed.
	Cancelled
	// Selected is reported for a single frame once a result is
	// confirmed; the next Show returns Closed.
	Selected
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Cancelled:
		return "cancelled"
	case Selected:
		return "selected"
	default:
		return "closed"
	}
}

// Frame collects what the host gathered while rendering one frame.
// The zero value is ready to use; make a fresh one each frame.
type Frame struct {
	cmd    Command
	queued bool
	closed bool
}

// Queue records cmd as the frame's command. Only the first command
// queued within a frame is kept.
func (f *Frame) Queue(cmd Command) {
	if f.queued || cmd == nil {
		return
	}
	f.cmd = cmd
	f.queued = true
}

// CloseWindow records that the host destroyed or hid the dialog's
// window this frame.
func (f *Frame) CloseWindow() {
	f.closed = true
}

// Dialog is a file picker controller. Construct with New, call Open,
// then Show once per frame. Dialogs are not safe for concurrent use;
// drive one from a single goroutine.
type Dialog struct {
	kind  Kind
	state State

	backend vfs.Backend
	sep     string

	multiSelect   bool
	showHidden    bool
	showSystem    bool
	showVolumes   bool
	showRename    bool
	showNewFolder bool
	resizable     bool
	keepOnTop     bool
	defaultSize   [2]float32
	position      *[2]float32
	anchored      bool
	anchorAt      Anchor
	anchorOffset  [2]float32
	labels        Labels

	nameFilter      func(string) bool
	filenameFilter  func(string) bool
	defaultFilename string

	cursor  string
	listing []vfs.Entry
	listErr error

	selected    vfs.Entry
	hasSelected bool
	anchor      int

	pathEdit     string
	filenameEdit string
	completer    *complete.Completer
}

// New builds a dialog of the given kind. Without WithStartPath the
// dialog opens at the process working directory.
func New(kind Kind, opts ...Option) *Dialog {
	d := &Dialog{
		kind:          kind,
		state:         Closed,
		backend:       vfs.OS{},
		showVolumes:   true,
		showRename:    true,
		showNewFolder: true,
		resizable:     true,
		defaultSize:   [2]float32{512, 512},
		labels:        DefaultLabels(),
		anchor:        -1,
		completer:     complete.NewCompleter(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.sep = vfs.SeparatorFor(d.backend)
	if d.cursor == "" {
		if wd, err := os.Getwd(); err == nil {
			d.cursor = wd
		} else {
			d.cursor = d.sep
		}
	} else if _, err := d.backend.ReadFolder(d.cursor, vfs.ReadOptions{}); errors.IsNotADirectory(err) {
		// A file start path opens the dialog in the file's parent
		// directory with the file's name pre-filled.
		if d.kind != SelectFolder && d.defaultFilename == "" {
			d.defaultFilename = baseName(d.sep, d.cursor)
		}
		if parent, ok := parentPath(d.sep, d.cursor); ok {
			d.cursor = parent
		}
	}
	d.filenameEdit = d.defaultFilename
	if d.kind == SelectFolder {
		// Only directories are ever listed when picking a folder.
		d.nameFilter = func(string) bool { return false }
	}
	return d
}

// Open makes the dialog visible and loads the cursor directory. The
// host should call Show every frame afterwards.
func (d *Dialog) Open() {
	log.LogWithFields(log.F("kind", d.kind), log.F("path", d.cursor)).Debug("opening dialog")
	d.state = Open
	d.refresh()
}

// Show advances the dialog by one frame. The command queued on f, if
// any, is applied first; a window close reported the same frame then
// cancels a still-open dialog. Terminal states are visible for exactly
// one frame: the following Show reports Closed. Hosts must render from
// the accessors before calling Show, so every frame is drawn from the
// state preceding its own command. A nil frame just advances the
// state machine.
func (d *Dialog) Show(f *Frame) State {
	switch d.state {
	case Open:
		if f != nil && f.queued {
			d.apply(f.cmd)
		}
		if d.state == Open && f != nil && f.closed {
			d.state = Cancelled
		}
	default:
		d.state = Closed
	}
	return d.state
}

// SetPath navigates to path and refreshes. Hosts may call this
// directly for programmatic navigation.
func (d *Dialog) SetPath(path string) {
	d.cursor = path
	d.refresh()
}

// refresh re-reads the cursor directory, replacing the listing
// wholesale. Selection, the path edit, and the completion automaton
// all reset to the cursor. A read failure is retained for display and
// cleared by the next successful refresh.
func (d *Dialog) refresh() {
	entries, err := d.backend.ReadFolder(d.cursor, d.readOptions())
	if err != nil {
		log.LogWithError(err).Warn("listing directory failed")
		d.listErr = err
		d.listing = nil
		d.completer.Rebuild(pathDepth(d.sep, d.cursor), nil)
	} else {
		d.listErr = nil
		sortListing(entries)
		d.completer.Rebuild(pathDepth(d.sep, d.cursor), d.completionNames(entries))
		d.listing = d.prependVolumes(entries)
	}
	d.clearSelection()
	d.pathEdit = d.cursor
}

func (d *Dialog) confirm(e vfs.Entry) {
	d.selected = e
	d.hasSelected = true
	d.state = Selected
	log.LogWithFields(log.F("path", e.Path)).Debug("dialog confirmed")
}

func (d *Dialog) readOptions() vfs.ReadOptions {
	return vfs.ReadOptions{
		ShowSystem: d.showSystem,
		ShowHidden: d.showHidden,
		NameFilter: d.nameFilter,
	}
}

func (d *Dialog) acceptsFilename(name string) bool {
	return d.filenameFilter == nil || d.filenameFilter(name)
}

// State returns the dialog's lifecycle position.
func (d *Dialog) State() State { return d.state }

// Kind returns what the dialog picks.
func (d *Dialog) Kind() Kind { return d.kind }

// Directory returns the cursor directory the listing was read from.
func (d *Dialog) Directory() string { return d.cursor }

// HasParent reports whether UpDirectory would move anywhere.
func (d *Dialog) HasParent() bool {
	_, ok := parentPath(d.sep, d.cursor)
	return ok
}

// Entries returns the current listing: volume roots first (when
// enabled), then directories, then files. The slice is owned by the
// dialog; hosts render from it and must not modify it.
func (d *Dialog) Entries() []vfs.Entry { return d.listing }

// ListError returns the retained listing failure, shown by hosts in
// place of the file list. Nil after every successful refresh.
func (d *Dialog) ListError() error { return d.listErr }

// Selected returns the current single selection. After confirmation it
// holds the result.
func (d *Dialog) Selected() (vfs.Entry, bool) {
	return d.selected, d.hasSelected
}

// Path returns the confirmed path. It is meaningful once State
// reports Selected.
func (d *Dialog) Path() (string, bool) {
	if !d.hasSelected {
		return "", false
	}
	return d.selected.Path, true
}

// Selection returns the flagged multi-select paths, in listing order,
// restricted to names the filename filter accepts.
func (d *Dialog) Selection() []string {
	var out []string
	for _, e := range d.listing {
		if e.Selected && d.acceptsFilename(e.Name) {
			out = append(out, e.Path)
		}
	}
	return out
}

// MultiSelect reports whether the dialog flags multiple entries.
func (d *Dialog) MultiSelect() bool { return d.multiSelect }

// ShowHidden reports the current dot-file visibility, for rendering
// the toggle.
func (d *Dialog) ShowHidden() bool { return d.showHidden }

// ShowRenameButton reports whether the host should offer renaming.
func (d *Dialog) ShowRenameButton() bool { return d.showRename }

// ShowNewFolderButton reports whether the host should offer directory
// creation.
func (d *Dialog) ShowNewFolderButton() bool { return d.showNewFolder }

// Resizable reports whether the host window may be resized.
func (d *Dialog) Resizable() bool { return d.resizable }

// KeepOnTop reports whether the host window should stay above others.
func (d *Dialog) KeepOnTop() bool { return d.keepOnTop }

// DefaultSize returns the host window's initial content size.
func (d *Dialog) DefaultSize() (w, h float32) {
	return d.defaultSize[0], d.defaultSize[1]
}

// Position returns the fixed initial window position, if one was
// configured.
func (d *Dialog) Position() (x, y float32, ok bool) {
	if d.position == nil {
		return 0, 0, false
	}
	return d.position[0], d.position[1], true
}

// Anchor returns the configured screen anchor and offset, if any.
func (d *Dialog) Anchor() (a Anchor, dx, dy float32, ok bool) {
	if !d.anchored {
		return 0, 0, 0, false
	}
	return d.anchorAt, d.anchorOffset[0], d.anchorOffset[1], true
}

// Labels returns the dialog's display strings.
func (d *Dialog) Labels() Labels { return d.labels }
