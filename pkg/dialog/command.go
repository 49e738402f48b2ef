package dialog

import (
	"fmt"
	"strings"

	"pickd/internal/errors"
	"pickd/internal/log"
	"pickd/pkg/vfs"
)

// Command is one user action collected by the host during a frame and
// applied by Show after rendering. At most one command is applied per
// frame.
type Command interface {
	isCommand()
}

// Cancel abandons the dialog.
type Cancel struct{}

// Refresh re-reads the cursor directory.
type Refresh struct{}

// UpDirectory moves the cursor to its parent directory. At a root it
// does nothing.
type UpDirectory struct{}

// ToggleHidden flips dot-file visibility and refreshes.
type ToggleHidden struct{}

// Select makes the entry at Path the single selection.
type Select struct {
	Path string
}

// Click applies a multi-select click on the listing entry at Index.
type Click struct {
	Index int
	Mod   ClickMod
}

// Activate opens the listing entry at Path: directories are navigated
// into, files confirm the dialog (OpenFile and SaveFile).
type Activate struct {
	Path string
}

// OpenPath resolves typed text from the path edit: a listable path is
// navigated into, an existing file is selected (and confirms an
// OpenFile dialog), anything else is merely selected.
type OpenPath struct {
	Path string
}

// OpenSelected navigates into a selected directory or confirms a
// selected file. In multi-select mode it confirms the flagged set.
type OpenSelected struct{}

// SubmitName resolves the filename edit against the cursor directory:
// an existing directory is navigated into; otherwise OpenFile confirms
// only an existing file and SaveFile confirms the synthesized path.
type SubmitName struct{}

// Folder confirms a SelectFolder dialog with the flagged directory, or
// the cursor when none is flagged.
type Folder struct{}

// Save confirms a SaveFile dialog with Name joined to the cursor. An
// empty Name falls back to the filename edit.
type Save struct {
	Name string
}

// CreateDir creates Name under the cursor. An empty Name falls back to
// the filename edit, then to the configured default.
type CreateDir struct {
	Name string
}

// Rename gives the selected file the name Name. An empty Name falls
// back to the filename edit.
type Rename struct {
	Name string
}

func (Cancel) isCommand()       {}
func (Refresh) isCommand()      {}
func (UpDirectory) isCommand()  {}
func (ToggleHidden) isCommand() {}
func (Select) isCommand()       {}
func (Click) isCommand()        {}
func (Activate) isCommand()     {}
func (OpenPath) isCommand()     {}
func (OpenSelected) isCommand() {}
func (SubmitName) isCommand()   {}
func (Folder) isCommand()       {}
func (Save) isCommand()         {}
func (CreateDir) isCommand()    {}
func (Rename) isCommand()       {}

func (d *Dialog) apply(cmd Command) {
	log.LogWithFields(log.F("command", fmt.Sprintf("%T", cmd))).Debug("applying dialog command")

	switch c := cmd.(type) {
	case Cancel:
		d.state = Cancelled

	case Refresh:
		d.refresh()

	case UpDirectory:
		d.upDirectory()

	case ToggleHidden:
		d.showHidden = !d.showHidden
		d.refresh()

	case Select:
		d.selectByPath(c.Path, vfs.KindUnknown)

	case Click:
		if d.multiSelect {
			d.anchor = applyClick(d.listing, d.anchor, c.Index, c.Mod)
		}

	case Activate:
		d.activate(c.Path)

	case OpenPath:
		d.openPath(c.Path)

	case OpenSelected:
		d.openSelected()

	case SubmitName:
		d.submitName()

	case Folder:
		d.confirmFolder()

	case Save:
		d.save(c.Name)

	case CreateDir:
		d.createDir(c.Name)

	case Rename:
		d.rename(c.Name)
	}
}

func (d *Dialog) upDirectory() {
	parent, ok := parentPath(d.sep, d.cursor)
	if !ok {
		return
	}
	d.cursor = parent
	d.refresh()
	// Leave the path edit ending in a separator so completion offers
	// the parent's children on the next keystroke.
	if !strings.HasSuffix(d.pathEdit, d.sep) {
		d.pathEdit += d.sep
	}
}

func (d *Dialog) activate(path string) {
	e, ok := entryAt(d.listing, path)
	if !ok {
		return
	}
	if e.IsDir() {
		d.SetPath(e.Path)
		return
	}
	if e.IsFile() && d.kind != SelectFolder {
		d.confirm(e)
	}
}

func (d *Dialog) openPath(path string) {
	if path == "" {
		return
	}
	_, err := d.backend.ReadFolder(path, d.readOptions())
	if err == nil {
		d.SetPath(path)
		return
	}
	if errors.IsNotADirectory(err) {
		e, ok := entryAt(d.listing, path)
		if !ok {
			e = vfs.Entry{Name: baseName(d.sep, path), Path: path, Kind: vfs.KindFile}
		}
		d.setSelected(e)
		if d.kind == OpenFile {
			d.confirm(e)
		}
		return
	}
	// Nothing at the typed path: keep it as the selection so the name
	// is mirrored, but confirm nothing and surface no error.
	d.selectByPath(path, vfs.KindUnknown)
}

func (d *Dialog) openSelected() {
	if d.multiSelect {
		if d.CanOpen() {
			d.state = Selected
		}
		return
	}
	if !d.hasSelected {
		return
	}
	if d.selected.IsDir() {
		d.SetPath(d.selected.Path)
		return
	}
	if d.selected.IsFile() && d.kind == OpenFile {
		d.confirm(d.selected)
	}
}

func (d *Dialog) submitName() {
	name := d.filenameEdit
	if name == "" {
		return
	}
	switch d.kind {
	case SelectFolder:
		d.confirmFolder()
	case OpenFile:
		target := joinPath(d.sep, d.cursor, name)
		_, err := d.backend.ReadFolder(target, d.readOptions())
		switch {
		case err == nil:
			d.SetPath(target)
		case errors.IsNotADirectory(err):
			d.confirm(vfs.Entry{Name: name, Path: target, Kind: vfs.KindFile})
		}
		// A name that resolves to nothing generates no action at all.
	case SaveFile:
		target := joinPath(d.sep, d.cursor, name)
		if _, err := d.backend.ReadFolder(target, d.readOptions()); err == nil {
			d.SetPath(target)
			return
		}
		d.save(name)
	}
}

func (d *Dialog) confirmFolder() {
	target := d.cursor
	if d.multiSelect {
		for _, e := range d.listing {
			if e.Selected && e.IsDir() {
				target = e.Path
				break
			}
		}
	} else if d.hasSelected && d.selected.IsDir() {
		target = d.selected.Path
	}
	d.confirm(vfs.Entry{Name: baseName(d.sep, target), Path: target, Kind: vfs.KindDir})
}

func (d *Dialog) save(name string) {
	if name == "" {
		name = d.filenameEdit
	}
	if name == "" || !d.acceptsFilename(name) {
		return
	}
	target := joinPath(d.sep, d.cursor, name)
	d.confirm(vfs.Entry{Name: name, Path: target, Kind: vfs.KindFile})
}

func (d *Dialog) createDir(name string) {
	if name == "" {
		name = d.filenameEdit
	}
	if name == "" {
		name = d.labels.NewFolderName
	}
	target := joinPath(d.sep, d.cursor, name)
	if err := d.backend.CreateDir(target); err != nil {
		log.LogError(err, "creating directory failed")
		return
	}
	log.LogWithFields(log.F("path", target)).Debug("directory created")
	d.refresh()
	d.selectByPath(target, vfs.KindDir)
}

func (d *Dialog) rename(name string) {
	if !d.hasSelected || !d.selected.IsFile() {
		return
	}
	if name == "" {
		name = d.filenameEdit
	}
	if name == "" || name == d.selected.Name {
		return
	}
	from := d.selected.Path
	to := siblingPath(d.sep, from, name)
	kind := d.selected.Kind
	if err := d.backend.Rename(from, to); err != nil {
		log.LogError(err, "renaming failed")
		return
	}
	log.LogWithFields(log.F("from", from), log.F("to", to)).Debug("entry renamed")
	d.refresh()
	d.selectByPath(to, kind)
}
