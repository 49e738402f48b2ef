package dialog

import "pickd/pkg/vfs"

// ClickMod distinguishes the three multi-select click conventions.
type ClickMod int

const (
	// ClickPlain clears other flags and toggles the clicked entry.
	ClickPlain ClickMod = iota
	// ClickToggle flips the clicked entry's flag only (ctrl-click).
	ClickToggle
	// ClickRange flags the whole span between the anchor and the
	// clicked entry (shift-click).
	ClickRange
)

// applyClick mutates the Selected flags in entries for a click on
// index and returns the resulting anchor (-1 when cleared). A plain or
// toggle click that leaves the entry selected makes it the anchor; one
// that deselects it clears the anchor. A range click needs an existing
// anchor and keeps it.
func applyClick(entries []vfs.Entry, anchor, index int, mod ClickMod) int {
	if index < 0 || index >= len(entries) {
		return anchor
	}
	switch mod {
	case ClickPlain:
		was := entries[index].Selected
		for i := range entries {
			entries[i].Selected = false
		}
		entries[index].Selected = !was
		if entries[index].Selected {
			return index
		}
		return -1
	case ClickToggle:
		entries[index].Selected = !entries[index].Selected
		if entries[index].Selected {
			return index
		}
		return -1
	case ClickRange:
		if anchor < 0 || anchor >= len(entries) {
			return anchor
		}
		lo, hi := anchor, index
		if lo > hi {
			lo, hi = hi, lo
		}
		for i := lo; i <= hi; i++ {
			entries[i].Selected = true
		}
	}
	return anchor
}

// setSelected records e as the single selection and mirrors its name
// into the filename edit.
func (d *Dialog) setSelected(e vfs.Entry) {
	d.selected = e
	d.hasSelected = true
	d.filenameEdit = e.Name
}

// clearSelection drops the single selection, all multi-select flags,
// and the anchor, and resets the filename edit to its configured
// default.
func (d *Dialog) clearSelection() {
	d.selected = vfs.Entry{}
	d.hasSelected = false
	d.filenameEdit = d.defaultFilename
	d.anchor = -1
	for i := range d.listing {
		d.listing[i].Selected = false
	}
}

// selectByPath selects the listing entry at path, falling back to a
// synthesized entry of the given kind when the path is not listed
// (created or renamed into a filtered-out name).
func (d *Dialog) selectByPath(path string, kind vfs.EntryKind) {
	if e, ok := entryAt(d.listing, path); ok {
		d.setSelected(e)
		return
	}
	d.setSelected(vfs.Entry{Name: baseName(d.sep, path), Path: path, Kind: kind})
}
