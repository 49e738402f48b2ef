package dialog

// CanOpen reports whether the open action is currently valid. In
// single-select mode a file must be selected; in multi-select mode at
// least one flagged entry must pass the filename filter.
func (d *Dialog) CanOpen() bool {
	if d.multiSelect {
		for _, e := range d.listing {
			if e.Selected && d.acceptsFilename(e.Name) {
				return true
			}
		}
		return false
	}
	return d.hasSelected && d.selected.IsFile()
}

// CanSave reports whether the save action is currently valid: the
// filename edit is non-empty and passes the filename filter.
func (d *Dialog) CanSave() bool {
	return d.filenameEdit != "" && d.acceptsFilename(d.filenameEdit)
}

// CanRename reports whether the rename action is currently valid: a
// file is selected and the filename edit holds a different, non-empty
// name.
func (d *Dialog) CanRename() bool {
	if !d.hasSelected || !d.selected.IsFile() {
		return false
	}
	return d.filenameEdit != "" && d.filenameEdit != d.selected.Name
}

// CanPickFolder reports whether the SelectFolder confirm action is
// currently valid: nothing is selected, or the selection is a
// directory.
func (d *Dialog) CanPickFolder() bool {
	return !d.hasSelected || d.selected.IsDir()
}
