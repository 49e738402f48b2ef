package dialog

// PathEdit returns the path text field contents.
func (d *Dialog) PathEdit() string { return d.pathEdit }

// SetPathEdit replaces the path edit with text after a host keystroke
// and runs filename completion. deleted marks the change as a
// deletion, which suppresses the extension step so removing characters
// never fights the completer. The returns bound the appended span
// [start, end) in bytes; hosts should render that span selected so the
// next keystroke overwrites it. start == end means nothing was
// appended.
func (d *Dialog) SetPathEdit(text string, deleted bool) (start, end int) {
	d.pathEdit = text
	segment := trailingSegment(d.sep, text)
	depth := pathDepth(d.sep, text)
	if d.completer.Stale(depth, segment) {
		source := text
		if segment != "" {
			source = text[:len(text)-len(segment)]
		}
		d.completer.Rebuild(depth, d.siblingNames(source))
	}
	start = len(text)
	end = start
	if deleted {
		return start, end
	}
	suffix, ok := d.completer.Extend(segment)
	if !ok || suffix == "" {
		return start, end
	}
	d.pathEdit = text + suffix
	return start, start + len(suffix)
}

// siblingNames lists dir formatted for the completion automaton. A
// failed read yields an empty set: completion goes quiet instead of
// surfacing errors mid-keystroke.
func (d *Dialog) siblingNames(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := d.backend.ReadFolder(dir, d.readOptions())
	if err != nil {
		return nil
	}
	sortListing(entries)
	return d.completionNames(entries)
}

// FilenameEdit returns the filename text field contents.
func (d *Dialog) FilenameEdit() string { return d.filenameEdit }

// SetFilenameEdit replaces the filename edit after a host keystroke.
// No completion runs here; only the path edit completes.
func (d *Dialog) SetFilenameEdit(text string) {
	d.filenameEdit = text
}
