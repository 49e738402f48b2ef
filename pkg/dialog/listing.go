package dialog

import (
	"sort"

	"pickd/pkg/vfs"
)

// sortListing orders directories before files, each group ascending by
// name. Entries of unknown kind sort with the files.
func sortListing(entries []vfs.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name < entries[j].Name
	})
}

// prependVolumes puts the backend's volume roots ahead of entries in
// enumeration order, leaving them unsorted.
func (d *Dialog) prependVolumes(entries []vfs.Entry) []vfs.Entry {
	if !d.showVolumes {
		return entries
	}
	lister, ok := d.backend.(vfs.VolumeLister)
	if !ok {
		return entries
	}
	vols := lister.Volumes()
	if len(vols) == 0 {
		return entries
	}
	return append(vols, entries...)
}

// completionNames projects entries into the automaton's name set.
// Directory names carry a trailing separator so completing one invites
// descending into it.
func (d *Dialog) completionNames(entries []vfs.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if e.IsDir() {
			name += d.sep
		}
		names = append(names, name)
	}
	return names
}

// entryAt finds the listing entry with the given path.
func entryAt(entries []vfs.Entry, path string) (vfs.Entry, bool) {
	for _, e := range entries {
		if e.Path == path {
			return e, true
		}
	}
	return vfs.Entry{}, false
}
