//go:build windows

package vfs

import "golang.org/x/sys/windows"

// Volumes enumerates drive roots ("A:\" .. "Z:\") in bitmask order. The
// roots keep the whole root string as their display name.
func (OS) Volumes() []Entry {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil
	}
	var vols []Entry
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := string(rune('A'+i)) + `:\`
		vols = append(vols, Entry{Name: root, Path: root, Kind: KindDir})
	}
	return vols
}
