//go:build !windows

package vfs

// Volumes reports no volume roots; drive enumeration is a Windows notion.
func (OS) Volumes() []Entry { return nil }
