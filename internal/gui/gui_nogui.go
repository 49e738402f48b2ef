//go:build nogui
// +build nogui

package gui

import (
	"pickd/internal/errors"
	"pickd/internal/watch"
	"pickd/pkg/dialog"
)

// Available reports whether this build includes the GUI.
func Available() bool { return false }

// Run is a stub for builds with the GUI disabled.
func Run(d *dialog.Dialog, w *watch.Watcher) (Result, error) {
	return Result{}, errors.New("GUI not available in this build")
}
