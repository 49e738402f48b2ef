package gui

import "pickd/pkg/dialog"

// Result is what a picker run produced. Paths carries the multi-select
// set; Path the single confirmed path.
type Result struct {
	State dialog.State
	Path  string
	Paths []string
}
