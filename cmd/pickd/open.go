package main

import (
	"github.com/spf13/cobra"

	"pickd/pkg/dialog"
)

// NewOpenCmd creates the open command
func NewOpenCmd() *cobra.Command {
	var f pickerFlags

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Pick an existing file",
		Long:  `Open a file picker in the terminal and print the chosen path. With --multi, every marked file is printed on its own line.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, dialog.OpenFile, f)
		},
	}

	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Directory to start in (default is the working directory)")
	cmd.Flags().StringArrayVarP(&f.globs, "glob", "g", nil, "Only list files matching this glob (repeatable)")
	cmd.Flags().BoolVarP(&f.multi, "multi", "m", false, "Allow picking several files")
	cmd.Flags().BoolVarP(&f.hidden, "hidden", "H", false, "Start with hidden files visible")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Refresh the listing when the directory changes")

	return cmd
}
