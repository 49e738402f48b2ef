package main

import (
	"github.com/spf13/cobra"

	"pickd/pkg/dialog"
)

// NewSaveCmd creates the save command
func NewSaveCmd() *cobra.Command {
	var f pickerFlags

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Pick a destination to save to",
		Long:  `Open a save dialog in the terminal and print the chosen path. The path may name a file that does not exist yet.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, dialog.SaveFile, f)
		},
	}

	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Directory to start in (default is the working directory)")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Suggested filename")
	cmd.Flags().StringArrayVarP(&f.globs, "glob", "g", nil, "Only accept filenames matching this glob (repeatable)")
	cmd.Flags().BoolVarP(&f.hidden, "hidden", "H", false, "Start with hidden files visible")

	return cmd
}
