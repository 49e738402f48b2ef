package main

import (
	"github.com/spf13/cobra"

	"pickd/pkg/dialog"
)

// NewFolderCmd creates the folder command
func NewFolderCmd() *cobra.Command {
	var f pickerFlags

	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Pick a folder",
		Long:  `Open a folder picker in the terminal and print the chosen directory. Confirming without a selection picks the directory being shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, dialog.SelectFolder, f)
		},
	}

	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Directory to start in (default is the working directory)")
	cmd.Flags().BoolVarP(&f.hidden, "hidden", "H", false, "Start with hidden folders visible")

	return cmd
}
