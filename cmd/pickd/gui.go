package main

import (
	"github.com/spf13/cobra"

	"pickd/internal/errors"
	"pickd/internal/gui"
	"pickd/pkg/dialog"
)

// NewGUICmd creates the gui command
func NewGUICmd() *cobra.Command {
	var f pickerFlags

	cmd := &cobra.Command{
		Use:   "gui [open|save|folder]",
		Short: "Pick a path in a desktop window",
		Long:  `Open the picker in a desktop window instead of the terminal. The argument selects the dialog kind; the default is open.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.Available() {
				return errors.New("this build was compiled without GUI support")
			}

			kind := dialog.OpenFile
			if len(args) > 0 {
				switch args[0] {
				case "open":
					kind = dialog.OpenFile
				case "save":
					kind = dialog.SaveFile
				case "folder":
					kind = dialog.SelectFolder
				default:
					return errors.Newf("unknown dialog kind %q", args[0])
				}
			}

			opts, err := dialogOptions(f)
			if err != nil {
				return err
			}
			d := dialog.New(kind, opts...)

			w := newWatcher(cmd, f)
			if w != nil {
				defer w.Stop()
			}

			result, err := gui.Run(d, w)
			if err != nil {
				return err
			}
			return printResult(result.State, result.Path, result.Paths)
		},
	}

	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Directory to start in (default is the working directory)")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Suggested filename for save dialogs")
	cmd.Flags().StringArrayVarP(&f.globs, "glob", "g", nil, "Only list files matching this glob (repeatable)")
	cmd.Flags().BoolVarP(&f.multi, "multi", "m", false, "Allow picking several files")
	cmd.Flags().BoolVarP(&f.hidden, "hidden", "H", false, "Start with hidden files visible")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Refresh the listing when the directory changes")

	return cmd
}
