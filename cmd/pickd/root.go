package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pickd/internal/config"
	"pickd/internal/log"
	"pickd/internal/tui"
	"pickd/internal/watch"
	"pickd/pkg/dialog"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pickd",
		Short: "A file and folder picker for the terminal and desktop",
		Long: `
	'########::'####::'######::'##:::'##:'########::
	 ##.... ##:. ##::'##... ##: ##::'##:: ##.... ##:
	 ##:::: ##:: ##:: ##:::..:: ##:'##::: ##:::: ##:
	 ########::: ##:: ##::::::: #####:::: ##:::: ##:
	 ##.....:::: ##:: ##::::::: ##. ##::: ##:::: ##:
	 ##::::::::: ##:: ##::: ##: ##:. ##:: ##:::: ##:
	 ##::::::::'####:. ######:: ##::. ##: ########::
	:..:::::::::....:::......:::..::::..::........:::

Pickd opens a file picker dialog and prints what you chose, so any
script or tool gets a real picker without linking a UI toolkit.
		`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v. Using default settings.\n", configErr)
				cfg = config.New()
			}

			// Paths go to stdout; everything the logger says must stay
			// off it.
			opts := []log.Option{log.WithOutput(os.Stderr)}
			if cfg.Log.JSON {
				opts = append(opts, log.WithJSON())
			}
			if cfg.Log.File != "" {
				opts = append(opts, log.WithFile(cfg.Log.File))
			}
			log.Configure(opts...)
			log.SetDebug(debug || cfg.Log.Debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pickd/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewOpenCmd())
	rootCmd.AddCommand(NewSaveCmd())
	rootCmd.AddCommand(NewFolderCmd())
	rootCmd.AddCommand(NewGUICmd())

	return rootCmd
}

// pickerFlags collects the dialog flags shared by the picker commands.
type pickerFlags struct {
	start  string
	name   string
	globs  []string
	multi  bool
	hidden bool
	watch  bool
}

// dialogOptions layers the flags over the config file; flag options
// append after the config's, so flags win.
func dialogOptions(f pickerFlags) ([]dialog.Option, error) {
	opts, err := cfg.DialogOptions()
	if err != nil {
		return nil, err
	}
	if f.start != "" {
		opts = append(opts, dialog.WithStartPath(f.start))
	}
	if f.name != "" {
		opts = append(opts, dialog.WithDefaultFilename(f.name))
	}
	if f.multi {
		opts = append(opts, dialog.WithMultiSelect())
	}
	if f.hidden {
		opts = append(opts, dialog.WithShowHidden())
	}
	if len(f.globs) > 0 {
		filter, err := dialog.GlobFilter(f.globs...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dialog.WithFilter(filter), dialog.WithFilenameFilter(filter))
	}
	return opts, nil
}

// newWatcher builds the auto-refresh watcher when the config or the
// command's --watch flag asks for one. Watcher trouble is logged, never
// fatal: the picker still works without refresh.
func newWatcher(cmd *cobra.Command, f pickerFlags) *watch.Watcher {
	enabled := cfg.Watch.Enabled
	if cmd.Flags().Changed("watch") {
		enabled = f.watch
	}
	if !enabled {
		return nil
	}
	w, err := watch.New(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)
	if err != nil {
		log.LogError(err, "creating watcher failed")
		return nil
	}
	return w
}

// runPicker hosts a dialog of the given kind in the terminal and
// prints the outcome.
func runPicker(cmd *cobra.Command, kind dialog.Kind, f pickerFlags) error {
	opts, err := dialogOptions(f)
	if err != nil {
		return err
	}
	d := dialog.New(kind, opts...)

	w := newWatcher(cmd, f)
	if w != nil {
		defer w.Stop()
	}

	result, err := tui.Run(d, w)
	if err != nil {
		return err
	}
	return printResult(result.State, result.Path, result.Paths)
}

// printResult writes the confirmed paths to stdout, one per line, so
// the command composes in pipelines. A cancelled dialog prints nothing
// and exits nonzero.
func printResult(state dialog.State, path string, paths []string) error {
	if state != dialog.Selected {
		os.Exit(1)
	}
	if len(paths) > 0 {
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	}
	fmt.Println(path)
	return nil
}
