package config

import (
	"os"
	"path/filepath"

	"pickd/internal/errors"
	"pickd/pkg/dialog"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration structure. It collects the
// dialog defaults, window hints, watcher settings, and label overrides
// the pickd CLI applies to every dialog it opens.
type Config struct {
	Dialog struct {
		Start           string   `yaml:"start"`            // Starting directory (or file)
		MultiSelect     bool     `yaml:"multi_select"`     // Allow flagging several entries
		ShowHidden      bool     `yaml:"show_hidden"`      // List dot-prefixed names
		ShowSystem      bool     `yaml:"show_system"`      // List metadata-unknown entries
		VolumeRoots     bool     `yaml:"volume_roots"`     // Prepend drive/volume roots
		DefaultFilename string   `yaml:"default_filename"` // Prefilled save-as name
		Filters         []string `yaml:"filters"`          // Glob patterns for listable names
	} `yaml:"dialog"`
	Window struct {
		Width     float32 `yaml:"width"`       // Initial content width
		Height    float32 `yaml:"height"`      // Initial content height
		Resizable bool    `yaml:"resizable"`   // Window may be resized
		KeepOnTop bool    `yaml:"keep_on_top"` // Window stays above others
	} `yaml:"window"`
	Watch struct {
		Enabled    bool `yaml:"enabled"`     // Auto-refresh on directory changes
		DebounceMS int  `yaml:"debounce_ms"` // Quiet period before a refresh fires
	} `yaml:"watch"`
	Log struct {
		Debug bool   `yaml:"debug"` // Enable debug-level logging
		JSON  bool   `yaml:"json"`  // Emit JSON log lines
		File  string `yaml:"file"`  // Optional log file path
	} `yaml:"log"`
	// Labels override the built-in dialog strings; empty fields keep the
	// defaults.
	Labels struct {
		TitleSelectFolder  string `yaml:"title_select_folder"`
		TitleOpenFile      string `yaml:"title_open_file"`
		TitleSaveFile      string `yaml:"title_save_file"`
		DirIcon            string `yaml:"dir_icon"`
		FileIcon           string `yaml:"file_icon"`
		ParentButton       string `yaml:"parent_button"`
		RefreshButton      string `yaml:"refresh_button"`
		NewFolderButton    string `yaml:"new_folder_button"`
		RenameButton       string `yaml:"rename_button"`
		OpenButton         string `yaml:"open_button"`
		SaveButton         string `yaml:"save_button"`
		CancelButton       string `yaml:"cancel_button"`
		ShowHiddenCheckbox string `yaml:"show_hidden_checkbox"`
		FileFieldLabel     string `yaml:"file_field_label"`
		NewFolderName      string `yaml:"new_folder_name"`
	} `yaml:"labels"`
}

// LoadConfig loads configuration from the default location
// (~/.config/pickd/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "pickd", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path. A
// missing file yields the default configuration; fields absent from the
// file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "reading config file failed")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("parsing config file failed", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Dialog.VolumeRoots = true
	cfg.Window.Width = 512
	cfg.Window.Height = 512
	cfg.Window.Resizable = true
	cfg.Watch.DebounceMS = 250

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file. It creates
// parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating config directory failed")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshalling config failed")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file failed")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if _, err := dialog.GlobFilter(c.Dialog.Filters...); err != nil {
		return errors.NewConfigError("invalid filter list", "dialog.filters", errors.InvalidConfig, err)
	}

	if c.Window.Width < 0 || c.Window.Height < 0 {
		return errors.NewConfigError("window size must not be negative", "window", errors.InvalidConfig, nil)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.NewConfigError("debounce must not be negative", "watch.debounce_ms", errors.InvalidConfig, nil)
	}

	return nil
}

// DialogOptions converts the configuration into construction options
// for a dialog. Unset fields contribute nothing, so command-line flags
// applied afterwards win.
func (c *Config) DialogOptions() ([]dialog.Option, error) {
	var opts []dialog.Option

	if c.Dialog.Start != "" {
		opts = append(opts, dialog.WithStartPath(c.Dialog.Start))
	}
	if c.Dialog.MultiSelect {
		opts = append(opts, dialog.WithMultiSelect())
	}
	if c.Dialog.ShowHidden {
		opts = append(opts, dialog.WithShowHidden())
	}
	if c.Dialog.ShowSystem {
		opts = append(opts, dialog.WithShowSystem())
	}
	if !c.Dialog.VolumeRoots {
		opts = append(opts, dialog.WithoutVolumeRoots())
	}
	if c.Dialog.DefaultFilename != "" {
		opts = append(opts, dialog.WithDefaultFilename(c.Dialog.DefaultFilename))
	}
	if len(c.Dialog.Filters) > 0 {
		filter, err := dialog.GlobFilter(c.Dialog.Filters...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dialog.WithFilter(filter), dialog.WithFilenameFilter(filter))
	}

	if c.Window.Width > 0 && c.Window.Height > 0 {
		opts = append(opts, dialog.WithDefaultSize(c.Window.Width, c.Window.Height))
	}
	if !c.Window.Resizable {
		opts = append(opts, dialog.WithoutResize())
	}
	if c.Window.KeepOnTop {
		opts = append(opts, dialog.WithKeepOnTop())
	}

	opts = append(opts, dialog.WithLabels(c.dialogLabels()))

	return opts, nil
}

func (c *Config) dialogLabels() dialog.Labels {
	return dialog.Labels{
		TitleSelectFolder:  c.Labels.TitleSelectFolder,
		TitleOpenFile:      c.Labels.TitleOpenFile,
		TitleSaveFile:      c.Labels.TitleSaveFile,
		DirIcon:            c.Labels.DirIcon,
		FileIcon:           c.Labels.FileIcon,
		ParentButton:       c.Labels.ParentButton,
		RefreshButton:      c.Labels.RefreshButton,
		NewFolderButton:    c.Labels.NewFolderButton,
		RenameButton:       c.Labels.RenameButton,
		OpenButton:         c.Labels.OpenButton,
		SaveButton:         c.Labels.SaveButton,
		CancelButton:       c.Labels.CancelButton,
		ShowHiddenCheckbox: c.Labels.ShowHiddenCheckbox,
		FileFieldLabel:     c.Labels.FileFieldLabel,
		NewFolderName:      c.Labels.NewFolderName,
	}
}
