package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is used for the config, data and log locations.
const AppName = "bookminer"

// Config represents the complete bookminer configuration
type Config struct {
	Anki     AnkiConfig     `mapstructure:"anki"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnkiConfig controls how the AnkiConnect endpoint is reached
type AnkiConfig struct {
	// URL is the AnkiConnect endpoint (default: http://localhost:8765)
	URL string `mapstructure:"url"`
	// Timeout bounds a single request/response exchange (default: 10s)
	Timeout time.Duration `mapstructure:"timeout"`
	// DiscoveryCacheTTL is how long deck, note type and field lists are
	// reused within a session (0 disables caching, default: 5m)
	DiscoveryCacheTTL time.Duration `mapstructure:"discovery_cache_ttl"`
}

// EditorConfig selects the external editor
type EditorConfig struct {
	// Command is the editor binary. Empty means $EDITOR.
	Command string `mapstructure:"command"`
}

// TerminalConfig selects the terminal emulator the launcher spawns
type TerminalConfig struct {
	// Command is the terminal binary. Empty means $TERMINAL.
	Command string `mapstructure:"command"`
	// Args are inserted before "-e" when spawning the terminal
	Args []string `mapstructure:"args"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// AltScreen runs every prompt in the alternate screen buffer (default: true)
	AltScreen bool `mapstructure:"alt_screen"`
	// ThemeFile is an optional YAML file overriding the default colors
	ThemeFile string `mapstructure:"theme_file"`
}

// PathsConfig controls where persistent data lives
type PathsConfig struct {
	// DataDir holds the tags file, the cached note configuration, the
	// submission journal and the log. Empty means $XDG_DATA_HOME/bookminer.
	DataDir string `mapstructure:"data_dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Anki: AnkiConfig{
			URL:               "http://localhost:8765",
			Timeout:           10 * time.Second,
			DiscoveryCacheTTL: 5 * time.Minute,
		},
		Editor: EditorConfig{
			Command: "", // Empty means $EDITOR
		},
		Terminal: TerminalConfig{
			Command: "", // Empty means $TERMINAL
			Args:    []string{},
		},
		TUI: TUIConfig{
			AltScreen: true,
			ThemeFile: "",
		},
		Paths: PathsConfig{
			DataDir: "", // Empty means $XDG_DATA_HOME/bookminer
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Anki defaults
	viper.SetDefault("anki.url", defaults.Anki.URL)
	viper.SetDefault("anki.timeout", defaults.Anki.Timeout)
	viper.SetDefault("anki.discovery_cache_ttl", defaults.Anki.DiscoveryCacheTTL)

	// Editor and terminal defaults
	viper.SetDefault("editor.command", defaults.Editor.Command)
	viper.SetDefault("terminal.command", defaults.Terminal.Command)
	viper.SetDefault("terminal.args", defaults.Terminal.Args)

	// TUI defaults
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)

	// Paths defaults
	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// EditorCommand returns the configured editor, falling back to $EDITOR.
func (c *Config) EditorCommand() (string, error) {
	if cmd := strings.TrimSpace(c.Editor.Command); cmd != "" {
		return cmd, nil
	}
	if cmd := strings.TrimSpace(os.Getenv("EDITOR")); cmd != "" {
		return cmd, nil
	}
	return "", ValidationError{
		Field:   "editor.command",
		Value:   "",
		Message: "no editor configured; set editor.command or export EDITOR",
	}
}

// TerminalCommand returns the configured terminal, falling back to $TERMINAL.
func (c *Config) TerminalCommand() (string, error) {
	if cmd := strings.TrimSpace(c.Terminal.Command); cmd != "" {
		return cmd, nil
	}
	if cmd := strings.TrimSpace(os.Getenv("TERMINAL")); cmd != "" {
		return cmd, nil
	}
	return "", ValidationError{
		Field:   "terminal.command",
		Value:   "",
		Message: "no terminal configured; set terminal.command or export TERMINAL",
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
