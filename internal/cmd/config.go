package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/btrkeks/bookminer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View bookminer configuration",
	Long: `View bookminer configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at $XDG_CONFIG_HOME/bookminer/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// fileView is the on-disk shape of a Config. Durations are written the
// way viper reads them back ("10s", "5m0s").
type fileView struct {
	Anki struct {
		URL               string `yaml:"url"`
		Timeout           string `yaml:"timeout"`
		DiscoveryCacheTTL string `yaml:"discovery_cache_ttl"`
	} `yaml:"anki"`
	Editor struct {
		Command string `yaml:"command"`
	} `yaml:"editor"`
	Terminal struct {
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
	} `yaml:"terminal"`
	TUI struct {
		AltScreen bool   `yaml:"alt_screen"`
		ThemeFile string `yaml:"theme_file"`
	} `yaml:"tui"`
	Paths struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"paths"`
	Logging struct {
		Enabled    bool   `yaml:"enabled"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"logging"`
}

func marshalConfig(cfg *config.Config) ([]byte, error) {
	var v fileView
	v.Anki.URL = cfg.Anki.URL
	v.Anki.Timeout = cfg.Anki.Timeout.String()
	v.Anki.DiscoveryCacheTTL = cfg.Anki.DiscoveryCacheTTL.String()
	v.Editor.Command = cfg.Editor.Command
	v.Terminal.Command = cfg.Terminal.Command
	v.Terminal.Args = cfg.Terminal.Args
	if v.Terminal.Args == nil {
		v.Terminal.Args = []string{}
	}
	v.TUI.AltScreen = cfg.TUI.AltScreen
	v.TUI.ThemeFile = cfg.TUI.ThemeFile
	v.Paths.DataDir = cfg.Paths.DataDir
	v.Logging.Enabled = cfg.Logging.Enabled
	v.Logging.Level = cfg.Logging.Level
	v.Logging.MaxSizeMB = cfg.Logging.MaxSizeMB
	v.Logging.MaxBackups = cfg.Logging.MaxBackups
	return yaml.Marshal(&v)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	data, err := marshalConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	data, err := marshalConfig(config.Default())
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	header := "# bookminer configuration\n# Empty editor.command and terminal.command fall back to $EDITOR and $TERMINAL.\n\n"
	if err := os.WriteFile(configFile, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(cmd.OutOrStdout(), used)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}
