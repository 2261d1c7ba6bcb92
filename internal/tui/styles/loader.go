package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name
	Name string `yaml:"name"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors overrides the default palette. Empty entries keep the default.
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains the color overrides of a theme.
// Colors are hex (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary   string `yaml:"primary,omitempty"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Border    string `yaml:"border,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %q (supported: 1)", t.Version)
	}

	colors := []struct{ name, value string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range colors {
		if c.value != "" && !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}
	return nil
}

// ToPalette applies the theme's overrides to the default palette.
func (t *ThemeFile) ToPalette() Palette {
	p := DefaultPalette()
	p.Primary = colorOrDefault(t.Colors.Primary, p.Primary)
	p.Secondary = colorOrDefault(t.Colors.Secondary, p.Secondary)
	p.Warning = colorOrDefault(t.Colors.Warning, p.Warning)
	p.Error = colorOrDefault(t.Colors.Error, p.Error)
	p.Muted = colorOrDefault(t.Colors.Muted, p.Muted)
	p.Text = colorOrDefault(t.Colors.Text, p.Text)
	p.Border = colorOrDefault(t.Colors.Border, p.Border)
	return p
}

// colorOrDefault returns the color if non-empty, otherwise the default.
func colorOrDefault(color string, def lipgloss.Color) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return def
}

// Load returns the styles for the theme file at path, or the default styles
// when path is empty.
func Load(path string) (Styles, error) {
	if path == "" {
		return Default(), nil
	}
	theme, err := LoadThemeFile(path)
	if err != nil {
		return Styles{}, err
	}
	return New(theme.ToPalette()), nil
}
