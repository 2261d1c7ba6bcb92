// Package styles holds the colors and lipgloss styles of the prompts.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the prompts are drawn with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color
}

// DefaultPalette returns the built-in colors. All meet WCAG AA contrast on
// dark backgrounds.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray
	}
}

// Styles are the rendered styles of every prompt element.
type Styles struct {
	Title          lipgloss.Style
	Cursor         lipgloss.Style
	Item           lipgloss.Style
	ActiveItem     lipgloss.Style
	Checked        lipgloss.Style
	Unchecked      lipgloss.Style
	Notice         lipgloss.Style
	ErrorNotice    lipgloss.Style
	Help           lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
	Box            lipgloss.Style
	Empty          lipgloss.Style
}

// New builds the styles for palette p.
func New(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Cursor:     lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Item:       lipgloss.NewStyle().Foreground(p.Text),
		ActiveItem: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Checked:    lipgloss.NewStyle().Foreground(p.Secondary),
		Unchecked:  lipgloss.NewStyle().Foreground(p.Muted),
		Notice: lipgloss.NewStyle().
			Foreground(p.Warning).
			MarginBottom(1),
		ErrorNotice: lipgloss.NewStyle().
			Foreground(p.Error).
			MarginBottom(1),
		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		ButtonActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 2),
		ButtonInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
	}
}

// Default returns the styles for DefaultPalette.
func Default() Styles {
	return New(DefaultPalette())
}
