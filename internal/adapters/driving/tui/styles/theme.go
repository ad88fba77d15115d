// Package styles defines the colours and lipgloss styles of the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette.
type Theme struct {
	Accent     lipgloss.Color
	Topic      lipgloss.Color
	News       lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#3DDC84"),
		Topic:      lipgloss.Color("#82AAFF"),
		News:       lipgloss.Color("#FFCB6B"),
		Foreground: lipgloss.Color("#D6DEEB"),
		Muted:      lipgloss.Color("#637777"),
		Success:    lipgloss.Color("#ADDB67"),
		Warning:    lipgloss.Color("#F78C6C"),
		Error:      lipgloss.Color("#EF5350"),
		Border:     lipgloss.Color("#4B6479"),
		Bar:        lipgloss.Color("#011627"),
	}
}

// Styles holds the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	TopicHead  lipgloss.Style
	NewsHead   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles builds styles for theme, falling back to DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme:     theme,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		TopicHead: lipgloss.NewStyle().Bold(true).Foreground(theme.Topic),
		NewsHead:  lipgloss.NewStyle().Bold(true).Foreground(theme.News),
		Normal:    lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:     lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Bar).
			Background(theme.Accent),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
