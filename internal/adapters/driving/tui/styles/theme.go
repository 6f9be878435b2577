// Package styles holds the colour theme and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// Theme is the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Mark is the background behind matched query text.
	Mark lipgloss.Color

	// Categories colours category badges. Missing entries use Secondary.
	Categories map[domain.Category]lipgloss.Color
}

// DefaultTheme returns a dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Mark:       lipgloss.Color("#F9E2AF"),
		Categories: map[domain.Category]lipgloss.Color{
			domain.CategoryState:   lipgloss.Color("#F38BA8"),
			domain.CategoryMemory:  lipgloss.Color("#CBA6F7"),
			domain.CategoryDocs:    lipgloss.Color("#89B4FA"),
			domain.CategoryScripts: lipgloss.Color("#A6E3A1"),
			domain.CategoryReports: lipgloss.Color("#FAB387"),
			domain.CategoryJournal: lipgloss.Color("#F9E2AF"),
			domain.CategoryCapture: lipgloss.Color("#94E2D5"),
			domain.CategoryNotes:   lipgloss.Color("#06B6D4"),
		},
	}
}

// Styles are the rendered styles built from a Theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Highlight marks query matches inside names and excerpts.
	Highlight lipgloss.Style

	// Badge is the base style of category labels.
	Badge lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),
		Error: lipgloss.NewStyle().Foreground(theme.Error),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),
		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Mark),
		Badge: lipgloss.NewStyle().Foreground(theme.Secondary).Padding(0, 1),
	}
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// CategoryBadge renders a category label in the category's colour.
func (s *Styles) CategoryBadge(c domain.Category) string {
	style := s.Badge
	if colour, ok := s.theme.Categories[c]; ok {
		style = style.Foreground(colour)
	}
	return style.Render(c.Label())
}
