package tui

import (
	"scenelist/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles defines the UI styles derived from a theme.
type Styles struct {
	App      lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Disabled lipgloss.Style
	Picker   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds styles from theme colours.
func NewStyles(theme config.Theme) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),
		Row: lipgloss.NewStyle().
			PaddingLeft(2),
		Cursor: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color(theme.Success)).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)),
		Picker: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Emphasis)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Primary)).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),
	}
}
