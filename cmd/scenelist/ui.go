package main

import (
	"scenelist/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// palette colours command output; setup switches it to the configured theme.
var palette = config.GetTheme("default")

func setPalette(theme config.Theme) {
	palette = theme
}

func colored(color, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

func successText(text string) string {
	return colored(palette.Success, text)
}

func errorText(text string) string {
	return colored(palette.Error, text)
}

func warningText(text string) string {
	return colored(palette.Warning, text)
}

func infoText(text string) string {
	return colored(palette.Primary, text)
}
