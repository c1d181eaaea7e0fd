package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the huh theme used by all interactive flows.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeBase()

	accent := lipgloss.Color("#7D56F4")
	muted := lipgloss.Color("#888888")

	theme.Focused.Title = theme.Focused.Title.Foreground(accent).Bold(true)
	theme.Focused.Description = theme.Focused.Description.Foreground(muted)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(accent)
	theme.Focused.SelectSelector = theme.Focused.SelectSelector.Foreground(accent)
	theme.Blurred.Title = theme.Blurred.Title.Foreground(muted)

	return theme
}
