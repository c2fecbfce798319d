package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorAccent  = lipgloss.Color("#04B575")
	colorWarn    = lipgloss.Color("#FFB454")
	colorError   = lipgloss.Color("#FF5F87")
	colorMuted   = lipgloss.Color("#6C6C6C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	barFilledStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// renderBar draws a fixed-width progress bar for a 0-100 value. Values
// outside the range are clipped for display only.
func renderBar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
