package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8") // ANSI 8
)

var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	DetailStyle   = lipgloss.NewStyle().Foreground(ColorDarkGray)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	WarnStyle     = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	HelpStyle     = lipgloss.NewStyle().Foreground(ColorDarkGray)
)

// StatusColor maps a combined status to a display color
func StatusColor(icon models.StatusIcon) lipgloss.Color {
	switch icon {
	case models.StatusDoneMerged, models.StatusReady:
		return ColorGreen
	case models.StatusDoneClosed:
		return ColorDarkGray
	case models.StatusQueued:
		return ColorCyan
	case models.StatusConflict, models.StatusFailing, models.StatusBlocked:
		return ColorRed
	case models.StatusRunning:
		return ColorYellow
	case models.StatusAwaitingReview:
		return ColorPurple
	default:
		return ColorWhite
	}
}
