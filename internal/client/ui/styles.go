package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	navbarStyle = lipgloss.NewStyle().Padding(0, 1).MarginBottom(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// renderStars draws the average as filled and empty stars out of ten,
// rounding to the nearest whole star.
func renderStars(rating float64) string {
	filled := int(math.Round(rating))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 10-filled)
}

func formatRating(rating float64) string {
	return fmt.Sprintf("%.1f", rating)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
