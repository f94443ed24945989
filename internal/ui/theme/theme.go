// Package theme holds the colors and text styles shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Title      = fg(Primary).Bold(true)
	Body       = fg(Text)
	Dim        = fg(TextDim)
	Hint       = fg(TextDim).Italic(true)
	ErrorText  = fg(Error)
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
	Fair       = fg(Accent).Bold(true)

	// Card frames explanations and tips.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// ScoreStyle picks green from 80, amber from 50 and red below.
func ScoreStyle(score float64) lipgloss.Style {
	if score >= 80 {
		return Correct
	}
	if score >= 50 {
		return Fair
	}
	return Incorrect
}
