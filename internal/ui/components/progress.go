package components

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// ProgressBar is a labelled, static progress bar.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// NewProgressBar creates a bar for current out of total.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{Label: label, Current: current, Total: total, Width: width}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders "Label  [bar]  3/10".
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	counter := fmt.Sprintf("  %d/%d", p.Current, p.Total)

	barWidth := max(p.Width-lipgloss.Width(result)-len(counter), 4)
	bar := progress.New(
		progress.WithColors(theme.Primary, theme.Secondary),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)

	return result + bar.ViewAs(p.Percent()) + theme.Dim.Render(counter)
}
