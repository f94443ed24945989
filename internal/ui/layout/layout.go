package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	// MaxContentWidth keeps long questions readable on wide terminals.
	MaxContentWidth = 90
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth is the width screens should wrap text to.
func ContentWidth(width int) int {
	return min(max(width-4, 20), MaxContentWidth)
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("PrepCoach needs at least %d x %d.\n\nThis terminal is %d x %d.", MinWidth, MinHeight, width, height))
}

// bar is the bordered strip used for both header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader lays out the app name on the left, the screen title in the
// middle and a status such as "Ada · fintech" on the right. The status is
// shortened when the three do not fit.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" PrepCoach")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	lw, cw := lipgloss.Width(left), lipgloss.Width(center)
	leftGap := max((inner-cw)/2-lw, 1)

	// The status gets whatever the centred title leaves, less one space.
	status = truncate(status, max(inner-lw-leftGap-cw-1, 0))
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	rightGap := max(inner-lw-leftGap-cw-lipgloss.Width(right), 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving the content every
// row the other two leave.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func Center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	switch {
	case len(r) <= n:
		return s
	case n <= 1:
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
