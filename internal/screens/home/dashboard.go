package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/store"
	"github.com/abhisek/prepcoach/internal/ui/components"
	"github.com/abhisek/prepcoach/internal/ui/theme"
)

const titleText = "P R E P C O A C H"

func box(cw int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(cw)
}

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(titleText) + "\n" + theme.Hint.Render("interview practice, one quiz at a time"))
}

// renderProfile renders name, industry and skills.
func renderProfile(u *store.User, cw int) string {
	if u == nil {
		return box(cw).Render(theme.Dim.Render("No profile yet"))
	}

	name := u.Name
	if name == "" {
		name = u.ExternalID
	}
	industry := u.Industry
	if industry == "" {
		industry = "not set"
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(name))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render("Industry: ") + theme.Body.Render(industry))
	if u.Experience != nil {
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  ·  %d yrs", *u.Experience)))
	}
	if len(u.Skills) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Render("Skills: ") + theme.Body.Render(strings.Join(u.Skills, ", ")))
	}
	return box(cw).Render(b.String())
}

// renderStats renders the dashboard stats line.
func renderStats(s assessment.Stats, cw int) string {
	if s.Assessments == 0 {
		return box(cw).Render(theme.Hint.Render("No quizzes taken yet"))
	}

	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	line := fmt.Sprintf("%s %s  %s %s  %s %s",
		accent.Render(fmt.Sprintf("%d", s.Assessments)), theme.Dim.Render("QUIZZES"),
		theme.ScoreStyle(s.AverageScore).Render(fmt.Sprintf("%.0f%%", s.AverageScore)), theme.Dim.Render("AVG"),
		theme.ScoreStyle(s.LatestScore).Render(fmt.Sprintf("%.0f%%", s.LatestScore)), theme.Dim.Render("LAST"),
	)
	return box(cw).Align(lipgloss.Center).Render(line)
}

func renderMenu(m components.Menu, cw int) string {
	return box(cw).Render(strings.TrimRight(m.View(), "\n"))
}

func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(theme.Hint.Render(text))
}

func renderError(text string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(theme.ErrorText.Render("Error: " + text))
}
