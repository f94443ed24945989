package result

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screen"
	"github.com/abhisek/prepcoach/internal/store"
	"github.com/abhisek/prepcoach/internal/ui/layout"
	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// ResultScreen shows a saved assessment: score, improvement tip and a
// scrollable review of every question.
type ResultScreen struct {
	assessment *store.Assessment
	review     viewport.Model
	reviewW    int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for a.
func New(a *store.Assessment) *ResultScreen {
	return &ResultScreen{
		assessment: a,
		review:     viewport.New(),
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll review"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, router.Back()
	}
	var cmd tea.Cmd
	s.review, cmd = s.review.Update(msg)
	return s, cmd
}

// Correct returns how many questions were answered correctly.
func (s *ResultScreen) Correct() int {
	n := 0
	for _, q := range s.assessment.Questions {
		if q.IsCorrect {
			n++
		}
	}
	return n
}

func (s *ResultScreen) View(width, height int) string {
	a := s.assessment
	if a == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.ScoreStyle(a.QuizScore).Render(fmt.Sprintf("%.0f%%", a.QuizScore)))
	b.WriteString("  ")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d of %d correct", s.Correct(), len(a.Questions))))
	b.WriteString("\n\n")
	b.WriteString(s.renderTip(cw))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Review"))
	b.WriteString("\n")

	top := b.String()
	reviewHeight := max(height-lipgloss.Height(top)-1, 3)
	if s.reviewW != cw {
		s.review.SetContent(renderReview(a.Questions, cw))
		s.reviewW = cw
	}
	s.review.SetWidth(cw)
	s.review.SetHeight(reviewHeight)

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(top+s.review.View()), width)
}

func (s *ResultScreen) renderTip(width int) string {
	a := s.assessment
	switch {
	case len(a.Questions) > 0 && s.Correct() == len(a.Questions):
		return theme.Correct.Render("Perfect score! Nothing to improve this round.")
	case a.ImprovementTip != nil:
		return theme.Card.Width(width).Render(
			theme.Title.Render("Improvement tip") + "\n" + theme.Body.Render(*a.ImprovementTip))
	default:
		return theme.Hint.Render("No improvement tip available for this attempt.")
	}
}

func renderReview(questions []store.QuestionResult, width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i, q := range questions {
		mark := theme.Correct.Render("✓")
		if !q.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(wrap.Render(fmt.Sprintf("%s %d. %s", mark, i+1, q.Question)))
		b.WriteString("\n")

		answer := q.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		if q.IsCorrect {
			b.WriteString(wrap.Render(theme.Dim.Render("   Your answer: ") + theme.Correct.Render(answer)))
		} else {
			b.WriteString(wrap.Render(theme.Dim.Render("   Your answer: ") + theme.Incorrect.Render(answer)))
			b.WriteString("\n")
			b.WriteString(wrap.Render(theme.Dim.Render("   Correct: ") + theme.Correct.Render(q.CorrectAnswer)))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(theme.Hint.Render("   " + q.Explanation)))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
