// Package history shows the current user's past quiz attempts.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screen"
	"github.com/abhisek/prepcoach/internal/store"
	"github.com/abhisek/prepcoach/internal/ui/layout"
	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// Source lists the current user's assessments, oldest first.
type Source interface {
	Assessments(ctx context.Context) ([]store.Assessment, error)
}

type loadedMsg struct {
	list []store.Assessment
	err  error
}

// HistoryScreen is a table of attempts, newest first. Enter opens a card
// with the tip and the missed questions of the selected attempt.
type HistoryScreen struct {
	ctx    context.Context
	source Source

	rows    []store.Assessment
	stats   assessment.Stats
	table   table.Model
	details bool

	loaded bool
	err    error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(ctx context.Context, source Source) *HistoryScreen {
	t := table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.TextDim)
	styles.Selected = theme.Selected
	t.SetStyles(styles)

	s := &HistoryScreen{ctx: ctx, source: source, table: t}
	s.sizeTable(layout.MaxContentWidth, 20)
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, source := s.ctx, s.source
	return func() tea.Msg {
		list, err := source.Assessments(ctx)
		return loadedMsg{list: list, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hint := "Details"
	if s.details {
		hint = "Hide details"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: hint},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded, s.err = true, msg.err
		if msg.err == nil {
			s.load(msg.list)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "enter":
			s.details = !s.details && len(s.rows) > 0
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *HistoryScreen) load(list []store.Assessment) {
	s.stats = assessment.ComputeStats(list)
	s.rows = make([]store.Assessment, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		s.rows = append(s.rows, list[i])
	}

	rows := make([]table.Row, len(s.rows))
	for i, a := range s.rows {
		rows[i] = table.Row{
			a.CreatedAt.Local().Format("Jan 02 2006 15:04"),
			a.Category,
			fmt.Sprintf("%d", len(a.Questions)),
			fmt.Sprintf("%.0f%%", a.QuizScore),
		}
	}
	s.table.SetRows(rows)
	s.table.SetCursor(0)
}

// Selected is the attempt under the cursor.
func (s *HistoryScreen) Selected() (store.Assessment, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.rows) {
		return store.Assessment{}, false
	}
	return s.rows[i], true
}

func (s *HistoryScreen) View(width, height int) string {
	notice := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).PaddingTop(2)
	switch {
	case s.err != nil:
		return notice.Foreground(theme.Error).Render("Error: " + s.err.Error())
	case !s.loaded:
		return notice.Foreground(theme.TextDim).Render("Loading history...")
	case len(s.rows) == 0:
		return notice.Foreground(theme.TextDim).Italic(true).Render("No quizzes yet. Take one from the home screen!")
	}

	cw := layout.ContentWidth(width)
	summary := theme.Dim.Render(fmt.Sprintf("%d quizzes · average %.0f%% · best %.0f%% · %d questions practiced",
		s.stats.Assessments, s.stats.AverageScore, s.stats.BestScore, s.stats.QuestionsPracticed))

	var card string
	if a, ok := s.Selected(); ok && s.details {
		card = theme.Card.Width(cw).Render(details(a, cw-6))
	}

	s.sizeTable(cw, height-lipgloss.Height(card)-3)
	parts := []string{"", summary, s.table.View()}
	if card != "" {
		parts = append(parts, card)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// sizeTable gives the date column whatever the fixed columns leave.
func (s *HistoryScreen) sizeTable(width, height int) {
	const category, questions, score = 12, 10, 7
	date := max(width-category-questions-score-8, 10)
	s.table.SetColumns([]table.Column{
		{Title: "Taken", Width: date},
		{Title: "Category", Width: category},
		{Title: "Questions", Width: questions},
		{Title: "Score", Width: score},
	})
	s.table.SetWidth(width)
	s.table.SetHeight(max(min(height, len(s.rows)+1), 2))
}

func details(a store.Assessment, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	b.WriteString(theme.ScoreStyle(a.QuizScore).Render(fmt.Sprintf("%.0f%%", a.QuizScore)))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  on %s", a.CreatedAt.Local().Format("Mon Jan 02 15:04"))))
	b.WriteString("\n")

	if a.ImprovementTip != nil {
		b.WriteString("\n" + wrap.Render(theme.Body.Render("Tip: "+*a.ImprovementTip)) + "\n")
	}

	wrong := assessment.Incorrect(a.Questions)
	if len(wrong) == 0 {
		b.WriteString("\n" + theme.Correct.Render("All answers correct"))
		return b.String()
	}
	for _, q := range wrong {
		b.WriteString("\n" + wrap.Render(theme.Incorrect.Render("✗ ")+theme.Body.Render(q.Question)))
		b.WriteString("\n" + theme.Dim.Render("  Correct: ") + theme.Correct.Render(q.CorrectAnswer))
		if q.UserAnswer != "" {
			b.WriteString(theme.Dim.Render("  You: " + q.UserAnswer))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
