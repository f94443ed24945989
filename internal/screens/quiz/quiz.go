package quiz

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screen"
	"github.com/abhisek/prepcoach/internal/screens/result"
	"github.com/abhisek/prepcoach/internal/store"
	"github.com/abhisek/prepcoach/internal/ui/components"
	"github.com/abhisek/prepcoach/internal/ui/layout"
	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// Generator produces a quiz for the current user.
type Generator interface {
	GenerateQuiz(ctx context.Context) (quizgen.Quiz, error)
}

// Recorder scores and persists a finished quiz.
type Recorder interface {
	SaveQuizResult(ctx context.Context, quiz quizgen.Quiz, answers []string, score float64) (*store.Assessment, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseFeedback
	phaseSaving
	phaseLoadFailed
	phaseSaveFailed
)

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Quiz quizgen.Quiz
	Err  error
}

// savedMsg is sent when the assessment has been written.
type savedMsg struct {
	Assessment *store.Assessment
	Err        error
}

// QuizScreen walks the user through one generated quiz.
type QuizScreen struct {
	ctx      context.Context
	gen      Generator
	recorder Recorder

	phase   phase
	spinner spinner.Model
	quiz    quizgen.Quiz
	current int
	choice  components.MultiChoice
	answers []string
	correct int
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. Generation starts on Init.
func New(ctx context.Context, gen Generator, recorder Recorder) *QuizScreen {
	return &QuizScreen{
		ctx:      ctx,
		gen:      gen,
		recorder: recorder,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.spinner.Tick)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseFeedback:
		label := "Next"
		if s.current == len(s.quiz)-1 {
			label = "Finish"
		}
		return []layout.KeyHint{{Key: "Enter", Description: label}}
	case phaseLoadFailed, phaseSaveFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.phase != phaseLoading && s.phase != phaseSaving {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case quizReadyMsg:
		if msg.Err != nil {
			s.phase = phaseLoadFailed
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.quiz = msg.Quiz
		s.answers = make([]string, 0, len(msg.Quiz))
		s.current = 0
		s.correct = 0
		s.showQuestion()
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.phase = phaseSaveFailed
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, router.Replace(result.New(msg.Assessment))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseAnswering:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			s.answers = append(s.answers, s.choice.Answer())
			if s.choice.IsCorrect() {
				s.correct++
			}
			s.phase = phaseFeedback
		}
		return s, cmd

	case phaseFeedback:
		if msg.String() != "enter" {
			return s, nil
		}
		if s.current < len(s.quiz)-1 {
			s.current++
			s.showQuestion()
			return s, nil
		}
		return s, s.startSave()

	case phaseLoadFailed:
		if msg.String() == "r" {
			s.phase = phaseLoading
			s.errMsg = ""
			return s, tea.Batch(s.load(), s.spinner.Tick)
		}

	case phaseSaveFailed:
		if msg.String() == "r" {
			return s, s.startSave()
		}
	}
	return s, nil
}

func (s *QuizScreen) showQuestion() {
	q := s.quiz[s.current]
	s.choice = components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswer)
	s.phase = phaseAnswering
}

func (s *QuizScreen) load() tea.Cmd {
	ctx, gen := s.ctx, s.gen
	return func() tea.Msg {
		quiz, err := gen.GenerateQuiz(ctx)
		return quizReadyMsg{Quiz: quiz, Err: err}
	}
}

func (s *QuizScreen) startSave() tea.Cmd {
	s.phase = phaseSaving
	s.errMsg = ""

	ctx, recorder := s.ctx, s.recorder
	quiz := s.quiz
	answers := append([]string(nil), s.answers...)
	score := assessment.PercentCorrect(assessment.Score(quiz, answers))

	save := func() tea.Msg {
		a, err := recorder.SaveQuizResult(ctx, quiz, answers, score)
		return savedMsg{Assessment: a, Err: err}
	}
	return tea.Batch(save, s.spinner.Tick)
}

func (s *QuizScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var body string
	switch s.phase {
	case phaseLoading:
		body = s.spinner.View() + " " + theme.Dim.Render("Generating your quiz...")
	case phaseSaving:
		body = s.spinner.View() + " " + theme.Dim.Render("Scoring and saving your answers...")
	case phaseLoadFailed:
		body = theme.ErrorText.Render("Could not start the quiz: "+s.errMsg) + "\n\n" +
			theme.Hint.Render("Press r to try again.")
	case phaseSaveFailed:
		body = theme.ErrorText.Render("Could not save your results: "+s.errMsg) + "\n\n" +
			theme.Hint.Render("Your answers are kept. Press r to retry.")
	default:
		body = s.renderQuestion(cw)
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render("\n"+body), width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder

	bar := components.NewProgressBar("Question", s.current+1, len(s.quiz), width)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(width))

	if s.phase == phaseFeedback {
		b.WriteString("\n")
		verdict := theme.Correct.Render("Correct!")
		if !s.choice.IsCorrect() {
			verdict = theme.Incorrect.Render("Not quite. ") +
				theme.Body.Render(fmt.Sprintf("The answer is %q.", s.quiz[s.current].CorrectAnswer))
		}
		b.WriteString(verdict)
		b.WriteString("\n\n")
		b.WriteString(theme.Card.Width(width).Render(s.quiz[s.current].Explanation))
		b.WriteString("\n\n")
		b.WriteString(theme.Dim.Render(fmt.Sprintf("%d of %d correct so far", s.correct, len(s.answers))))
	}
	return b.String()
}
