package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. Once submitted it highlights
// the chosen option and, when Reveal is set, the correct one.
type MultiChoice struct {
	Question  string
	Options   []string
	Correct   string
	Selected  int
	Submitted bool
	Reveal    bool
}

// NewMultiChoice creates a selector with the first option highlighted.
func NewMultiChoice(question string, options []string, correct string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Correct:  correct,
		Reveal:   true,
	}
}

// Update handles arrow keys, j/k, letter shortcuts and enter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
	default:
		for i := range m.Options {
			if i < len(optionLabels) && strings.EqualFold(key, optionLabels[i]) {
				m.Selected = i
			}
		}
	}

	return m, nil
}

// Answer returns the chosen option text, or "" before submission.
func (m MultiChoice) Answer() string {
	if !m.Submitted || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// IsCorrect reports whether the submitted option equals the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Answer() == m.Correct
}

// View renders the question wrapped to width followed by the options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && m.Reveal && opt == m.Correct:
			style = theme.Correct
		case m.Submitted && i == m.Selected:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
