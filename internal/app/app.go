// Package app wires the screen router into a Bubble Tea program.
package app

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screen"
	"github.com/abhisek/prepcoach/internal/screens/home"
	"github.com/abhisek/prepcoach/internal/ui/layout"
)

// Options configures the interactive app.
type Options struct {
	Deps home.Deps

	// Status is shown on the right of the header, e.g. "Ada · fintech".
	Status string
}

type keyMap struct {
	Quit key.Binding
	Back key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

// AppModel is the root model. Quit and Back are handled here so every
// screen gets them for free.
type AppModel struct {
	router        *router.Router
	status        string
	width, height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(ctx, opts.Deps)),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			if m.router.Depth() == 1 {
				return m, nil
			}
			return m, router.Back()
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{hint(keys.Back), hint(keys.Quit)}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		hint(keys.Quit),
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.router.Active().Title(), m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	body := m.router.View(m.width, max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0))
	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if _, err := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
