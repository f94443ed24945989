package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screen"
	"github.com/abhisek/prepcoach/internal/screens/history"
	"github.com/abhisek/prepcoach/internal/screens/quiz"
	"github.com/abhisek/prepcoach/internal/store"
	"github.com/abhisek/prepcoach/internal/ui/components"
	"github.com/abhisek/prepcoach/internal/ui/layout"
)

// UserSource returns the current user's profile.
type UserSource interface {
	Current(ctx context.Context) (*store.User, error)
}

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Users    UserSource
	Quizzes  quiz.Generator
	Recorder quiz.Recorder
	History  history.Source
}

type homeLoadedMsg struct {
	User  *store.User
	Stats assessment.Stats
	Err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	ctx    context.Context
	deps   Deps
	menu   components.Menu
	user   *store.User
	stats  assessment.Stats
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctx context.Context, deps Deps) *HomeScreen {
	h := &HomeScreen{ctx: ctx, deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads the profile and stats after a quiz or history visit.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) load() tea.Cmd {
	ctx, deps := h.ctx, h.deps
	return func() tea.Msg {
		u, err := deps.Users.Current(ctx)
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		var stats assessment.Stats
		if deps.History != nil {
			list, err := deps.History.Assessments(ctx)
			if err != nil {
				return homeLoadedMsg{User: u, Err: err}
			}
			stats = assessment.ComputeStats(list)
		}
		return homeLoadedMsg{User: u, Stats: stats}
	}
}

// Onboarded reports whether the loaded profile has an industry.
func (h *HomeScreen) Onboarded() bool {
	return profile.IsOnboarded(h.user)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(homeLoadedMsg); ok {
		reload := h.loaded
		prev := h.menu.Items[h.menu.Selected].Label

		h.loaded = true
		h.errMsg = ""
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		}
		h.user = msg.User
		h.stats = msg.Stats

		// The first load starts from the default selection; a refresh keeps
		// the cursor on the same item while it stays enabled.
		h.menu = components.NewMenu(h.menuItems())
		if reload {
			for i, item := range h.menu.Items {
				if item.Label == prev && !item.Disabled {
					h.menu.Selected = i
				}
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	ctx, deps := h.ctx, h.deps
	return []components.MenuItem{
		{
			Label:    "START QUIZ",
			Hint:     h.quizHint(),
			Disabled: !h.Onboarded() || deps.Quizzes == nil || deps.Recorder == nil,
			Action: func() tea.Cmd {
				return router.Push(quiz.New(ctx, deps.Quizzes, deps.Recorder))
			},
		},
		{
			Label:    "HISTORY",
			Hint:     "Past attempts with scores and tips",
			Disabled: deps.History == nil,
			Action: func() tea.Cmd {
				return router.Push(history.New(ctx, deps.History))
			},
		},
		{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
}

func (h *HomeScreen) quizHint() string {
	if !h.Onboarded() {
		return "set your industry first"
	}
	if n := len(h.user.Skills); n > 0 {
		return fmt.Sprintf("Technical questions for %s, drawn from your %d skills", h.user.Industry, n)
	}
	return "Technical questions for " + h.user.Industry
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(layout.ContentWidth(width), 60)

	sections := []string{renderTitle(cw)}
	switch {
	case !h.loaded:
		sections = append(sections, renderNote("Loading your profile...", cw))
	case h.errMsg != "":
		sections = append(sections, renderError(h.errMsg, cw))
	default:
		sections = append(sections, renderProfile(h.user, cw))
		if !h.Onboarded() {
			sections = append(sections, renderNote(
				"Set your industry to unlock quizzes:\n  prepcoach profile set --industry <name> --skills go,sql", cw))
		} else {
			sections = append(sections, renderStats(h.stats, cw))
		}
	}
	sections = append(sections, renderMenu(h.menu, cw))

	return layout.Center("\n"+strings.Join(sections, "\n\n"), width)
}
