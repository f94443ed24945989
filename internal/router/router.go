// Package router keeps the stack of TUI screens and applies navigation
// requests emitted by them.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/screen"
)

// Op is a stack operation.
type Op int

const (
	OpPush Op = iota
	OpReplace
	OpPop
	OpPopToRoot
)

func (o Op) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpReplace:
		return "replace"
	case OpPop:
		return "pop"
	case OpPopToRoot:
		return "pop-to-root"
	}
	return "unknown"
}

// NavMsg asks the router to change the stack. Screen is only read by
// OpPush and OpReplace.
type NavMsg struct {
	Op     Op
	Screen screen.Screen
}

func nav(m NavMsg) tea.Cmd {
	return func() tea.Msg { return m }
}

// Push opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd { return nav(NavMsg{Op: OpPush, Screen: s}) }

// Replace swaps the current screen for s without growing the stack.
func Replace(s screen.Screen) tea.Cmd { return nav(NavMsg{Op: OpReplace, Screen: s}) }

// Back closes the current screen.
func Back() tea.Cmd { return nav(NavMsg{Op: OpPop}) }

// Home closes every screen above the first.
func Home() tea.Cmd { return nav(NavMsg{Op: OpPopToRoot}) }

// Router owns the screen stack. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Apply performs one navigation request. A screen that is opened gets its
// Init command run; a screen that is uncovered gets its Refresh command
// run if it implements screen.Refresher.
func (r *Router) Apply(m NavMsg) tea.Cmd {
	switch m.Op {
	case OpPush:
		r.stack = append(r.stack, m.Screen)
		return m.Screen.Init()

	case OpReplace:
		if len(r.stack) == 0 {
			r.stack = append(r.stack, m.Screen)
		} else {
			r.stack[len(r.stack)-1] = m.Screen
		}
		return m.Screen.Init()

	case OpPop, OpPopToRoot:
		keep := len(r.stack) - 1
		if m.Op == OpPopToRoot {
			keep = 1
		}
		if len(r.stack) <= 1 || keep >= len(r.stack) {
			return nil
		}
		r.stack = r.stack[:keep]
		if rf, ok := r.Active().(screen.Refresher); ok {
			return rf.Refresh()
		}
	}
	return nil
}

// Update applies NavMsg itself and hands every other message to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(NavMsg); ok {
		return r.Apply(m)
	}
	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
