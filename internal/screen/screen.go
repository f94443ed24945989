// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/ui/layout"
)

// Screen is one page of the app. View gets the area between header and
// footer; Title goes in the header.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher reloads data when the screens above it close.
type Refresher interface {
	Refresh() tea.Cmd
}
