package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hint is shown under the menu while the
// item is selected; for a disabled item it explains what unlocks it.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Navigation wraps and skips disabled
// items; digits 1-9 activate the matching entry directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j", "tab":
		m.Selected = m.step(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.Items) {
			if !m.Items[n-1].Disabled {
				m.Selected = n - 1
			}
			return m, m.activate(n - 1)
		}
	}
	return m, nil
}

// step returns the next enabled index in direction dir, wrapping around.
func (m Menu) step(dir int) int {
	n := len(m.Items)
	for i := 1; i < n; i++ {
		j := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return m.Selected
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := strconv.Itoa(i+1) + "  " + item.Label
		switch {
		case i == m.Selected && !item.Disabled:
			b.WriteString(theme.Selected.Render("▸ " + label))
		case item.Disabled:
			if item.Hint != "" {
				label += " · " + item.Hint
			}
			b.WriteString(theme.Dim.Render("  " + label))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label))
		}
		b.WriteString("\n")
	}
	if m.Selected >= 0 && m.Selected < len(m.Items) {
		if sel := m.Items[m.Selected]; !sel.Disabled && sel.Hint != "" {
			b.WriteString("\n" + theme.Hint.Render(sel.Hint) + "\n")
		}
	}
	return b.String()
}
