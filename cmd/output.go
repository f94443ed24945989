package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// grid is a plain-text table with a rule under the header. Columns listed
// in numeric are right aligned. The footer row, when set, is printed last
// in bold.
type grid struct {
	headers []string
	rows    [][]string
	footer  []string
	numeric []int
}

func (g *grid) add(cells ...string) { g.rows = append(g.rows, cells) }

func (g *grid) render() string {
	rows := g.rows
	if g.footer != nil {
		rows = append(slices.Clone(rows), g.footer)
	}
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(g.headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if slices.Contains(g.numeric, col) {
				s = s.Align(lipgloss.Right)
			}
			if g.footer != nil && row == last {
				s = s.Bold(true)
			}
			return s
		})
	return t.String()
}

func (g *grid) print(w io.Writer) {
	lipgloss.Fprintln(w, g.render())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
