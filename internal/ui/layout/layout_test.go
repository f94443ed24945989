package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{200, MaxContentWidth},
		{80, 76},
		{10, 20},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", "finance", 80)
	if !strings.Contains(h, "PrepCoach") || !strings.Contains(h, "Quiz") || !strings.Contains(h, "finance") {
		t.Errorf("header missing parts: %q", h)
	}
	if got := lipgloss.Height(h); got != 3 {
		t.Errorf("header height = %d, want 3", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(40, 30) {
		t.Error("40 columns should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeader_ShortensLongStatus(t *testing.T) {
	status := "Ada Lovelace · " + strings.Repeat("financial-services-", 5)
	h := RenderHeader("Quiz", status, MinWidth)
	if !strings.Contains(h, "…") {
		t.Errorf("expected a shortened status: %q", h)
	}
	if got := lipgloss.Height(h); got != 3 {
		t.Errorf("header wrapped to %d lines", got)
	}
}

func TestRenderHeader_FitsAcrossWidths(t *testing.T) {
	status := "Grace Hopper · " + strings.Repeat("x", 200)
	for _, width := range []int{MinWidth, 61, 80, 97, 120} {
		for _, title := range []string{"Home", "Quiz", "Assessment history"} {
			h := RenderHeader(title, status, width)
			if got := lipgloss.Height(h); got != 3 {
				t.Errorf("width %d title %q: header wrapped to %d lines", width, title, got)
			}
			if got := lipgloss.Width(h); got != width {
				t.Errorf("width %d title %q: header is %d wide", width, title, got)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"fintech", 10, "fintech"},
		{"fintech", 4, "fin…"},
		{"fintech", 1, "f"},
		{"fintech", 0, ""},
		{"ünïcödé", 3, "ün…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if !strings.Contains(frame, "Quit") {
		t.Error("footer missing")
	}
}
