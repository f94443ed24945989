package theme

import "testing"

func TestScoreStyle(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "correct"},
		{80, "correct"},
		{79.9, "fair"},
		{50, "fair"},
		{49, "incorrect"},
		{0, "incorrect"},
	}
	styles := map[string]any{"correct": Correct.GetForeground(), "fair": Fair.GetForeground(), "incorrect": Incorrect.GetForeground()}
	for _, tt := range tests {
		if got := ScoreStyle(tt.score).GetForeground(); got != styles[tt.want] {
			t.Errorf("ScoreStyle(%v) = %v, want %s", tt.score, got, tt.want)
		}
	}
}
