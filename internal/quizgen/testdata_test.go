package quizgen

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleQuestion(i int) Question {
	return Question{
		Question:      fmt.Sprintf("Question %d: what does \"ACID\" stand for?", i),
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "B",
		Explanation:   fmt.Sprintf("Explanation %d", i),
	}
}

func quizJSON(t *testing.T, n int) string {
	t.Helper()
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = sampleQuestion(i + 1)
	}
	b, err := json.Marshal(map[string]any{"questions": qs})
	require.NoError(t, err)
	return string(b)
}
