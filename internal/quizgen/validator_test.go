package quizgen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		want   string
	}{
		{"valid", func(*Question) {}, ""},
		{"empty question", func(q *Question) { q.Question = "" }, "question is empty"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "expected 4 options, got 3"},
		{"empty option", func(q *Question) { q.Options[2] = "" }, "options contain an empty entry"},
		{"empty answer", func(q *Question) { q.CorrectAnswer = "" }, "correctAnswer is empty"},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, "explanation is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sampleQuestion(1)
			tt.mutate(&q)
			err := (&StructuralValidator{}).Validate(&q)
			if tt.want == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, "structural", err.Validator)
			assert.Equal(t, tt.want, err.Message)
		})
	}
}

func TestAnswerKeyValidator(t *testing.T) {
	q := sampleQuestion(1)
	assert.Nil(t, (&AnswerKeyValidator{}).Validate(&q))

	q.CorrectAnswer = "b"
	err := (&AnswerKeyValidator{}).Validate(&q)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "answer-key")
}

func TestValidateQuiz_Structure(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"array", decodeValue(t, `[{"question":"q"}]`)},
		{"missing questions", decodeValue(t, `{"items":[]}`)},
		{"questions not array", decodeValue(t, `{"questions":{"question":"q"}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := ValidateQuiz(tt.value)
			var structErr *ErrInvalidQuizStructure
			require.ErrorAs(t, err, &structErr)
			assert.Nil(t, qs)
		})
	}
}

func TestValidateQuiz_FiltersAndKeepsOrder(t *testing.T) {
	value := decodeValue(t, `{"questions":[
		{"question":"Q1","options":["A","B","C","D"],"correctAnswer":"A","explanation":"E1"},
		{"question":"","options":["A","B","C","D"],"correctAnswer":"A","explanation":"E"},
		{"question":"Q3","options":["A","B","C"],"correctAnswer":"A","explanation":"E"},
		{"question":"Q4","options":["A","B","C",4],"correctAnswer":"A","explanation":"E"},
		"not an object",
		{"question":"Q6","options":["A","B","C","D"],"correctAnswer":"Z","explanation":"E"},
		{"question":"Q7","options":["A","B","C","D"],"explanation":"E"},
		{"question":"Q8","options":["W","X","Y","Z"],"correctAnswer":"Y","explanation":"E8","difficulty":"hard"}
	]}`)

	qs, err := ValidateQuiz(value)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Q1", qs[0].Question)
	assert.Equal(t, "Q8", qs[1].Question)
	assert.Equal(t, []string{"W", "X", "Y", "Z"}, qs[1].Options)
	assert.Equal(t, "Y", qs[1].CorrectAnswer)
}

func TestValidateQuiz_EmptyQuestions(t *testing.T) {
	qs, err := ValidateQuiz(decodeValue(t, `{"questions":[]}`))
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestFallbackQuiz(t *testing.T) {
	a := FallbackQuiz("finance", []string{"excel"})
	b := FallbackQuiz("finance", []string{"excel"})
	assert.Equal(t, a, b)
	require.Len(t, a, 3)
	assert.Equal(t, "What is the most important skill for a finance professional?", a[0].Question)

	assert.Equal(t, a, FallbackQuiz("finance", nil), "skills do not change the content")

	general := FallbackQuiz("", nil)
	assert.Equal(t, "What is the most important skill for a general professional?", general[0].Question)

	for _, q := range a {
		for _, v := range DefaultValidators() {
			assert.Nil(t, v.Validate(&q), q.Question)
		}
	}
}
