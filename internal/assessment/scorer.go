// Package assessment scores submitted quizzes, asks the model for an
// improvement tip when something was missed and stores the result.
package assessment

import (
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/store"
)

// Score grades quiz against answers by position. A missing answer counts
// as wrong and leaves UserAnswer empty.
func Score(quiz quizgen.Quiz, answers []string) []store.QuestionResult {
	results := make([]store.QuestionResult, len(quiz))
	for i, q := range quiz {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		results[i] = store.QuestionResult{
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    answer,
			IsCorrect:     i < len(answers) && answer == q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}
	return results
}

// Incorrect returns the results that were answered wrongly or not at all.
func Incorrect(results []store.QuestionResult) []store.QuestionResult {
	var wrong []store.QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}
	return wrong
}

// PercentCorrect is the share of correct results as 0-100. An empty quiz
// scores 0.
func PercentCorrect(results []store.QuestionResult) float64 {
	if len(results) == 0 {
		return 0
	}
	correct := len(results) - len(Incorrect(results))
	return float64(correct) / float64(len(results)) * 100
}
