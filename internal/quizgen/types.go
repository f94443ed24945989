// Package quizgen turns a model reply into a bounded, validated interview
// quiz. Whatever the model returns, Generate hands back between
// MinQuestions and MaxQuestions well-formed questions, topping up or
// replacing the model's output with a fixed fallback set.
package quizgen

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is one multiple-choice interview question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is an ordered list of questions. Position i is answered by
// answers[i] when the quiz is scored.
type Quiz []Question

// GenerateInput is the profile context a quiz is generated for.
type GenerateInput struct {
	Industry string
	Skills   []string
}
