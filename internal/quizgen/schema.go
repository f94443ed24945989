package quizgen

import "github.com/abhisek/prepcoach/internal/llm"

// QuestionSchema describes a single element of the "questions" array.
// Extra properties are tolerated.
var QuestionSchema = &llm.Schema{
	Name:        "interview-question",
	Description: "A multiple choice interview question with four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": OptionCount,
				"maxItems": OptionCount,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
			"correctAnswer": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"explanation": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
		"required": []any{"question", "options", "correctAnswer", "explanation"},
	},
}
