package quizgen

import (
	"fmt"
	"slices"

	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/logger"
)

// Validator checks a decoded question. Implementations are stateless.
type Validator interface {
	// Name is a short identifier used in logs, e.g. "structural".
	Name() string

	// Validate returns nil when q passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// ErrInvalidQuizStructure means the parsed reply has no usable
// "questions" array at all.
type ErrInvalidQuizStructure struct {
	Reason string
}

func (e *ErrInvalidQuizStructure) Error() string {
	return "invalid quiz structure: " + e.Reason
}

// StructuralValidator requires every field to be present and exactly
// OptionCount non-empty options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	switch {
	case q.Question == "":
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	case len(q.Options) != OptionCount:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options))}
	case slices.Contains(q.Options, ""):
		return &ValidationError{Validator: v.Name(), Message: "options contain an empty entry"}
	case q.CorrectAnswer == "":
		return &ValidationError{Validator: v.Name(), Message: "correctAnswer is empty"}
	case q.Explanation == "":
		return &ValidationError{Validator: v.Name(), Message: "explanation is empty"}
	}
	return nil
}

// AnswerKeyValidator requires correctAnswer to be one of the options,
// compared exactly as answers are scored.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(q *Question) *ValidationError {
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correctAnswer %q is not one of the options", q.CorrectAnswer),
		}
	}
	return nil
}

// DefaultValidators is the chain used by ValidateQuiz and DefaultConfig.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &AnswerKeyValidator{}}
}

// QuizValidator filters a parsed reply down to its well-formed questions.
type QuizValidator struct {
	validators []Validator
	log        *logger.Logger
}

func NewQuizValidator(validators []Validator, log *logger.Logger) *QuizValidator {
	if log == nil {
		log = logger.Nop()
	}
	return &QuizValidator{validators: validators, log: log}
}

// ValidateQuiz runs the default validator chain without logging.
func ValidateQuiz(value any) ([]Question, error) {
	return NewQuizValidator(DefaultValidators(), nil).Validate(value)
}

// Validate expects value to be a decoded JSON object with a "questions"
// array. Elements that fail the schema or any validator are dropped and
// logged; order is preserved. The result may be empty.
func (qv *QuizValidator) Validate(value any) ([]Question, error) {
	if value == nil {
		return nil, &ErrInvalidQuizStructure{Reason: "empty value"}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &ErrInvalidQuizStructure{Reason: fmt.Sprintf("expected object, got %T", value)}
	}
	rawQuestions, ok := obj["questions"]
	if !ok {
		return nil, &ErrInvalidQuizStructure{Reason: "missing questions field"}
	}
	items, ok := rawQuestions.([]any)
	if !ok {
		return nil, &ErrInvalidQuizStructure{Reason: fmt.Sprintf("questions is %T, not an array", rawQuestions)}
	}

	out := make([]Question, 0, len(items))
	for i, item := range items {
		q, reason := qv.check(item)
		if reason != "" {
			qv.log.Warn("dropping invalid question", "index", i, "reason", reason)
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (qv *QuizValidator) check(item any) (Question, string) {
	if err := llm.ValidateValue(QuestionSchema, item); err != nil {
		return Question{}, err.Error()
	}

	// The schema guarantees the shape of everything read here.
	m := item.(map[string]any)
	rawOptions := m["options"].([]any)
	q := Question{
		Question:      m["question"].(string),
		Options:       make([]string, len(rawOptions)),
		CorrectAnswer: m["correctAnswer"].(string),
		Explanation:   m["explanation"].(string),
	}
	for i, o := range rawOptions {
		q.Options[i] = o.(string)
	}

	for _, v := range qv.validators {
		if verr := v.Validate(&q); verr != nil {
			return Question{}, verr.Error()
		}
	}
	return q, ""
}
