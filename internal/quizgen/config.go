package quizgen

// Config controls the behavior of the Generator.
type Config struct {
	// QuestionCount is how many questions the prompt asks for.
	QuestionCount int

	// MinQuestions is the smallest quiz returned. Shorter model output is
	// topped up with the fallback questions.
	MinQuestions int

	// MaxQuestions caps the returned quiz.
	MaxQuestions int

	// Validators run in order on every decoded question; the first
	// failure drops it.
	Validators []Validator

	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		QuestionCount: 10,
		MinQuestions:  3,
		MaxQuestions:  10,
		Validators:    DefaultValidators(),
		MaxTokens:     4096,
		Temperature:   0.7,
	}
}
