package quizgen

import (
	"context"

	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/llmjson"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/metrics"
)

// Generator asks the model for a quiz and recovers a usable one from
// whatever comes back.
type Generator struct {
	provider  llm.Provider
	parser    *llmjson.Parser
	validator *QuizValidator
	config    Config
	log       *logger.Logger
}

func New(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "quizgen")
	return &Generator{
		provider:  provider,
		parser:    llmjson.NewParser(log),
		validator: NewQuizValidator(cfg.Validators, log),
		config:    cfg,
		log:       log,
	}
}

// Generate never fails: model, parse and validation errors are logged and
// answered with fallback questions. The result always holds between
// MinQuestions and MaxQuestions valid questions. A Generator without a
// provider serves the fallback quiz.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) Quiz {
	if g.provider == nil {
		return g.resolve(input, nil, metrics.OutcomeFallbackLLM)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildPrompt(input, g.config.QuestionCount)),
		JSONOutput:  true,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		g.log.Warn("quiz generation call failed", "error", err)
		return g.resolve(input, nil, metrics.OutcomeFallbackLLM)
	}

	raw := resp.Text()
	g.log.Debug("raw quiz response", "response", raw)

	parsed, err := g.parser.ParseResponse(raw)
	if err != nil {
		g.log.Warn("quiz response could not be parsed", "error", err, "response_len", len(raw))
		return g.resolve(input, nil, metrics.OutcomeFallbackParse)
	}
	metrics.ObserveParseStrategy(parsed.Strategy)
	if len(parsed.Failures) > 0 {
		g.log.Info("quiz response recovered", "strategy", parsed.Strategy, "failed_strategies", len(parsed.Failures))
	}

	questions, err := g.validator.Validate(parsed.Value)
	if err != nil {
		g.log.Warn("quiz response has no usable questions", "error", err)
		return g.resolve(input, nil, metrics.OutcomeFallbackInvalid)
	}
	return g.resolve(input, questions, metrics.OutcomeFallbackInvalid)
}

// resolve applies the top-up policy to the validated questions. emptyOutcome
// labels the case where nothing usable came back.
func (g *Generator) resolve(input GenerateInput, questions []Question, emptyOutcome string) Quiz {
	var (
		quiz    Quiz
		outcome string
	)
	switch {
	case len(questions) == 0:
		quiz = FallbackQuiz(input.Industry, input.Skills)
		outcome = emptyOutcome
	case len(questions) < g.config.MinQuestions:
		quiz = append(Quiz(questions), FallbackQuiz(input.Industry, input.Skills)...)
		outcome = metrics.OutcomePadded
	default:
		quiz = Quiz(questions)
		outcome = metrics.OutcomeGenerated
	}
	if g.config.MaxQuestions > 0 && len(quiz) > g.config.MaxQuestions {
		quiz = quiz[:g.config.MaxQuestions]
	}

	metrics.ObserveQuiz(outcome, len(quiz))
	g.log.Info("quiz ready", "outcome", outcome, "questions", len(quiz), "from_model", len(questions))
	return quiz
}
