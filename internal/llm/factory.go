package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/prepcoach/internal/logger"
)

// NewProvider builds the configured adapter and wraps it as
// caller -> retry -> timeout -> logging -> adapter, so every attempt is
// bounded and recorded on its own.
func NewProvider(ctx context.Context, cfg Config, events EventRecorder, log *logger.Logger) (Provider, error) {
	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logged := WithLogging(base, cfg.Provider, events, log)
	bounded := WithTimeout(logged, cfg.Timeout)
	return WithRetry(bounded, cfg.Retry), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return base, nil
}
