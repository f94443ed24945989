package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

// EnvPrefix is prepended to every LLM variable name.
const EnvPrefix = "PREPCOACH_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the adapter: "gemini", "anthropic", "openai",
	// "openrouter" or "mock".
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"LLM_RETRY_"`

	// Timeout bounds a single model call.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

// OpenAIConfig also serves OpenAI-compatible APIs through BaseURL.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.0-flash-exp"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures retries for transient failures. The default is a
// single attempt: a failed quiz call falls back to canned content instead
// of being repeated.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"1"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the configuration with every default applied and
// nothing read from the process environment.
func DefaultConfig() Config {
	var cfg Config
	// Parsing against an empty environment only applies envDefault tags,
	// none of which can fail.
	_ = env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: map[string]string{},
	})
	return cfg
}

// ConfigFromEnv reads PREPCOACH_* variables on top of the defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// vendorKeys lists the vendors that need an API key, in the order
// DiscoverConfig checks them. env is the vendor's own variable name; the
// PREPCOACH_ form of it is what Validate asks for.
var vendorKeys = []struct {
	name string
	env  string
	key  func(*Config) *string
}{
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// DiscoverConfig selects the first vendor whose standard key variable
// (GEMINI_API_KEY and so on) is set.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendorKeys {
		k := os.Getenv(v.env)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = v.name
		*v.key(&cfg) = k
		return cfg, true
	}
	return Config{}, false
}

// Resolve returns the env-derived config when its provider is usable,
// otherwise a discovered one. The returned error is the env validation
// failure when discovery also finds nothing.
func Resolve() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	verr := cfg.Validate()
	if verr == nil {
		return cfg, nil
	}
	if _, explicit := os.LookupEnv(EnvPrefix + "LLM_PROVIDER"); !explicit {
		if found, ok := DiscoverConfig(); ok {
			found.Retry = cfg.Retry
			found.Timeout = cfg.Timeout
			return found, nil
		}
	}
	return Config{}, verr
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, v := range vendorKeys {
		if v.name != c.Provider {
			continue
		}
		if *v.key(&c) == "" {
			return fmt.Errorf("%s%s is required for the %s provider", EnvPrefix, v.env, v.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
