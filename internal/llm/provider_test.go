package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysScript(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: `{"questions":[]}`, Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockError(&ErrRateLimit{}),
	)
	mock.AddResponse(MockText("Review indexes."))

	resp, err := mock.Generate(context.Background(), Request{System: "quiz", Messages: UserPrompt("first")})
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, resp.Content)
	assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "mock", resp.Model)

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	resp, err = mock.Generate(context.Background(), Request{System: "tip"})
	require.NoError(t, err)
	assert.Equal(t, "Review indexes.", resp.Text())

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail, "an exhausted script is unavailable")

	assert.Equal(t, 4, mock.CallCount())
	reqs := mock.Requests()
	require.Len(t, reqs, 4)
	assert.Equal(t, "quiz", reqs[0].System)
	assert.Equal(t, "first", reqs[0].Messages[0].Content)
}

func TestMockProvider_LastRequest(t *testing.T) {
	mock := NewMockProvider(MockText("a"))
	_, ok := mock.LastRequest()
	assert.False(t, ok)

	_, _ = mock.Generate(context.Background(), Request{System: "s"})
	req, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "s", req.System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeImprovementTip, PurposeFrom(WithPurpose(ctx, PurposeImprovementTip)))
}

func TestResponse_Text(t *testing.T) {
	var none *Response
	assert.Empty(t, none.Text())
	assert.Equal(t, "tip text", (&Response{Content: "  tip text \n"}).Text())
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}}, UserPrompt("hi"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"gemini without key", Config{Provider: "gemini"}, "PREPCOACH_GEMINI_API_KEY"},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, ""},
		{"anthropic without key", Config{Provider: "anthropic"}, "PREPCOACH_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "a"}}, ""},
		{"openai without key", Config{Provider: "openai"}, "PREPCOACH_OPENAI_API_KEY"},
		{"openrouter without key", Config{Provider: "openrouter"}, "PREPCOACH_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown", Config{Provider: "bard"}, `unknown LLM provider: "bard"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewProvider_BuildsEveryVendor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "g"
	cfg.Anthropic.APIKey = "a"
	cfg.OpenAI.APIKey = "o"
	cfg.OpenRouter.APIKey = "r"

	want := map[string]string{
		"gemini":     "gemini-2.0-flash",
		"anthropic":  "claude-haiku-4-5-20251001",
		"openai":     "gpt-4o-mini",
		"openrouter": "google/gemini-2.0-flash-exp",
		"mock":       "mock",
	}
	for vendor, model := range want {
		cfg.Provider = vendor
		p, err := NewProvider(context.Background(), cfg, nil, nil)
		require.NoError(t, err, vendor)
		assert.Equal(t, model, p.ModelID(), vendor)
	}
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil)
	assert.EqualError(t, err, `unknown LLM provider: "nope"`)

	_, err = NewProvider(context.Background(), Config{Provider: "anthropic"}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initializing anthropic provider")
}

func TestNewProvider_MockIsOffline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestResponse_ProseMarshals(t *testing.T) {
	resp := &Response{Content: "Sure! Here are your questions: 1) ...", Model: "mock"}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Content":"Sure! Here are your questions: 1) ..."`)
}
