package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// chatBackend speaks the chat completions protocol, either to OpenAI or to
// a compatible endpoint such as OpenRouter.
type chatBackend struct {
	client *openai.Client
	vendor string
}

// NewOpenAIProvider builds the chat completions adapter. BaseURL points it
// at any compatible endpoint.
func NewOpenAIProvider(cfg OpenAIConfig) (Provider, error) {
	return newChatProvider("openai", cfg.APIKey, cfg.BaseURL, ResolveModel("openai", cfg.Model))
}

// NewOpenRouterProvider targets OpenRouter. Model IDs are vendor qualified
// ("google/gemini-2.0-flash-exp") and used verbatim.
func NewOpenRouterProvider(cfg OpenRouterConfig) (Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newChatProvider("openrouter", cfg.APIKey, baseURL, cfg.Model)
}

func newChatProvider(vendor, apiKey, baseURL, model string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", vendor)
	}
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	return &vendorProvider{
		vendor:  vendor,
		model:   model,
		backend: &chatBackend{client: openai.NewClientWithConfig(cc), vendor: vendor},
	}, nil
}

func (b *chatBackend) complete(ctx context.Context, req Request, model string) (*completion, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               model,
		Messages:            chatMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	switch {
	case req.Schema != nil:
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	case req.JSONOutput:
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, b.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s reply has no choices", b.vendor)}
	}

	choice := resp.Choices[0]
	return &completion{
		text:  choice.Message.Content,
		model: resp.Model,
		stop:  chatStop(choice.FinishReason),
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (b *chatBackend) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(b.vendor, apiErr.HTTPStatusCode, 0, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(b.vendor, reqErr.HTTPStatusCode, 0, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

func chatMessages(req Request) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func chatStop(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonLength:
		return StopMaxTokens
	case openai.FinishReasonContentFilter:
		return StopError
	}
	return StopEnd
}
