// Package llm talks to generative-text services.
//
// Callers depend on the Provider interface only; concrete adapters exist for
// Gemini, Anthropic, OpenAI and OpenRouter, plus a scripted mock for tests.
// NewProvider layers logging, timeout and retry decorators around the adapter.
package llm

import (
	"context"
	"strings"
)

// Provider generates a completion for a request.
type Provider interface {
	// Generate sends the request and returns the model's reply. With a
	// Schema the reply is JSON validated against it; without one the reply
	// is free text and may be anything at all.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System string

	// Messages is the conversation. Single-turn callers pass one user message.
	Messages []Message

	// Schema, when set, asks the provider for native structured output and
	// validates the reply against it.
	Schema *Schema

	// JSONOutput asks for a JSON reply without constraining its shape. The
	// reply is still untrusted text; providers without a JSON mode ignore it.
	JSONOutput bool

	MaxTokens int

	// Temperature controls randomness in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request body.
func UserPrompt(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}

// Schema is a JSON Schema the reply must satisfy.
type Schema struct {
	// Name identifies the schema, e.g. "quiz-question". Used as the tool name
	// for Anthropic and the schema name for OpenAI.
	Name string

	Description string

	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the reply text. It is validated JSON when the request
	// carried a Schema and may be anything otherwise.
	Content string

	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the reply as a trimmed string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
