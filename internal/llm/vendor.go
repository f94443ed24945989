package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

// completion is a vendor reply reduced to what every adapter reports.
type completion struct {
	text  string
	model string
	stop  string
	usage Usage
}

// backend performs one call against a vendor API. Returned errors are
// already mapped to the package error types.
type backend interface {
	complete(ctx context.Context, req Request, model string) (*completion, error)
}

// vendorProvider turns a backend into a Provider and owns the reply checks
// shared by all vendors.
type vendorProvider struct {
	vendor  string
	model   string
	backend backend
}

func (p *vendorProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	c, err := p.backend.complete(ctx, req, p.model)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(c.text)
	if text == "" {
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{}
		}
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty %s reply (stop: %s)", p.vendor, c.stop)}
	}
	// A schema reply cut short can never validate.
	if req.Schema != nil {
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: text}
		}
		if err := validateResponse(req.Schema, text); err != nil {
			return nil, err
		}
	}

	usage := c.usage
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	model := c.model
	if model == "" {
		model = p.model
	}
	return &Response{
		Content:    text,
		Usage:      usage,
		Model:      model,
		StopReason: c.stop,
	}, nil
}

func (p *vendorProvider) ModelID() string {
	return p.model
}

// classifyStatus maps a vendor HTTP status to an error type the retry
// layer understands. A zero status means the request never got an answer.
func classifyStatus(vendor string, status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return &ErrAuth{Vendor: vendor, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v + "s")
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// withJSONInstruction appends a JSON-only directive to system for vendors
// that have no JSON response mode.
func withJSONInstruction(system string) string {
	const instruction = "Respond with a single JSON value and nothing else."
	if system == "" {
		return instruction
	}
	return system + "\n\n" + instruction
}
