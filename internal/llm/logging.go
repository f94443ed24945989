package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/metrics"
	"github.com/abhisek/prepcoach/internal/store"
)

// EventRecorder persists one row per model call.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider audits every call: a log line, Prometheus samples and,
// when a recorder is set, an llm_events row holding the full request and
// reply.
type LoggingProvider struct {
	inner  Provider
	vendor string
	events EventRecorder
	log    *logger.Logger
}

// WithLogging wraps p. Either events or log may be nil.
func WithLogging(p Provider, vendor string, events EventRecorder, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{
		inner:  p,
		vendor: vendor,
		events: events,
		log:    log.With("component", "llm", "provider", vendor),
	}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := l.event(purpose, req, resp, err, elapsed)

	metrics.ObserveLLM(l.vendor, purpose, err == nil, elapsed)
	metrics.ObserveLLMTokens(l.vendor, ev.InputTokens, ev.OutputTokens)

	fields := []any{"purpose", purpose, "model", ev.Model, "latency_ms", ev.LatencyMs}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, "error", err)...)
	} else {
		l.log.Info("llm request", append(fields,
			"input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens, "stop", resp.StopReason)...)
	}

	if l.events != nil {
		if rerr := l.events.AppendLLMRequest(ctx, ev); rerr != nil {
			l.log.Warn("failed to record llm request event", "error", rerr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, elapsed time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: auditRequest(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Content
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	return ev
}

type auditMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type auditRecord struct {
	System      string         `json:"system,omitempty"`
	Messages    []auditMessage `json:"messages"`
	Schema      string         `json:"schema,omitempty"`
	JSONOutput  bool           `json:"jsonOutput,omitempty"`
	MaxTokens   int            `json:"maxTokens,omitempty"`
	Temperature float64        `json:"temperature,omitempty"`
}

// auditRequest renders req as indented JSON for the llm_events table. The
// schema is stored by name only.
func auditRequest(req Request) string {
	rec := auditRecord{
		System:      req.System,
		Messages:    make([]auditMessage, len(req.Messages)),
		JSONOutput:  req.JSONOutput,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for i, m := range req.Messages {
		rec.Messages[i] = auditMessage{Role: m.Role, Content: m.Content}
	}
	if req.Schema != nil {
		rec.Schema = req.Schema.Name
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
