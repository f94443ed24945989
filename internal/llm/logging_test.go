package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/store"
)

type recordedEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordedEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	rec := &recordedEvents{}
	mock := NewMockProvider(MockResponse{
		Content: `{"questions":[]}`,
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, "mock", rec, nil)

	ctx := WithPurpose(context.Background(), PurposeQuizGen)
	_, err := p.Generate(ctx, Request{
		System:     "sys",
		Messages:   UserPrompt("make a quiz"),
		JSONOutput: true,
		MaxTokens:  500,
	})
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, PurposeQuizGen, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 7, ev.OutputTokens)
	assert.Equal(t, `{"questions":[]}`, ev.ResponseBody)

	var audit auditRecord
	require.NoError(t, json.Unmarshal([]byte(ev.RequestBody), &audit))
	assert.Equal(t, auditRecord{
		System:     "sys",
		Messages:   []auditMessage{{Role: RoleUser, Content: "make a quiz"}},
		JSONOutput: true,
		MaxTokens:  500,
	}, audit)
}

func TestLogging_SchemaStoredByName(t *testing.T) {
	rec := &recordedEvents{}
	p := WithLogging(NewMockProvider(MockText(`{}`)), "mock", rec, nil)

	_, err := p.Generate(context.Background(), Request{Messages: UserPrompt("q"), Schema: questionSchema()})
	require.NoError(t, err)
	require.Len(t, rec.events, 1)
	assert.Contains(t, rec.events[0].RequestBody, `"schema": "test-question"`)
	assert.NotContains(t, rec.events[0].RequestBody, "properties")
}

func TestLogging_RecordsFailure(t *testing.T) {
	rec := &recordedEvents{}
	p := WithLogging(NewMockProvider(MockError(errors.New("boom"))), "mock", rec, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.EqualError(t, err, "boom")

	require.Len(t, rec.events, 1)
	assert.False(t, rec.events[0].Success)
	assert.Equal(t, "boom", rec.events[0].ErrorMessage)
	assert.Equal(t, "unknown", rec.events[0].Purpose)
}

func TestLogging_RecorderErrorDoesNotFailCall(t *testing.T) {
	rec := &recordedEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockText("tip")), "mock", rec, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "tip", resp.Text())
}

func TestLogging_NilRecorder(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("x")), "mock", nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
