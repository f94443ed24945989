package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_ExpiresSlowCall(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var te *ErrTimeout
	if !errors.As(err, &te) {
		t.Fatalf("expected ErrTimeout, got %T (%v)", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected the deadline error to be wrapped")
	}
	if IsRetryable(err) {
		t.Fatal("timeouts must not be retried")
	}
}

func TestTimeout_CallerCancellationIsNotTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	var te *ErrTimeout
	if errors.As(err, &te) {
		t.Fatal("caller cancellation reported as timeout")
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider(MockText("ok"))
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("expected the inner provider back")
	}
}

func TestTimeout_FastCallSucceeds(t *testing.T) {
	p := WithTimeout(NewMockProvider(MockText("hello")), time.Second)
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "hello" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock, got %q", p.ModelID())
	}
}
