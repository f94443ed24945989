package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider repeats transient failures with exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. With MaxAttempts <= 1 it returns p unchanged.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	sawInvalid := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.config.MaxAttempts || !IsRetryable(err) {
			return nil, err
		}

		// An invalid reply gets exactly one more try.
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if sawInvalid {
				return nil, err
			}
			sawInvalid = true
		}

		if werr := wait(ctx, r.delay(attempt, err)); werr != nil {
			return nil, werr
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// delay is the pause after the given 1-based attempt. A rate limit with a
// Retry-After hint overrides the schedule.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	mult := math.Max(r.config.Multiplier, 1)
	d := float64(r.config.InitialWait) * math.Pow(mult, float64(attempt-1))
	if r.config.MaxWait > 0 {
		d = math.Min(d, float64(r.config.MaxWait))
	}
	// Up to 20% jitter either way.
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
