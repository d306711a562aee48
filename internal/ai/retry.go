// Package ai wraps the generative-AI provider used for pack-list
// generation, vaccination advice and luggage scans. The provider sits behind
// the Provider interface; Client adds the bounded rate-limit retry on top.
package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultBackoffUnit is the delay before the first retry. Retry n waits n units.
const DefaultBackoffUnit = 1500 * time.Millisecond

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds how often and how patiently a rate-limited call is retried.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Unit is multiplied by the retry number to get the delay.
	Unit time.Duration
	// Sleep waits between attempts. Nil means a context-aware timer.
	Sleep Sleeper
	// Logger receives one warn line per retry. Nil means slog.Default().
	Logger *slog.Logger
}

// rateLimitMarkers are the substrings that identify provider overload.
var rateLimitMarkers = []string{"429", "quota", "RESOURCE_EXHAUSTED"}

// IsRateLimit reports whether err signals that the provider is rate limiting.
// genai.APIError renders its HTTP code and status into the message, so the
// substring check covers SDK errors as well as wrapped ones.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// Retry runs fn and retries it while it fails with a rate-limit error and
// the retry budget is not spent. Every other error is returned at once.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	for attempt := 0; ; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		if !IsRateLimit(err) || attempt >= p.MaxRetries {
			return out, err
		}

		delay := time.Duration(attempt+1) * p.Unit
		log.WarnContext(ctx, "ai provider rate limited, retrying",
			"attempt", attempt+1,
			"max_retries", p.MaxRetries,
			"delay_ms", delay.Milliseconds(),
		)
		if err := sleep(ctx, delay); err != nil {
			var zero T
			return zero, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
