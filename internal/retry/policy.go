// Package retry decides whether and when a failed publish is attempted again.
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
)

// Policy is the backoff applied between publish attempts. MaxRetries counts the
// attempts after the first one, so the zero value publishes exactly once.
type Policy struct {
	Mode       config.RetryBackoffMode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int
}

// DefaultPolicy publishes once. Enabling retries without tuning the delays gives a
// linear 1s step capped at 30s.
func DefaultPolicy() Policy {
	return Policy{Mode: config.RetryBackoffLinear, Initial: time.Second, Max: 30 * time.Second}
}

// NewPolicy overlays the given values on DefaultPolicy. Non-positive delays, a
// negative retry count and unknown modes keep the default.
func NewPolicy(mode config.RetryBackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if _, ok := backoff[mode]; ok {
		p.Mode = mode
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	if maxRetries > 0 {
		p.MaxRetries = maxRetries
	}
	p.Initial = min(p.Initial, p.Max)
	return p
}

// FromDeploy reads the retry settings of the deploy section. The durations were
// checked by config validation, so parse failures fall back to the defaults.
func FromDeploy(d config.DeployConfig) Policy {
	initial, _ := time.ParseDuration(d.RetryInitialDelay)
	maxDelay, _ := time.ParseDuration(d.RetryMaxDelay)
	return NewPolicy(d.RetryBackoff, initial, maxDelay, d.MaxRetries)
}

var backoff = map[config.RetryBackoffMode]func(initial time.Duration, n int) time.Duration{
	config.RetryBackoffFixed:       func(initial time.Duration, _ int) time.Duration { return initial },
	config.RetryBackoffLinear:      func(initial time.Duration, n int) time.Duration { return time.Duration(n) * initial },
	config.RetryBackoffExponential: func(initial time.Duration, n int) time.Duration { return initial << (n - 1) },
}

// Delay is the wait before retry n (the first retry is 1), capped at Max.
func (p Policy) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	grow, ok := backoff[p.Mode]
	if !ok {
		grow = backoff[config.RetryBackoffLinear]
	}
	d := grow(p.Initial, n)
	if d <= 0 || d > p.Max {
		// a shift past 63 bits wraps to zero or negative
		return p.Max
	}
	return d
}

func (p Policy) Validate() error {
	switch {
	case p.Initial <= 0:
		return errors.ValidationError("retry initial delay must be positive").Build()
	case p.Max <= 0:
		return errors.ValidationError("retry max delay must be positive").Build()
	case p.MaxRetries < 0:
		return errors.ValidationError("max retries cannot be negative").Build()
	}
	return nil
}

// Do calls publish until it succeeds, the retries run out, ctx is done or the
// error is classified as not retryable. attempt starts at 1 and the last error
// is returned.
func (p Policy) Do(ctx context.Context, publish func(attempt int) error) error {
	for attempt := 1; ; attempt++ {
		err := publish(attempt)
		if err == nil || attempt > p.MaxRetries || !retryable(err) {
			return err
		}
		wait := p.Delay(attempt)
		slog.Warn("Publish failed, retrying", logfields.Attempt(attempt), slog.Duration("wait", wait), logfields.Error(err))
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
	}
}

// retryable treats unclassified errors as transient.
func retryable(err error) bool {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.CanRetry()
	}
	return true
}
