package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider retries failed calls with capped exponential backoff.
// Invalid responses get a single second chance; cancellation, truncation
// and a missing configuration are returned at once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *zap.Logger
}

// WithRetry wraps p. A nil logger disables retry logging.
func WithRetry(p Provider, cfg RetryConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	secondChanceUsed := false
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if secondChanceUsed {
				return nil, err
			}
			secondChanceUsed = true
		}
		if attempt >= r.config.MaxAttempts {
			return nil, err
		}

		wait := r.delay(attempt, err)
		r.logger.Debug("retrying LLM request",
			zap.String("purpose", PurposeFrom(ctx)),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// delay is the wait after the given 1-based attempt. A provider's
// Retry-After hint wins over the computed backoff.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	base = math.Min(base, float64(r.config.MaxWait))
	// ±20% jitter
	d := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(max(d, 0))
}
