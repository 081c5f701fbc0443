package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("LLM rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("LLM rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is content that is not JSON or does not match the
// request schema. Content keeps the raw output for the audit log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures, 5xx answers and a
// provider that was never configured.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is output cut off at the token budget. Content is
// the truncated output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated at the token limit after %d bytes", len(e.Content))
}

// retryClass says how the retry decorator treats an error.
type retryClass int

const (
	retryTransient retryClass = iota
	retryOnce
	retryNever
)

func classify(err error) retryClass {
	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.Is(err, ErrNotConfigured):
		return retryNever
	case errors.As(err, &maxTok):
		// Same budget, same truncation.
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryTransient
	}
}
