package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/store"
)

// ErrNotConfigured is returned by NewProviderFromEnv when no provider is
// selected and no well-known API key is present.
var ErrNotConfigured = errors.New("no LLM provider configured: set PATHWISE_LLM_PROVIDER or an API key such as OPENAI_API_KEY")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging middleware.
// eventRepo may be nil, in which case calls are only logged through zap.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider,
		WithEventRepo(eventRepo),
		WithLogger(logger),
		WithBodies(cfg.LogBodies),
	)
	retried := WithRetry(logged, cfg.Retry, logger)

	return WithTimeout(retried, cfg.Timeout), nil
}

// NewProviderFromEnv resolves configuration from PATHWISE_* variables,
// falling back to well-known API key variables when no provider is
// selected explicitly.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if os.Getenv(envPrefix+"LLM_PROVIDER") == "" && cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		discovered.Timeout = cfg.Timeout
		discovered.Retry = cfg.Retry
		discovered.LogBodies = cfg.LogBodies
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}

type unavailableProvider struct {
	err error
}

// Unavailable returns a Provider whose every call fails with err wrapped in
// ErrProviderUnavailable. It stands in for a missing configuration when a
// caller may not need generation at all.
func Unavailable(err error) Provider {
	return unavailableProvider{err: err}
}

func (u unavailableProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.err}
}

func (u unavailableProvider) ModelID() string {
	return "unavailable"
}
