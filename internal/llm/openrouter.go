package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter attribution headers. They label pathwise traffic on the
// OpenRouter dashboard.
const (
	openRouterReferer = "https://github.com/abhisek/pathwise"
	openRouterTitle   = "pathwise"
)

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// API. Model IDs are vendor-namespaced ("anthropic/claude-3.5-haiku") and
// are sent exactly as configured.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: attribution{next: http.DefaultTransport}}
	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	}, client)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attribution adds the OpenRouter app headers to every request.
type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(req)
}
