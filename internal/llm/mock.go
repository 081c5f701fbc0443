package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned answer. StopReason defaults to "end".
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string
	Err        error
}

// MockProvider replays canned responses in order and records every
// request. With ValidateSchemas it checks content the way the real
// providers do, so a response that would never reach a caller in
// production fails here too.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	validate  bool

	Calls    []Request
	Purposes []string
}

// NewMockProvider creates a MockProvider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// ValidateSchemas turns on schema checks for requests that carry one.
func (m *MockProvider) ValidateSchemas() *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validate = true
	return m
}

// Generate pops the next response. An exhausted queue reports the
// provider as unavailable.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = "end"
	}
	if m.validate {
		if err := checkContent(req, next.Content, stop); err != nil {
			return nil, err
		}
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: stop}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount reports how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
