package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/store/storetest"
)

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s := storetest.Open(t)
	core, logs := observer.New(zap.DebugLevel)

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithLogging(mock, "mock", WithEventRepo(s.EventRepo()), WithLogger(zap.New(core)))

	ctx := WithPurpose(context.Background(), "roadmap-levels")
	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected second call to fail")
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	failed, ok := events[0], events[1]
	if !ok.Success || ok.InputTokens != 12 || ok.OutputTokens != 7 {
		t.Errorf("success event = %+v", ok)
	}
	if ok.Provider != "mock" || ok.Purpose != "roadmap-levels" {
		t.Errorf("provider/purpose = %q/%q", ok.Provider, ok.Purpose)
	}
	if !strings.Contains(ok.RequestBody, "[system]") || ok.ResponseBody != `{"ok":true}` {
		t.Errorf("bodies = %q / %q", ok.RequestBody, ok.ResponseBody)
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "slow down") {
		t.Errorf("failed event = %+v", failed)
	}

	if n := logs.FilterMessage("llm request failed").Len(); n != 1 {
		t.Errorf("warn logs = %d, want 1", n)
	}
}

func TestLoggingProvider_WithoutBodies(t *testing.T) {
	s := storetest.Open(t)
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"secret":1}`)})
	p := WithLogging(mock, "mock", WithEventRepo(s.EventRepo()), WithBodies(false))

	if _, err := p.Generate(context.Background(), Request{System: "sys"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if events[0].RequestBody != "" || events[0].ResponseBody != "" {
		t.Errorf("bodies recorded: %+v", events[0])
	}
	if events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", events[0].Purpose)
	}
}

func TestLoggingProvider_NoRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock")
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Second):
		return &Response{}, nil
	}
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}

	if got := WithTimeout(slowProvider{}, 0); got != (slowProvider{}) {
		t.Error("zero timeout should return the provider unchanged")
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q, want mock", p.ModelID())
	}

	cfg.Provider = "openai"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Error("expected validation error for missing key")
	}
}

func TestNewProviderFromEnv(t *testing.T) {
	for _, k := range []string{"PATHWISE_LLM_PROVIDER", "PATHWISE_OPENAI_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, err := NewProviderFromEnv(context.Background(), nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	p, err := NewProviderFromEnv(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("discovered provider: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", p.ModelID())
	}
}

func TestUnavailable(t *testing.T) {
	p := Unavailable(ErrNotConfigured)

	_, err := p.Generate(context.Background(), Request{})

	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want *ErrProviderUnavailable", err)
	}
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want it to wrap ErrNotConfigured", err)
	}
}
