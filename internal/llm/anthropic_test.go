package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicStub serves one canned Messages API answer and keeps the last
// request body.
type anthropicStub struct {
	status  int
	header  map[string]string
	reply   map[string]any
	lastReq []byte
}

func (s *anthropicStub) provider(t *testing.T) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastReq, _ = io.ReadAll(r.Body)
		for k, v := range s.header {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", "application/json")
		if s.status != 0 {
			w.WriteHeader(s.status)
		}
		json.NewEncoder(w).Encode(s.reply)
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_01",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 812, "output_tokens": 64},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func suggestionRequest() Request {
	return Request{
		System:      "You are a career advisor.",
		Messages:    []Message{{Role: RoleUser, Content: "Current position: student"}},
		Schema:      resourceSchema(),
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	stub := &anthropicStub{reply: anthropicMessage(`{"title":"Go Tour","type":"free"}`, "end_turn")}
	p := stub.provider(t)

	resp, err := p.Generate(context.Background(), suggestionRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `{"title":"Go Tour","type":"free"}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage != (Usage{InputTokens: 812, OutputTokens: 64, TotalTokens: 876}) {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" || resp.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("stop = %q model = %q", resp.StopReason, resp.Model)
	}

	body := string(stub.lastReq)
	for _, want := range []string{"You are a career advisor.", "Current position: student", `"enum"`} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %s:\n%s", want, body)
		}
	}
}

func TestAnthropicProvider_OutputChecks(t *testing.T) {
	tests := []struct {
		name  string
		reply map[string]any
		check func(error) bool
	}{
		{
			"truncated at token limit",
			anthropicMessage(`{"title":"Go To`, "max_tokens"),
			func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
		{
			"schema violation",
			anthropicMessage(`{"title":"Go Tour","type":"trial"}`, "end_turn"),
			func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
		{
			"no text block",
			map[string]any{
				"id": "msg_02", "type": "message", "role": "assistant",
				"content":     []map[string]any{},
				"model":       "claude-haiku-4-5-20251001",
				"stop_reason": "end_turn",
				"usage":       map[string]any{"input_tokens": 1, "output_tokens": 0},
			},
			func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := (&anthropicStub{reply: tt.reply}).provider(t)
			_, err := p.Generate(context.Background(), suggestionRequest())
			if !tt.check(err) {
				t.Fatalf("unexpected error %T: %v", err, err)
			}
		})
	}
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	t.Run("rate limit carries Retry-After", func(t *testing.T) {
		stub := &anthropicStub{
			status: http.StatusTooManyRequests,
			header: map[string]string{"Retry-After": "3"},
			reply:  anthropicError("rate_limit_error"),
		}
		_, err := stub.provider(t).Generate(context.Background(), suggestionRequest())
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("err = %T %v, want *ErrRateLimit", err, err)
		}
		if rl.RetryAfter != 3*time.Second {
			t.Errorf("RetryAfter = %s, want 3s", rl.RetryAfter)
		}
	})

	t.Run("overloaded", func(t *testing.T) {
		stub := &anthropicStub{status: http.StatusServiceUnavailable, reply: anthropicError("overloaded_error")}
		_, err := stub.provider(t).Generate(context.Background(), suggestionRequest())
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("err = %T %v, want *ErrProviderUnavailable", err, err)
		}
	})
}

func TestRetryAfterHeader(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"12", 12 * time.Second},
		{"0", 0},
		{"-4", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		resp := &http.Response{Header: http.Header{}}
		if tt.header != "" {
			resp.Header.Set("Retry-After", tt.header)
		}
		if got := retryAfter(resp); got != tt.want {
			t.Errorf("retryAfter(%q) = %s, want %s", tt.header, got, tt.want)
		}
	}
	if retryAfter(nil) != 0 {
		t.Error("retryAfter(nil) should be 0")
	}
}

func TestAnthropicModelAliases(t *testing.T) {
	tests := map[string]string{
		"claude-haiku":               "claude-haiku-4-5-20251001",
		"claude-sonnet":              "claude-sonnet-4-20250514",
		"claude-sonnet-4-5-20250929": "claude-sonnet-4-5-20250929",
	}
	for in, want := range tests {
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: in})
		if err != nil {
			t.Fatalf("NewAnthropicProvider(%q): %v", in, err)
		}
		if p.ModelID() != want {
			t.Errorf("ModelID for %q = %q, want %q", in, p.ModelID(), want)
		}
	}

	if _, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"}); err == nil {
		t.Error("missing API key should fail")
	}
}
