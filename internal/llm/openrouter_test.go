package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// openRouterStub records what an OpenRouter client sends.
type openRouterStub struct {
	mu      sync.Mutex
	path    string
	model   string
	referer string
	title   string
	auth    string
}

func (s *openRouterStub) serve(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		s.path = r.URL.Path
		s.model = body.Model
		s.referer = r.Header.Get("HTTP-Referer")
		s.title = r.Header.Get("X-Title")
		s.auth = r.Header.Get("Authorization")
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "gen-1",
			"object":  "chat.completion",
			"created": 1760000000,
			"model":   body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"title":"Go Tour","type":"free"}`},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 20, "completion_tokens": 10, "total_tokens": 30},
		})
	}))
	t.Cleanup(server.Close)
	return server.URL + "/api/v1"
}

func TestOpenRouterProvider_SendsModelUnchanged(t *testing.T) {
	// Vendor-prefixed IDs and names that collide with OpenAI aliases must
	// both reach OpenRouter verbatim.
	for _, model := range []string{"anthropic/claude-3.5-haiku", "meta-llama/llama-3.1-8b-instruct", "gpt-4o-mini"} {
		t.Run(model, func(t *testing.T) {
			stub := &openRouterStub{}
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model, BaseURL: stub.serve(t)})
			if err != nil {
				t.Fatalf("NewOpenRouterProvider: %v", err)
			}
			if p.ModelID() != model {
				t.Errorf("ModelID = %q, want %q", p.ModelID(), model)
			}

			resp, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "Suggest a resource."}},
				Schema:   resourceSchema(),
			})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			stub.mu.Lock()
			defer stub.mu.Unlock()
			if stub.model != model {
				t.Errorf("model sent = %q, want %q", stub.model, model)
			}
			if resp.Model != model {
				t.Errorf("response model = %q, want %q", resp.Model, model)
			}
			if stub.path != "/api/v1/chat/completions" {
				t.Errorf("path = %q", stub.path)
			}
			if stub.referer != openRouterReferer || stub.title != openRouterTitle {
				t.Errorf("attribution headers = %q / %q", stub.referer, stub.title)
			}
			if stub.auth != "Bearer sk-or-test" {
				t.Errorf("Authorization = %q", stub.auth)
			}
		})
	}
}

func TestNewOpenRouterProvider_Config(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "openai/gpt-4o-mini"}); err == nil {
		t.Error("missing API key should fail")
	}

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "openai/gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	if p.ModelID() != "openai/gpt-4o-mini" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestOpenAIProvider_NoAttributionHeaders(t *testing.T) {
	stub := &openRouterStub{}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: stub.serve(t)})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	if _, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}, Schema: resourceSchema()}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.referer != "" || stub.title != "" {
		t.Errorf("plain OpenAI requests carry attribution headers: %q / %q", stub.referer, stub.title)
	}
}
