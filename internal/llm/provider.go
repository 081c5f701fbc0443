// Package llm is the generation capability behind roadmap catalogs and
// career suggestions: one Provider interface, vendor implementations and
// decorators for timeouts, retries and the request audit log.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response per call. When the request carries a
// Schema the returned Content has already been validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt. pathwise always sends one user message
// after the system prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema selects the provider's structured output mode. Nil asks for
	// plain text.
	Schema *Schema

	// MaxTokens caps the response; zero means defaultMaxTokens.
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name is sent to providers that want one
// and keys the compiled-schema cache, so two different definitions must
// never share a name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that actually answered, which can differ from
	// ModelID for aliases and routers.
	Model string
	// StopReason is "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const defaultMaxTokens = 4096

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
