package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func resourceSchema() *Schema {
	return &Schema{
		Name: "test-resource",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"type":  map[string]any{"type": "string", "enum": []any{"free", "paid"}},
				"hours": map[string]any{"type": "integer", "minimum": 0},
			},
			"required":             []any{"title", "type"},
			"additionalProperties": false,
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"title":"Go Tour","type":"free","hours":3}`, false},
		{"optional field omitted", `{"title":"Go Tour","type":"paid"}`, false},
		{"missing required", `{"title":"Go Tour"}`, true},
		{"wrong type", `{"title":"Go Tour","type":"free","hours":"three"}`, true},
		{"enum violation", `{"title":"Go Tour","type":"freemium"}`, true},
		{"unknown property", `{"title":"Go Tour","type":"free","rating":5}`, true},
		{"not JSON", `{title: Go Tour}`, true},
		{"trailing garbage", `{"title":"Go Tour","type":"free"} extra`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resourceSchema().validate(json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("err = %v (%T), want *ErrInvalidResponse", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("Content = %q, want the raw response", inv.Content)
			}
		})
	}
}

func TestCheckContent(t *testing.T) {
	truncated := json.RawMessage(`{"title":"Go To`)
	valid := json.RawMessage(`{"title":"Go Tour","type":"free"}`)

	t.Run("no schema accepts anything", func(t *testing.T) {
		if err := checkContent(Request{}, truncated, "max_tokens"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("valid output at the token limit passes", func(t *testing.T) {
		if err := checkContent(Request{Schema: resourceSchema()}, valid, "max_tokens"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("truncated output reports the token limit", func(t *testing.T) {
		err := checkContent(Request{Schema: resourceSchema()}, truncated, "max_tokens")
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("err = %v (%T), want *ErrMaxTokensExceeded", err, err)
		}
		if string(maxTok.Content) != string(truncated) {
			t.Errorf("Content = %q", maxTok.Content)
		}
		if classify(err) != retryNever {
			t.Error("truncation must not be retried")
		}
	})

	t.Run("invalid output that ended normally", func(t *testing.T) {
		err := checkContent(Request{Schema: resourceSchema()}, truncated, "end")
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("err = %v (%T), want *ErrInvalidResponse", err, err)
		}
		if classify(err) != retryOnce {
			t.Error("invalid output gets one retry")
		}
	})
}

func TestSchemaCompileCached(t *testing.T) {
	s := &Schema{Name: "test-cached", Definition: map[string]any{"type": "object"}}
	first, err := s.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := s.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Error("second compile should reuse the cached schema")
	}
}

func TestSchemaCompileError(t *testing.T) {
	s := &Schema{Name: "test-broken", Definition: map[string]any{"type": 42}}
	err := s.validate(json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want *ErrInvalidResponse for an uncompilable schema", err)
	}
}
