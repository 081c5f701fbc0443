package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"levels":[]}`), Usage: Usage{InputTokens: 900, OutputTokens: 2100}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(`{"careers":[]}`), StopReason: "max_tokens"},
	)

	resp, err := mock.Generate(WithPurpose(context.Background(), "roadmap-levels"), Request{System: "roadmap"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if string(resp.Content) != `{"levels":[]}` || resp.Usage.OutputTokens != 2100 || resp.StopReason != "end" {
		t.Errorf("first response = %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &rl) {
		t.Errorf("second: err = %v, want *ErrRateLimit", err)
	}

	resp, err = mock.Generate(WithPurpose(context.Background(), "career-suggestions"), Request{})
	if err != nil {
		t.Fatalf("third: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Errorf("stop reason = %q, want max_tokens", resp.StopReason)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Errorf("exhausted queue: err = %v, want *ErrProviderUnavailable", err)
	}

	if mock.CallCount() != 4 {
		t.Errorf("CallCount = %d, want 4", mock.CallCount())
	}
	if mock.Calls[0].System != "roadmap" {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
	want := []string{"roadmap-levels", "unknown", "career-suggestions", "unknown"}
	for i, p := range want {
		if mock.Purposes[i] != p {
			t.Errorf("Purposes[%d] = %q, want %q", i, mock.Purposes[i], p)
		}
	}
}

func TestMockProvider_ValidateSchemas(t *testing.T) {
	bad := json.RawMessage(`{"title":"Go Tour","type":"trial"}`)

	// Without validation the mock hands back whatever it was given.
	if _, err := NewMockProvider(MockResponse{Content: bad}).Generate(context.Background(), Request{Schema: resourceSchema()}); err != nil {
		t.Fatalf("unvalidated mock: %v", err)
	}

	mock := NewMockProvider(MockResponse{Content: bad}, MockResponse{Content: bad}).ValidateSchemas()
	var inv *ErrInvalidResponse
	if _, err := mock.Generate(context.Background(), Request{Schema: resourceSchema()}); !errors.As(err, &inv) {
		t.Errorf("err = %v, want *ErrInvalidResponse", err)
	}
	// Requests without a schema are never checked.
	if _, err := mock.Generate(context.Background(), Request{}); err != nil {
		t.Errorf("schemaless request: %v", err)
	}
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{}`)})
	if _, err := mock.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mock.ModelID() != "mock" {
		t.Errorf("ModelID = %q", mock.ModelID())
	}
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	if got := PurposeFrom(ctx); got != "unknown" {
		t.Errorf("unset purpose = %q, want unknown", got)
	}
	ctx = WithPurpose(ctx, "roadmap-levels")
	if got := PurposeFrom(ctx); got != "roadmap-levels" {
		t.Errorf("purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(ctx, "")); got != "roadmap-levels" {
		t.Errorf("empty purpose replaced label: %q", got)
	}
}
