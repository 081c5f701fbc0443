package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/pathwise/internal/careers"
	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/roadmap"
)

func roadmapJSON(levels int) string {
	items := make([]string, levels)
	for i := range items {
		items[i] = fmt.Sprintf(`{"level":%d,"title":"Level %d","description":"d","learning_content":{"topics":["Git"],"resources":[{"title":"Pro Git","url":"https://git-scm.com/book","type":"free","platform":"Web"}]}}`, i+1, i+1)
	}
	return `{"levels":[` + strings.Join(items, ",") + `]}`
}

func suggestionJSON(score any) string {
	return fmt.Sprintf(`{"careers":[{"title":"Data Scientist","description":"d","skills":["Python"],"salary":"$100k","growth":"High","matchScore":%v,"timeline":"1 year"}]}`, score)
}

func TestResponseContracts(t *testing.T) {
	tests := []struct {
		name    string
		schema  *llm.Schema
		content string
		wantErr bool
	}{
		{"roadmap with ten levels", roadmap.RoadmapSchema, roadmapJSON(10), false},
		{"roadmap with nine levels", roadmap.RoadmapSchema, roadmapJSON(9), true},
		{"roadmap as bare array", roadmap.RoadmapSchema, `[` + strings.TrimSuffix(strings.TrimPrefix(roadmapJSON(10), `{"levels":[`), `]}`) + `]`, true},
		{"roadmap level out of range", roadmap.RoadmapSchema, strings.Replace(roadmapJSON(10), `"level":10`, `"level":11`, 1), true},
		{"roadmap unknown resource type", roadmap.RoadmapSchema, strings.Replace(roadmapJSON(10), `"type":"free"`, `"type":"trial"`, 1), true},
		{"suggestion", careers.SuggestionSchema, suggestionJSON(92), false},
		{"suggestion score above 100", careers.SuggestionSchema, suggestionJSON(140), true},
		{"suggestion fractional score", careers.SuggestionSchema, suggestionJSON(91.5), true},
		{"no suggestions", careers.SuggestionSchema, `{"careers":[]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)}).ValidateSchemas()

			_, err := mock.Generate(context.Background(), llm.Request{Schema: tt.schema})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *llm.ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("err = %v (%T), want *llm.ErrInvalidResponse", err, err)
			}
		})
	}
}

func TestResponseContracts_TruncatedRoadmap(t *testing.T) {
	full := roadmapJSON(10)
	mock := llm.NewMockProvider(llm.MockResponse{
		Content:    json.RawMessage(full[:len(full)/2]),
		StopReason: "max_tokens",
	}).ValidateSchemas()

	_, err := mock.Generate(context.Background(), llm.Request{Schema: roadmap.RoadmapSchema})
	var maxTok *llm.ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("err = %v (%T), want *llm.ErrMaxTokensExceeded", err, err)
	}
}
