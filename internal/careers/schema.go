package careers

import "github.com/abhisek/pathwise/internal/llm"

// SuggestionSchema defines the JSON schema for career suggestions.
var SuggestionSchema = &llm.Schema{
	Name:        "career-suggestions",
	Description: "Ranked tech career paths that match a user's onboarding answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"careers": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Specific job title, e.g. Data Scientist",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Why the career matches the user's profile (2-3 sentences)",
						},
						"skills": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "About five required technical and soft skills",
						},
						"salary": map[string]any{
							"type":        "string",
							"description": "Estimated salary range, e.g. $70,000 - $120,000",
						},
						"growth": map[string]any{
							"type":        "string",
							"description": "Career growth potential",
						},
						"matchScore": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     100,
							"description": "How well the career fits the answers, 0-100",
						},
						"timeline": map[string]any{
							"type":        "string",
							"description": "Estimated time to reach proficiency",
						},
					},
					"required":             []any{"title", "description", "skills", "salary", "growth", "matchScore", "timeline"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"careers"},
		"additionalProperties": false,
	},
}
