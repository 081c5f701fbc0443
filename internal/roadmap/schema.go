package roadmap

import (
	"fmt"

	"github.com/abhisek/pathwise/internal/llm"
)

// RoadmapSchema defines the JSON schema for a ten-level career roadmap.
var RoadmapSchema = roadmapSchema("roadmap-levels", 10)

// schemaFor returns RoadmapSchema, or an equivalent schema for a
// non-default level count. Schema names double as validation cache keys,
// so each count gets its own name.
func schemaFor(levelCount int) *llm.Schema {
	if levelCount == 10 {
		return RoadmapSchema
	}
	return roadmapSchema(fmt.Sprintf("roadmap-levels-%d", levelCount), levelCount)
}

func roadmapSchema(name string, levelCount int) *llm.Schema {
	resource := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Name of the course, book, or tutorial",
			},
			"url": map[string]any{
				"type":        "string",
				"description": "Link to the resource",
			},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"free", "paid"},
			},
			"platform": map[string]any{
				"type":        "string",
				"description": "Where the resource is hosted, e.g. Coursera or YouTube",
			},
		},
		"required":             []any{"title", "url", "type", "platform"},
		"additionalProperties": false,
	}

	level := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     levelCount,
				"description": "1-based position of the level in the roadmap",
			},
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the level (3-8 words)",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "What the learner achieves in this level (2-3 sentences)",
			},
			"learning_content": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topics": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "3-6 key topics covered by the level",
					},
					"resources": map[string]any{
						"type":        "array",
						"items":       resource,
						"description": "2-4 recommended learning resources",
					},
				},
				"required":             []any{"topics", "resources"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"level", "title", "description", "learning_content"},
		"additionalProperties": false,
	}

	return &llm.Schema{
		Name:        name,
		Description: "An ordered learning roadmap for a career path, from fundamentals to mastery",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"levels": map[string]any{
					"type":     "array",
					"items":    level,
					"minItems": levelCount,
					"maxItems": levelCount,
				},
			},
			"required":             []any{"levels"},
			"additionalProperties": false,
		},
	}
}
