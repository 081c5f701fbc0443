package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/store"
)

// ResolveLevels returns the level catalog of a career path ordered by level.
// The first call for an unknown career path generates the catalog with the
// LLM and stores it; later calls only read.
func (e *Engine) ResolveLevels(ctx context.Context, careerPath string) ([]store.Level, error) {
	careerPath = strings.TrimSpace(careerPath)
	if careerPath == "" {
		return nil, &CatalogGenerationError{Err: ErrEmptyCareerPath}
	}

	levels, err := e.store.Repos().Levels().ListByCareerPath(ctx, careerPath)
	if err != nil {
		return nil, &CatalogGenerationError{CareerPath: careerPath, Err: fmt.Errorf("load stored roadmap: %w", err)}
	}
	if len(levels) > 0 {
		return levels, nil
	}

	generated, joined, err := shared(ctx, &e.catalogs, careerPath, func(ctx context.Context) ([]store.Level, error) {
		return e.generateCatalog(ctx, careerPath)
	})
	if err != nil {
		return nil, err
	}
	if joined {
		e.logger.Debug("joined in-flight roadmap generation", zap.String("career_path", careerPath))
	}
	return cloneLevels(generated), nil
}

// cloneLevels copies levels down to their content slices. Callers that
// joined one generation each get their own copy.
func cloneLevels(levels []store.Level) []store.Level {
	out := slices.Clone(levels)
	for i := range out {
		out[i].Content.Topics = slices.Clone(out[i].Content.Topics)
		out[i].Content.Resources = slices.Clone(out[i].Content.Resources)
	}
	return out
}

func (e *Engine) generateCatalog(ctx context.Context, careerPath string) ([]store.Level, error) {
	levels := e.store.Repos().Levels()

	// Another caller may have finished between the first read and Do.
	existing, err := levels.ListByCareerPath(ctx, careerPath)
	if err != nil {
		return nil, &CatalogGenerationError{CareerPath: careerPath, Err: fmt.Errorf("load stored roadmap: %w", err)}
	}
	if len(existing) > 0 {
		return existing, nil
	}

	e.logger.Info("generating roadmap", zap.String("career_path", careerPath), zap.Int("levels", e.cfg.LevelCount))

	generated, err := e.requestCatalog(ctx, careerPath)
	if err != nil {
		return nil, &CatalogGenerationError{CareerPath: careerPath, Err: err}
	}

	err = e.store.WithTx(ctx, func(tx store.Repos) error {
		return tx.Levels().InsertBatch(ctx, generated)
	})
	if err != nil {
		// A concurrent writer in another process may have won the unique
		// (career_path, level) index. Its catalog is as good as ours.
		winner, listErr := levels.ListByCareerPath(ctx, careerPath)
		if listErr == nil && len(winner) > 0 {
			e.logger.Info("roadmap stored by a concurrent writer", zap.String("career_path", careerPath))
			return winner, nil
		}
		return nil, &CatalogPersistenceError{CareerPath: careerPath, Err: err}
	}
	return generated, nil
}

type roadmapOutput struct {
	Levels []levelOutput `json:"levels"`
}

type levelOutput struct {
	Level           int                   `json:"level"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	LearningContent store.LearningContent `json:"learning_content"`
}

func (e *Engine) requestCatalog(ctx context.Context, careerPath string) ([]store.Level, error) {
	ctx = llm.WithPurpose(ctx, "roadmap-levels")

	req := llm.Request{
		System: roadmapSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRoadmapUserMessage(careerPath, e.cfg.LevelCount)},
		},
		Schema:      schemaFor(e.cfg.LevelCount),
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("roadmap generation: %w", err)
	}

	out, err := parseCatalog(resp.Content)
	if err != nil {
		return nil, err
	}
	if err := checkCatalog(out, e.cfg.LevelCount); err != nil {
		return nil, err
	}

	now := e.timestamp()
	result := make([]store.Level, len(out))
	for i, l := range out {
		result[i] = store.Level{
			ID:          e.newID(),
			CareerPath:  careerPath,
			Level:       l.Level,
			Title:       strings.TrimSpace(l.Title),
			Description: strings.TrimSpace(l.Description),
			Content:     normalizeContent(l.LearningContent),
			CreatedAt:   now,
		}
	}
	slices.SortFunc(result, func(a, b store.Level) int { return a.Level - b.Level })
	return result, nil
}

func parseCatalog(content json.RawMessage) ([]levelOutput, error) {
	var out roadmapOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, fmt.Errorf("parse roadmap response: %w", err)
	}
	return out.Levels, nil
}

var errCatalogShape = errors.New("malformed roadmap")

// checkCatalog verifies the decoded catalog has exactly want levels
// numbered 1..want with titles and valid resource types.
func checkCatalog(levels []levelOutput, want int) error {
	if len(levels) != want {
		return fmt.Errorf("%w: got %d levels, want %d", errCatalogShape, len(levels), want)
	}
	seen := make(map[int]bool, want)
	for _, l := range levels {
		if l.Level < 1 || l.Level > want {
			return fmt.Errorf("%w: level number %d out of range 1..%d", errCatalogShape, l.Level, want)
		}
		if seen[l.Level] {
			return fmt.Errorf("%w: duplicate level %d", errCatalogShape, l.Level)
		}
		seen[l.Level] = true
		if strings.TrimSpace(l.Title) == "" {
			return fmt.Errorf("%w: level %d has no title", errCatalogShape, l.Level)
		}
		for _, r := range l.LearningContent.Resources {
			if r.Type != "free" && r.Type != "paid" {
				return fmt.Errorf("%w: level %d resource %q has type %q", errCatalogShape, l.Level, r.Title, r.Type)
			}
		}
	}
	return nil
}

func normalizeContent(c store.LearningContent) store.LearningContent {
	if c.Topics == nil {
		c.Topics = []string{}
	}
	if c.Resources == nil {
		c.Resources = []store.Resource{}
	}
	return c
}
