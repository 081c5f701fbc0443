// Package careers turns onboarding answers into ranked career suggestions.
package careers

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

var (
	// ErrIncompleteAnswers is returned when any of the five answers is blank.
	ErrIncompleteAnswers = errors.New("please answer all questions before proceeding")

	// ErrNoSuggestions is returned when the LLM suggested no careers.
	ErrNoSuggestions = errors.New("no career suggestions returned")
)

// Service generates career suggestions.
type Service struct {
	provider llm.Provider
	palette  theme.Palette
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a career suggestion service. A nil logger disables
// logging.
func NewService(provider llm.Provider, palette theme.Palette, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, palette: palette, cfg: cfg, logger: logger.Named("careers")}
}

type suggestionsOutput struct {
	Careers []careerOutput `json:"careers"`
}

type careerOutput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Salary      string   `json:"salary"`
	Growth      string   `json:"growth"`
	MatchScore  int      `json:"matchScore"`
	Timeline    string   `json:"timeline"`
}

// Suggest returns career suggestions ordered by match score, best first.
func (s *Service) Suggest(ctx context.Context, answers Answers) ([]Suggestion, error) {
	for _, a := range answers.list() {
		if strings.TrimSpace(a) == "" {
			return nil, ErrIncompleteAnswers
		}
	}

	ctx = llm.WithPurpose(ctx, "career-suggestions")

	req := llm.Request{
		System: suggestionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSuggestionUserMessage(answers)},
		},
		Schema:      SuggestionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("career suggestion: %w", err)
	}

	var out suggestionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse career suggestions: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(out.Careers))
	for _, c := range out.Careers {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			continue
		}
		score := min(max(c.MatchScore, 0), 100)
		style := s.palette.ForCareer(title)
		suggestions = append(suggestions, Suggestion{
			Title:       title,
			Description: c.Description,
			Skills:      c.Skills,
			Salary:      c.Salary,
			Growth:      c.Growth,
			MatchScore:  score,
			Timeline:    c.Timeline,
			Demand:      Demand(score),
			Color:       style.Color,
			Icon:        style.Icon,
		})
	}
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}

	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})

	s.logger.Debug("career suggestions", zap.Int("count", len(suggestions)), zap.String("top", suggestions[0].Title))
	return suggestions, nil
}
