package roadmap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Scope decides which progress rows count as completed for an enrollment.
type Scope int

const (
	// ScopeEnrollment counts only completions recorded under the current
	// enrollment. Starting a career path again starts from zero.
	ScopeEnrollment Scope = iota

	// ScopeUser counts every completion the user ever recorded for the
	// career path's levels.
	ScopeUser
)

func (s Scope) String() string {
	switch s {
	case ScopeEnrollment:
		return "enrollment"
	case ScopeUser:
		return "user"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope parses "enrollment" or "user".
func ParseScope(v string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "enrollment", "":
		return ScopeEnrollment, nil
	case "user":
		return ScopeUser, nil
	}
	return 0, fmt.Errorf("unknown progress scope %q (want enrollment or user)", v)
}

// Config holds engine settings.
type Config struct {
	// LevelCount is the exact number of levels a generated catalog must have.
	LevelCount int

	MaxTokens   int
	Temperature float64

	// EnforceLocks rejects completion of a level whose predecessor is not
	// completed.
	EnforceLocks bool

	ProgressScope Scope
}

// DefaultConfig returns sensible defaults for the engine.
func DefaultConfig() Config {
	return Config{
		LevelCount:    10,
		MaxTokens:     2500,
		Temperature:   0.7,
		EnforceLocks:  true,
		ProgressScope: ScopeEnrollment,
	}
}

// ConfigFromEnv builds a Config from PATHWISE_* environment variables,
// falling back to defaults for unset or malformed values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("PATHWISE_PROGRESS_SCOPE"); v != "" {
		if s, err := ParseScope(v); err == nil {
			cfg.ProgressScope = s
		}
	}
	if v := os.Getenv("PATHWISE_ENFORCE_LOCKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnforceLocks = b
		}
	}
	if v := os.Getenv("PATHWISE_ROADMAP_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	return cfg
}
