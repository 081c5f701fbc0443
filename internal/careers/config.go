package careers

// Config holds career suggestion settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for career suggestions.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}
