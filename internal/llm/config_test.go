package llm

import (
	"math"
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PATHWISE_LLM_PROVIDER", "gemini")
	t.Setenv("PATHWISE_GEMINI_API_KEY", "g-key")
	t.Setenv("PATHWISE_GEMINI_MODEL", "gemini-pro")
	t.Setenv("PATHWISE_LLM_TIMEOUT", "45s")
	t.Setenv("PATHWISE_LLM_MAX_ATTEMPTS", "5")
	t.Setenv("PATHWISE_LLM_LOG_BODIES", "false")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "g-key" || cfg.Gemini.Model != "gemini-pro" {
		t.Errorf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("max attempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
	if cfg.LogBodies {
		t.Error("expected LogBodies = false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestConfigFromEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("PATHWISE_LLM_TIMEOUT", "soon")
	t.Setenv("PATHWISE_LLM_MAX_ATTEMPTS", "-2")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	if cfg.Timeout != def.Timeout {
		t.Errorf("timeout = %v, want default %v", cfg.Timeout, def.Timeout)
	}
	if cfg.Retry.MaxAttempts != def.Retry.MaxAttempts {
		t.Errorf("max attempts = %d, want default %d", cfg.Retry.MaxAttempts, def.Retry.MaxAttempts)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	// Gemini is checked before Anthropic.
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Errorf("discovered = %q/%q", cfg.Provider, cfg.Gemini.APIKey)
	}
}

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		known bool
	}{
		{"gpt-4o-mini", true},
		{"openai/gpt-4o-mini", true},
		{"mock", false},
		{"vendor/unknown-model", false},
	}
	for _, tt := range tests {
		if got := LookupCost(tt.model) != nil; got != tt.known {
			t.Errorf("LookupCost(%q) known = %v, want %v", tt.model, got, tt.known)
		}
	}

	c := LookupCost("gpt-4o-mini")
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("cost = %v, want 0.75", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	withKey := func(mut func(*Config)) Config {
		cfg := DefaultConfig()
		mut(&cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "openai without key",
			cfg:     withKey(func(c *Config) { c.Provider = "openai" }),
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     withKey(func(c *Config) { c.Provider = "openai"; c.OpenAI.APIKey = "sk-test" }),
			wantErr: false,
		},
		{
			name:    "anthropic without key",
			cfg:     withKey(func(c *Config) { c.Provider = "anthropic" }),
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     withKey(func(c *Config) { c.Provider = "openrouter"; c.OpenRouter.APIKey = "sk-or" }),
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     withKey(func(c *Config) { c.Provider = "mock" }),
			wantErr: false,
		},
		{
			name:    "zero retry attempts",
			cfg:     withKey(func(c *Config) { c.Provider = "mock"; c.Retry.MaxAttempts = 0 }),
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     withKey(func(c *Config) { c.Provider = "unknown" }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
