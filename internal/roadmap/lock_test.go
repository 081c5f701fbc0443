package roadmap

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/abhisek/pathwise/internal/store"
)

func TestLockChain_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		completed := rapid.SliceOfN(rapid.Bool(), 0, 20).Draw(t, "completed")

		locked := lockChain(completed)

		if len(locked) != len(completed) {
			t.Fatalf("got %d lock states for %d levels", len(locked), len(completed))
		}
		if len(locked) > 0 && locked[0] {
			t.Fatal("first level must never be locked")
		}
		for i := 1; i < len(locked); i++ {
			if locked[i] == completed[i-1] {
				t.Fatalf("level %d: locked=%v but previous completed=%v", i+1, locked[i], completed[i-1])
			}
		}
	})
}

func TestMaterialize_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "levels")
		scope := rapid.SampledFrom([]Scope{ScopeEnrollment, ScopeUser}).Draw(t, "scope")
		const current = "current"

		rows := make([]store.LevelProgress, n)
		for i := range rows {
			rows[i].Level = store.Level{ID: fmt.Sprintf("level-%d", i+1), Level: i + 1}
			state := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("state-%d", i))
			at := time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)
			switch state {
			case 1: // completed in the current enrollment
				rows[i].Progress = &store.Progress{EnrollmentID: current, Completed: true, CompletedAt: &at}
			case 2: // completed in an earlier enrollment
				rows[i].Progress = &store.Progress{EnrollmentID: "earlier", Completed: true, CompletedAt: &at}
			case 3: // touched but not completed
				rows[i].Progress = &store.Progress{EnrollmentID: current}
			}
		}

		view := materialize(rows, current, scope)

		if len(view) != n {
			t.Fatalf("got %d entries for %d levels", len(view), n)
		}
		for i, m := range view {
			if m.Level.Level != i+1 {
				t.Fatalf("entry %d has level %d", i, m.Level.Level)
			}
			p := rows[i].Progress
			want := p != nil && p.Completed && (scope == ScopeUser || p.EnrollmentID == current)
			if m.Completed != want {
				t.Fatalf("level %d: completed=%v want %v (scope %s)", i+1, m.Completed, want, scope)
			}
			if m.Completed != (m.CompletedAt != nil) {
				t.Fatalf("level %d: completed=%v but completed_at=%v", i+1, m.Completed, m.CompletedAt)
			}
			wantLocked := i > 0 && !view[i-1].Completed
			if m.Locked != wantLocked {
				t.Fatalf("level %d: locked=%v want %v", i+1, m.Locked, wantLocked)
			}
		}
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 10, 0},
		{3, 10, 30},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{12, 10, 100},
	}
	for _, tt := range tests {
		if got := Percentage(tt.done, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeEnrollment, false},
		{"enrollment", ScopeEnrollment, false},
		{" User ", ScopeUser, false},
		{"global", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScope(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScope(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCheckCatalog_CustomLevelCount(t *testing.T) {
	s := schemaFor(5)
	if s.Name == RoadmapSchema.Name {
		t.Fatalf("custom level count must not reuse the %q schema name", s.Name)
	}
	levels := make([]levelOutput, 5)
	for i := range levels {
		levels[i] = levelOutput{Level: 5 - i, Title: "x"}
	}
	if err := checkCatalog(levels, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := checkCatalog(levels, 10); err == nil {
		t.Fatal("expected error for wrong level count")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PATHWISE_PROGRESS_SCOPE", "user")
	t.Setenv("PATHWISE_ENFORCE_LOCKS", "false")
	t.Setenv("PATHWISE_ROADMAP_MAX_TOKENS", "not-a-number")

	cfg := ConfigFromEnv()

	if cfg.ProgressScope != ScopeUser {
		t.Errorf("ProgressScope = %s, want user", cfg.ProgressScope)
	}
	if cfg.EnforceLocks {
		t.Error("EnforceLocks should be false")
	}
	if cfg.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("malformed MaxTokens should keep the default, got %d", cfg.MaxTokens)
	}
	if cfg.LevelCount != 10 {
		t.Errorf("LevelCount = %d, want 10", cfg.LevelCount)
	}
}
