package roadmap

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/store"
)

// CompleteLevel marks a level completed for the user's latest enrollment in
// the level's career path, recomputes the enrollment's completion
// percentage and returns the refreshed progress view. Completing a level
// twice is a no-op.
func (e *Engine) CompleteLevel(ctx context.Context, userID, levelID string) ([]MaterializedLevel, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	repos := e.store.Repos()

	level, err := repos.Levels().Get(ctx, levelID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &LevelNotFoundError{LevelID: levelID}
	}
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelID, err)
	}

	enrollment, err := repos.Enrollments().Latest(ctx, userID, level.CareerPath)
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, &NoActiveEnrollmentError{UserID: userID, CareerPath: level.CareerPath}
	}

	var pct int
	err = e.store.WithTx(ctx, func(tx store.Repos) error {
		var err error
		pct, err = e.complete(ctx, tx, userID, level, enrollment)
		return err
	})
	var locked *LevelLockedError
	if errors.As(err, &locked) {
		return nil, locked
	}
	if err != nil {
		return nil, &ProgressPersistenceError{UserID: userID, LevelID: levelID, Err: err}
	}

	e.logger.Info("level completed",
		zap.String("user_id", userID),
		zap.String("career_path", level.CareerPath),
		zap.Int("level", level.Level),
		zap.Int("completion_percentage", pct),
	)

	return e.Progress(ctx, userID, level.CareerPath)
}

// complete runs inside the completion transaction and returns the new
// completion percentage.
func (e *Engine) complete(ctx context.Context, tx store.Repos, userID string, level *store.Level, enrollment *store.Enrollment) (int, error) {
	rows, err := tx.Levels().ListWithProgress(ctx, level.CareerPath, userID)
	if err != nil {
		return 0, err
	}
	view := materialize(rows, enrollment.ID, e.cfg.ProgressScope)
	idx := slices.IndexFunc(view, func(m MaterializedLevel) bool { return m.ID == level.ID })
	if idx < 0 {
		return 0, fmt.Errorf("level %s missing from the %q catalog", level.ID, level.CareerPath)
	}
	current := view[idx]

	if e.cfg.EnforceLocks && current.Locked {
		return 0, &LevelLockedError{UserID: userID, LevelID: level.ID, Level: level.Level}
	}

	now := e.timestamp()
	if !current.Completed {
		err := tx.Progress().Upsert(ctx, &store.Progress{
			ID:           e.newID(),
			UserID:       userID,
			LevelID:      level.ID,
			EnrollmentID: enrollment.ID,
			Completed:    true,
			CompletedAt:  &now,
		})
		if err != nil {
			return 0, err
		}
	}

	var done int
	switch e.cfg.ProgressScope {
	case ScopeUser:
		done, err = tx.Progress().CountCompletedInCareerPath(ctx, userID, level.CareerPath)
	default:
		done, err = tx.Progress().CountCompletedInEnrollment(ctx, userID, enrollment.ID)
	}
	if err != nil {
		return 0, err
	}
	total, err := tx.Levels().CountByCareerPath(ctx, level.CareerPath)
	if err != nil {
		return 0, err
	}

	pct := Percentage(done, total)
	var completedAt *time.Time
	if pct == 100 {
		completedAt = &now
		if enrollment.CompletionPercentage == 100 && enrollment.CompletedAt != nil {
			completedAt = enrollment.CompletedAt
		}
	}
	if err := tx.Enrollments().UpdateCompletion(ctx, enrollment.ID, pct, completedAt); err != nil {
		return 0, err
	}
	return pct, nil
}

// Percentage rounds 100*done/total half up. An empty catalog is 0%.
func Percentage(done, total int) int {
	if total <= 0 {
		return 0
	}
	pct := (200*done + total) / (2 * total)
	return min(max(pct, 0), 100)
}
