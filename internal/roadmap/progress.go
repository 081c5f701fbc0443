package roadmap

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/store"
)

// Progress returns one entry per catalog level of the career path with the
// user's completion and lock state, ordered by level. The catalog is
// generated and the user enrolled on first use.
func (e *Engine) Progress(ctx context.Context, userID, careerPath string) ([]MaterializedLevel, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	careerPath = strings.TrimSpace(careerPath)

	if _, err := e.ResolveLevels(ctx, careerPath); err != nil {
		return nil, err
	}

	enrollment, err := e.ensureEnrollment(ctx, userID, careerPath)
	if err != nil {
		return nil, err
	}

	rows, err := e.store.Repos().Levels().ListWithProgress(ctx, careerPath, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress for %q: %w", careerPath, err)
	}
	return materialize(rows, enrollment.ID, e.cfg.ProgressScope), nil
}

// ensureEnrollment returns the latest enrollment, creating one when the
// user has never started the career path.
func (e *Engine) ensureEnrollment(ctx context.Context, userID, careerPath string) (*store.Enrollment, error) {
	enrollments := e.store.Repos().Enrollments()

	latest, err := enrollments.Latest(ctx, userID, careerPath)
	if err != nil {
		return nil, &EnrollmentCreationError{UserID: userID, CareerPath: careerPath, Err: fmt.Errorf("load latest enrollment: %w", err)}
	}
	if latest != nil {
		return latest, nil
	}

	key := userID + "\x00" + careerPath
	enrollment, _, err := shared(ctx, &e.enrollments, key, func(ctx context.Context) (*store.Enrollment, error) {
		latest, err := enrollments.Latest(ctx, userID, careerPath)
		if err != nil {
			return nil, &EnrollmentCreationError{UserID: userID, CareerPath: careerPath, Err: fmt.Errorf("load latest enrollment: %w", err)}
		}
		if latest != nil {
			return latest, nil
		}
		created := &store.Enrollment{
			ID:         e.newID(),
			UserID:     userID,
			CareerPath: careerPath,
			StartedAt:  e.timestamp(),
		}
		if err := enrollments.Create(ctx, created); err != nil {
			return nil, &EnrollmentCreationError{UserID: userID, CareerPath: careerPath, Err: err}
		}
		e.logger.Info("enrolled user",
			zap.String("user_id", userID),
			zap.String("career_path", careerPath),
			zap.String("enrollment_id", created.ID),
		)
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// materialize turns catalog rows joined with progress into the per-level
// view for enrollmentID.
func materialize(rows []store.LevelProgress, enrollmentID string, scope Scope) []MaterializedLevel {
	out := make([]MaterializedLevel, len(rows))
	completed := make([]bool, len(rows))
	for i, r := range rows {
		out[i].Level = r.Level
		if counts(r.Progress, enrollmentID, scope) {
			completed[i] = true
			out[i].Completed = true
			out[i].CompletedAt = r.Progress.CompletedAt
		}
	}
	for i, locked := range lockChain(completed) {
		out[i].Locked = locked
	}
	return out
}

func counts(p *store.Progress, enrollmentID string, scope Scope) bool {
	if p == nil || !p.Completed {
		return false
	}
	return scope == ScopeUser || p.EnrollmentID == enrollmentID
}

// lockChain returns the lock state of each position of a linear chain: the
// first position is open, every later one is open iff its predecessor is
// completed.
func lockChain(completed []bool) []bool {
	locked := make([]bool, len(completed))
	for i := 1; i < len(completed); i++ {
		locked[i] = !completed[i-1]
	}
	return locked
}
