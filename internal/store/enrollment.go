package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathwise/ent/schema"
)

var enrollmentColumns = []string{
	"id", "user_id", "career_path", "started_at", "completion_percentage", "completed_at",
}

type enrollmentRepo struct {
	conn
}

func (r *enrollmentRepo) Latest(ctx context.Context, userID, careerPath string) (*Enrollment, error) {
	q := r.b.Select(enrollmentColumns...).
		From(r.b.Table(enrollmentsTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("career_path", careerPath),
		)).
		OrderBy(entsql.Desc("started_at"), entsql.Desc("id")).
		Limit(1)

	var latest *Enrollment
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		e, err := scanEnrollment(rows)
		latest = e
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("latest enrollment: %w", err)
	}
	return latest, nil
}

func (r *enrollmentRepo) Create(ctx context.Context, e *Enrollment) error {
	if err := validate(schema.Enrollment{}, map[string]any{
		"user_id":               e.UserID,
		"career_path":           e.CareerPath,
		"completion_percentage": e.CompletionPercentage,
	}); err != nil {
		return err
	}
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now().UTC()
	}
	ins := r.b.Insert(enrollmentsTable).
		Columns(enrollmentColumns...).
		Values(e.ID, e.UserID, e.CareerPath, e.StartedAt.UTC(), e.CompletionPercentage, nullTime(e.CompletedAt))
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func (r *enrollmentRepo) UpdateCompletion(ctx context.Context, id string, percentage int, completedAt *time.Time) error {
	if err := validate(schema.Enrollment{}, map[string]any{"completion_percentage": percentage}); err != nil {
		return err
	}
	upd := r.b.Update(enrollmentsTable).
		Set("completion_percentage", percentage).
		Where(entsql.EQ("id", id))
	if completedAt == nil {
		upd.SetNull("completed_at")
	} else {
		upd.Set("completed_at", completedAt.UTC())
	}
	res, err := r.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, userID string) ([]Enrollment, error) {
	q := r.b.Select(enrollmentColumns...).
		From(r.b.Table(enrollmentsTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("started_at"), entsql.Desc("id"))

	var out []Enrollment
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		e, err := scanEnrollment(rows)
		if err != nil {
			return err
		}
		out = append(out, *e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return out, nil
}

func scanEnrollment(rows *entsql.Rows) (*Enrollment, error) {
	var (
		e           Enrollment
		completedAt sql.NullTime
	)
	if err := rows.Scan(&e.ID, &e.UserID, &e.CareerPath, &e.StartedAt, &e.CompletionPercentage, &completedAt); err != nil {
		return nil, err
	}
	e.StartedAt = e.StartedAt.UTC()
	e.CompletedAt = timePtr(completedAt)
	return &e, nil
}
