package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathwise/ent/schema"
)

var progressColumns = []string{
	"id", "user_id", "level_id", "enrollment_id", "completed", "completed_at",
}

type progressRepo struct {
	conn
}

func (r *progressRepo) Get(ctx context.Context, userID, levelID string) (*Progress, error) {
	q := r.b.Select(progressColumns...).
		From(r.b.Table(progressTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("level_id", levelID),
		))

	var found *Progress
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		var (
			p           Progress
			completedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.LevelID, &p.EnrollmentID, &p.Completed, &completedAt); err != nil {
			return err
		}
		p.CompletedAt = timePtr(completedAt)
		found = &p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return found, nil
}

func (r *progressRepo) Upsert(ctx context.Context, p *Progress) error {
	if err := validate(schema.UserProgress{}, map[string]any{"user_id": p.UserID}); err != nil {
		return err
	}
	ins := r.b.Insert(progressTable).
		Columns(progressColumns...).
		Values(p.ID, p.UserID, p.LevelID, p.EnrollmentID, p.Completed, nullTime(p.CompletedAt)).
		OnConflict(
			entsql.ConflictColumns("user_id", "level_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("enrollment_id")
				u.SetExcluded("completed")
				u.SetExcluded("completed_at")
			}),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) CountCompletedInEnrollment(ctx context.Context, userID, enrollmentID string) (int, error) {
	q := r.b.Select(entsql.Count("*")).
		From(r.b.Table(progressTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("enrollment_id", enrollmentID),
			entsql.EQ("completed", true),
		))
	n, err := r.count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count completed levels: %w", err)
	}
	return n, nil
}

func (r *progressRepo) CountCompletedInCareerPath(ctx context.Context, userID, careerPath string) (int, error) {
	p := r.b.Table(progressTable).As("p")
	l := r.b.Table(levelsTable).As("l")
	q := r.b.Select(entsql.Count("*")).
		From(p).
		Join(l).
		On(p.C("level_id"), l.C("id")).
		Where(entsql.And(
			entsql.EQ(p.C("user_id"), userID),
			entsql.EQ(p.C("completed"), true),
			entsql.EQ(l.C("career_path"), careerPath),
		))
	n, err := r.count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count completed levels: %w", err)
	}
	return n, nil
}
