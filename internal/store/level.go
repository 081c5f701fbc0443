package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathwise/ent/schema"
)

var levelColumns = []string{
	"id", "career_path", "level", "title", "description", "learning_content", "created_at",
}

type levelRepo struct {
	conn
}

func (r *levelRepo) ListByCareerPath(ctx context.Context, careerPath string) ([]Level, error) {
	q := r.b.Select(levelColumns...).
		From(r.b.Table(levelsTable)).
		Where(entsql.EQ("career_path", careerPath)).
		OrderBy("level")

	var levels []Level
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		l, err := scanLevel(rows)
		if err != nil {
			return err
		}
		levels = append(levels, *l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return levels, nil
}

func (r *levelRepo) ListWithProgress(ctx context.Context, careerPath, userID string) ([]LevelProgress, error) {
	// Aliases are set before C() so the select list matches the join.
	l := r.b.Table(levelsTable).As("l")
	p := r.b.Table(progressTable).As("p")

	cols := make([]string, 0, len(levelColumns)+4)
	for _, c := range levelColumns {
		cols = append(cols, l.C(c))
	}
	cols = append(cols, p.C("id"), p.C("enrollment_id"), p.C("completed"), p.C("completed_at"))

	// The user filter lives in the join condition so levels without a
	// progress row for this user still appear.
	q := r.b.Select(cols...).
		From(l).
		LeftJoin(p).
		OnP(entsql.And(
			entsql.ColumnsEQ(l.C("id"), p.C("level_id")),
			entsql.EQ(p.C("user_id"), userID),
		)).
		Where(entsql.EQ(l.C("career_path"), careerPath)).
		OrderBy(l.C("level"))

	var out []LevelProgress
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		var (
			lv          Level
			content     []byte
			progressID  sql.NullString
			enrollment  sql.NullString
			completed   sql.NullBool
			completedAt sql.NullTime
		)
		if err := rows.Scan(&lv.ID, &lv.CareerPath, &lv.Level, &lv.Title, &lv.Description, &content, &lv.CreatedAt,
			&progressID, &enrollment, &completed, &completedAt); err != nil {
			return err
		}
		if err := json.Unmarshal(content, &lv.Content); err != nil {
			return fmt.Errorf("decode learning content of %s: %w", lv.ID, err)
		}
		lv.CreatedAt = lv.CreatedAt.UTC()

		lp := LevelProgress{Level: lv}
		if progressID.Valid {
			lp.Progress = &Progress{
				ID:           progressID.String,
				UserID:       userID,
				LevelID:      lv.ID,
				EnrollmentID: enrollment.String,
				Completed:    completed.Valid && completed.Bool,
				CompletedAt:  timePtr(completedAt),
			}
		}
		out = append(out, lp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list levels with progress: %w", err)
	}
	return out, nil
}

func (r *levelRepo) Get(ctx context.Context, id string) (*Level, error) {
	q := r.b.Select(levelColumns...).
		From(r.b.Table(levelsTable)).
		Where(entsql.EQ("id", id))

	var found *Level
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		l, err := scanLevel(rows)
		found = l
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get level: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *levelRepo) InsertBatch(ctx context.Context, levels []Level) error {
	if len(levels) == 0 {
		return nil
	}
	ins := r.b.Insert(levelsTable).Columns(levelColumns...)
	for i := range levels {
		l := &levels[i]
		if err := validate(schema.RoadmapLevel{}, map[string]any{
			"career_path": l.CareerPath,
			"level":       l.Level,
		}); err != nil {
			return err
		}
		if l.CreatedAt.IsZero() {
			l.CreatedAt = time.Now().UTC()
		}
		content, err := json.Marshal(l.Content)
		if err != nil {
			return fmt.Errorf("encode learning content: %w", err)
		}
		ins.Values(l.ID, l.CareerPath, l.Level, l.Title, l.Description, string(content), l.CreatedAt.UTC())
	}
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert levels: %w", err)
	}
	return nil
}

func (r *levelRepo) CountByCareerPath(ctx context.Context, careerPath string) (int, error) {
	q := r.b.Select(entsql.Count("*")).
		From(r.b.Table(levelsTable)).
		Where(entsql.EQ("career_path", careerPath))
	n, err := r.count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count levels: %w", err)
	}
	return n, nil
}

func scanLevel(rows *entsql.Rows) (*Level, error) {
	var (
		l       Level
		content []byte
	)
	if err := rows.Scan(&l.ID, &l.CareerPath, &l.Level, &l.Title, &l.Description, &content, &l.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &l.Content); err != nil {
		return nil, fmt.Errorf("decode learning content of %s: %w", l.ID, err)
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return &l, nil
}
