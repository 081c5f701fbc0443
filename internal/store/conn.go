package store

import (
	"context"
	"database/sql"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// conn binds repositories to either the connection pool or a transaction.
type conn struct {
	eq dialect.ExecQuerier
	b  *entsql.DialectBuilder
}

func (c conn) Levels() LevelRepo           { return &levelRepo{conn: c} }
func (c conn) Enrollments() EnrollmentRepo { return &enrollmentRepo{conn: c} }
func (c conn) Progress() ProgressRepo      { return &progressRepo{conn: c} }

// query runs q and calls scan once per row.
func (c conn) query(ctx context.Context, q entsql.Querier, scan func(*entsql.Rows) error) error {
	query, args := q.Query()
	var rows entsql.Rows
	if err := c.eq.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// count runs a single-value COUNT query.
func (c conn) count(ctx context.Context, q entsql.Querier) (int, error) {
	query, args := q.Query()
	var rows entsql.Rows
	if err := c.eq.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	return entsql.ScanInt(rows)
}

func (c conn) exec(ctx context.Context, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	var res sql.Result
	if err := c.eq.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// nullTime converts an optional timestamp into a driver value.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
