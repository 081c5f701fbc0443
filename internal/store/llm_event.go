package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo over the llm_request_events table.
type eventRepo struct {
	conn
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	ins := r.b.Insert(llmEventsTable).
		Set("timestamp", time.Now().UTC()).
		Set("provider", data.Provider).
		Set("model", data.Model).
		Set("purpose", data.Purpose).
		Set("input_tokens", data.InputTokens).
		Set("output_tokens", data.OutputTokens).
		Set("latency_ms", data.LatencyMs).
		Set("success", data.Success).
		Set("error_message", data.ErrorMessage).
		Set("request_body", data.RequestBody).
		Set("response_body", data.ResponseBody)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	q := r.b.Select(llmEventColumns...).
		From(r.b.Table(llmEventsTable)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		q.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		q.Limit(opts.Limit)
	}

	var events []LLMRequestEvent
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		events = append(events, *e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	q := r.b.Select(llmEventColumns...).
		From(r.b.Table(llmEventsTable)).
		Where(entsql.EQ("id", id))

	var found *LLMRequestEvent
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		found = e
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "model")
}

func (r *eventRepo) usage(ctx context.Context, key string) ([]LLMUsage, error) {
	q := r.b.Select(
		key,
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		From(r.b.Table(llmEventsTable)).
		GroupBy(key).
		OrderBy(key)

	var out []LLMUsage
	err := r.query(ctx, q, func(rows *entsql.Rows) error {
		var (
			u         LLMUsage
			in, outTk sql.NullInt64
			avg       sql.NullFloat64
		)
		if err := rows.Scan(&u.Key, &u.Calls, &in, &outTk, &avg); err != nil {
			return err
		}
		u.InputTokens = int(in.Int64)
		u.OutputTokens = int(outTk.Int64)
		u.AvgLatencyMs = int64(avg.Float64)
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM usage by %s: %w", key, err)
	}
	return out, nil
}

func scanLLMEvent(rows *entsql.Rows) (*LLMRequestEvent, error) {
	var e LLMRequestEvent
	if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
		return nil, err
	}
	e.Timestamp = e.Timestamp.UTC()
	return &e, nil
}
