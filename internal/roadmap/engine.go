// Package roadmap resolves career path level catalogs and tracks each
// user's progress through them.
package roadmap

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/store"
)

// Store is the persistence the engine needs. *store.Store satisfies it.
type Store interface {
	Repos() store.Repos
	WithTx(ctx context.Context, fn func(store.Repos) error) error
}

// Engine resolves catalogs, materializes progress and records completions.
// It is safe for concurrent use.
type Engine struct {
	store    Store
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger

	now   func() time.Time
	newID func() string

	catalogs    singleflight.Group
	enrollments singleflight.Group
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the generator of row IDs.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an Engine. A nil logger disables logging.
func New(st Store, provider llm.Provider, cfg Config, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:    st,
		provider: provider,
		cfg:      cfg,
		logger:   logger.Named("roadmap"),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// History returns the user's enrollments, most recent first.
func (e *Engine) History(ctx context.Context, userID string) ([]store.Enrollment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	return e.store.Repos().Enrollments().ListByUser(ctx, userID)
}

// shared runs fn once for all concurrent callers with the same key. fn runs
// on a context detached from any single caller, so one caller giving up
// does not fail the others; each caller still stops waiting when its own
// ctx is done. Generation stays bounded by the provider's timeout.
func shared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	ch := g.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Shared, r.Err
		}
		return r.Val.(T), r.Shared, nil
	}
}

func (e *Engine) timestamp() time.Time {
	return e.now().UTC()
}
