package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// Resource is a learning resource attached to a level.
type Resource struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Type     string `json:"type"` // "free" or "paid"
	Platform string `json:"platform"`
}

// LearningContent holds the ordered topics and resources of a level.
type LearningContent struct {
	Topics    []string   `json:"topics"`
	Resources []Resource `json:"resources"`
}

// Level is a persisted roadmap level. Levels are immutable once written.
type Level struct {
	ID          string
	CareerPath  string
	Level       int
	Title       string
	Description string
	Content     LearningContent
	CreatedAt   time.Time
}

// Enrollment is a user's attempt at a career path.
type Enrollment struct {
	ID                   string
	UserID               string
	CareerPath           string
	StartedAt            time.Time
	CompletionPercentage int
	CompletedAt          *time.Time
}

// Progress is a user's completion record for one level.
type Progress struct {
	ID           string
	UserID       string
	LevelID      string
	EnrollmentID string
	Completed    bool
	CompletedAt  *time.Time
}

// LevelProgress is a level joined with the user's progress row, if any.
// Progress is nil when the user never touched the level.
type LevelProgress struct {
	Level    Level
	Progress *Progress
}

// LevelRepo reads and writes the level catalog.
type LevelRepo interface {
	// ListByCareerPath returns the catalog ordered by level ascending.
	ListByCareerPath(ctx context.Context, careerPath string) ([]Level, error)

	// ListWithProgress returns the catalog ordered by level, left-joined
	// with userID's progress rows.
	ListWithProgress(ctx context.Context, careerPath, userID string) ([]LevelProgress, error)

	// Get returns the level with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Level, error)

	// InsertBatch writes all levels in a single statement.
	InsertBatch(ctx context.Context, levels []Level) error

	// CountByCareerPath returns the number of levels in the catalog.
	CountByCareerPath(ctx context.Context, careerPath string) (int, error)
}

// EnrollmentRepo manages career path enrollments.
type EnrollmentRepo interface {
	// Latest returns the most recently started enrollment for the user and
	// career path, or nil if none exist.
	Latest(ctx context.Context, userID, careerPath string) (*Enrollment, error)

	// Create stores a new enrollment.
	Create(ctx context.Context, e *Enrollment) error

	// UpdateCompletion sets the cached completion percentage and completion time.
	UpdateCompletion(ctx context.Context, id string, percentage int, completedAt *time.Time) error

	// ListByUser returns all enrollments of a user, most recent first.
	ListByUser(ctx context.Context, userID string) ([]Enrollment, error)
}

// ProgressRepo manages per-level completion records.
type ProgressRepo interface {
	// Get returns the progress row for (userID, levelID), or nil if none exists.
	Get(ctx context.Context, userID, levelID string) (*Progress, error)

	// Upsert inserts the row or overwrites enrollment_id, completed and
	// completed_at of the existing (user_id, level_id) row.
	Upsert(ctx context.Context, p *Progress) error

	// CountCompletedInEnrollment counts completed rows recorded under the enrollment.
	CountCompletedInEnrollment(ctx context.Context, userID, enrollmentID string) (int, error)

	// CountCompletedInCareerPath counts completed rows for the career path's
	// levels regardless of enrollment.
	CountCompletedInCareerPath(ctx context.Context, userID, careerPath string) (int, error)
}

// Repos groups the roadmap repositories bound to a single connection or
// transaction.
type Repos interface {
	Levels() LevelRepo
	Enrollments() EnrollmentRepo
	Progress() ProgressRepo
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for a group of LLM events.
type LLMUsage struct {
	Key          string // purpose or model, depending on the query
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
