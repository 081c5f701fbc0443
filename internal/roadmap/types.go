package roadmap

import (
	"time"

	"github.com/abhisek/pathwise/internal/store"
)

// MaterializedLevel is a catalog level as seen by one user.
type MaterializedLevel struct {
	store.Level
	Completed   bool
	CompletedAt *time.Time

	// Locked is true when the previous level is not completed. The first
	// level is never locked.
	Locked bool
}

// Stats summarizes a user's progress on a career path.
type Stats struct {
	CareerPath      string
	CompletedLevels int
	TotalLevels     int
	Percentage      int
	EstimatedHours  int
	Skills          []SkillCount
	Timeline        []TimelinePoint

	// Celebrate is set once every level of a non-empty catalog is done.
	Celebrate bool
}

// SkillCount is the number of completed levels that taught a topic.
type SkillCount struct {
	Name  string
	Count int
}

// TimelinePoint is the cumulative completion after one level was finished.
type TimelinePoint struct {
	Date       time.Time
	Level      int
	Percentage int
}
