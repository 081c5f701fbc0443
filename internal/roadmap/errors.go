package roadmap

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCareerPath is wrapped by CatalogGenerationError when the
	// career path is blank.
	ErrEmptyCareerPath = errors.New("career path is empty")

	// ErrEmptyUserID is returned when an operation is called without a user.
	ErrEmptyUserID = errors.New("user id is empty")
)

// CatalogGenerationError indicates the level catalog could not be generated:
// the provider failed or returned a catalog of the wrong shape.
type CatalogGenerationError struct {
	CareerPath string
	Err        error
}

func (e *CatalogGenerationError) Error() string {
	return fmt.Sprintf("generate roadmap for %q: %v", e.CareerPath, e.Err)
}

func (e *CatalogGenerationError) Unwrap() error { return e.Err }

// CatalogPersistenceError indicates a generated catalog could not be stored.
// No level of the catalog was written.
type CatalogPersistenceError struct {
	CareerPath string
	Err        error
}

func (e *CatalogPersistenceError) Error() string {
	return fmt.Sprintf("store roadmap for %q: %v", e.CareerPath, e.Err)
}

func (e *CatalogPersistenceError) Unwrap() error { return e.Err }

// EnrollmentCreationError indicates the lazy enrollment insert failed.
type EnrollmentCreationError struct {
	UserID     string
	CareerPath string
	Err        error
}

func (e *EnrollmentCreationError) Error() string {
	return fmt.Sprintf("enroll user %s in %q: %v", e.UserID, e.CareerPath, e.Err)
}

func (e *EnrollmentCreationError) Unwrap() error { return e.Err }

// NoActiveEnrollmentError indicates a completion was requested for a career
// path the user never started.
type NoActiveEnrollmentError struct {
	UserID     string
	CareerPath string
}

func (e *NoActiveEnrollmentError) Error() string {
	return fmt.Sprintf("user %s has no enrollment in %q", e.UserID, e.CareerPath)
}

// ProgressPersistenceError indicates the completion transaction failed and
// was rolled back.
type ProgressPersistenceError struct {
	UserID  string
	LevelID string
	Err     error
}

func (e *ProgressPersistenceError) Error() string {
	return fmt.Sprintf("record completion of level %s for user %s: %v", e.LevelID, e.UserID, e.Err)
}

func (e *ProgressPersistenceError) Unwrap() error { return e.Err }

// LevelNotFoundError indicates the level ID does not exist.
type LevelNotFoundError struct {
	LevelID string
}

func (e *LevelNotFoundError) Error() string {
	return fmt.Sprintf("level %s not found", e.LevelID)
}

// LevelLockedError indicates the previous level is not completed yet.
type LevelLockedError struct {
	UserID  string
	LevelID string
	Level   int
}

func (e *LevelLockedError) Error() string {
	return fmt.Sprintf("level %d is locked until level %d is completed", e.Level, e.Level-1)
}
