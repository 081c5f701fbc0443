// Package storetest opens isolated in-memory stores for tests.
package storetest

import (
	"testing"

	"github.com/google/uuid"

	"github.com/abhisek/pathwise/internal/store"
)

// Open returns a migrated in-memory SQLite store that is closed when the
// test finishes. Each call gets its own database.
func Open(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(DSN())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// DSN returns a unique in-memory SQLite DSN.
func DSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}
