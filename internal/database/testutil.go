package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database for testing, using the
// Europe/Rome operating timezone. The database is automatically closed when
// the test completes.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err, "failed to load operating timezone")

	db, err := New(":memory:", loc)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
