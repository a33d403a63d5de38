package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adaptly/practicekit/internal/db"
)

// NewTestDB creates an in-memory SQLite database with the full schema
// applied. It is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}
