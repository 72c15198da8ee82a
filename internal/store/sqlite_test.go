package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "attributes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Get(ctx, "user-1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "user-1", map[string]any{"year": 2015, "month": "November", "day": 6}))

	attrs, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	// Numbers come back as float64 through the JSON payload.
	assert.Equal(t, "November", attrs["month"])
	assert.Equal(t, float64(2015), attrs["year"])
	assert.Equal(t, float64(6), attrs["day"])
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Put(ctx, "user-1", map[string]any{"year": 2015, "month": "November", "day": 6, "extra": "x"}))
	require.NoError(t, s.Put(ctx, "user-1", map[string]any{"year": 1999, "month": "May", "day": 2}))

	attrs, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "May", attrs["month"])
	_, merged := attrs["extra"]
	assert.False(t, merged)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "attributes.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "user-1", map[string]any{"month": "May"}))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	attrs, err := reopened.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "May", attrs["month"])
}
