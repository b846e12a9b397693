package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, status := range []Status{StatusPublished, StatusUnchanged, StatusFailed} {
		require.NoError(t, s.Record(ctx, Record{
			Repo:       "https://github.com/apache/tsfile-website.git",
			Branch:     "asf-staging",
			Status:     status,
			Attempts:   1,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 10*time.Second),
		}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, StatusFailed, all[0].Status)
	assert.Equal(t, StatusPublished, all[2].Status)
	assert.Equal(t, 10*time.Second, all[0].Duration())
	_, err = uuid.Parse(all[0].ID)
	assert.NoError(t, err)

	latest, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	id := NewID()
	now := time.Now()
	require.NoError(t, s.Record(ctx, Record{
		ID: id, Repo: "r", Branch: "b", Commit: "abc123", Status: StatusFailed,
		Error: "network down", Attempts: 2, StartedAt: now, FinishedAt: now,
	}))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "network down", got.Error)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, "abc123", got.Commit)

	_, err = s.Get(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
}

func TestFileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "history.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, Record{Repo: "r", Branch: "b", Status: StatusPublished, StartedAt: time.Now(), FinishedAt: time.Now()}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	all, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
