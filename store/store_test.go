package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "portfolio.db"), nil)
	require.NoError(t, err, "Failed to open store")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	ctx := context.Background()

	first, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.SaveContactMessage(ctx, &model.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}))
	require.NoError(t, first.Close())

	second, err := Open(ctx, path, nil)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	n, err := second.CountContactMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, second.Ping(ctx))
}

func TestContactMessages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := &model.ContactMessage{
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "Hello",
		Message:   "Nice projects page.",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &model.ContactMessage{
		Name:    "Linus",
		Email:   "linus@example.com",
		Message: "Want to collaborate?",
	}
	require.NoError(t, s.SaveContactMessage(ctx, older))
	require.NoError(t, s.SaveContactMessage(ctx, newer))
	assert.NotEmpty(t, older.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	got, err := s.GetContactMessage(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "Hello", got.Subject)
	assert.WithinDuration(t, older.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.Nil(t, got.NotifiedAt)

	list, err := s.ListContactMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "newest first")

	limited, err := s.ListContactMessages(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	notifiedAt := time.Now()
	require.NoError(t, s.MarkNotified(ctx, older.ID, notifiedAt))
	got, err = s.GetContactMessage(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NotifiedAt)
	assert.WithinDuration(t, notifiedAt, *got.NotifiedAt, time.Millisecond)
}

func TestContactMessages_NotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.GetContactMessage(ctx, "missing")
	assert.True(t, errors.Is(err, internalErrors.ErrRecordNotFound))

	err = s.MarkNotified(ctx, "missing", time.Now())
	assert.True(t, errors.Is(err, internalErrors.ErrRecordNotFound))
}

func TestVisitorStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	visits := []model.Visit{
		{HashedIP: "aaaa", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "aaaa", Path: "/projects", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "bbbb", Path: "/projects", Timestamp: now.Add(-26 * time.Hour)},
		{HashedIP: "cccc", Path: "/blog", Timestamp: now.Add(-10 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}
	require.NoError(t, s.SaveContactMessage(ctx, &model.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}))

	stats, err := s.VisitorStats(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	assert.Equal(t, int64(1), stats.ContactMessages)

	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, model.PathCount{Path: "/projects", Visits: 2}, stats.TopPaths[0])

	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.Equal(t, "aaaa", stats.RecentVisitors[0].HashedIP)
}

func TestDeleteVisitsBefore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.RecordVisit(ctx, model.Visit{HashedIP: "a", Path: "/", Timestamp: now.Add(-400 * 24 * time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, model.Visit{HashedIP: "b", Path: "/", Timestamp: now.Add(-24 * time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, model.Visit{HashedIP: "c", Path: "/"}))

	deleted, err := s.DeleteVisitsBefore(ctx, now.Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	stats, err := s.VisitorStats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVisitors)
}
