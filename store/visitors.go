package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gcbaptista/go-portfolio/model"
)

const (
	topPathsLimit       = 10
	recentVisitorsLimit = 50
)

// RecordVisit stores one page view. Only the hashed client address is kept.
func (s *Store) RecordVisit(ctx context.Context, visit model.Visit) error {
	if visit.Timestamp.IsZero() {
		visit.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, visit.HashedIP, visit.UserAgent, visit.Path, visit.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// VisitorStats summarises visits relative to now.
func (s *Store) VisitorStats(ctx context.Context, now time.Time) (model.SiteStats, error) {
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := model.SiteStats{
		TopPaths:       make([]model.PathCount, 0),
		RecentVisitors: make([]model.Visit, 0),
	}

	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.ContactMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return model.SiteStats{}, fmt.Errorf("failed to compute visitor stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS visits
		FROM visitors
		GROUP BY path
		ORDER BY visits DESC, path ASC
		LIMIT ?
	`, topPathsLimit)
	if err != nil {
		return model.SiteStats{}, fmt.Errorf("failed to query top paths: %w", err)
	}
	for rows.Next() {
		var pc model.PathCount
		if err := rows.Scan(&pc.Path, &pc.Visits); err != nil {
			_ = rows.Close()
			return model.SiteStats{}, fmt.Errorf("failed to read top paths: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	_ = rows.Close()

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, recentVisitorsLimit)
	if err != nil {
		return model.SiteStats{}, fmt.Errorf("failed to query recent visitors: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return model.SiteStats{}, fmt.Errorf("failed to read recent visitors: %w", err)
		}
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}

	return stats, rows.Err()
}

// DeleteVisitsBefore removes visits older than cutoff and returns how many were deleted.
func (s *Store) DeleteVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old visits: %w", err)
	}
	return result.RowsAffected()
}
