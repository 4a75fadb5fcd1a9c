package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists a session to storage.
func (r *sessionRepository) Save(ctx context.Context, session *domain.ReadingSession) error {
	query := `
		INSERT INTO sessions (id, document_id, started_at, duration_ms, words_read, rate)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.DocumentID,
		session.StartedAt,
		session.Duration.Milliseconds(),
		session.WordsRead,
		session.Rate,
	)

	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// FindRecent retrieves sessions started at or after since, newest first.
func (r *sessionRepository) FindRecent(ctx context.Context, since time.Time) ([]*domain.ReadingSession, error) {
	query := `
		SELECT id, document_id, started_at, duration_ms, words_read, rate
		FROM sessions
		WHERE started_at >= ?
		ORDER BY started_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// FindByDocument retrieves all sessions recorded against a document.
func (r *sessionRepository) FindByDocument(ctx context.Context, documentID string) ([]*domain.ReadingSession, error) {
	query := `
		SELECT id, document_id, started_at, duration_ms, words_read, rate
		FROM sessions
		WHERE document_id = ?
		ORDER BY started_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by document: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// GetDailyStats returns aggregated statistics for a specific date.
func (r *sessionRepository) GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := `
		SELECT
			COUNT(*) as session_count,
			COALESCE(SUM(words_read), 0) as words_read,
			COALESCE(SUM(duration_ms), 0) as total_ms
		FROM sessions
		WHERE started_at >= ? AND started_at < ?
	`

	stats := &domain.DailyStats{
		Date: startOfDay,
	}

	var totalMs int64
	err := r.db.QueryRowContext(ctx, query, startOfDay, endOfDay).Scan(
		&stats.Sessions,
		&stats.WordsRead,
		&totalMs,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats.ReadingTime = time.Duration(totalMs) * time.Millisecond

	return stats, nil
}

// GetPeriodStats returns aggregated statistics for a date range.
func (r *sessionRepository) GetPeriodStats(ctx context.Context, from, to time.Time) (*domain.PeriodStats, error) {
	query := `
		SELECT
			COUNT(*) as session_count,
			COALESCE(SUM(words_read), 0) as words_read,
			COALESCE(SUM(duration_ms), 0) as total_ms
		FROM sessions
		WHERE started_at >= ? AND started_at < ?
	`

	stats := &domain.PeriodStats{
		From: from,
		To:   to,
	}

	var totalMs int64
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(
		&stats.Sessions,
		&stats.WordsRead,
		&totalMs,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get period stats: %w", err)
	}

	stats.ReadingTime = time.Duration(totalMs) * time.Millisecond
	if stats.ReadingTime > 0 {
		stats.AverageRate = float64(stats.WordsRead) / stats.ReadingTime.Minutes()
	}

	return stats, nil
}

// scanSessions scans multiple session rows.
func (r *sessionRepository) scanSessions(rows *sql.Rows) ([]*domain.ReadingSession, error) {
	var sessions []*domain.ReadingSession

	for rows.Next() {
		var session domain.ReadingSession
		var documentID sql.NullString
		var durationMs int64

		err := rows.Scan(
			&session.ID,
			&documentID,
			&session.StartedAt,
			&durationMs,
			&session.WordsRead,
			&session.Rate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		session.Duration = time.Duration(durationMs) * time.Millisecond

		if documentID.Valid {
			session.DocumentID = &documentID.String
		}

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}
