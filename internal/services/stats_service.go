package services

import (
	"context"
	"time"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/ports"
)

// StatsService aggregates reading history for display.
type StatsService struct {
	storage ports.Storage
}

// NewStatsService creates a new stats service.
func NewStatsService(storage ports.Storage) *StatsService {
	return &StatsService{storage: storage}
}

// Today returns today's reading totals.
func (s *StatsService) Today(ctx context.Context) (*domain.DailyStats, error) {
	return s.storage.Sessions().GetDailyStats(ctx, time.Now())
}

// Period returns totals over the last days, ending now.
func (s *StatsService) Period(ctx context.Context, days int) (*domain.PeriodStats, error) {
	if days <= 0 {
		days = 7
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return s.storage.Sessions().GetPeriodStats(ctx, from, to)
}

// Daily returns per-day totals for the last days, oldest first. Days
// without sessions still appear so charts keep their gaps.
func (s *StatsService) Daily(ctx context.Context, days int) ([]*domain.DailyStats, error) {
	if days <= 0 {
		days = 7
	}

	now := time.Now()
	result := make([]*domain.DailyStats, 0, days)
	for i := days - 1; i >= 0; i-- {
		stats, err := s.storage.Sessions().GetDailyStats(ctx, now.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		result = append(result, stats)
	}

	return result, nil
}

// RecentSessions returns the newest sessions, capped at limit.
func (s *StatsService) RecentSessions(ctx context.Context, limit int) ([]*domain.ReadingSession, error) {
	since := time.Now().AddDate(0, 0, -30)
	sessions, err := s.storage.Sessions().FindRecent(ctx, since)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// DocumentHistory returns every session recorded against a document.
func (s *StatsService) DocumentHistory(ctx context.Context, documentID string) ([]*domain.ReadingSession, error) {
	return s.storage.Sessions().FindByDocument(ctx, documentID)
}
