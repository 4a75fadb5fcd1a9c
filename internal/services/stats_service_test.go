package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezou/pacer/internal/domain"
)

func TestStatsService_Today(t *testing.T) {
	store := setupTestStorage(t)
	service := NewStatsService(store)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Sessions().Save(ctx,
		domain.NewReadingSession(nil, now.Add(-time.Minute), time.Minute, 250, 250)))
	require.NoError(t, store.Sessions().Save(ctx,
		domain.NewReadingSession(nil, now.AddDate(0, 0, -3), time.Minute, 999, 999)))

	stats, err := service.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 250, stats.WordsRead)
}

func TestStatsService_Daily(t *testing.T) {
	store := setupTestStorage(t)
	service := NewStatsService(store)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Sessions().Save(ctx,
		domain.NewReadingSession(nil, now.Add(-time.Minute), time.Minute, 100, 100)))
	require.NoError(t, store.Sessions().Save(ctx,
		domain.NewReadingSession(nil, now.AddDate(0, 0, -2), time.Minute, 300, 300)))

	daily, err := service.Daily(ctx, 7)
	require.NoError(t, err)
	require.Len(t, daily, 7)

	// Oldest first; today is the last entry.
	assert.Equal(t, 100, daily[6].WordsRead)
	assert.Equal(t, 300, daily[4].WordsRead)
	assert.Equal(t, 0, daily[0].WordsRead)
}

func TestStatsService_RecentSessions(t *testing.T) {
	store := setupTestStorage(t)
	service := NewStatsService(store)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 5; i++ {
		s := domain.NewReadingSession(nil, now.Add(-time.Duration(i+1)*time.Hour), time.Minute, 100, 100)
		require.NoError(t, store.Sessions().Save(ctx, s))
	}

	sessions, err := service.RecentSessions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	// Newest first.
	assert.True(t, sessions[0].StartedAt.After(sessions[1].StartedAt))
}

func TestStatsService_DocumentHistory(t *testing.T) {
	store := setupTestStorage(t)
	service := NewStatsService(store)
	library := NewLibraryService(store)
	ctx := context.Background()

	doc, err := library.AddDocument(ctx, AddDocumentRequest{Title: "Hist", Body: "one two"})
	require.NoError(t, err)

	require.NoError(t, store.Sessions().Save(ctx,
		domain.NewReadingSession(&doc.ID, time.Now().Add(-time.Hour), time.Minute, 2, 120)))
	require.NoError(t, store.Sessions().Save(ctx,
		domain.NewReadingSession(nil, time.Now().Add(-time.Hour), time.Minute, 9, 120)))

	history, err := service.DocumentHistory(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].WordsRead)
}
