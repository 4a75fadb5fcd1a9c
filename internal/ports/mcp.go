package ports

import (
	"context"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/engine"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider exposes reader state and controls to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// ReaderStatus returns the live playback snapshot.
	ReaderStatus(ctx context.Context) (*engine.Snapshot, error)

	// ListDocuments returns all stored documents.
	ListDocuments(ctx context.Context) ([]*domain.Document, error)

	// OpenDocument loads the document matching query into the reader
	// and returns it.
	OpenDocument(ctx context.Context, query string) (*domain.Document, error)

	// StartReading starts word playback.
	StartReading(ctx context.Context) error

	// PauseReading pauses word playback.
	PauseReading(ctx context.Context) error

	// SetRate applies a playback rate and returns the clamped value.
	SetRate(ctx context.Context, wpm int) (int, error)

	// SetSleepTimer arms the sleep timer for the given number of minutes.
	SetSleepTimer(ctx context.Context, minutes int) error

	// CancelSleepTimer disarms the sleep timer.
	CancelSleepTimer(ctx context.Context) error

	// GetRecentSessions returns recent reading sessions, newest first.
	GetRecentSessions(ctx context.Context, limit int) ([]*domain.ReadingSession, error)

	// ReadingStats returns aggregated statistics over the last days.
	ReadingStats(ctx context.Context, days int) (*domain.PeriodStats, error)
}
