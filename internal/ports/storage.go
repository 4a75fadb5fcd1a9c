// Package ports defines the interfaces (driven and driving ports)
// for the Pacer application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/kezou/pacer/internal/domain"
)

// DocumentRepository defines the interface for document persistence.
// This is a driven port (implemented by adapters).
type DocumentRepository interface {
	// Save persists a document to storage.
	Save(ctx context.Context, doc *domain.Document) error

	// FindByID retrieves a document by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Document, error)

	// FindByTitle retrieves the document whose title matches exactly.
	FindByTitle(ctx context.Context, title string) (*domain.Document, error)

	// Search does a fuzzy search for documents by title.
	Search(ctx context.Context, query string) ([]*domain.Document, error)

	// FindAll retrieves all documents, most recently read first.
	FindAll(ctx context.Context) ([]*domain.Document, error)

	// UpdatePosition records the last cursor position and read time.
	UpdatePosition(ctx context.Context, id string, cursor int, readAt time.Time) error

	// Delete removes a document from storage.
	Delete(ctx context.Context, id string) error
}

// SessionRepository defines the interface for reading session persistence.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a session to storage.
	Save(ctx context.Context, session *domain.ReadingSession) error

	// FindRecent retrieves sessions started at or after since, newest first.
	FindRecent(ctx context.Context, since time.Time) ([]*domain.ReadingSession, error)

	// FindByDocument retrieves all sessions recorded against a document.
	FindByDocument(ctx context.Context, documentID string) ([]*domain.ReadingSession, error)

	// GetDailyStats returns aggregated statistics for a specific date.
	GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)

	// GetPeriodStats returns aggregated statistics for a date range.
	GetPeriodStats(ctx context.Context, from, to time.Time) (*domain.PeriodStats, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Documents provides access to document operations.
	Documents() DocumentRepository

	// Sessions provides access to session operations.
	Sessions() SessionRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
