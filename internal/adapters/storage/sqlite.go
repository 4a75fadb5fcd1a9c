// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	"modernc.org/sqlite"

	"github.com/kezou/pacer/internal/ports"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db           *sql.DB
	documentRepo ports.DocumentRepository
	sessionRepo  ports.SessionRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas apply per connection, and every :memory: connection is a
	// separate database, so the pool must stay at one connection.
	db.SetMaxOpenConns(1)

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:           db,
		documentRepo: newDocumentRepository(db),
		sessionRepo:  newSessionRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Documents returns the document repository.
func (s *sqliteStorage) Documents() ports.DocumentRepository {
	return s.documentRepo
}

// Sessions returns the session repository.
func (s *sqliteStorage) Sessions() ports.SessionRepository {
	return s.sessionRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL UNIQUE,
		body TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		last_read_at DATETIME,
		last_cursor INTEGER NOT NULL DEFAULT -1
	);

	CREATE INDEX IF NOT EXISTS idx_documents_title ON documents(title);
	CREATE INDEX IF NOT EXISTS idx_documents_read ON documents(last_read_at);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		document_id TEXT,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		words_read INTEGER NOT NULL,
		rate INTEGER NOT NULL,
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_document ON sessions(document_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	sqliteErr, ok := err.(*sqlite.Error)
	return ok && sqliteErr.Code() == 2067 // SQLITE_CONSTRAINT_UNIQUE
}
