package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/ports"
)

// documentRepository implements ports.DocumentRepository using SQLite.
type documentRepository struct {
	db *sql.DB
}

// newDocumentRepository creates a new document repository.
func newDocumentRepository(db *sql.DB) ports.DocumentRepository {
	return &documentRepository{db: db}
}

// Save persists a document to storage.
func (r *documentRepository) Save(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, title, body, word_count, created_at, last_read_at, last_cursor)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Body,
		doc.WordCount,
		doc.CreatedAt,
		doc.LastReadAt,
		doc.LastCursor,
	)

	if isUniqueConstraintError(err) {
		return domain.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// FindByID retrieves a document by its unique identifier.
func (r *documentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, title, body, word_count, created_at, last_read_at, last_cursor
		FROM documents
		WHERE id = ?
	`

	return r.scanDocument(r.db.QueryRowContext(ctx, query, id))
}

// FindByTitle retrieves the document whose title matches exactly.
func (r *documentRepository) FindByTitle(ctx context.Context, title string) (*domain.Document, error) {
	query := `
		SELECT id, title, body, word_count, created_at, last_read_at, last_cursor
		FROM documents
		WHERE title = ?
	`

	return r.scanDocument(r.db.QueryRowContext(ctx, query, title))
}

// Search does a fuzzy search for documents by title.
func (r *documentRepository) Search(ctx context.Context, query string) ([]*domain.Document, error) {
	// First get all documents
	docs, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents for fuzzy search: %w", err)
	}

	// Prepare titles for fuzzy search
	titles := make([]string, len(docs))
	for i, doc := range docs {
		titles[i] = doc.Title
	}

	// Perform fuzzy search
	matches := fuzzy.Find(query, titles)

	// Collect matching documents
	var result []*domain.Document
	for _, match := range matches {
		if match.Score > 0 {
			result = append(result, docs[match.Index])
		}
	}

	return result, nil
}

// FindAll retrieves all documents, most recently read first.
func (r *documentRepository) FindAll(ctx context.Context) ([]*domain.Document, error) {
	query := `
		SELECT id, title, body, word_count, created_at, last_read_at, last_cursor
		FROM documents
		ORDER BY last_read_at IS NULL, last_read_at DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanDocuments(rows)
}

// UpdatePosition records the last cursor position and read time.
func (r *documentRepository) UpdatePosition(ctx context.Context, id string, cursor int, readAt time.Time) error {
	query := `
		UPDATE documents
		SET last_cursor = ?, last_read_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, cursor, readAt, id)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDocumentNotFound
	}

	return nil
}

// Delete removes a document from storage.
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDocumentNotFound
	}

	return nil
}

// scanDocument scans a single document row.
func (r *documentRepository) scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var lastReadAt sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Body,
		&doc.WordCount,
		&doc.CreatedAt,
		&lastReadAt,
		&doc.LastCursor,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	if lastReadAt.Valid {
		doc.LastReadAt = &lastReadAt.Time
	}

	return &doc, nil
}

// scanDocuments scans multiple document rows.
func (r *documentRepository) scanDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	var docs []*domain.Document

	for rows.Next() {
		var doc domain.Document
		var lastReadAt sql.NullTime

		err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Body,
			&doc.WordCount,
			&doc.CreatedAt,
			&lastReadAt,
			&doc.LastCursor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		if lastReadAt.Valid {
			doc.LastReadAt = &lastReadAt.Time
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
