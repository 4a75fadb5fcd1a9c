// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/ports"
)

// LibraryService handles document library use cases.
type LibraryService struct {
	storage ports.Storage
}

// NewLibraryService creates a new library service.
func NewLibraryService(storage ports.Storage) *LibraryService {
	return &LibraryService{storage: storage}
}

// AddDocumentRequest contains the data needed to save a new document.
type AddDocumentRequest struct {
	Title string
	Body  string
}

// AddDocument saves a new document to the library.
func (s *LibraryService) AddDocument(ctx context.Context, req AddDocumentRequest) (*domain.Document, error) {
	doc, err := domain.NewDocument(req.Title, req.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	if err := s.storage.Documents().Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return doc, nil
}

// ListDocuments retrieves all library documents.
func (s *LibraryService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return s.storage.Documents().FindAll(ctx)
}

// GetDocument retrieves a single document by ID.
func (s *LibraryService) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	return s.storage.Documents().FindByID(ctx, id)
}

// FindDocument resolves a user-supplied query to one document. It tries
// the ID first, then the exact title, then the best fuzzy title match.
func (s *LibraryService) FindDocument(ctx context.Context, query string) (*domain.Document, error) {
	if doc, err := s.storage.Documents().FindByID(ctx, query); err == nil {
		return doc, nil
	}

	if doc, err := s.storage.Documents().FindByTitle(ctx, query); err == nil {
		return doc, nil
	}

	matches, err := s.storage.Documents().Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	if len(matches) == 0 {
		return nil, domain.ErrDocumentNotFound
	}

	return matches[0], nil
}

// SearchDocuments does a fuzzy title search over the library.
func (s *LibraryService) SearchDocuments(ctx context.Context, query string) ([]*domain.Document, error) {
	return s.storage.Documents().Search(ctx, query)
}

// RemoveDocument deletes a document from the library. Past reading
// sessions keep their rows but lose the document link.
func (s *LibraryService) RemoveDocument(ctx context.Context, id string) error {
	return s.storage.Documents().Delete(ctx, id)
}

// SavePosition records the reading position for a later resume.
func (s *LibraryService) SavePosition(ctx context.Context, id string, cursor int) error {
	return s.storage.Documents().UpdatePosition(ctx, id, cursor, time.Now())
}
