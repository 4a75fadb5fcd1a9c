// Package domain contains the core business entities for Pacer.
// These entities represent the fundamental concepts of the reading system
// and are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"time"
)

// Common domain errors.
var (
	ErrEmptyDocumentTitle = errors.New("document title cannot be empty")
	ErrEmptyDocument      = errors.New("document has no words")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrDuplicateTitle     = errors.New("document title already exists")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrInvalidPhase       = errors.New("invalid focus phase")
	ErrInvalidAction      = errors.New("unknown action")
)

// Document represents a saved text in the reading library.
type Document struct {
	ID         string
	Title      string
	Body       string
	WordCount  int
	CreatedAt  time.Time
	LastReadAt *time.Time
	LastCursor int
}

// NewDocument creates a library document from raw text.
func NewDocument(title, body string) (*Document, error) {
	if title == "" {
		return nil, ErrEmptyDocumentTitle
	}

	words := Tokenize(body)
	if len(words) == 0 {
		return nil, ErrEmptyDocument
	}

	return &Document{
		ID:         generateID(),
		Title:      title,
		Body:       body,
		WordCount:  len(words),
		CreatedAt:  time.Now(),
		LastCursor: -1,
	}, nil
}

// Words returns the document body split into display tokens.
func (d *Document) Words() []string {
	return Tokenize(d.Body)
}

// MarkRead records the reading position for a later resume.
func (d *Document) MarkRead(cursor int) {
	now := time.Now()
	d.LastReadAt = &now
	d.LastCursor = cursor
}

// Progress returns how far through the document the cursor is (0.0 to 1.0).
func (d *Document) Progress() float64 {
	if d.WordCount == 0 || d.LastCursor < 0 {
		return 0
	}
	p := float64(d.LastCursor+1) / float64(d.WordCount)
	if p > 1 {
		return 1
	}
	return p
}
