package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/engine"
	"github.com/kezou/pacer/internal/ports"
)

// ReaderService binds the playback engine to the library and session
// history. It also implements the MCPStateProvider interface.
type ReaderService struct {
	engine  *engine.Engine
	storage ports.Storage
	library *LibraryService
}

// NewReaderService creates a new reader service.
func NewReaderService(eng *engine.Engine, storage ports.Storage, library *LibraryService) *ReaderService {
	return &ReaderService{
		engine:  eng,
		storage: storage,
		library: library,
	}
}

// Engine exposes the underlying playback engine.
func (s *ReaderService) Engine() *engine.Engine {
	return s.engine
}

// LoadText loads raw text into the reader without a library entry.
func (s *ReaderService) LoadText(text string) error {
	if len(domain.Tokenize(text)) == 0 {
		return domain.ErrEmptyDocument
	}
	s.engine.SetText(text)
	return nil
}

// LoadDocument resolves query against the library and loads the match
// into the reader, resuming from its saved position.
func (s *ReaderService) LoadDocument(ctx context.Context, query string) (*domain.Document, error) {
	doc, err := s.library.FindDocument(ctx, query)
	if err != nil {
		return nil, err
	}

	s.engine.LoadDocument(doc)
	return doc, nil
}

// SaveSession persists a finished reading run and refreshes the
// document position when the run belonged to a library document.
func (s *ReaderService) SaveSession(ctx context.Context, session *domain.ReadingSession) error {
	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if session.DocumentID != nil {
		snap := s.engine.Snapshot()
		if snap.DocumentID != nil && *snap.DocumentID == *session.DocumentID {
			if err := s.library.SavePosition(ctx, *session.DocumentID, snap.Cursor); err != nil {
				return fmt.Errorf("failed to save position: %w", err)
			}
		}
	}

	return nil
}

// SaveCurrentPosition records the live cursor against the loaded
// document, if any. Called when the reader exits.
func (s *ReaderService) SaveCurrentPosition(ctx context.Context) error {
	snap := s.engine.Snapshot()
	if snap.DocumentID == nil {
		return nil
	}
	return s.library.SavePosition(ctx, *snap.DocumentID, snap.Cursor)
}

// ReaderStatus implements ports.MCPStateProvider.
func (s *ReaderService) ReaderStatus(ctx context.Context) (*engine.Snapshot, error) {
	snap := s.engine.Snapshot()
	return &snap, nil
}

// ListDocuments implements ports.MCPStateProvider.
func (s *ReaderService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return s.library.ListDocuments(ctx)
}

// OpenDocument implements ports.MCPStateProvider.
func (s *ReaderService) OpenDocument(ctx context.Context, query string) (*domain.Document, error) {
	return s.LoadDocument(ctx, query)
}

// StartReading implements ports.MCPStateProvider.
func (s *ReaderService) StartReading(ctx context.Context) error {
	if len(s.engine.Snapshot().Words) == 0 {
		return domain.ErrEmptyDocument
	}
	s.engine.StartPlayback()
	return nil
}

// PauseReading implements ports.MCPStateProvider.
func (s *ReaderService) PauseReading(ctx context.Context) error {
	s.engine.StopPlayback()
	return nil
}

// SetRate implements ports.MCPStateProvider.
func (s *ReaderService) SetRate(ctx context.Context, wpm int) (int, error) {
	return s.engine.SetRate(wpm), nil
}

// SetSleepTimer implements ports.MCPStateProvider.
func (s *ReaderService) SetSleepTimer(ctx context.Context, minutes int) error {
	return s.engine.SetSleepTimer(time.Duration(minutes) * time.Minute)
}

// CancelSleepTimer implements ports.MCPStateProvider.
func (s *ReaderService) CancelSleepTimer(ctx context.Context) error {
	s.engine.CancelSleepTimer()
	return nil
}

// GetRecentSessions implements ports.MCPStateProvider.
func (s *ReaderService) GetRecentSessions(ctx context.Context, limit int) ([]*domain.ReadingSession, error) {
	since := time.Now().AddDate(0, 0, -7)
	sessions, err := s.storage.Sessions().FindRecent(ctx, since)
	if err != nil {
		return nil, err
	}

	if len(sessions) > limit {
		return sessions[:limit], nil
	}
	return sessions, nil
}

// ReadingStats implements ports.MCPStateProvider.
func (s *ReaderService) ReadingStats(ctx context.Context, days int) (*domain.PeriodStats, error) {
	if days <= 0 {
		days = 7
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return s.storage.Sessions().GetPeriodStats(ctx, from, to)
}

// Ensure ReaderService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*ReaderService)(nil)
