package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/engine"
)

// mockStateProvider is a mock implementation of ports.MCPStateProvider for testing.
type mockStateProvider struct {
	snapshot  engine.Snapshot
	documents []*domain.Document
	sessions  []*domain.ReadingSession
	stats     domain.PeriodStats

	rate         int
	sleepMinutes int
}

func (m *mockStateProvider) ReaderStatus(ctx context.Context) (*engine.Snapshot, error) {
	snap := m.snapshot
	return &snap, nil
}

func (m *mockStateProvider) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return m.documents, nil
}

func (m *mockStateProvider) OpenDocument(ctx context.Context, query string) (*domain.Document, error) {
	for _, doc := range m.documents {
		if doc.ID == query || doc.Title == query {
			return doc, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (m *mockStateProvider) StartReading(ctx context.Context) error {
	m.snapshot.Advancing = true
	return nil
}

func (m *mockStateProvider) PauseReading(ctx context.Context) error {
	m.snapshot.Advancing = false
	return nil
}

func (m *mockStateProvider) SetRate(ctx context.Context, wpm int) (int, error) {
	m.rate = domain.ClampRate(wpm)
	return m.rate, nil
}

func (m *mockStateProvider) SetSleepTimer(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return domain.ErrInvalidDuration
	}
	m.sleepMinutes = minutes
	return nil
}

func (m *mockStateProvider) CancelSleepTimer(ctx context.Context) error {
	m.sleepMinutes = 0
	return nil
}

func (m *mockStateProvider) GetRecentSessions(ctx context.Context, limit int) ([]*domain.ReadingSession, error) {
	if len(m.sessions) > limit {
		return m.sessions[:limit], nil
	}
	return m.sessions, nil
}

func (m *mockStateProvider) ReadingStats(ctx context.Context, days int) (*domain.PeriodStats, error) {
	stats := m.stats
	return &stats, nil
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil || len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("tool result content is %T, not text", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}

	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}

	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_handleReaderStatus(t *testing.T) {
	docID := "doc-1"
	mock := &mockStateProvider{
		snapshot: engine.Snapshot{
			Words:          []string{"alpha", "beta", "gamma"},
			Cursor:         1,
			Advancing:      true,
			Rate:           300,
			Phase:          domain.PhaseFocus,
			PhaseRemaining: 20 * time.Minute,
			PhaseRunning:   true,
			DocumentID:     &docID,
		},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{}

	result, err := server.handleReaderStatus(context.Background(), request)
	if err != nil {
		t.Fatalf("handleReaderStatus() error = %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("failed to parse status JSON: %v", err)
	}

	if payload["current_word"] != "beta" {
		t.Errorf("current_word = %v, want beta", payload["current_word"])
	}
	if payload["word_count"] != float64(3) {
		t.Errorf("word_count = %v, want 3", payload["word_count"])
	}
	if payload["document_id"] != docID {
		t.Errorf("document_id = %v, want %s", payload["document_id"], docID)
	}
	if _, ok := payload["sleep_remaining"]; ok {
		t.Error("sleep_remaining should be omitted while the timer is off")
	}
}

func TestServer_handleListDocuments(t *testing.T) {
	doc1, _ := domain.NewDocument("War and Peace", "a very long book")
	doc2, _ := domain.NewDocument("Short Story", "a short one")

	mock := &mockStateProvider{
		documents: []*domain.Document{doc1, doc2},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{}

	result, err := server.handleListDocuments(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListDocuments() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "War and Peace") {
		t.Errorf("expected document titles in output, got %s", text)
	}
	if !strings.Contains(text, `"total_count": 2`) {
		t.Errorf("expected total_count 2, got %s", text)
	}
}

func TestServer_handleOpenDocument(t *testing.T) {
	doc, _ := domain.NewDocument("War and Peace", "a very long book")
	mock := &mockStateProvider{
		documents: []*domain.Document{doc},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"query": "War and Peace",
			},
		},
	}

	result, err := server.handleOpenDocument(context.Background(), request)
	if err != nil {
		t.Fatalf("handleOpenDocument() error = %v", err)
	}

	if result.IsError {
		t.Error("handleOpenDocument() returned error result")
	}
	if !strings.Contains(resultText(t, result), doc.ID) {
		t.Error("expected document ID in output")
	}
}

func TestServer_handleOpenDocument_MissingQuery(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleOpenDocument(context.Background(), request)
	if err != nil {
		t.Fatalf("handleOpenDocument() error = %v", err)
	}

	if !result.IsError {
		t.Error("handleOpenDocument() should return error for missing query")
	}
}

func TestServer_handleOpenDocument_NotFound(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"query": "no such document",
			},
		},
	}

	result, err := server.handleOpenDocument(context.Background(), request)
	if err != nil {
		t.Fatalf("handleOpenDocument() error = %v", err)
	}

	if !result.IsError {
		t.Error("handleOpenDocument() should return error result for unknown document")
	}
}

func TestServer_handleSetRate(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"wpm": float64(420),
			},
		},
	}

	result, err := server.handleSetRate(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSetRate() error = %v", err)
	}

	if result.IsError {
		t.Error("handleSetRate() returned error result")
	}
	if mock.rate != 420 {
		t.Errorf("rate = %d, want 420", mock.rate)
	}
}

func TestServer_handleSetRate_Clamped(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"wpm": float64(5000),
			},
		},
	}

	result, err := server.handleSetRate(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSetRate() error = %v", err)
	}

	if mock.rate != domain.MaxRate {
		t.Errorf("rate = %d, want %d", mock.rate, domain.MaxRate)
	}
	if !strings.Contains(resultText(t, result), `"clamped": true`) {
		t.Error("expected clamped flag in output")
	}
}

func TestServer_handleSetRate_MissingWPM(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleSetRate(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSetRate() error = %v", err)
	}

	if !result.IsError {
		t.Error("handleSetRate() should return error for missing wpm")
	}
}

func TestServer_handleSetSleepTimer(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"minutes": float64(15),
			},
		},
	}

	result, err := server.handleSetSleepTimer(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSetSleepTimer() error = %v", err)
	}

	if result.IsError {
		t.Error("handleSetSleepTimer() returned error result")
	}
	if mock.sleepMinutes != 15 {
		t.Errorf("sleepMinutes = %d, want 15", mock.sleepMinutes)
	}
}

func TestServer_handleSetSleepTimer_Invalid(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"minutes": float64(0),
			},
		},
	}

	result, err := server.handleSetSleepTimer(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSetSleepTimer() error = %v", err)
	}

	if !result.IsError {
		t.Error("handleSetSleepTimer() should return error for zero minutes")
	}
}

func TestServer_handleCancelSleepTimer(t *testing.T) {
	mock := &mockStateProvider{sleepMinutes: 20}
	server := NewServer(mock)

	result, err := server.handleCancelSleepTimer(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleCancelSleepTimer() error = %v", err)
	}

	if result.IsError {
		t.Error("handleCancelSleepTimer() returned error result")
	}
	if mock.sleepMinutes != 0 {
		t.Errorf("sleepMinutes = %d, want 0", mock.sleepMinutes)
	}
}

func TestServer_handleRecentSessions(t *testing.T) {
	now := time.Now()
	var sessions []*domain.ReadingSession
	for i := 0; i < 3; i++ {
		sessions = append(sessions, domain.NewReadingSession(nil, now.Add(-time.Duration(i)*time.Hour), 5*time.Minute, 1500, 300))
	}

	mock := &mockStateProvider{sessions: sessions}
	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"limit": float64(2),
			},
		},
	}

	result, err := server.handleRecentSessions(context.Background(), request)
	if err != nil {
		t.Fatalf("handleRecentSessions() error = %v", err)
	}

	if !strings.Contains(resultText(t, result), `"total_count": 2`) {
		t.Errorf("expected 2 sessions, got %s", resultText(t, result))
	}
}

func TestServer_handleReadingStats(t *testing.T) {
	mock := &mockStateProvider{
		stats: domain.PeriodStats{
			From:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			To:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
			Sessions:    4,
			WordsRead:   6000,
			ReadingTime: 20 * time.Minute,
			AverageRate: 300,
		},
	}

	server := NewServer(mock)

	result, err := server.handleReadingStats(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleReadingStats() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"words_read": 6000`) {
		t.Errorf("expected words_read in output, got %s", text)
	}
	if !strings.Contains(text, `"average_rate": 300`) {
		t.Errorf("expected average_rate in output, got %s", text)
	}
}

func TestServer_Stop(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	// Stop before Start should not panic
	err := server.Stop()
	if err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
