// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/engine"
	"github.com/kezou/pacer/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	// Create the MCP server
	s.server = server.NewMCPServer(
		"pacer-reader",
		"1.0.0",
		server.WithLogging(),
	)

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: reader_status
	s.server.AddTool(
		mcp.NewTool(
			"reader_status",
			mcp.WithDescription("Get the current Pacer reader state including playback position, rate, focus phase and sleep timer"),
		),
		s.handleReaderStatus,
	)

	// Tool: list_documents
	s.server.AddTool(
		mcp.NewTool(
			"list_documents",
			mcp.WithDescription("List all documents in the library, most recently read first"),
		),
		s.handleListDocuments,
	)

	// Tool: open_document
	openDocumentTool := mcp.NewTool(
		"open_document",
		mcp.WithDescription("Load a document into the reader by ID, exact title or fuzzy title match"),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Document ID, title, or part of a title"),
		),
	)
	s.server.AddTool(openDocumentTool, s.handleOpenDocument)

	// Tool: start_reading
	s.server.AddTool(
		mcp.NewTool(
			"start_reading",
			mcp.WithDescription("Start word-by-word playback of the loaded document"),
		),
		s.handleStartReading,
	)

	// Tool: pause_reading
	s.server.AddTool(
		mcp.NewTool(
			"pause_reading",
			mcp.WithDescription("Pause word playback, keeping the current position"),
		),
		s.handlePauseReading,
	)

	// Tool: set_rate
	setRateTool := mcp.NewTool(
		"set_rate",
		mcp.WithDescription("Set the playback rate in words per minute (clamped to 60-1000)"),
		mcp.WithNumber(
			"wpm",
			mcp.Required(),
			mcp.Description("Target rate in words per minute"),
		),
	)
	s.server.AddTool(setRateTool, s.handleSetRate)

	// Tool: set_sleep_timer
	setSleepTool := mcp.NewTool(
		"set_sleep_timer",
		mcp.WithDescription("Arm a one-shot sleep timer that stops playback after the given number of minutes"),
		mcp.WithNumber(
			"minutes",
			mcp.Required(),
			mcp.Description("Minutes until playback stops"),
		),
	)
	s.server.AddTool(setSleepTool, s.handleSetSleepTimer)

	// Tool: cancel_sleep_timer
	s.server.AddTool(
		mcp.NewTool(
			"cancel_sleep_timer",
			mcp.WithDescription("Disarm the sleep timer without touching playback"),
		),
		s.handleCancelSleepTimer,
	)

	// Tool: recent_sessions
	recentSessionsTool := mcp.NewTool(
		"recent_sessions",
		mcp.WithDescription("Get recent reading sessions, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of sessions to return (default: 10)"),
		),
	)
	s.server.AddTool(recentSessionsTool, s.handleRecentSessions)

	// Tool: reading_stats
	readingStatsTool := mcp.NewTool(
		"reading_stats",
		mcp.WithDescription("Get aggregated reading statistics over a trailing window of days"),
		mcp.WithNumber(
			"days",
			mcp.Description("Number of days to aggregate (default: 7)"),
		),
	)
	s.server.AddTool(readingStatsTool, s.handleReadingStats)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	// Start the stdio server
	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// snapshotMap flattens a playback snapshot for JSON output.
func snapshotMap(snap *engine.Snapshot) map[string]interface{} {
	result := map[string]interface{}{
		"advancing":       snap.Advancing,
		"cursor":          snap.Cursor,
		"word_count":      len(snap.Words),
		"progress":        snap.Progress(),
		"rate":            snap.Rate,
		"phase":           string(snap.Phase),
		"phase_label":     domain.PhaseLabel(snap.Phase),
		"phase_running":   snap.PhaseRunning,
		"phase_remaining": snap.PhaseRemaining.String(),
		"sleep_active":    snap.SleepActive,
	}

	if word, ok := snap.CurrentWord(); ok {
		result["current_word"] = word
	}
	if snap.SleepActive {
		result["sleep_remaining"] = snap.SleepRemaining.String()
	}
	if snap.DocumentID != nil {
		result["document_id"] = *snap.DocumentID
	}

	return result
}

// handleReaderStatus handles the reader_status tool.
func (s *Server) handleReaderStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stateProvider.ReaderStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reader status: %w", err)
	}

	jsonData, err := json.MarshalIndent(snapshotMap(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListDocuments handles the list_documents tool.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.stateProvider.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var docList []map[string]interface{}
	for _, doc := range docs {
		docData := map[string]interface{}{
			"id":         doc.ID,
			"title":      doc.Title,
			"word_count": doc.WordCount,
			"progress":   doc.Progress(),
			"created_at": doc.CreatedAt.Format("2006-01-02T15:04:05"),
		}
		if doc.LastReadAt != nil {
			docData["last_read_at"] = doc.LastReadAt.Format("2006-01-02T15:04:05")
		}
		docList = append(docList, docData)
	}

	result := map[string]interface{}{
		"documents":   docList,
		"total_count": len(docList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal documents: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleOpenDocument handles the open_document tool.
func (s *Server) handleOpenDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required: " + err.Error()), nil
	}

	doc, err := s.stateProvider.OpenDocument(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open document: %v", err)), nil
	}

	result := map[string]interface{}{
		"id":          doc.ID,
		"title":       doc.Title,
		"word_count":  doc.WordCount,
		"progress":    doc.Progress(),
		"last_cursor": doc.LastCursor,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleStartReading handles the start_reading tool.
func (s *Server) handleStartReading(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.StartReading(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start reading: %v", err)), nil
	}

	snap, err := s.stateProvider.ReaderStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reader status: %w", err)
	}

	jsonData, err := json.MarshalIndent(snapshotMap(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handlePauseReading handles the pause_reading tool.
func (s *Server) handlePauseReading(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.PauseReading(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to pause reading: %v", err)), nil
	}

	snap, err := s.stateProvider.ReaderStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reader status: %w", err)
	}

	jsonData, err := json.MarshalIndent(snapshotMap(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSetRate handles the set_rate tool.
func (s *Server) handleSetRate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// JSON numbers arrive as float64; some clients send strings instead
	wpm := int(request.GetFloat("wpm", 0))
	if wpm == 0 {
		if raw := request.GetString("wpm", ""); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				wpm = v
			}
		}
	}
	if wpm <= 0 {
		return mcp.NewToolResultError("wpm must be a positive number"), nil
	}

	applied, err := s.stateProvider.SetRate(ctx, wpm)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set rate: %v", err)), nil
	}

	result := map[string]interface{}{
		"requested": wpm,
		"rate":      applied,
	}
	if applied != wpm {
		result["clamped"] = true
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSetSleepTimer handles the set_sleep_timer tool.
func (s *Server) handleSetSleepTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes := int(request.GetFloat("minutes", 0))
	if minutes == 0 {
		if raw := request.GetString("minutes", ""); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				minutes = v
			}
		}
	}
	if minutes <= 0 {
		return mcp.NewToolResultError("minutes must be a positive number"), nil
	}

	if err := s.stateProvider.SetSleepTimer(ctx, minutes); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set sleep timer: %v", err)), nil
	}

	result := map[string]interface{}{
		"sleep_active": true,
		"minutes":      minutes,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCancelSleepTimer handles the cancel_sleep_timer tool.
func (s *Server) handleCancelSleepTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.CancelSleepTimer(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to cancel sleep timer: %v", err)), nil
	}

	result := map[string]interface{}{
		"sleep_active": false,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleRecentSessions handles the recent_sessions tool.
func (s *Server) handleRecentSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 0))
	if limit <= 0 {
		limit = 10
	}

	sessions, err := s.stateProvider.GetRecentSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sessions: %w", err)
	}

	var sessionList []map[string]interface{}
	for _, session := range sessions {
		sessionData := map[string]interface{}{
			"id":          session.ID,
			"started_at":  session.StartedAt.Format("2006-01-02T15:04:05"),
			"ended_at":    session.EndedAt().Format("2006-01-02T15:04:05"),
			"duration":    session.Duration.String(),
			"words_read":  session.WordsRead,
			"rate":        session.Rate,
			"actual_rate": session.ActualRate(),
		}
		if session.DocumentID != nil {
			sessionData["document_id"] = *session.DocumentID
		}
		sessionList = append(sessionList, sessionData)
	}

	result := map[string]interface{}{
		"sessions":    sessionList,
		"total_count": len(sessionList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleReadingStats handles the reading_stats tool.
func (s *Server) handleReadingStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(request.GetFloat("days", 0))
	if days <= 0 {
		days = 7
	}

	stats, err := s.stateProvider.ReadingStats(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get reading stats: %w", err)
	}

	result := map[string]interface{}{
		"from":         stats.From.Format("2006-01-02"),
		"to":           stats.To.Format("2006-01-02"),
		"sessions":     stats.Sessions,
		"words_read":   stats.WordsRead,
		"reading_time": stats.ReadingTime.String(),
		"average_rate": stats.AverageRate,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
