package engine

import (
	"time"

	"github.com/kezou/pacer/internal/domain"
)

// EventType defines the kind of engine event.
type EventType string

const (
	EventPlaybackStarted EventType = "playback_started"
	EventPlaybackStopped EventType = "playback_stopped"
	EventWordAdvanced    EventType = "word_advanced"
	EventPhaseChanged    EventType = "phase_changed"
	EventPhaseCompleted  EventType = "phase_completed"
	EventSleepSet        EventType = "sleep_set"
	EventSleepFired      EventType = "sleep_fired"
	EventRateChanged     EventType = "rate_changed"
	EventTextChanged     EventType = "text_changed"
)

// Event is an engine update delivered to observers. Every event carries
// a full state snapshot so observers never need to query back.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is an immutable copy of the coordinated state at one
// instant. Words shares the engine's token slice, which is replaced
// wholesale on text changes and never mutated in place.
type Snapshot struct {
	At             time.Time
	Words          []string
	Cursor         int
	Advancing      bool
	Rate           int
	Phase          domain.FocusPhase
	PhaseRemaining time.Duration
	PhaseRunning   bool
	SleepActive    bool
	SleepRemaining time.Duration
	DocumentID     *string
}

// CurrentWord returns the token under the cursor, if any.
func (s Snapshot) CurrentWord() (string, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Words) {
		return "", false
	}
	return s.Words[s.Cursor], true
}

// Progress returns how far through the text the cursor is (0.0 to 1.0).
func (s Snapshot) Progress() float64 {
	if len(s.Words) == 0 || s.Cursor < 0 {
		return 0
	}
	return float64(s.Cursor+1) / float64(len(s.Words))
}
