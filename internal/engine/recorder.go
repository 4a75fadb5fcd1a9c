package engine

import (
	"time"

	"github.com/kezou/pacer/internal/domain"
)

// Recorder observes playback flag transitions and turns each run that
// traversed at least one word into a ReadingSession. Runs that read
// nothing, such as an immediate pause after start, leave no record.
type Recorder struct {
	active     bool
	documentID *string
	startedAt  time.Time
	startIndex int
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetDocument attributes subsequent runs to a library document.
// A nil id marks runs over ad-hoc text.
func (r *Recorder) SetDocument(id *string) {
	r.documentID = id
}

// PlaybackStarted captures the start moment and the cursor position a
// run begins from.
func (r *Recorder) PlaybackStarted(now time.Time, cursor int) {
	r.active = true
	r.startedAt = now
	r.startIndex = cursor
}

// PlaybackStopped closes the run and returns its record, or nil when
// the run read zero words.
func (r *Recorder) PlaybackStopped(now time.Time, cursor, rate int) *domain.ReadingSession {
	if !r.active {
		return nil
	}
	r.active = false

	wordsRead := cursor - r.startIndex
	if wordsRead <= 0 {
		return nil
	}

	return domain.NewReadingSession(r.documentID, r.startedAt, now.Sub(r.startedAt), wordsRead, rate)
}
