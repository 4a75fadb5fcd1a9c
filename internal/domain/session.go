package domain

import "time"

// ReadingSession is the record of one continuous playback run, captured
// when playback stops. Runs that advanced zero words are never recorded.
type ReadingSession struct {
	ID         string
	DocumentID *string
	StartedAt  time.Time
	Duration   time.Duration
	WordsRead  int
	Rate       int
}

// NewReadingSession creates a session record for a finished run.
// Rate is the words-per-minute setting in effect when the run stopped.
func NewReadingSession(documentID *string, startedAt time.Time, duration time.Duration, wordsRead, rate int) *ReadingSession {
	return &ReadingSession{
		ID:         generateID(),
		DocumentID: documentID,
		StartedAt:  startedAt,
		Duration:   duration,
		WordsRead:  wordsRead,
		Rate:       rate,
	}
}

// ActualRate returns the achieved words per minute over the run, as
// opposed to the configured rate, which playback may not have sustained.
func (s *ReadingSession) ActualRate() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.WordsRead) / s.Duration.Minutes()
}

// EndedAt returns the moment the run stopped.
func (s *ReadingSession) EndedAt() time.Time {
	return s.StartedAt.Add(s.Duration)
}
