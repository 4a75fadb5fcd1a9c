package engine

import (
	"testing"
	"time"
)

func TestRecorder_RecordsRun(t *testing.T) {
	r := NewRecorder()
	start := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

	r.PlaybackStarted(start, -1)
	session := r.PlaybackStopped(start.Add(30*time.Second), 4, 600)

	if session == nil {
		t.Fatal("PlaybackStopped() = nil, want session")
	}

	if session.WordsRead != 5 {
		t.Errorf("WordsRead = %v, want 5", session.WordsRead)
	}

	if session.Duration != 30*time.Second {
		t.Errorf("Duration = %v, want %v", session.Duration, 30*time.Second)
	}

	if session.Rate != 600 {
		t.Errorf("Rate = %v, want 600", session.Rate)
	}

	if !session.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", session.StartedAt, start)
	}
}

func TestRecorder_ZeroWordsNotRecorded(t *testing.T) {
	r := NewRecorder()
	now := time.Now()

	r.PlaybackStarted(now, -1)
	if session := r.PlaybackStopped(now.Add(time.Second), -1, 300); session != nil {
		t.Errorf("PlaybackStopped() with zero words = %+v, want nil", session)
	}
}

func TestRecorder_BackwardSeekNotRecorded(t *testing.T) {
	r := NewRecorder()
	now := time.Now()

	r.PlaybackStarted(now, 10)
	if session := r.PlaybackStopped(now.Add(time.Second), 3, 300); session != nil {
		t.Errorf("PlaybackStopped() after backward seek = %+v, want nil", session)
	}
}

func TestRecorder_StopWithoutStart(t *testing.T) {
	r := NewRecorder()

	if session := r.PlaybackStopped(time.Now(), 5, 300); session != nil {
		t.Errorf("PlaybackStopped() without start = %+v, want nil", session)
	}
}

func TestRecorder_MidTextRun(t *testing.T) {
	r := NewRecorder()
	now := time.Now()

	r.PlaybackStarted(now, 9)
	session := r.PlaybackStopped(now.Add(time.Minute), 49, 300)

	if session == nil {
		t.Fatal("PlaybackStopped() = nil, want session")
	}

	if session.WordsRead != 40 {
		t.Errorf("WordsRead = %v, want 40", session.WordsRead)
	}
}

func TestRecorder_DocumentAttribution(t *testing.T) {
	r := NewRecorder()
	now := time.Now()
	docID := "doc-1"

	r.SetDocument(&docID)
	r.PlaybackStarted(now, -1)
	session := r.PlaybackStopped(now.Add(time.Second), 2, 300)

	if session == nil {
		t.Fatal("PlaybackStopped() = nil, want session")
	}

	if session.DocumentID == nil || *session.DocumentID != docID {
		t.Errorf("DocumentID = %v, want %v", session.DocumentID, docID)
	}
}

func TestRecorder_SecondStopIgnored(t *testing.T) {
	r := NewRecorder()
	now := time.Now()

	r.PlaybackStarted(now, -1)
	if session := r.PlaybackStopped(now.Add(time.Second), 4, 300); session == nil {
		t.Fatal("first PlaybackStopped() = nil, want session")
	}

	if session := r.PlaybackStopped(now.Add(2*time.Second), 4, 300); session != nil {
		t.Errorf("second PlaybackStopped() = %+v, want nil", session)
	}
}
