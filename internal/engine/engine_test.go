package engine

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kezou/pacer/internal/domain"
)

func TestEngine_TogglePlayback(t *testing.T) {
	e := New(Config{})
	e.SetText("one two three")

	e.TogglePlayback()
	if snap := e.Snapshot(); !snap.Advancing {
		t.Error("Advancing = false after first toggle")
	}

	e.TogglePlayback()
	if snap := e.Snapshot(); snap.Advancing {
		t.Error("Advancing = true after second toggle")
	}
}

func TestEngine_StartDuringBreakAbandonsBreak(t *testing.T) {
	e := New(Config{})
	e.SetText("one two three")

	if err := e.SwitchPhase(domain.PhaseShortBreak); err != nil {
		t.Fatalf("SwitchPhase() error = %v", err)
	}

	e.StartPlayback()

	snap := e.Snapshot()
	if snap.Phase != domain.PhaseFocus {
		t.Errorf("Phase = %v, want %v", snap.Phase, domain.PhaseFocus)
	}

	if !snap.Advancing {
		t.Error("Advancing = false, playback should run through the abandoned break")
	}

	if snap.PhaseRunning {
		t.Error("PhaseRunning = true, want the phase-change reset to leave it stopped")
	}
}

func TestEngine_SwitchPhaseStopsPlayback(t *testing.T) {
	e := New(Config{})
	e.SetText("one two three four five")
	e.StartPlayback()

	if err := e.SwitchPhase(domain.PhaseCustom); err != nil {
		t.Fatalf("SwitchPhase() error = %v", err)
	}

	snap := e.Snapshot()
	if snap.Advancing {
		t.Error("Advancing = true after manual phase switch, want stopped")
	}

	if snap.Phase != domain.PhaseCustom {
		t.Errorf("Phase = %v, want %v", snap.Phase, domain.PhaseCustom)
	}

	if snap.PhaseRunning {
		t.Error("PhaseRunning = true after manual switch, want reset")
	}
}

func TestEngine_SwitchPhaseRejectsUnknown(t *testing.T) {
	e := New(Config{})

	if err := e.SwitchPhase(domain.FocusPhase("nap")); err == nil {
		t.Error("SwitchPhase(nap) error = nil, want ErrInvalidPhase")
	}
}

func TestEngine_RateClampAndCursorPreserved(t *testing.T) {
	e := New(Config{})
	e.SetText("one two three four five")
	e.StartPlayback()
	e.SeekTo(2)

	if got := e.SetRate(40); got != 60 {
		t.Errorf("SetRate(40) = %v, want 60", got)
	}

	if got := e.SetRate(5000); got != 1000 {
		t.Errorf("SetRate(5000) = %v, want 1000", got)
	}

	snap := e.Snapshot()
	if snap.Cursor != 2 {
		t.Errorf("Cursor = %v after rate changes, want 2", snap.Cursor)
	}

	if !snap.Advancing {
		t.Error("Advancing = false after rate changes, want still advancing")
	}
}

func TestEngine_AdjustRate(t *testing.T) {
	e := New(Config{Rate: 300})

	if got := e.AdjustRate(25); got != 325 {
		t.Errorf("AdjustRate(+25) = %v, want 325", got)
	}

	if got := e.AdjustRate(-1000); got != 60 {
		t.Errorf("AdjustRate(-1000) = %v, want clamp to 60", got)
	}
}

func TestEngine_StartAtEndRewinds(t *testing.T) {
	e := New(Config{})
	e.SetText("one two three")
	e.SeekTo(2)

	e.StartPlayback()

	snap := e.Snapshot()
	if snap.Cursor != -1 {
		t.Errorf("Cursor = %v after start at end, want -1", snap.Cursor)
	}

	if !snap.Advancing {
		t.Error("Advancing = false after start at end")
	}
}

func TestEngine_SetTextClosesRunAndRecords(t *testing.T) {
	sessions := make(chan *domain.ReadingSession, 1)
	e := New(Config{Hooks: Hooks{
		OnSession: func(s *domain.ReadingSession) { sessions <- s },
	}})

	e.SetText("one two three four five six")
	e.StartPlayback()
	e.SeekTo(3)

	e.SetText("fresh words")

	select {
	case s := <-sessions:
		if s.WordsRead != 4 {
			t.Errorf("WordsRead = %v, want 4", s.WordsRead)
		}
	default:
		t.Fatal("no session recorded when text change closed the run")
	}

	snap := e.Snapshot()
	if snap.Cursor != -1 || snap.Advancing {
		t.Errorf("after SetText: cursor=%v advancing=%v, want -1, false", snap.Cursor, snap.Advancing)
	}

	if len(snap.Words) != 2 {
		t.Errorf("Words length = %v, want 2", len(snap.Words))
	}
}

func TestEngine_ResetClosesRunFromCurrentCursor(t *testing.T) {
	sessions := make(chan *domain.ReadingSession, 1)
	e := New(Config{Hooks: Hooks{
		OnSession: func(s *domain.ReadingSession) { sessions <- s },
	}})

	e.SetText("one two three four five")
	e.StartPlayback()
	e.SeekTo(4)

	e.ResetPlayback()

	select {
	case s := <-sessions:
		if s.WordsRead != 5 {
			t.Errorf("WordsRead = %v, want 5", s.WordsRead)
		}
	default:
		t.Fatal("no session recorded on reset mid-run")
	}

	snap := e.Snapshot()
	if snap.Cursor != -1 || snap.Advancing {
		t.Errorf("after reset: cursor=%v advancing=%v, want -1, false", snap.Cursor, snap.Advancing)
	}
}

func TestEngine_ZeroWordRunNotRecorded(t *testing.T) {
	var recorded atomic.Int32
	e := New(Config{Hooks: Hooks{
		OnSession: func(*domain.ReadingSession) { recorded.Add(1) },
	}})

	e.SetText("one two three")
	e.StartPlayback()
	e.StopPlayback()

	if got := recorded.Load(); got != 0 {
		t.Errorf("sessions recorded = %v, want 0 for an immediate pause", got)
	}
}

func TestEngine_CustomDurationRejected(t *testing.T) {
	e := New(Config{})

	for _, input := range []string{"0", "-5", "abc", ""} {
		if err := e.SetCustomFocusDuration(input); err == nil {
			t.Errorf("SetCustomFocusDuration(%q) error = nil, want rejection", input)
		}
	}

	if got := e.FocusConfig().Custom; got != 30*time.Minute {
		t.Errorf("Custom duration = %v after rejected inputs, want default %v", got, 30*time.Minute)
	}

	if err := e.SetCustomFocusDuration("45"); err != nil {
		t.Errorf("SetCustomFocusDuration(45) error = %v", err)
	}

	if got := e.FocusConfig().Custom; got != 45*time.Minute {
		t.Errorf("Custom duration = %v, want %v", got, 45*time.Minute)
	}
}

func TestEngine_SleepTimerSnapshot(t *testing.T) {
	e := New(Config{})

	if err := e.SetSleepTimer(0); err == nil {
		t.Error("SetSleepTimer(0) error = nil, want rejection")
	}

	if err := e.SetSleepTimer(2 * time.Minute); err != nil {
		t.Fatalf("SetSleepTimer() error = %v", err)
	}

	snap := e.Snapshot()
	if !snap.SleepActive || snap.SleepRemaining != 2*time.Minute {
		t.Errorf("sleep snapshot = (%v, %v), want active with 2m", snap.SleepActive, snap.SleepRemaining)
	}

	e.CancelSleepTimer()
	if snap := e.Snapshot(); snap.SleepActive {
		t.Error("SleepActive = true after cancel")
	}
}

func TestEngine_LoadDocumentResumes(t *testing.T) {
	e := New(Config{})
	doc, err := domain.NewDocument("Essay", "a b c d e f g h")
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	doc.MarkRead(5)

	e.LoadDocument(doc)

	snap := e.Snapshot()
	if snap.Cursor != 5 {
		t.Errorf("Cursor = %v, want resume at 5", snap.Cursor)
	}

	if snap.DocumentID == nil || *snap.DocumentID != doc.ID {
		t.Errorf("DocumentID = %v, want %v", snap.DocumentID, doc.ID)
	}

	e.SetText("plain text")
	if snap := e.Snapshot(); snap.DocumentID != nil {
		t.Error("DocumentID should clear when ad-hoc text is loaded")
	}
}

func TestEngine_SubscribeReceivesEvents(t *testing.T) {
	e := New(Config{})
	e.SetText("one two three")
	events := e.Subscribe(8)

	e.StartPlayback()

	select {
	case ev := <-events:
		if ev.Type != EventPlaybackStarted {
			t.Errorf("event type = %v, want %v", ev.Type, EventPlaybackStarted)
		}
		if !ev.Snapshot.Advancing {
			t.Error("event snapshot should show playback advancing")
		}
	default:
		t.Fatal("no event delivered on StartPlayback")
	}
}

func TestEngine_PlaybackRunRecordsSession(t *testing.T) {
	sessions := make(chan *domain.ReadingSession, 1)
	e := New(Config{
		Rate: 1000,
		Hooks: Hooks{
			OnSession: func(s *domain.ReadingSession) { sessions <- s },
		},
	})
	e.SetText("one two three four five")
	e.Start()
	defer e.Stop()

	e.StartPlayback()

	select {
	case s := <-sessions:
		if s.WordsRead != 5 {
			t.Errorf("WordsRead = %v, want 5", s.WordsRead)
		}
		if s.Rate != 1000 {
			t.Errorf("Rate = %v, want 1000", s.Rate)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish and record a session in time")
	}

	snap := e.Snapshot()
	if snap.Cursor != 4 {
		t.Errorf("Cursor = %v after run, want 4", snap.Cursor)
	}

	if snap.Advancing {
		t.Error("Advancing = true after the text ran out")
	}
}

func TestEngine_SleepTimerSurvivesPauseResumeCycles(t *testing.T) {
	var fired atomic.Int32
	e := New(Config{
		Rate:         1000,
		TickInterval: 10 * time.Millisecond,
		Hooks: Hooks{
			OnSleepFired: func() { fired.Add(1) },
		},
	})
	e.SetText(strings.Repeat("word ", 500))
	e.Start()
	defer e.Stop()

	if err := e.SetSleepTimer(150 * time.Millisecond); err != nil {
		t.Fatalf("SetSleepTimer() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		e.TogglePlayback()
	}
	e.StartPlayback()

	deadline := time.After(3 * time.Second)
	for {
		snap := e.Snapshot()
		if fired.Load() > 0 && !snap.Advancing {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("sleep timer did not force stop: fired=%v advancing=%v", fired.Load(), snap.Advancing)
		case <-time.After(10 * time.Millisecond):
		}
	}

	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("sleep fired %v times, want exactly 1", got)
	}

	if snap := e.Snapshot(); snap.SleepActive {
		t.Error("SleepActive = true after firing, want off")
	}
}

func TestEngine_FocusHandoffCycle(t *testing.T) {
	type handoff struct{ finished, next domain.FocusPhase }
	handoffs := make(chan handoff, 8)
	e := New(Config{
		Rate:         1000,
		TickInterval: 20 * time.Millisecond,
		Focus: domain.FocusConfig{
			Focus:      400 * time.Millisecond,
			ShortBreak: 100 * time.Millisecond,
			LongBreak:  time.Hour,
			Custom:     time.Hour,
		},
		Hooks: Hooks{
			OnPhaseEnd: func(finished, next domain.FocusPhase) {
				handoffs <- handoff{finished, next}
			},
		},
	})
	e.SetText(strings.Repeat("word ", 500))
	e.Start()
	defer e.Stop()

	e.StartPlayback()

	select {
	case h := <-handoffs:
		if h.finished != domain.PhaseFocus || h.next != domain.PhaseShortBreak {
			t.Fatalf("first handoff = %v -> %v, want focus -> short_break", h.finished, h.next)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("focus phase never completed")
	}

	snap := e.Snapshot()
	if snap.Advancing {
		t.Error("Advancing = true during the auto-started break, want forced stop")
	}

	if snap.Phase != domain.PhaseShortBreak || !snap.PhaseRunning {
		t.Errorf("phase=%v running=%v during break, want short_break running", snap.Phase, snap.PhaseRunning)
	}

	select {
	case h := <-handoffs:
		if h.finished != domain.PhaseShortBreak || h.next != domain.PhaseFocus {
			t.Fatalf("second handoff = %v -> %v, want short_break -> focus", h.finished, h.next)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("break phase never completed")
	}

	snap = e.Snapshot()
	if !snap.Advancing {
		t.Error("Advancing = false after break completion, want auto-resume")
	}

	if snap.Phase != domain.PhaseFocus || !snap.PhaseRunning {
		t.Errorf("phase=%v running=%v after break, want focus running", snap.Phase, snap.PhaseRunning)
	}
}
