package engine

import (
	"strings"
	"testing"
)

func newTestPlayer(text string, rate int) *Player {
	p := NewPlayer(rate)
	p.SetWords(strings.Fields(text))
	return p
}

func TestPlayer_Start(t *testing.T) {
	p := newTestPlayer("one two three", 300)

	if !p.Start() {
		t.Error("Start() = false, want true on first start")
	}

	if !p.Advancing() {
		t.Error("Advancing() = false after Start()")
	}

	if p.Start() {
		t.Error("Start() = true while already advancing, want no-op")
	}
}

func TestPlayer_Stop(t *testing.T) {
	p := newTestPlayer("one two three", 300)
	p.Start()

	if !p.Stop() {
		t.Error("Stop() = false, want true while advancing")
	}

	if p.Advancing() {
		t.Error("Advancing() = true after Stop()")
	}

	if p.Stop() {
		t.Error("Stop() = true while already stopped, want idempotent no-op")
	}
}

func TestPlayer_TickAdvancesAndStopsAtEnd(t *testing.T) {
	p := newTestPlayer("one two three four five", 600)
	p.Start()

	for want := 0; want < 5; want++ {
		advanced, stopped := p.Tick()
		if !advanced || stopped {
			t.Fatalf("Tick() #%d = (%v, %v), want (true, false)", want, advanced, stopped)
		}
		if p.Cursor() != want {
			t.Fatalf("Cursor after tick #%d = %v, want %v", want, p.Cursor(), want)
		}
	}

	advanced, stopped := p.Tick()
	if advanced || !stopped {
		t.Errorf("Tick() at end = (%v, %v), want (false, true)", advanced, stopped)
	}

	if p.Advancing() {
		t.Error("Advancing() = true after end-of-text stop")
	}

	if p.Cursor() != 4 {
		t.Errorf("Cursor after end-of-text stop = %v, want 4", p.Cursor())
	}
}

func TestPlayer_TickWhileStopped(t *testing.T) {
	p := newTestPlayer("one two three", 300)

	advanced, stopped := p.Tick()
	if advanced || stopped {
		t.Errorf("Tick() while stopped = (%v, %v), want (false, false)", advanced, stopped)
	}

	if p.Cursor() != -1 {
		t.Errorf("Cursor = %v after stale tick, want -1", p.Cursor())
	}
}

func TestPlayer_SeekThenTick(t *testing.T) {
	tests := []struct {
		name       string
		seek       int
		wantCursor int
		wantStop   bool
	}{
		{"middle", 1, 2, false},
		{"before start", -1, 0, false},
		{"last index stops", 4, 4, true},
		{"past end clamps then stops", 99, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer("one two three four five", 300)
			p.Start()
			p.Seek(tt.seek)

			_, stopped := p.Tick()
			if stopped != tt.wantStop {
				t.Errorf("Tick() stopped = %v, want %v", stopped, tt.wantStop)
			}
			if p.Cursor() != tt.wantCursor {
				t.Errorf("Cursor = %v, want %v", p.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestPlayer_SeekKeepsFlag(t *testing.T) {
	p := newTestPlayer("one two three four five", 300)
	p.Start()

	p.Seek(3)
	if !p.Advancing() {
		t.Error("Advancing() = false after seek mid-run, want true")
	}

	p.Stop()
	p.Seek(1)
	if p.Advancing() {
		t.Error("Advancing() = true after seek while stopped, want false")
	}
}

func TestPlayer_SeekClamps(t *testing.T) {
	p := newTestPlayer("one two three", 300)

	p.Seek(-5)
	if p.Cursor() != -1 {
		t.Errorf("Cursor after Seek(-5) = %v, want -1", p.Cursor())
	}

	p.Seek(10)
	if p.Cursor() != 2 {
		t.Errorf("Cursor after Seek(10) = %v, want 2", p.Cursor())
	}
}

func TestPlayer_StartAtEndRewinds(t *testing.T) {
	p := newTestPlayer("one two three", 300)
	p.Seek(2)

	p.Start()
	if p.Cursor() != -1 {
		t.Errorf("Cursor after start-at-end = %v, want -1", p.Cursor())
	}

	advanced, _ := p.Tick()
	if !advanced || p.Cursor() != 0 {
		t.Errorf("first tick after rewind: advanced=%v cursor=%v, want true, 0", advanced, p.Cursor())
	}
}

func TestPlayer_SetWordsResets(t *testing.T) {
	p := newTestPlayer("one two three four five", 300)
	p.Start()
	p.Seek(3)

	p.SetWords([]string{"fresh", "text"})

	if p.Cursor() != -1 {
		t.Errorf("Cursor after SetWords = %v, want -1", p.Cursor())
	}

	if p.Advancing() {
		t.Error("Advancing() = true after SetWords, want false")
	}
}

func TestPlayer_SetRateClamps(t *testing.T) {
	p := newTestPlayer("one two", 300)

	if got := p.SetRate(40); got != 60 {
		t.Errorf("SetRate(40) = %v, want 60", got)
	}

	if got := p.SetRate(5000); got != 1000 {
		t.Errorf("SetRate(5000) = %v, want 1000", got)
	}

	if got := p.SetRate(425); got != 425 {
		t.Errorf("SetRate(425) = %v, want 425", got)
	}
}

func TestPlayer_EmptyWords(t *testing.T) {
	p := NewPlayer(300)

	p.Start()
	if p.Cursor() != -1 {
		t.Errorf("Cursor = %v, want -1 with no words", p.Cursor())
	}

	_, stopped := p.Tick()
	if !stopped {
		t.Error("Tick() with no words should stop immediately")
	}
}

func TestPlayer_Word(t *testing.T) {
	p := newTestPlayer("alpha beta gamma", 300)

	if _, ok := p.Word(); ok {
		t.Error("Word() ok = true before first tick, want false")
	}

	p.Seek(1)
	word, ok := p.Word()
	if !ok || word != "beta" {
		t.Errorf("Word() = %q, %v, want %q, true", word, ok, "beta")
	}
}

func TestPlayer_AtEnd(t *testing.T) {
	p := newTestPlayer("one two", 300)

	if p.AtEnd() {
		t.Error("AtEnd() = true at start, want false")
	}

	p.Seek(1)
	if !p.AtEnd() {
		t.Error("AtEnd() = false at last index, want true")
	}
}
