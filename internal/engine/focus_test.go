package engine

import (
	"testing"
	"time"

	"github.com/kezou/pacer/internal/domain"
)

func newTestFocusTimer() *FocusTimer {
	return NewFocusTimer(domain.FocusConfig{
		Focus:      3 * time.Second,
		ShortBreak: 2 * time.Second,
		LongBreak:  4 * time.Second,
		Custom:     5 * time.Second,
	})
}

// tickUntilComplete drives the timer one second at a time until a
// phase completes, guarding against runaway loops.
func tickUntilComplete(t *testing.T, f *FocusTimer) (domain.FocusPhase, []playbackCommand) {
	t.Helper()
	for i := 0; i < 100; i++ {
		finished, cmds := f.Tick(time.Second)
		if finished != "" {
			return finished, cmds
		}
	}
	t.Fatal("no phase completion within 100 ticks")
	return "", nil
}

func TestFocusTimer_InitialState(t *testing.T) {
	f := newTestFocusTimer()

	if f.Phase() != domain.PhaseFocus {
		t.Errorf("Phase() = %v, want %v", f.Phase(), domain.PhaseFocus)
	}

	if f.Remaining() != 3*time.Second {
		t.Errorf("Remaining() = %v, want %v", f.Remaining(), 3*time.Second)
	}

	if f.Running() {
		t.Error("Running() = true on a fresh timer")
	}
}

func TestFocusTimer_PlaybackStartedRunsCountdown(t *testing.T) {
	f := newTestFocusTimer()

	f.PlaybackStarted()

	if !f.Running() {
		t.Error("Running() = false after playback started in focus phase")
	}

	if f.Phase() != domain.PhaseFocus {
		t.Errorf("Phase() = %v, want %v", f.Phase(), domain.PhaseFocus)
	}
}

func TestFocusTimer_PlaybackStartedDuringBreakAbandonsBreak(t *testing.T) {
	for _, phase := range []domain.FocusPhase{domain.PhaseShortBreak, domain.PhaseLongBreak} {
		t.Run(string(phase), func(t *testing.T) {
			f := newTestFocusTimer()
			f.ResetPhase(phase)

			f.PlaybackStarted()

			if f.Phase() != domain.PhaseFocus {
				t.Errorf("Phase() = %v, want %v", f.Phase(), domain.PhaseFocus)
			}

			if f.Running() {
				t.Error("Running() = true right after an abandoned break, want phase-change reset")
			}

			if f.Remaining() != 3*time.Second {
				t.Errorf("Remaining() = %v, want full focus duration %v", f.Remaining(), 3*time.Second)
			}
		})
	}
}

func TestFocusTimer_PlaybackStoppedPausesFocusAndCustom(t *testing.T) {
	for _, phase := range []domain.FocusPhase{domain.PhaseFocus, domain.PhaseCustom} {
		t.Run(string(phase), func(t *testing.T) {
			f := newTestFocusTimer()
			f.ResetPhase(phase)
			f.PlaybackStarted()

			f.PlaybackStopped()

			if f.Running() {
				t.Errorf("Running() = true after playback stopped in %v phase", phase)
			}
		})
	}
}

func TestFocusTimer_BreakKeepsCountingWhenPlaybackStops(t *testing.T) {
	f := newTestFocusTimer()
	// the handoff from a completed focus phase leaves the break running
	f.PlaybackStarted()
	tickUntilComplete(t, f)

	if f.Phase() != domain.PhaseShortBreak || !f.Running() {
		t.Fatalf("after focus completion: phase=%v running=%v, want short_break running", f.Phase(), f.Running())
	}

	f.PlaybackStopped()

	if !f.Running() {
		t.Error("Running() = false, break should keep counting when playback stops")
	}
}

func TestFocusTimer_FocusCompletion(t *testing.T) {
	f := newTestFocusTimer()
	f.PlaybackStarted()

	finished, cmds := tickUntilComplete(t, f)

	if finished != domain.PhaseFocus {
		t.Errorf("completed phase = %v, want %v", finished, domain.PhaseFocus)
	}

	if len(cmds) != 1 || cmds[0] != cmdStopPlayback {
		t.Errorf("commands = %v, want exactly one stop-playback", cmds)
	}

	if f.Phase() != domain.PhaseShortBreak {
		t.Errorf("Phase() = %v, want %v", f.Phase(), domain.PhaseShortBreak)
	}

	if !f.Running() {
		t.Error("Running() = false, break should auto-start after focus completion")
	}

	if f.Remaining() != 2*time.Second {
		t.Errorf("Remaining() = %v, want full break duration %v", f.Remaining(), 2*time.Second)
	}
}

func TestFocusTimer_CustomCompletion(t *testing.T) {
	f := newTestFocusTimer()
	f.ResetPhase(domain.PhaseCustom)
	f.PlaybackStarted()

	finished, cmds := tickUntilComplete(t, f)

	if finished != domain.PhaseCustom {
		t.Errorf("completed phase = %v, want %v", finished, domain.PhaseCustom)
	}

	if len(cmds) != 1 || cmds[0] != cmdStopPlayback {
		t.Errorf("commands = %v, want exactly one stop-playback", cmds)
	}

	if f.Phase() != domain.PhaseShortBreak || !f.Running() {
		t.Errorf("phase=%v running=%v, want short_break running", f.Phase(), f.Running())
	}
}

func TestFocusTimer_BreakCompletion(t *testing.T) {
	f := newTestFocusTimer()
	f.ResetPhase(domain.PhaseShortBreak)
	f.running = true

	finished, cmds := tickUntilComplete(t, f)

	if finished != domain.PhaseShortBreak {
		t.Errorf("completed phase = %v, want %v", finished, domain.PhaseShortBreak)
	}

	if len(cmds) != 1 || cmds[0] != cmdStartPlayback {
		t.Errorf("commands = %v, want exactly one start-playback", cmds)
	}

	if f.Phase() != domain.PhaseFocus {
		t.Errorf("Phase() = %v, want %v", f.Phase(), domain.PhaseFocus)
	}

	// the reciprocal playback-started signal flips running back on
	if f.Running() {
		t.Error("Running() = true immediately after break completion, want reset until playback confirms")
	}

	f.PlaybackStarted()
	if !f.Running() {
		t.Error("Running() = false after the auto-resume signal lands")
	}
}

func TestFocusTimer_ResetPhaseStopsCountdown(t *testing.T) {
	f := newTestFocusTimer()
	f.PlaybackStarted()
	f.Tick(time.Second)

	f.ResetPhase(domain.PhaseLongBreak)

	if f.Phase() != domain.PhaseLongBreak {
		t.Errorf("Phase() = %v, want %v", f.Phase(), domain.PhaseLongBreak)
	}

	if f.Running() {
		t.Error("Running() = true after phase reset")
	}

	if f.Remaining() != 4*time.Second {
		t.Errorf("Remaining() = %v, want %v", f.Remaining(), 4*time.Second)
	}
}

func TestFocusTimer_TickWhileNotRunning(t *testing.T) {
	f := newTestFocusTimer()

	finished, cmds := f.Tick(time.Second)

	if finished != "" || cmds != nil {
		t.Errorf("Tick() while stopped = (%v, %v), want no completion", finished, cmds)
	}

	if f.Remaining() != 3*time.Second {
		t.Errorf("Remaining() = %v, want untouched %v", f.Remaining(), 3*time.Second)
	}
}

func TestFocusTimer_SetCustomDurationAppliesOnNextActivation(t *testing.T) {
	f := newTestFocusTimer()
	f.ResetPhase(domain.PhaseCustom)
	f.PlaybackStarted()
	f.Tick(time.Second)

	f.SetCustomDuration(9 * time.Second)

	if f.Remaining() != 4*time.Second {
		t.Errorf("Remaining() = %v, want running countdown untouched at %v", f.Remaining(), 4*time.Second)
	}

	f.ResetPhase(domain.PhaseCustom)
	if f.Remaining() != 9*time.Second {
		t.Errorf("Remaining() after reactivation = %v, want %v", f.Remaining(), 9*time.Second)
	}
}
