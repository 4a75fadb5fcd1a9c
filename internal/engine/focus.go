package engine

import (
	"time"

	"github.com/kezou/pacer/internal/domain"
)

// FocusTimer is the four-phase focus/break countdown. It is coupled to
// the playback clock in both directions: playback transitions feed into
// it through PlaybackStarted/PlaybackStopped, and phase completions
// hand playback commands back out. It never calls the player directly;
// Engine applies the returned commands, which keeps the coupling
// queue-shaped instead of re-entrant.
type FocusTimer struct {
	config    domain.FocusConfig
	phase     domain.FocusPhase
	remaining time.Duration
	running   bool
}

// NewFocusTimer creates a timer parked in the focus phase, not running.
func NewFocusTimer(config domain.FocusConfig) *FocusTimer {
	f := &FocusTimer{config: config}
	f.ResetPhase(domain.PhaseFocus)
	return f
}

// Phase returns the active phase.
func (f *FocusTimer) Phase() domain.FocusPhase { return f.phase }

// Remaining returns the time left in the active phase.
func (f *FocusTimer) Remaining() time.Duration { return f.remaining }

// Running reports whether the countdown is live.
func (f *FocusTimer) Running() bool { return f.running }

// Config returns the phase durations currently in effect.
func (f *FocusTimer) Config() domain.FocusConfig { return f.config }

// ResetPhase switches to the given phase, reloads its full duration,
// and halts the countdown. Every phase change, manual or automatic,
// passes through here.
func (f *FocusTimer) ResetPhase(phase domain.FocusPhase) {
	f.phase = phase
	f.remaining = f.config.PhaseDuration(phase)
	f.running = false
}

// PlaybackStarted reacts to the playback clock turning on. During a
// break the break is abandoned in favor of a fresh focus phase; in
// focus or custom the countdown simply runs.
func (f *FocusTimer) PlaybackStarted() {
	if f.phase.IsBreak() {
		f.ResetPhase(domain.PhaseFocus)
		return
	}
	f.running = true
}

// PlaybackStopped reacts to the playback clock turning off. Focus and
// custom countdowns pause with it; breaks keep counting, since a break
// does not depend on reading activity.
func (f *FocusTimer) PlaybackStopped() {
	if f.phase.IsBreak() {
		return
	}
	f.running = false
}

// SetCustomDuration replaces the custom phase duration. It applies on
// the next activation of the phase, never to a countdown already in
// flight.
func (f *FocusTimer) SetCustomDuration(d time.Duration) {
	f.config.Custom = d
}

// Tick advances the countdown by delta. On completion it performs the
// phase handoff and returns the finished phase together with the
// playback commands the handoff implies:
//
//	focus/custom done: stop playback, take a short break, break runs.
//	break done: back to focus, playback resumes.
func (f *FocusTimer) Tick(delta time.Duration) (completed domain.FocusPhase, cmds []playbackCommand) {
	if !f.running {
		return "", nil
	}

	f.remaining -= delta
	if f.remaining > 0 {
		return "", nil
	}

	finished := f.phase
	if finished.IsBreak() {
		f.ResetPhase(domain.PhaseFocus)
		return finished, []playbackCommand{cmdStartPlayback}
	}

	f.ResetPhase(domain.PhaseShortBreak)
	f.running = true
	return finished, []playbackCommand{cmdStopPlayback}
}
