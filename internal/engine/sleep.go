package engine

import "time"

// SleepTimer is the one-shot "stop after N minutes" countdown. It runs
// independent of playback: pausing and resuming reading neither stops
// nor rewinds it. Reaching zero issues a single forced stop and the
// timer returns to off.
type SleepTimer struct {
	remaining time.Duration
	active    bool
}

// NewSleepTimer creates a disarmed timer.
func NewSleepTimer() *SleepTimer {
	return &SleepTimer{}
}

// Set arms the countdown, replacing any active one outright.
func (s *SleepTimer) Set(d time.Duration) {
	s.remaining = d
	s.active = true
}

// Cancel disarms the countdown.
func (s *SleepTimer) Cancel() {
	s.active = false
	s.remaining = 0
}

// Active reports whether a countdown is armed.
func (s *SleepTimer) Active() bool { return s.active }

// Remaining returns the time left, zero when off.
func (s *SleepTimer) Remaining() time.Duration { return s.remaining }

// Tick advances the countdown by delta. At zero it fires exactly once,
// returning the forced-stop command and disarming itself.
func (s *SleepTimer) Tick(delta time.Duration) (fired bool, cmds []playbackCommand) {
	if !s.active {
		return false, nil
	}

	s.remaining -= delta
	if s.remaining > 0 {
		return false, nil
	}

	s.active = false
	s.remaining = 0
	return true, []playbackCommand{cmdStopPlayback}
}
