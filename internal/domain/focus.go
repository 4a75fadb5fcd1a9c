package domain

import (
	"strconv"
	"time"
)

// FocusPhase identifies one interval type in the focus cycle.
type FocusPhase string

const (
	PhaseFocus      FocusPhase = "focus"
	PhaseShortBreak FocusPhase = "short_break"
	PhaseLongBreak  FocusPhase = "long_break"
	PhaseCustom     FocusPhase = "custom"
)

// ValidatePhase checks that the given phase name is known.
func ValidatePhase(p FocusPhase) error {
	switch p {
	case PhaseFocus, PhaseShortBreak, PhaseLongBreak, PhaseCustom:
		return nil
	}
	return ErrInvalidPhase
}

// IsBreak returns true for the rest phases of the cycle.
func (p FocusPhase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// PhaseLabel returns a human-readable label for a focus phase.
func PhaseLabel(p FocusPhase) string {
	switch p {
	case PhaseFocus:
		return "Focus"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	case PhaseCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// FocusConfig holds the countdown duration for each phase.
type FocusConfig struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	Custom     time.Duration
}

// DefaultFocusConfig returns the standard focus cycle durations.
func DefaultFocusConfig() FocusConfig {
	return FocusConfig{
		Focus:      25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
		Custom:     30 * time.Minute,
	}
}

// PhaseDuration returns the configured countdown for a phase.
func (c FocusConfig) PhaseDuration(p FocusPhase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return c.ShortBreak
	case PhaseLongBreak:
		return c.LongBreak
	case PhaseCustom:
		return c.Custom
	default:
		return c.Focus
	}
}

// ParseCustomDuration interprets user input as a whole number of minutes.
// Only positive integers are accepted; anything else returns
// ErrInvalidDuration and the caller keeps its previous value.
func ParseCustomDuration(input string) (time.Duration, error) {
	minutes, err := strconv.Atoi(input)
	if err != nil {
		return 0, ErrInvalidDuration
	}
	if minutes <= 0 {
		return 0, ErrInvalidDuration
	}
	return time.Duration(minutes) * time.Minute, nil
}
