package domain

import "time"

// Rate bounds in words per minute. Requests outside the range are clamped,
// never rejected.
const (
	MinRate     = 60
	MaxRate     = 1000
	DefaultRate = 300
)

// ClampRate constrains a words-per-minute value to the supported range.
func ClampRate(wpm int) int {
	if wpm < MinRate {
		return MinRate
	}
	if wpm > MaxRate {
		return MaxRate
	}
	return wpm
}

// TickInterval returns the delay between word advances at the given rate.
// At 300 wpm a word is shown every 200ms.
func TickInterval(wpm int) time.Duration {
	return time.Minute / time.Duration(ClampRate(wpm))
}
