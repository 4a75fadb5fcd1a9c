package domain

import (
	"time"
)

// DailyStats aggregates reading activity for a single day.
type DailyStats struct {
	Date        time.Time
	Sessions    int
	WordsRead   int
	ReadingTime time.Duration
}

// PeriodStats aggregates reading activity over a date range.
type PeriodStats struct {
	From        time.Time
	To          time.Time
	Sessions    int
	WordsRead   int
	ReadingTime time.Duration
	AverageRate float64
}

// AverageRate returns the time-weighted words per minute across a day.
func (d DailyStats) AverageRate() float64 {
	if d.ReadingTime <= 0 {
		return 0
	}
	return float64(d.WordsRead) / d.ReadingTime.Minutes()
}
