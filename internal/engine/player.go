// Package engine implements the playback coordination core: the clock
// that advances the reading cursor, the focus and sleep timers that may
// force playback on or off, and the recorder that turns finished runs
// into session records. The state machines in this package are plain
// synchronous types; Engine owns them behind one mutex and is the only
// component that mutates the cursor or the advancing flag.
package engine

import (
	"github.com/kezou/pacer/internal/domain"
)

// Player is the playback clock state: the token sequence, the cursor,
// the advancing flag, and the rate. It never schedules anything itself;
// Engine drives Tick at the configured interval.
type Player struct {
	words     []string
	cursor    int
	advancing bool
	rate      int
}

// NewPlayer creates a stopped player with no text loaded.
func NewPlayer(rate int) *Player {
	return &Player{
		cursor: -1,
		rate:   domain.ClampRate(rate),
	}
}

// Start begins advancing. Starting at or past the last token first
// rewinds the cursor so the run replays from the beginning. Returns
// true if the flag actually flipped.
func (p *Player) Start() bool {
	if p.advancing {
		return false
	}
	if p.cursor >= len(p.words)-1 {
		p.cursor = -1
	}
	p.advancing = true
	return true
}

// Stop pauses advancement. Idempotent; returns true if the flag flipped.
func (p *Player) Stop() bool {
	if !p.advancing {
		return false
	}
	p.advancing = false
	return true
}

// Tick advances the cursor by one token, or stops at the end of the
// sequence. A tick while stopped is stale and does nothing.
func (p *Player) Tick() (advanced, stopped bool) {
	if !p.advancing {
		return false, false
	}
	if p.cursor < len(p.words)-1 {
		p.cursor++
		return true, false
	}
	p.advancing = false
	return false, true
}

// Seek moves the cursor to index, clamped to [-1, len-1]. The advancing
// flag is untouched; seeking mid-run keeps the run going.
func (p *Player) Seek(index int) {
	if index < -1 {
		index = -1
	}
	if index > len(p.words)-1 {
		index = len(p.words) - 1
	}
	p.cursor = index
}

// Reset rewinds the cursor and pauses.
func (p *Player) Reset() {
	p.cursor = -1
	p.advancing = false
}

// SetRate applies a new words-per-minute value, clamped to the supported
// range, and returns the value in effect.
func (p *Player) SetRate(wpm int) int {
	p.rate = domain.ClampRate(wpm)
	return p.rate
}

// SetWords replaces the token sequence. Any in-flight run is abandoned:
// the cursor rewinds and playback pauses, so no stale index survives.
func (p *Player) SetWords(words []string) {
	p.words = words
	p.Reset()
}

// Cursor returns the current token index, -1 before the first tick.
func (p *Player) Cursor() int { return p.cursor }

// Advancing reports whether the clock is running.
func (p *Player) Advancing() bool { return p.advancing }

// Rate returns the configured words per minute.
func (p *Player) Rate() int { return p.rate }

// Words returns the token sequence. The slice is never mutated in
// place; SetWords swaps it wholesale, so callers may hold it.
func (p *Player) Words() []string { return p.words }

// Word returns the token under the cursor, if any.
func (p *Player) Word() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.words) {
		return "", false
	}
	return p.words[p.cursor], true
}

// AtEnd reports whether the cursor sits on the final token.
func (p *Player) AtEnd() bool {
	return len(p.words) > 0 && p.cursor == len(p.words)-1
}
