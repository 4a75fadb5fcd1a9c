package engine

import (
	"sync"
	"time"

	"github.com/kezou/pacer/internal/domain"
)

// Hooks carry side effects out of the engine. They run after the
// engine lock is released, so a hook may call back into the engine.
type Hooks struct {
	// OnSession receives each recorded reading session.
	OnSession func(*domain.ReadingSession)

	// OnPhaseEnd fires when a focus phase completes naturally.
	OnPhaseEnd func(finished, next domain.FocusPhase)

	// OnSleepFired fires when the sleep timer forces playback off.
	OnSleepFired func()
}

// Config contains runtime options for the Engine.
type Config struct {
	Rate  int
	Focus domain.FocusConfig

	// TickInterval is the granularity of the focus and sleep
	// countdowns. Defaults to one second.
	TickInterval time.Duration

	Hooks Hooks
}

// Engine coordinates the playback clock, the focus timer, the sleep
// timer, and the session recorder. It is the single owner of the
// cursor and the advancing flag: every other component, including the
// timers it hosts, reaches playback only through start/stop commands
// that the engine applies one at a time under its lock. Commands are
// idempotent, so timers expiring in the same instant converge to the
// same state in either order.
type Engine struct {
	mu       sync.Mutex
	player   *Player
	focus    *FocusTimer
	sleep    *SleepTimer
	recorder *Recorder

	documentID   *string
	tickInterval time.Duration
	hooks        Hooks

	// queue holds playback commands issued by the timers; it is
	// drained to empty inside the same locked step that produced
	// them, never re-entrantly.
	queue    []playbackCommand
	deferred []func()

	playTicker   *time.Ticker
	playCh       <-chan time.Time
	playInterval time.Duration

	events  []chan Event
	stopCh  chan struct{}
	wakeCh  chan struct{}
	running bool
}

// New creates an Engine with the provided configuration.
func New(config Config) *Engine {
	if config.Rate == 0 {
		config.Rate = domain.DefaultRate
	}
	if config.Focus == (domain.FocusConfig{}) {
		config.Focus = domain.DefaultFocusConfig()
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}

	return &Engine{
		player:       NewPlayer(config.Rate),
		focus:        NewFocusTimer(config.Focus),
		sleep:        NewSleepTimer(),
		recorder:     NewRecorder(),
		tickInterval: config.TickInterval,
		hooks:        config.Hooks,
		wakeCh:       make(chan struct{}, 1),
	}
}

// Start launches the run loop. Safe to call once per Stop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	stopCh := e.stopCh
	e.mu.Unlock()

	go e.run(stopCh)
}

// Stop terminates the run loop, cancels the playback ticker, and
// closes observer channels.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopCh)
	e.stopPlayTickerLocked()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Subscribe registers a new observer channel. Events are delivered
// best-effort: a full buffer drops the event rather than block the
// engine.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Snapshot returns the coordinated state at this instant.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

// FocusConfig returns the phase durations currently in effect.
func (e *Engine) FocusConfig() domain.FocusConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus.Config()
}

// StartPlayback begins advancing. No-op if already advancing.
func (e *Engine) StartPlayback() {
	e.update(func(now time.Time) {
		e.applyStartLocked(now)
	})
}

// StopPlayback pauses advancement. Idempotent.
func (e *Engine) StopPlayback() {
	e.update(func(now time.Time) {
		e.applyStopLocked(now)
	})
}

// TogglePlayback flips between advancing and paused.
func (e *Engine) TogglePlayback() {
	e.update(func(now time.Time) {
		if e.player.Advancing() {
			e.applyStopLocked(now)
		} else {
			e.applyStartLocked(now)
		}
	})
}

// SeekTo moves the cursor to index, clamped to the valid range. The
// advancing flag is untouched.
func (e *Engine) SeekTo(index int) {
	e.update(func(now time.Time) {
		e.player.Seek(index)
		e.emitLocked(EventWordAdvanced, now)
	})
}

// SeekBy moves the cursor relative to its current position.
func (e *Engine) SeekBy(delta int) {
	e.update(func(now time.Time) {
		e.player.Seek(e.player.Cursor() + delta)
		e.emitLocked(EventWordAdvanced, now)
	})
}

// ResetPlayback stops any run in progress and rewinds the cursor.
func (e *Engine) ResetPlayback() {
	e.update(func(now time.Time) {
		e.applyStopLocked(now)
		e.player.Reset()
		e.emitLocked(EventWordAdvanced, now)
	})
}

// SetRate applies a words-per-minute value, clamped to [60, 1000], and
// returns the value in effect. A mid-run change reschedules the tick
// at the new period without touching the cursor.
func (e *Engine) SetRate(wpm int) int {
	var applied int
	e.update(func(now time.Time) {
		applied = e.player.SetRate(wpm)
		e.emitLocked(EventRateChanged, now)
	})
	return applied
}

// AdjustRate shifts the rate by delta words per minute.
func (e *Engine) AdjustRate(delta int) int {
	var applied int
	e.update(func(now time.Time) {
		applied = e.player.SetRate(e.player.Rate() + delta)
		e.emitLocked(EventRateChanged, now)
	})
	return applied
}

// SetText replaces the token sequence with freshly tokenized text.
// Any run in progress is closed out first, then the cursor rewinds.
func (e *Engine) SetText(text string) {
	e.update(func(now time.Time) {
		e.applyStopLocked(now)
		e.player.SetWords(domain.Tokenize(text))
		e.documentID = nil
		e.recorder.SetDocument(nil)
		e.emitLocked(EventTextChanged, now)
	})
}

// LoadDocument loads a library document and resumes from its saved
// cursor when it has one.
func (e *Engine) LoadDocument(doc *domain.Document) {
	e.update(func(now time.Time) {
		e.applyStopLocked(now)
		e.player.SetWords(doc.Words())
		id := doc.ID
		e.documentID = &id
		e.recorder.SetDocument(e.documentID)
		if doc.LastCursor >= 0 {
			e.player.Seek(doc.LastCursor)
		}
		e.emitLocked(EventTextChanged, now)
	})
}

// SwitchPhase is the manual phase selector. Playback stops first, then
// the phase resets to its full duration, not running.
func (e *Engine) SwitchPhase(phase domain.FocusPhase) error {
	if err := domain.ValidatePhase(phase); err != nil {
		return err
	}
	e.update(func(now time.Time) {
		e.applyStopLocked(now)
		e.focus.ResetPhase(phase)
		e.emitLocked(EventPhaseChanged, now)
	})
	return nil
}

// SetCustomFocusDuration parses user input as positive whole minutes
// for the custom phase. Invalid input is rejected and the previous
// duration stays in effect.
func (e *Engine) SetCustomFocusDuration(input string) error {
	d, err := domain.ParseCustomDuration(input)
	if err != nil {
		return err
	}
	e.update(func(time.Time) {
		e.focus.SetCustomDuration(d)
	})
	return nil
}

// SetSleepTimer arms the one-shot stop countdown, replacing any armed
// one outright.
func (e *Engine) SetSleepTimer(d time.Duration) error {
	if d <= 0 {
		return domain.ErrInvalidDuration
	}
	e.update(func(now time.Time) {
		e.sleep.Set(d)
		e.emitLocked(EventSleepSet, now)
	})
	return nil
}

// CancelSleepTimer disarms the stop countdown.
func (e *Engine) CancelSleepTimer() {
	e.update(func(now time.Time) {
		e.sleep.Cancel()
		e.emitLocked(EventSleepSet, now)
	})
}

func (e *Engine) run(stopCh <-chan struct{}) {
	timers := time.NewTicker(e.tickInterval)
	defer timers.Stop()

	for {
		e.mu.Lock()
		playCh := e.playCh
		e.mu.Unlock()

		select {
		case <-stopCh:
			return
		case <-e.wakeCh:
			// a mutation changed the ticker set; re-enter select
		case <-playCh:
			e.update(func(now time.Time) {
				e.advancePlaybackLocked(now)
			})
		case <-timers.C:
			e.update(func(now time.Time) {
				e.advanceTimersLocked(now)
			})
		}
	}
}

// update runs fn under the engine lock, drains the command queue,
// reconciles the playback ticker against the advancing flag, and then
// flushes deferred hooks outside the lock.
func (e *Engine) update(fn func(now time.Time)) {
	now := time.Now()
	e.mu.Lock()
	fn(now)
	e.drainLocked(now)
	e.reconcileLocked()
	deferred := e.deferred
	e.deferred = nil
	e.mu.Unlock()

	e.wake()
	for _, hook := range deferred {
		hook()
	}
}

func (e *Engine) advancePlaybackLocked(now time.Time) {
	// a tick that raced a stop finds the flag lowered and does nothing
	advanced, stopped := e.player.Tick()
	if advanced {
		e.emitLocked(EventWordAdvanced, now)
	}
	if stopped {
		e.flagLoweredLocked(now)
		e.emitLocked(EventPlaybackStopped, now)
	}
}

func (e *Engine) advanceTimersLocked(now time.Time) {
	finished, cmds := e.focus.Tick(e.tickInterval)
	e.queue = append(e.queue, cmds...)
	if finished != "" {
		e.emitLocked(EventPhaseCompleted, now)
		next := e.focus.Phase()
		if e.hooks.OnPhaseEnd != nil {
			e.deferred = append(e.deferred, func() { e.hooks.OnPhaseEnd(finished, next) })
		}
	}

	sleepFired, sleepCmds := e.sleep.Tick(e.tickInterval)
	e.queue = append(e.queue, sleepCmds...)
	if sleepFired {
		e.emitLocked(EventSleepFired, now)
		if e.hooks.OnSleepFired != nil {
			e.deferred = append(e.deferred, func() { e.hooks.OnSleepFired() })
		}
	}
}

func (e *Engine) drainLocked(now time.Time) {
	for len(e.queue) > 0 {
		cmd := e.queue[0]
		e.queue = e.queue[1:]
		switch cmd {
		case cmdStopPlayback:
			e.applyStopLocked(now)
		case cmdStartPlayback:
			e.applyStartLocked(now)
		}
	}
}

func (e *Engine) applyStartLocked(now time.Time) {
	if !e.player.Start() {
		return
	}
	prevPhase := e.focus.Phase()
	e.recorder.PlaybackStarted(now, e.player.Cursor())
	e.focus.PlaybackStarted()
	e.emitLocked(EventPlaybackStarted, now)
	if e.focus.Phase() != prevPhase {
		e.emitLocked(EventPhaseChanged, now)
	}
}

func (e *Engine) applyStopLocked(now time.Time) {
	if !e.player.Stop() {
		return
	}
	e.flagLoweredLocked(now)
	e.emitLocked(EventPlaybackStopped, now)
}

// flagLoweredLocked runs the side effects of the advancing flag
// dropping, whatever lowered it.
func (e *Engine) flagLoweredLocked(now time.Time) {
	session := e.recorder.PlaybackStopped(now, e.player.Cursor(), e.player.Rate())
	e.focus.PlaybackStopped()
	if session != nil && e.hooks.OnSession != nil {
		s := session
		e.deferred = append(e.deferred, func() { e.hooks.OnSession(s) })
	}
}

// reconcileLocked aligns the playback ticker with the advancing flag
// and the current rate. Stopping tears the ticker down before the
// mutating call returns, so a logically cancelled tick can never fire.
func (e *Engine) reconcileLocked() {
	if !e.player.Advancing() {
		e.stopPlayTickerLocked()
		return
	}

	interval := domain.TickInterval(e.player.Rate())
	if e.playTicker == nil {
		e.playTicker = time.NewTicker(interval)
		e.playCh = e.playTicker.C
		e.playInterval = interval
		return
	}
	if interval != e.playInterval {
		e.playTicker.Reset(interval)
		select {
		// discard a tick buffered under the old period so the rate
		// change cannot double-advance
		case <-e.playTicker.C:
		default:
		}
		e.playInterval = interval
	}
}

func (e *Engine) stopPlayTickerLocked() {
	if e.playTicker == nil {
		return
	}
	e.playTicker.Stop()
	select {
	case <-e.playTicker.C:
	default:
	}
	e.playTicker = nil
	e.playCh = nil
	e.playInterval = 0
}

// wake nudges the run loop to re-read its ticker channels.
func (e *Engine) wake() {
	select {
	case e.wakeCh <- struct{}{}:
	default:
	}
}

func (e *Engine) emitLocked(t EventType, now time.Time) {
	ev := Event{Type: t, Snapshot: e.snapshotLocked(now), At: now}
	for _, ch := range e.events {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (e *Engine) snapshotLocked(now time.Time) Snapshot {
	return Snapshot{
		At:             now,
		Words:          e.player.Words(),
		Cursor:         e.player.Cursor(),
		Advancing:      e.player.Advancing(),
		Rate:           e.player.Rate(),
		Phase:          e.focus.Phase(),
		PhaseRemaining: e.focus.Remaining(),
		PhaseRunning:   e.focus.Running(),
		SleepActive:    e.sleep.Active(),
		SleepRemaining: e.sleep.Remaining(),
		DocumentID:     e.documentID,
	}
}
