package dispatch

import "github.com/kezou/pacer/internal/domain"

// Dispatcher routes key input through the binding table, with a
// capture mode for rebinding keys from the editor surface.
type Dispatcher struct {
	bindings Map
	capture  *Action
}

// Result describes what a key event amounted to.
type Result struct {
	// Action is the matched or recaptured action.
	Action Action

	// Matched is true when the key resolved to an action.
	Matched bool

	// Captured is true when the key was stored as a new binding
	// instead of being dispatched.
	Captured bool
}

// NewDispatcher creates a dispatcher over the given bindings.
func NewDispatcher(bindings Map) *Dispatcher {
	return &Dispatcher{bindings: bindings}
}

// Bindings returns the live binding table.
func (d *Dispatcher) Bindings() Map {
	return d.bindings
}

// BeginCapture arms capture mode: the next key event is stored
// verbatim as the binding for action. Normal dispatch is suppressed
// until the capture lands.
func (d *Dispatcher) BeginCapture(action Action) error {
	if !action.Valid() {
		return domain.ErrInvalidAction
	}
	a := action
	d.capture = &a
	return nil
}

// CancelCapture disarms capture mode without storing anything.
func (d *Dispatcher) CancelCapture() {
	d.capture = nil
}

// Capturing reports whether the dispatcher is waiting for a key to
// bind, and for which action.
func (d *Dispatcher) Capturing() (Action, bool) {
	if d.capture == nil {
		return "", false
	}
	return *d.capture, true
}

// HandleKey processes one key event. While editing is true all
// dispatch is suppressed so typing never triggers reader actions. In
// capture mode the key is stored verbatim, replacing exactly one
// entry, and never normalized or deduplicated.
func (d *Dispatcher) HandleKey(input string, editing bool) Result {
	if d.capture != nil {
		action := *d.capture
		d.capture = nil
		d.bindings.keys[action] = input
		return Result{Action: action, Captured: true}
	}

	if editing {
		return Result{}
	}

	if action, ok := d.bindings.Resolve(input); ok {
		return Result{Action: action, Matched: true}
	}
	return Result{}
}
