package engine

// playbackCommand is a cross-machine intent targeting the playback
// clock. Only two primitives exist: forced stop and auto start. Both
// are idempotent when applied, so two timers firing in the same
// instant converge to the same state regardless of which lands first.
type playbackCommand int

const (
	cmdStopPlayback playbackCommand = iota
	cmdStartPlayback
)
