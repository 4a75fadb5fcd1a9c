// Package render holds the pure display policy for the reader: which
// visual mode is active, how a token at a given distance from the
// cursor should be treated, and the user-adjustable display settings.
// It produces plain descriptors; turning them into styled terminal
// output is the TUI adapter's job.
package render

// Mode is a word-styling variant for the reading surface.
type Mode string

const (
	// ModeSolo shows only the current token.
	ModeSolo Mode = "solo"

	// ModeSpotlight highlights the current token and fades the rest.
	ModeSpotlight Mode = "spotlight"

	// ModeTrail reveals text up to the cursor and hides what is ahead.
	ModeTrail Mode = "trail"

	// ModePreview fades what was read and keeps upcoming text plain.
	ModePreview Mode = "preview"

	// ModeParagraph shows all text with the current token highlighted.
	ModeParagraph Mode = "paragraph"

	// ModeGhost shows the current token and a faint one-word halo.
	ModeGhost Mode = "ghost"
)

var modeOrder = []Mode{
	ModeSolo,
	ModeSpotlight,
	ModeTrail,
	ModePreview,
	ModeParagraph,
	ModeGhost,
}

// Modes returns every display mode in cycle order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

// NextMode returns the mode after m in cycle order.
func NextMode(m Mode) Mode {
	return cycleMode(m, 1)
}

// PrevMode returns the mode before m in cycle order.
func PrevMode(m Mode) Mode {
	return cycleMode(m, -1)
}

func cycleMode(m Mode, step int) Mode {
	for i, known := range modeOrder {
		if known == m {
			return modeOrder[(i+step+len(modeOrder))%len(modeOrder)]
		}
	}
	return modeOrder[0]
}

// Descriptor is the styling verdict for one token. It is deliberately
// free of any terminal styling vocabulary.
type Descriptor struct {
	Visible   bool
	Highlight bool
	Faint     bool
}

// WordStyle is the policy table: a pure lookup from (mode, cursor,
// token index) to a styling descriptor. Cursor -1, before the first
// tick, treats every token as unread.
func WordStyle(mode Mode, cursor, index int) Descriptor {
	current := index == cursor
	past := index < cursor

	switch mode {
	case ModeSolo:
		return Descriptor{Visible: current, Highlight: current}
	case ModeTrail:
		return Descriptor{Visible: index <= cursor, Highlight: current}
	case ModePreview:
		return Descriptor{Visible: true, Highlight: current, Faint: past}
	case ModeParagraph:
		return Descriptor{Visible: true, Highlight: current}
	case ModeGhost:
		halo := index == cursor-1 || index == cursor+1
		return Descriptor{Visible: current || halo, Highlight: current, Faint: halo}
	default: // ModeSpotlight
		return Descriptor{Visible: true, Highlight: current, Faint: !current}
	}
}
