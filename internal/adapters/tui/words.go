package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/kezou/pacer/internal/render"
)

// applyFont applies the configured treatment to one token.
func applyFont(word string, font render.Font) string {
	switch font {
	case render.FontWide:
		return spaceOut(word)
	case render.FontCaps:
		return strings.ToUpper(word)
	default:
		return word
	}
}

// spaceOut inserts a space between every rune.
func spaceOut(word string) string {
	runes := []rune(word)
	if len(runes) <= 1 {
		return word
	}
	var b strings.Builder
	for i, r := range runes {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pivotIndex returns the rune offset a reader's eye should land on.
// The fixation point sits left of center and drifts right slowly as
// words get longer.
func pivotIndex(word string) int {
	n := utf8.RuneCountInString(word)
	switch {
	case n <= 1:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	default:
		return 3
	}
}

// pivotCell returns the terminal cell offset of the pivot rune within
// the font-treated form of word.
func pivotCell(word string, font render.Font) int {
	pivot := pivotIndex(word)
	treated := []rune(applyFont(word, font))
	idx := pivot
	if font == render.FontWide {
		idx = pivot * 2
	}
	if idx > len(treated) {
		idx = len(treated)
	}
	return runewidth.StringWidth(string(treated[:idx]))
}

// styledToken is one window entry ready for assembly into the word line.
type styledToken struct {
	text  string
	cells int
	style int
}

// Styling slots a window token can land in.
const (
	slotNormal = iota
	slotHighlight
	slotFaint
)

// wordWindow collects the visible tokens around the cursor for the
// current mode, already font-treated and measured. The span parameter
// caps how many tokens are considered on each side of the cursor.
func wordWindow(words []string, cursor int, mode render.Mode, font render.Font, span int) (before, after []styledToken, focus *styledToken) {
	if span < 1 {
		span = 1
	}
	lo := cursor - span
	if lo < 0 {
		lo = 0
	}
	hi := cursor + span
	if hi > len(words)-1 {
		hi = len(words) - 1
	}
	// with no cursor yet, open on the head of the text
	if cursor < 0 {
		lo = 0
		hi = span
		if hi > len(words)-1 {
			hi = len(words) - 1
		}
	}

	for i := lo; i <= hi; i++ {
		d := render.WordStyle(mode, cursor, i)
		if !d.Visible {
			continue
		}
		tok := styledToken{text: applyFont(words[i], font)}
		tok.cells = runewidth.StringWidth(tok.text)
		switch {
		case d.Highlight:
			tok.style = slotHighlight
		case d.Faint:
			tok.style = slotFaint
		}
		if i == cursor {
			f := tok
			focus = &f
			continue
		}
		if i < cursor || cursor < 0 {
			before = append(before, tok)
		} else {
			after = append(after, tok)
		}
	}
	return before, after, focus
}

// renderWordLine lays the window out on one line with the focused
// token's pivot letter parked at the horizontal midpoint. Leading
// context is dropped token by token when it would push the pivot past
// the midpoint.
func renderWordLine(words []string, cursor int, s render.Settings, st styleSet, width int) string {
	if width <= 0 {
		width = 80
	}
	span := width / 16
	before, after, focus := wordWindow(words, cursor, s.Mode, s.Font, span)

	target := width / 2
	leftCells := 0
	for _, tok := range before {
		leftCells += tok.cells + 1
	}
	if focus != nil {
		leftCells += pivotCell(words[cursor], s.Font)
	}
	for len(before) > 0 && leftCells > target {
		leftCells -= before[0].cells + 1
		before = before[1:]
	}

	pad := target - leftCells
	if pad < 0 {
		pad = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad))
	used := pad
	write := func(tok styledToken) bool {
		if used+tok.cells > width {
			return false
		}
		switch tok.style {
		case slotHighlight:
			b.WriteString(st.Highlight.Render(tok.text))
		case slotFaint:
			b.WriteString(st.Faint.Render(tok.text))
		default:
			b.WriteString(st.Word.Render(tok.text))
		}
		used += tok.cells
		return true
	}
	space := func() bool {
		if used+1 > width {
			return false
		}
		b.WriteRune(' ')
		used++
		return true
	}

	for i, tok := range before {
		if i > 0 && !space() {
			break
		}
		if !write(tok) {
			break
		}
	}
	if focus != nil {
		if len(before) > 0 {
			space()
		}
		write(*focus)
	}
	for _, tok := range after {
		if !space() {
			break
		}
		if !write(tok) {
			break
		}
	}
	// pad to full width so outer centering cannot shift the pivot column
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
