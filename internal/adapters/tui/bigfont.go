package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphMap maps digits, colon, uppercase letters and a little common
// punctuation to 5-line block representations. Lines within one glyph
// are equal width; glyphs are 1-4 cells wide.
var glyphMap = map[rune][5]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
	'A': {
		"████",
		"█  █",
		"████",
		"█  █",
		"█  █",
	},
	'B': {
		"███ ",
		"█  █",
		"███ ",
		"█  █",
		"███ ",
	},
	'C': {
		"████",
		"█   ",
		"█   ",
		"█   ",
		"████",
	},
	'D': {
		"███ ",
		"█  █",
		"█  █",
		"█  █",
		"███ ",
	},
	'E': {
		"████",
		"█   ",
		"███ ",
		"█   ",
		"████",
	},
	'F': {
		"████",
		"█   ",
		"███ ",
		"█   ",
		"█   ",
	},
	'G': {
		"████",
		"█   ",
		"█ ██",
		"█  █",
		"████",
	},
	'H': {
		"█  █",
		"█  █",
		"████",
		"█  █",
		"█  █",
	},
	'I': {
		"███",
		" █ ",
		" █ ",
		" █ ",
		"███",
	},
	'J': {
		"  ██",
		"   █",
		"   █",
		"█  █",
		"████",
	},
	'K': {
		"█  █",
		"█ █ ",
		"██  ",
		"█ █ ",
		"█  █",
	},
	'L': {
		"█   ",
		"█   ",
		"█   ",
		"█   ",
		"████",
	},
	'M': {
		"█  █",
		"████",
		"████",
		"█  █",
		"█  █",
	},
	'N': {
		"█  █",
		"██ █",
		"█ ██",
		"█  █",
		"█  █",
	},
	'O': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'P': {
		"████",
		"█  █",
		"████",
		"█   ",
		"█   ",
	},
	'Q': {
		"████",
		"█  █",
		"█  █",
		"█ ██",
		"████",
	},
	'R': {
		"████",
		"█  █",
		"████",
		"█ █ ",
		"█  █",
	},
	'S': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'T': {
		"███",
		" █ ",
		" █ ",
		" █ ",
		" █ ",
	},
	'U': {
		"█  █",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'V': {
		"█  █",
		"█  █",
		"█  █",
		"█  █",
		" ██ ",
	},
	'W': {
		"█  █",
		"█  █",
		"████",
		"████",
		"█  █",
	},
	'X': {
		"█  █",
		"█  █",
		" ██ ",
		"█  █",
		"█  █",
	},
	'Y': {
		"█ █",
		"█ █",
		" █ ",
		" █ ",
		" █ ",
	},
	'Z': {
		"████",
		"   █",
		" ██ ",
		"█   ",
		"████",
	},
	'-': {
		"   ",
		"   ",
		"███",
		"   ",
		"   ",
	},
	'\'': {
		"█",
		"█",
		" ",
		" ",
		" ",
	},
	'.': {
		" ",
		" ",
		" ",
		" ",
		"█",
	},
	',': {
		"  ",
		"  ",
		"  ",
		" █",
		"█ ",
	},
	'!': {
		"█",
		"█",
		"█",
		" ",
		"█",
	},
	'?': {
		"███",
		"  █",
		" ██",
		"   ",
		" █ ",
	},
}

// renderBigText renders text as multi-line block glyphs. Lowercase is
// folded to uppercase; runes without a glyph are skipped. Falls back to
// a single styled line when the terminal is narrow, when the rendered
// text would overflow it, or when no rune had a glyph.
func renderBigText(text string, style lipgloss.Style, width int) string {
	if width < 40 {
		return style.Render(text)
	}

	lines := [5]string{}
	for _, ch := range strings.ToUpper(text) {
		glyph, ok := glyphMap[ch]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += glyph[i]
		}
	}

	if lines[0] == "" || len([]rune(lines[0])) > width {
		return style.Render(text)
	}

	styled := make([]string, 5)
	for i, line := range lines {
		styled[i] = style.Render(line)
	}
	return strings.Join(styled, "\n")
}
