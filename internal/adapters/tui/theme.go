package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/kezou/pacer/internal/render"
)

// palette holds the colors a theme contributes before brightness and
// glow are applied.
type palette struct {
	Accent string
	Text   string
	Faint  string
	Border string
	Error  string
}

var palettes = map[render.Theme]palette{
	render.ThemeEmber:  {Accent: "#FF6B35", Text: "#E8D5C4", Faint: "#7A6A5C", Border: "#B3502A", Error: "#FF5555"},
	render.ThemeOcean:  {Accent: "#00A8E8", Text: "#CFE8F3", Faint: "#5C7A8A", Border: "#0077A8", Error: "#FF6B6B"},
	render.ThemeForest: {Accent: "#52B788", Text: "#D8E8DC", Faint: "#5C7A64", Border: "#3A8A62", Error: "#FF6B6B"},
	render.ThemeViolet: {Accent: "#9D4EDD", Text: "#E2D5F0", Faint: "#6E5C7A", Border: "#7A2EBD", Error: "#FF5555"},
	render.ThemeMono:   {Accent: "#FFFFFF", Text: "#C0C0C0", Faint: "#606060", Border: "#909090", Error: "#FF5555"},
}

// themePalette returns the palette for a theme, falling back to ember
// for anything unknown.
func themePalette(t render.Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[render.ThemeEmber]
}

// scaleHex multiplies each RGB channel of a #RRGGBB color by pct/100.
// Malformed input is returned unchanged.
func scaleHex(hex string, pct int) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return hex
	}
	return fmt.Sprintf("#%02X%02X%02X", r*pct/100, g*pct/100, b*pct/100)
}

// styleSet is the small bundle of lipgloss styles the views share,
// rebuilt whenever display settings change.
type styleSet struct {
	Highlight lipgloss.Style
	Word      lipgloss.Style
	Faint     lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	Selected  lipgloss.Style
	Accent    string
	FaintHex  string
}

// buildStyles derives the shared styles from the current display
// settings. Brightness scales every foreground; glow adds a dim accent
// background behind the highlighted word.
func buildStyles(s render.Settings) styleSet {
	p := themePalette(s.Theme)
	accent := scaleHex(p.Accent, s.Brightness)
	text := scaleHex(p.Text, s.Brightness)
	faint := scaleHex(p.Faint, s.Brightness)

	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(s.Bold)
	if s.Glow > 0 {
		highlight = highlight.Background(lipgloss.Color(scaleHex(p.Accent, s.Glow/4)))
	}

	return styleSet{
		Highlight: highlight,
		Word:      lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scaleHex(p.Border, s.Brightness))).
			Padding(1, 2),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		Accent:   accent,
		FaintHex: faint,
	}
}
