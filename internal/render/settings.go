package render

// Display setting bounds. Adjustments outside a range clamp silently.
const (
	MinFontScale = 1
	MaxFontScale = 3
	MinBright    = 10
	MaxBright    = 100
	MinGlow      = 0
	MaxGlow      = 100
)

// Font is a text treatment for the focused token, standing in for the
// font faces a terminal cannot actually switch.
type Font string

const (
	FontPlain Font = "plain"
	FontWide  Font = "wide"
	FontCaps  Font = "caps"
)

var fontOrder = []Font{FontPlain, FontWide, FontCaps}

// Theme names a color palette the TUI maps to concrete colors.
type Theme string

const (
	ThemeEmber  Theme = "ember"
	ThemeOcean  Theme = "ocean"
	ThemeForest Theme = "forest"
	ThemeViolet Theme = "violet"
	ThemeMono   Theme = "mono"
)

var themeOrder = []Theme{ThemeEmber, ThemeOcean, ThemeForest, ThemeViolet, ThemeMono}

// Settings are the user-adjustable display knobs. The zero value is
// not useful; start from DefaultSettings.
type Settings struct {
	Mode       Mode
	Font       Font
	Theme      Theme
	FontScale  int
	Brightness int
	Glow       int
	Bold       bool
}

// DefaultSettings returns the stock display configuration.
func DefaultSettings() Settings {
	return Settings{
		Mode:       ModeSpotlight,
		Font:       FontPlain,
		Theme:      ThemeEmber,
		FontScale:  2,
		Brightness: 80,
		Glow:       40,
		Bold:       true,
	}
}

// AdjustFontScale shifts the font scale by delta, clamped.
func (s *Settings) AdjustFontScale(delta int) {
	s.FontScale = clamp(s.FontScale+delta, MinFontScale, MaxFontScale)
}

// AdjustBrightness shifts brightness by delta, clamped.
func (s *Settings) AdjustBrightness(delta int) {
	s.Brightness = clamp(s.Brightness+delta, MinBright, MaxBright)
}

// AdjustGlow shifts glow by delta, clamped.
func (s *Settings) AdjustGlow(delta int) {
	s.Glow = clamp(s.Glow+delta, MinGlow, MaxGlow)
}

// ToggleBold flips the bold treatment of the focused token.
func (s *Settings) ToggleBold() {
	s.Bold = !s.Bold
}

// CycleFont advances to the next font treatment.
func (s *Settings) CycleFont() {
	s.Font = cycleFont(s.Font, 1)
}

// CycleTheme advances to the next color palette.
func (s *Settings) CycleTheme() {
	s.Theme = cycleTheme(s.Theme, 1)
}

// CycleMode advances the display mode by step, which may be negative.
func (s *Settings) CycleMode(step int) {
	if step >= 0 {
		s.Mode = NextMode(s.Mode)
		return
	}
	s.Mode = PrevMode(s.Mode)
}

// Normalize clamps every numeric field and replaces unknown enum
// values with defaults, for settings loaded from disk.
func (s *Settings) Normalize() {
	s.FontScale = clamp(s.FontScale, MinFontScale, MaxFontScale)
	s.Brightness = clamp(s.Brightness, MinBright, MaxBright)
	s.Glow = clamp(s.Glow, MinGlow, MaxGlow)
	if !validMode(s.Mode) {
		s.Mode = ModeSpotlight
	}
	if !validFont(s.Font) {
		s.Font = FontPlain
	}
	if !validTheme(s.Theme) {
		s.Theme = ThemeEmber
	}
}

func validMode(m Mode) bool {
	for _, known := range modeOrder {
		if known == m {
			return true
		}
	}
	return false
}

func validFont(f Font) bool {
	for _, known := range fontOrder {
		if known == f {
			return true
		}
	}
	return false
}

func validTheme(t Theme) bool {
	for _, known := range themeOrder {
		if known == t {
			return true
		}
	}
	return false
}

func cycleFont(f Font, step int) Font {
	for i, known := range fontOrder {
		if known == f {
			return fontOrder[(i+step+len(fontOrder))%len(fontOrder)]
		}
	}
	return fontOrder[0]
}

func cycleTheme(t Theme, step int) Theme {
	for i, known := range themeOrder {
		if known == t {
			return themeOrder[(i+step+len(themeOrder))%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
