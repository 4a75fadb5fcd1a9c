package render

import "testing"

func TestWordStyle(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		cursor int
		index  int
		want   Descriptor
	}{
		{"solo current", ModeSolo, 3, 3, Descriptor{Visible: true, Highlight: true}},
		{"solo other hidden", ModeSolo, 3, 2, Descriptor{}},
		{"spotlight current", ModeSpotlight, 3, 3, Descriptor{Visible: true, Highlight: true}},
		{"spotlight other faint", ModeSpotlight, 3, 5, Descriptor{Visible: true, Faint: true}},
		{"trail past visible", ModeTrail, 3, 1, Descriptor{Visible: true}},
		{"trail future hidden", ModeTrail, 3, 4, Descriptor{}},
		{"preview past faint", ModePreview, 3, 1, Descriptor{Visible: true, Faint: true}},
		{"preview future plain", ModePreview, 3, 5, Descriptor{Visible: true}},
		{"paragraph all visible", ModeParagraph, 3, 9, Descriptor{Visible: true}},
		{"ghost halo faint", ModeGhost, 3, 4, Descriptor{Visible: true, Faint: true}},
		{"ghost outside hidden", ModeGhost, 3, 6, Descriptor{}},
		{"before first tick nothing current", ModeSpotlight, -1, 0, Descriptor{Visible: true, Faint: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordStyle(tt.mode, tt.cursor, tt.index); got != tt.want {
				t.Errorf("WordStyle(%v, %v, %v) = %+v, want %+v", tt.mode, tt.cursor, tt.index, got, tt.want)
			}
		})
	}
}

func TestModeCycle(t *testing.T) {
	start := ModeSolo
	m := start
	for i := 0; i < len(Modes()); i++ {
		m = NextMode(m)
	}
	if m != start {
		t.Errorf("cycling through all modes = %v, want back at %v", m, start)
	}

	if got := PrevMode(NextMode(ModeTrail)); got != ModeTrail {
		t.Errorf("PrevMode(NextMode(trail)) = %v, want trail", got)
	}

	if got := NextMode(Mode("bogus")); got != ModeSolo {
		t.Errorf("NextMode(bogus) = %v, want first mode", got)
	}
}

func TestSettings_Adjustments(t *testing.T) {
	s := DefaultSettings()

	s.AdjustBrightness(1000)
	if s.Brightness != MaxBright {
		t.Errorf("Brightness = %v, want clamp at %v", s.Brightness, MaxBright)
	}

	s.AdjustBrightness(-1000)
	if s.Brightness != MinBright {
		t.Errorf("Brightness = %v, want clamp at %v", s.Brightness, MinBright)
	}

	s.AdjustGlow(-1000)
	if s.Glow != MinGlow {
		t.Errorf("Glow = %v, want clamp at %v", s.Glow, MinGlow)
	}

	s.AdjustFontScale(10)
	if s.FontScale != MaxFontScale {
		t.Errorf("FontScale = %v, want clamp at %v", s.FontScale, MaxFontScale)
	}

	wasBold := s.Bold
	s.ToggleBold()
	if s.Bold == wasBold {
		t.Error("ToggleBold() did not flip")
	}
}

func TestSettings_Cycles(t *testing.T) {
	s := DefaultSettings()

	font := s.Font
	for i := 0; i < len(fontOrder); i++ {
		s.CycleFont()
	}
	if s.Font != font {
		t.Errorf("cycling through all fonts = %v, want back at %v", s.Font, font)
	}

	theme := s.Theme
	for i := 0; i < len(themeOrder); i++ {
		s.CycleTheme()
	}
	if s.Theme != theme {
		t.Errorf("cycling through all themes = %v, want back at %v", s.Theme, theme)
	}

	mode := s.Mode
	s.CycleMode(1)
	s.CycleMode(-1)
	if s.Mode != mode {
		t.Errorf("mode after cycle forward and back = %v, want %v", s.Mode, mode)
	}
}

func TestSettings_Normalize(t *testing.T) {
	s := Settings{
		Mode:       Mode("bogus"),
		Font:       Font("bogus"),
		Theme:      Theme("bogus"),
		FontScale:  99,
		Brightness: -5,
		Glow:       400,
	}

	s.Normalize()

	if s.Mode != ModeSpotlight || s.Font != FontPlain || s.Theme != ThemeEmber {
		t.Errorf("Normalize() enums = (%v, %v, %v), want defaults", s.Mode, s.Font, s.Theme)
	}

	if s.FontScale != MaxFontScale || s.Brightness != MinBright || s.Glow != MaxGlow {
		t.Errorf("Normalize() numerics = (%v, %v, %v), want clamped", s.FontScale, s.Brightness, s.Glow)
	}
}
