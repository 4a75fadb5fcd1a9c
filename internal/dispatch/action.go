// Package dispatch maps configurable key identifiers to the closed set
// of reader actions. The action set is fixed; only the keys bound to
// each action change. Resolution scans actions in declaration order,
// so when a user assigns one key to two actions the earlier action
// wins deterministically.
package dispatch

import "strings"

// Action is a logical reader command a key can be bound to.
type Action string

const (
	ActionTogglePlayback      Action = "toggle-playback"
	ActionReset               Action = "reset"
	ActionSeekPrevious        Action = "seek-previous"
	ActionSeekNext            Action = "seek-next"
	ActionRateUp              Action = "rate-up"
	ActionRateDown            Action = "rate-down"
	ActionFontUp              Action = "font-up"
	ActionFontDown            Action = "font-down"
	ActionBrightnessUp        Action = "brightness-up"
	ActionBrightnessDown      Action = "brightness-down"
	ActionGlowUp              Action = "glow-up"
	ActionGlowDown            Action = "glow-down"
	ActionToggleBold          Action = "toggle-bold"
	ActionCycleFont           Action = "cycle-font"
	ActionCycleColor          Action = "cycle-color"
	ActionCycleMode           Action = "cycle-mode"
	ActionCycleModeBack       Action = "cycle-mode-back"
	ActionToggleEditMode      Action = "toggle-edit-mode"
	ActionClearText           Action = "clear-text"
	ActionToggleFocusPanel    Action = "toggle-focus-panel"
	ActionToggleExternalMenu  Action = "toggle-external-menu"
	ActionToggleBindingEditor Action = "toggle-bindings-editor"
	ActionToggleStats         Action = "toggle-stats"
	ActionToggleHelp          Action = "toggle-help"
)

// actionOrder is the declaration order used for resolution precedence
// and for presenting the binding table.
var actionOrder = []Action{
	ActionTogglePlayback,
	ActionReset,
	ActionSeekPrevious,
	ActionSeekNext,
	ActionRateUp,
	ActionRateDown,
	ActionFontUp,
	ActionFontDown,
	ActionBrightnessUp,
	ActionBrightnessDown,
	ActionGlowUp,
	ActionGlowDown,
	ActionToggleBold,
	ActionCycleFont,
	ActionCycleColor,
	ActionCycleMode,
	ActionCycleModeBack,
	ActionToggleEditMode,
	ActionClearText,
	ActionToggleFocusPanel,
	ActionToggleExternalMenu,
	ActionToggleBindingEditor,
	ActionToggleStats,
	ActionToggleHelp,
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, len(actionOrder))
	copy(out, actionOrder)
	return out
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range actionOrder {
		if known == a {
			return true
		}
	}
	return false
}

// Label returns a human-readable name for the action.
func (a Action) Label() string {
	parts := strings.Split(string(a), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
