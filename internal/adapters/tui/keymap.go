package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/kezou/pacer/internal/dispatch"
)

// keyMap adapts the live binding table to the bubbles help widget, so
// the footer always shows the keys currently in effect.
type keyMap struct {
	bindings dispatch.Map
}

func newKeyMap(bindings dispatch.Map) keyMap {
	return keyMap{bindings: bindings}
}

func (k keyMap) binding(action dispatch.Action) key.Binding {
	bound := k.bindings.Key(action)
	return key.NewBinding(
		key.WithKeys(bound),
		key.WithHelp(bound, strings.ToLower(action.Label())),
	)
}

// ShortHelp lists the handful of keys worth showing on the one-line
// footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.binding(dispatch.ActionTogglePlayback),
		k.binding(dispatch.ActionToggleEditMode),
		k.binding(dispatch.ActionToggleFocusPanel),
		k.binding(dispatch.ActionToggleExternalMenu),
		k.binding(dispatch.ActionToggleHelp),
	}
}

// FullHelp groups every action into columns for the expanded view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			k.binding(dispatch.ActionTogglePlayback),
			k.binding(dispatch.ActionReset),
			k.binding(dispatch.ActionSeekPrevious),
			k.binding(dispatch.ActionSeekNext),
			k.binding(dispatch.ActionRateUp),
			k.binding(dispatch.ActionRateDown),
		},
		{
			k.binding(dispatch.ActionFontUp),
			k.binding(dispatch.ActionFontDown),
			k.binding(dispatch.ActionBrightnessUp),
			k.binding(dispatch.ActionBrightnessDown),
			k.binding(dispatch.ActionGlowUp),
			k.binding(dispatch.ActionGlowDown),
		},
		{
			k.binding(dispatch.ActionToggleBold),
			k.binding(dispatch.ActionCycleFont),
			k.binding(dispatch.ActionCycleColor),
			k.binding(dispatch.ActionCycleMode),
			k.binding(dispatch.ActionCycleModeBack),
			k.binding(dispatch.ActionToggleEditMode),
		},
		{
			k.binding(dispatch.ActionClearText),
			k.binding(dispatch.ActionToggleFocusPanel),
			k.binding(dispatch.ActionToggleExternalMenu),
			k.binding(dispatch.ActionToggleBindingEditor),
			k.binding(dispatch.ActionToggleStats),
			k.binding(dispatch.ActionToggleHelp),
		},
	}
}
