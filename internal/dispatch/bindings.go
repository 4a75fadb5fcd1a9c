package dispatch

import (
	"unicode"
	"unicode/utf8"

	"github.com/kezou/pacer/internal/domain"
)

// Map assigns one key identifier to each action. Keys are compared
// case-insensitively when they are a single character and exactly when
// they are named (for example "enter" or "shift+tab").
type Map struct {
	keys map[Action]string
}

// DefaultMap returns the stock binding table covering all actions.
func DefaultMap() Map {
	return Map{keys: map[Action]string{
		ActionTogglePlayback:      "space",
		ActionReset:               "r",
		ActionSeekPrevious:        "left",
		ActionSeekNext:            "right",
		ActionRateUp:              "up",
		ActionRateDown:            "down",
		ActionFontUp:              "+",
		ActionFontDown:            "-",
		ActionBrightnessUp:        "]",
		ActionBrightnessDown:      "[",
		ActionGlowUp:              "}",
		ActionGlowDown:            "{",
		ActionToggleBold:          "b",
		ActionCycleFont:           "f",
		ActionCycleColor:          "c",
		ActionCycleMode:           "tab",
		ActionCycleModeBack:       "shift+tab",
		ActionToggleEditMode:      "e",
		ActionClearText:           "x",
		ActionToggleFocusPanel:    "p",
		ActionToggleExternalMenu:  "m",
		ActionToggleBindingEditor: "k",
		ActionToggleStats:         "s",
		ActionToggleHelp:          "?",
	}}
}

// FromMap builds a binding map from persisted action-name/key pairs,
// falling back to the default key for any action the input misses.
// Unknown action names are ignored.
func FromMap(persisted map[string]string) Map {
	m := DefaultMap()
	for name, key := range persisted {
		action := Action(name)
		if !action.Valid() || key == "" {
			continue
		}
		m.keys[action] = key
	}
	return m
}

// ToMap exports the table as plain action-name/key pairs for
// persistence.
func (m Map) ToMap() map[string]string {
	out := make(map[string]string, len(m.keys))
	for action, key := range m.keys {
		out[string(action)] = key
	}
	return out
}

// Key returns the key bound to an action.
func (m Map) Key(action Action) string {
	return m.keys[action]
}

// Bind assigns a key to an action verbatim. The same key may end up on
// two actions; Resolve breaks the tie by declaration order.
func (m Map) Bind(action Action, key string) error {
	if !action.Valid() {
		return domain.ErrInvalidAction
	}
	m.keys[action] = key
	return nil
}

// Resolve finds the first action, in declaration order, whose binding
// matches the input key.
func (m Map) Resolve(input string) (Action, bool) {
	normalized := normalizeKey(input)
	for _, action := range actionOrder {
		if normalizeKey(m.keys[action]) == normalized {
			return action, true
		}
	}
	return "", false
}

// normalizeKey lowercases single-character keys so letter bindings
// match regardless of shift state; named keys pass through untouched.
func normalizeKey(key string) string {
	if utf8.RuneCountInString(key) != 1 {
		return key
	}
	r, _ := utf8.DecodeRuneInString(key)
	return string(unicode.ToLower(r))
}
