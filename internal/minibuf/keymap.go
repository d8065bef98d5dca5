// Package minibuf implements pickline's restricted completion engine: a
// minibuffer-style candidate selector rendered with Bubble Tea. It only
// accepts enumerable candidate lists; the adapter in internal/complete
// decides when a request is routed here and when it falls back to the
// standard engine.
package minibuf

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a keyboard action that can be triggered by key
// bindings in the selector.
type Action int

const (
	// ActionNone represents no action (key matched no binding).
	ActionNone Action = iota

	// Cursor movement in the query line
	ActionCharacterForward  // Move cursor one character forward (Ctrl+F, Right)
	ActionCharacterBackward // Move cursor one character backward (Ctrl+B, Left)
	ActionLineStart         // Move cursor to start of query (Ctrl+A, Home)
	ActionLineEnd           // Move cursor to end of query (Ctrl+E, End)

	// Candidate list navigation
	ActionSelectNext       // Move selection down (Down, Ctrl+N)
	ActionSelectPrev       // Move selection up (Up, Ctrl+P)
	ActionComplete         // Cycle selection forward (Tab)
	ActionCompleteBackward // Cycle selection backward (Shift+Tab)

	// History navigation in the query line
	ActionHistoryPrev // Recall previous selection (Alt+P)
	ActionHistoryNext // Recall next selection (Alt+N)

	// Special actions
	ActionSubmit         // Submit the current selection (Enter)
	ActionCancel         // Cancel the prompt (Escape)
	ActionInterrupt      // Send interrupt (Ctrl+C)
	ActionPaste          // Paste from clipboard (Ctrl+V)
	ActionSwitchStandard // Hand this request to standard completion (Ctrl+T)
)

// String returns the string representation of an Action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCharacterForward:
		return "CharacterForward"
	case ActionCharacterBackward:
		return "CharacterBackward"
	case ActionLineStart:
		return "LineStart"
	case ActionLineEnd:
		return "LineEnd"
	case ActionSelectNext:
		return "SelectNext"
	case ActionSelectPrev:
		return "SelectPrev"
	case ActionComplete:
		return "Complete"
	case ActionCompleteBackward:
		return "CompleteBackward"
	case ActionHistoryPrev:
		return "HistoryPrev"
	case ActionHistoryNext:
		return "HistoryNext"
	case ActionSubmit:
		return "Submit"
	case ActionCancel:
		return "Cancel"
	case ActionInterrupt:
		return "Interrupt"
	case ActionPaste:
		return "Paste"
	case ActionSwitchStandard:
		return "SwitchStandard"
	default:
		return "Unknown"
	}
}

// KeyBinding maps a set of key sequences to an action.
type KeyBinding struct {
	// Keys is the list of key sequences that trigger this binding.
	// Each string should be a valid tea.KeyMsg string representation.
	Keys []string
	// Action is the action to perform when this binding is triggered.
	Action Action
}

// KeyMap holds all key bindings for the selector. Lookup is O(1) using
// an internal hash map.
type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

// NewKeyMap creates a new KeyMap with the given bindings.
func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{bindings: bindings}
	km.rebuildLookup()
	return km
}

func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

// DefaultKeyMap returns a KeyMap with default Emacs-style key bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		// Query line navigation
		{Keys: []string{"right", "ctrl+f"}, Action: ActionCharacterForward},
		{Keys: []string{"left", "ctrl+b"}, Action: ActionCharacterBackward},
		{Keys: []string{"home", "ctrl+a"}, Action: ActionLineStart},
		{Keys: []string{"end", "ctrl+e"}, Action: ActionLineEnd},

		// Candidate list navigation
		{Keys: []string{"down", "ctrl+n"}, Action: ActionSelectNext},
		{Keys: []string{"up", "ctrl+p"}, Action: ActionSelectPrev},
		{Keys: []string{"tab"}, Action: ActionComplete},
		{Keys: []string{"shift+tab"}, Action: ActionCompleteBackward},

		// History
		{Keys: []string{"alt+p"}, Action: ActionHistoryPrev},
		{Keys: []string{"alt+n"}, Action: ActionHistoryNext},

		// Special keys
		{Keys: []string{"enter"}, Action: ActionSubmit},
		{Keys: []string{"esc"}, Action: ActionCancel},
		{Keys: []string{"ctrl+c"}, Action: ActionInterrupt},
		{Keys: []string{"ctrl+v"}, Action: ActionPaste},
		{Keys: []string{"ctrl+t"}, Action: ActionSwitchStandard},
	})
}

// Lookup finds the action for the given key message. Returns ActionNone
// if no binding matches.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}

// SetBinding adds or updates a key binding. If a binding for the same
// action already exists, it is replaced.
func (km *KeyMap) SetBinding(binding KeyBinding) {
	for i, b := range km.bindings {
		if b.Action == binding.Action {
			km.bindings[i] = binding
			km.rebuildLookup()
			return
		}
	}
	km.bindings = append(km.bindings, binding)
	km.rebuildLookup()
}

// GetBinding returns the binding for the given action, or nil if not
// found.
func (km *KeyMap) GetBinding(action Action) *KeyBinding {
	for i := range km.bindings {
		if km.bindings[i].Action == action {
			return &km.bindings[i]
		}
	}
	return nil
}
