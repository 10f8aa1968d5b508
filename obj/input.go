package obj

import (
	"github.com/milk9111/stickclash/prefabs"
)

// PlayerID names a binding section.
type PlayerID string

const (
	Player1 PlayerID = "player1"
	Player2 PlayerID = "player2"
)

// PlayerForSlot maps a fighter slot (1 or 2) to its binding section.
func PlayerForSlot(slot int) PlayerID {
	if slot == 2 {
		return Player2
	}
	return Player1
}

// Action is a logical input a player can hold.
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionLeft    Action = "left"
	ActionRight   Action = "right"
	ActionJump    Action = "jump"
	ActionLight   Action = "light"
	ActionHeavy   Action = "heavy"
	ActionBlock   Action = "block"
	ActionDodge   Action = "dodge"
	ActionSpecial Action = "special"
	// ActionThrow starts a throw, which goes through guard and armor.
	ActionThrow Action = "throw"
)

// Actions lists every bindable action.
var Actions = []Action{
	ActionUp, ActionDown, ActionLeft, ActionRight, ActionJump,
	ActionLight, ActionHeavy, ActionBlock, ActionDodge, ActionSpecial, ActionThrow,
}

// Direction is a held direction; each axis is -1, 0 or 1.
type Direction struct {
	X, Y int
}

// InputSample is one player's input, read once per tick.
type InputSample struct {
	Dir     Direction
	Jump    bool
	Light   bool
	Heavy   bool
	Block   bool
	Dodge   bool
	Special bool
	Throw   bool
}

// InputMapper keeps raw source state (key names, pad buttons, touch ids or
// anything a harness injects) and resolves per-player actions through the
// binding tables. It is level-triggered: a held source reads as pressed on
// every tick.
type InputMapper struct {
	down     map[string]bool
	bindings map[PlayerID]map[Action][]string
}

// NewInputMapper builds a mapper over the given bindings. Nil bindings fall
// back to DefaultBindings.
func NewInputMapper(b prefabs.Bindings) *InputMapper {
	m := &InputMapper{down: map[string]bool{}}
	m.SetBindings(b)
	return m
}

// DefaultBindings is the stock two-player keyboard layout.
func DefaultBindings() prefabs.Bindings {
	return prefabs.Bindings{
		string(Player1): {
			"up": {"W"}, "down": {"S"}, "left": {"A"}, "right": {"D"}, "jump": {"Space"},
			"light": {"J"}, "heavy": {"K"}, "block": {"U"}, "dodge": {"I"}, "special": {"L"}, "throw": {"H"},
		},
		string(Player2): {
			"up": {"ArrowUp"}, "down": {"ArrowDown"}, "left": {"ArrowLeft"}, "right": {"ArrowRight"}, "jump": {"Enter"},
			"light": {"N"}, "heavy": {"M"}, "block": {"Comma"}, "dodge": {"Period"}, "special": {"O"}, "throw": {"B"},
		},
	}
}

// SetBindings replaces the binding tables.
func (m *InputMapper) SetBindings(b prefabs.Bindings) {
	if m == nil {
		return
	}
	if len(b) == 0 {
		b = DefaultBindings()
	}
	m.bindings = make(map[PlayerID]map[Action][]string, len(b))
	for player, actions := range b {
		table := make(map[Action][]string, len(actions))
		for action, sources := range actions {
			table[Action(action)] = append([]string(nil), sources...)
		}
		m.bindings[PlayerID(player)] = table
	}
}

// SetDown records the state of a raw source.
func (m *InputMapper) SetDown(source string, down bool) {
	if m == nil || source == "" {
		return
	}
	if down {
		m.down[source] = true
		return
	}
	delete(m.down, source)
}

// IsDown reports the raw state of a source.
func (m *InputMapper) IsDown(source string) bool {
	if m == nil {
		return false
	}
	return m.down[source]
}

// ReleaseAll clears every raw source.
func (m *InputMapper) ReleaseAll() {
	if m == nil {
		return
	}
	clear(m.down)
}

// Bound returns the sources bound to a player's action.
func (m *InputMapper) Bound(player PlayerID, action Action) []string {
	if m == nil {
		return nil
	}
	return m.bindings[player][action]
}

// Sources returns every source bound for a player, for pollers.
func (m *InputMapper) Sources(player PlayerID) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, action := range Actions {
		out = append(out, m.bindings[player][action]...)
	}
	return out
}

// IsPressed reports whether any source bound to the action is down.
func (m *InputMapper) IsPressed(player PlayerID, action Action) bool {
	if m == nil {
		return false
	}
	for _, src := range m.bindings[player][action] {
		if m.down[src] {
			return true
		}
	}
	return false
}

// Direction resolves the held direction. Right wins over left and down wins
// over up when both are held.
func (m *InputMapper) Direction(player PlayerID) Direction {
	var d Direction
	if m.IsPressed(player, ActionLeft) {
		d.X = -1
	}
	if m.IsPressed(player, ActionRight) {
		d.X = 1
	}
	if m.IsPressed(player, ActionUp) {
		d.Y = -1
	}
	if m.IsPressed(player, ActionDown) {
		d.Y = 1
	}
	return d
}

// Sample reads a player's direction and action flags in one pass.
func (m *InputMapper) Sample(player PlayerID) InputSample {
	return InputSample{
		Dir:     m.Direction(player),
		Jump:    m.IsPressed(player, ActionJump),
		Light:   m.IsPressed(player, ActionLight),
		Heavy:   m.IsPressed(player, ActionHeavy),
		Block:   m.IsPressed(player, ActionBlock),
		Dodge:   m.IsPressed(player, ActionDodge),
		Special: m.IsPressed(player, ActionSpecial),
		Throw:   m.IsPressed(player, ActionThrow),
	}
}
