package system

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stickclash/obj"
	"github.com/milk9111/stickclash/prefabs"
	lua "github.com/yuin/gopher-lua"
)

// ErrUnknownBrain is returned for script files that are neither tengo nor lua.
var ErrUnknownBrain = errors.New("system: unknown brain script type")

// ActionThrow is the brain action that holds the throw binding.
const ActionThrow = string(obj.ActionThrow)

// FighterView is the read-only snapshot of a fighter a brain sees.
type FighterView struct {
	X, Y           float64
	Health         float64
	MaxHealth      float64
	ComboPotential float64
	Stamina        float64
	BlockStamina   float64
	State          string
	SpecialReady   bool
	Grounded       bool
	Blocking       bool
}

// BrainView is what a brain is given each tick.
type BrainView struct {
	Self, Foe FighterView
	Distance  float64
	Tick      int
}

// Brain decides which actions a CPU fighter holds this tick.
type Brain interface {
	Think(view BrainView) ([]string, error)
	Close() error
}

func viewOf(f *obj.Fighter) FighterView {
	return FighterView{
		X:              f.Position.X,
		Y:              f.Position.Y,
		Health:         f.Health.Current,
		MaxHealth:      f.Health.Max,
		ComboPotential: f.ComboPotential.Current,
		Stamina:        f.Stamina.Current,
		BlockStamina:   f.BlockStamina.Current,
		State:          string(f.State),
		SpecialReady:   f.SpecialCooldown <= 0,
		Grounded:       f.IsGrounded,
		Blocking:       f.IsBlocking,
	}
}

// NewBrainView snapshots slot's fighter and its opponent.
func NewBrainView(m *Match, slot int) BrainView {
	self, foe := m.Fighter(slot), m.Opponent(slot)
	dist := foe.Position.X - self.Position.X
	if dist < 0 {
		dist = -dist
	}
	return BrainView{Self: viewOf(self), Foe: viewOf(foe), Distance: dist, Tick: m.Ticks}
}

// LoadBrain loads a brain script through the prefab loader and picks the
// runtime from its extension.
func LoadBrain(path string) (Brain, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("system: load brain %q: %w", path, err)
	}
	return NewBrain(filepath.Ext(path), src)
}

// NewBrain compiles src for the runtime named by ext (".tengo" or ".lua").
func NewBrain(ext string, src []byte) (Brain, error) {
	switch strings.ToLower(ext) {
	case ".tengo":
		return NewTengoBrain(src)
	case ".lua":
		return NewLuaBrain(src)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBrain, ext)
}

const tengoThinkDispatch = `
think(__engine, __memory)
`

// TengoBrain runs a tengo script defining think(engine, memory).
type TengoBrain struct {
	compiled *tengo.Compiled
	memory   *tengo.Map
	pressed  []string
}

func NewTengoBrain(src []byte) (*TengoBrain, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + tengoThinkDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__memory", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile tengo brain: %w", err)
	}
	return &TengoBrain{
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (b *TengoBrain) Think(view BrainView) ([]string, error) {
	if b == nil || b.compiled == nil {
		return nil, nil
	}
	b.pressed = b.pressed[:0]
	if err := b.compiled.Set("__engine", b.engine(view)); err != nil {
		return nil, err
	}
	if err := b.compiled.Set("__memory", b.memory); err != nil {
		return nil, err
	}
	if err := b.compiled.Run(); err != nil {
		return nil, fmt.Errorf("system: tengo brain: %w", err)
	}
	return append([]string(nil), b.pressed...), nil
}

func (b *TengoBrain) engine(view BrainView) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"self":     tengoFighter(view.Self),
		"foe":      tengoFighter(view.Foe),
		"distance": &tengo.Float{Value: view.Distance},
		"tick":     &tengo.Int{Value: int64(view.Tick)},
	}
	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		s, ok := tengo.ToString(args[0])
		s = strings.TrimSpace(s)
		if !ok || s == "" {
			return tengo.FalseValue, nil
		}
		b.pressed = append(b.pressed, s)
		return tengo.TrueValue, nil
	}}
	return &tengo.ImmutableMap{Value: values}
}

func tengoBool(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func tengoFighter(v FighterView) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":               &tengo.Float{Value: v.X},
		"y":               &tengo.Float{Value: v.Y},
		"health":          &tengo.Float{Value: v.Health},
		"max_health":      &tengo.Float{Value: v.MaxHealth},
		"combo_potential": &tengo.Float{Value: v.ComboPotential},
		"stamina":         &tengo.Float{Value: v.Stamina},
		"block_stamina":   &tengo.Float{Value: v.BlockStamina},
		"state":           &tengo.String{Value: v.State},
		"special_ready":   tengoBool(v.SpecialReady),
		"grounded":        tengoBool(v.Grounded),
		"blocking":        tengoBool(v.Blocking),
	}}
}

func (b *TengoBrain) Close() error { return nil }

// LuaBrain runs a lua script defining think(self, foe, tick) that returns
// an array of action names.
type LuaBrain struct {
	L     *lua.LState
	think lua.LValue
}

func NewLuaBrain(src []byte) (*LuaBrain, error) {
	L := lua.NewState()
	if err := L.DoString(string(src)); err != nil {
		L.Close()
		return nil, fmt.Errorf("system: load lua brain: %w", err)
	}
	fn := L.GetGlobal("think")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, errors.New("system: lua brain does not define think")
	}
	return &LuaBrain{L: L, think: fn}, nil
}

func (b *LuaBrain) Think(view BrainView) ([]string, error) {
	if b == nil || b.L == nil {
		return nil, nil
	}
	top := b.L.GetTop()
	defer b.L.SetTop(top)

	err := b.L.CallByParam(lua.P{Fn: b.think, NRet: 1, Protect: true},
		b.luaFighter(view.Self, view.Distance), b.luaFighter(view.Foe, view.Distance), lua.LNumber(view.Tick))
	if err != nil {
		return nil, fmt.Errorf("system: lua brain: %w", err)
	}

	tbl, ok := b.L.Get(-1).(*lua.LTable)
	if !ok {
		return nil, nil
	}
	var out []string
	tbl.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok && s != "" {
			out = append(out, string(s))
		}
	})
	return out, nil
}

func (b *LuaBrain) luaFighter(v FighterView, dist float64) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	t.RawSetString("health", lua.LNumber(v.Health))
	t.RawSetString("max_health", lua.LNumber(v.MaxHealth))
	t.RawSetString("combo_potential", lua.LNumber(v.ComboPotential))
	t.RawSetString("stamina", lua.LNumber(v.Stamina))
	t.RawSetString("block_stamina", lua.LNumber(v.BlockStamina))
	t.RawSetString("state", lua.LString(v.State))
	t.RawSetString("special_ready", lua.LBool(v.SpecialReady))
	t.RawSetString("grounded", lua.LBool(v.Grounded))
	t.RawSetString("blocking", lua.LBool(v.Blocking))
	t.RawSetString("distance", lua.LNumber(dist))
	return t
}

func (b *LuaBrain) Close() error {
	if b != nil && b.L != nil {
		b.L.Close()
		b.L = nil
	}
	return nil
}

// CPUController drives one slot from a brain by holding the first bound
// source of each chosen action. Sources from the previous tick are released
// first so the mapper stays level-triggered.
type CPUController struct {
	Slot  int
	Brain Brain

	held []string
}

func NewCPUController(slot int, brain Brain) *CPUController {
	return &CPUController{Slot: slot, Brain: brain}
}

func (c *CPUController) Drive(m *Match) error {
	if c == nil || c.Brain == nil || m == nil {
		return nil
	}
	for _, src := range c.held {
		m.Input.SetDown(src, false)
	}
	c.held = c.held[:0]

	self := m.Fighter(c.Slot)
	if self == nil || m.Over {
		return nil
	}

	actions, err := c.Brain.Think(NewBrainView(m, c.Slot))
	if err != nil {
		return err
	}

	player := obj.PlayerForSlot(c.Slot)
	for _, a := range actions {
		sources := m.Input.Bound(player, obj.Action(a))
		if len(sources) == 0 {
			continue
		}
		m.Input.SetDown(sources[0], true)
		c.held = append(c.held, sources[0])
	}
	return nil
}

func (c *CPUController) Close() error {
	if c == nil || c.Brain == nil {
		return nil
	}
	return c.Brain.Close()
}
