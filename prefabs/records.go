package prefabs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidFighterData is returned when fighters.json is not a roster.
var ErrInvalidFighterData = errors.New("invalid fighter data")

// RosterFile is the embedded fighter record set.
const RosterFile = "fighters.json"

// Roster is the decoded, template-resolved fighter record set.
type Roster struct {
	Fighters []FighterDefinition
}

// Find returns the fighter whose id or name matches identifier. Names match
// case-insensitively.
func (r *Roster) Find(identifier string) (*FighterDefinition, bool) {
	if r == nil || identifier == "" {
		return nil, false
	}
	for i := range r.Fighters {
		f := &r.Fighters[i]
		if f.ID == identifier || strings.EqualFold(f.Name, identifier) {
			return f, true
		}
	}
	return nil, false
}

// Names lists fighter names in record order.
func (r *Roster) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Fighters))
	for _, f := range r.Fighters {
		names = append(names, f.Label())
	}
	return names
}

// LoadRoster reads and parses the named roster file through Load.
func LoadRoster(name string) (*Roster, error) {
	if name == "" {
		name = RosterFile
	}
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	roster, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: parse %s: %w", name, err)
	}
	return roster, nil
}

// ParseRoster decodes either a bare array of fighter records or an object
// {"templates": {...}, "fighters": [...]}. Records naming a template are
// merged over it before decoding.
func ParseRoster(data []byte) (*Roster, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidFighterData)
	}
	root := gjson.ParseBytes(data)

	var records []gjson.Result
	templates := map[string]gjson.Result{}
	switch {
	case root.IsArray():
		records = root.Array()
	case root.IsObject():
		root.Get("templates").ForEach(func(key, value gjson.Result) bool {
			templates[key.String()] = value
			return true
		})
		fighters := root.Get("fighters")
		if !fighters.IsArray() {
			return nil, fmt.Errorf("%w: fighters must be an array", ErrInvalidFighterData)
		}
		records = fighters.Array()
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrInvalidFighterData)
	}

	roster := &Roster{Fighters: make([]FighterDefinition, 0, len(records))}
	for i, rec := range records {
		if !rec.IsObject() {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrInvalidFighterData, i)
		}
		resolved, err := ResolveTemplates(rec, templates)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		def, err := decodeDefinition(resolved)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		ApplyDefaults(&def)
		roster.Fighters = append(roster.Fighters, def)
	}
	return roster, nil
}

// ResolveTemplates shallow-merges the record over its named template: every
// top-level key of the record replaces the template's. Templates may name
// templates of their own.
func ResolveTemplates(record gjson.Result, templates map[string]gjson.Result) (gjson.Result, error) {
	return resolveTemplate(record, templates, map[string]bool{})
}

func resolveTemplate(record gjson.Result, templates map[string]gjson.Result, seen map[string]bool) (gjson.Result, error) {
	name := record.Get("template").String()
	if name == "" {
		return record, nil
	}
	if seen[name] {
		return gjson.Result{}, fmt.Errorf("%w: template cycle at %q", ErrInvalidFighterData, name)
	}
	base, ok := templates[name]
	if !ok {
		return gjson.Result{}, fmt.Errorf("%w: unknown template %q", ErrInvalidFighterData, name)
	}
	seen[name] = true
	base, err := resolveTemplate(base, templates, seen)
	if err != nil {
		return gjson.Result{}, err
	}

	merged := []byte(base.Raw)
	record.ForEach(func(key, value gjson.Result) bool {
		merged, err = sjson.SetRawBytes(merged, escapePath(key.String()), []byte(value.Raw))
		return err == nil
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: merge template %q: %v", ErrInvalidFighterData, name, err)
	}
	return gjson.ParseBytes(merged), nil
}

func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func decodeDefinition(r gjson.Result) (FighterDefinition, error) {
	d := FighterDefinition{
		ID:        r.Get("id").String(),
		Name:      r.Get("name").String(),
		Template:  r.Get("template").String(),
		Speed:     r.Get("speed").Float(),
		JumpForce: r.Get("jumpForce").Float(),
		Weapon:    r.Get("weapon").String(),
		Archetype: strings.ToLower(r.Get("archetype").String()),
		Stats: Stats{
			HP:    r.Get("stats.hp").Float(),
			Atk:   r.Get("stats.atk").Float(),
			Def:   r.Get("stats.def").Float(),
			Speed: r.Get("stats.speed").Float(),
		},
	}
	if !r.Get("speed").Exists() {
		d.Speed = d.Stats.Speed
	}

	if attacks := r.Get("attacks"); attacks.IsObject() {
		d.Attacks = make(map[component.AttackKind]Attack)
		attacks.ForEach(func(key, value gjson.Result) bool {
			d.Attacks[component.AttackKind(key.String())] = Attack{
				Damage:    value.Get("damage").Float(),
				Knockback: value.Get("knockback").Float(),
			}
			return true
		})
	}

	if special := r.Get("special"); special.IsObject() {
		d.Special = Special{
			Cooldown:    special.Get("cooldown").Float(),
			OnHitEffect: special.Get("onHitEffect").String(),
		}
	}

	if routes := r.Get("comboRoutes"); routes.IsArray() {
		d.ComboRoutes = make([]ComboRoute, 0)
		for _, route := range routes.Array() {
			d.ComboRoutes = append(d.ComboRoutes, decodeComboRoute(route))
		}
	}

	if spark := r.Get("hitSpark"); spark.IsObject() {
		d.HitSpark = HitSparkConfig{
			Count:  int(spark.Get("count").Int()),
			Spread: spark.Get("spread").Float(),
		}
		if c := spark.Get("color"); c.Exists() {
			col, err := ParseHexColor(c.String())
			if err != nil {
				return d, fmt.Errorf("%w: %s: hitSpark.color: %v", ErrInvalidFighterDefinition, d.Label(), err)
			}
			d.HitSpark.Color = col
		} else {
			d.HitSpark.Color = defaultHitSpark("").Color
		}
	}

	if rumble := r.Get("rumble"); rumble.IsObject() {
		d.Rumble = make(map[component.AttackKind]RumblePattern)
		rumble.ForEach(func(key, value gjson.Result) bool {
			d.Rumble[component.AttackKind(key.String())] = RumblePattern{
				Duration:  time.Duration(value.Get("duration").Int()) * time.Millisecond,
				Intensity: value.Get("intensity").Float(),
			}
			return true
		})
	}

	if boxes := r.Get("hitboxes"); boxes.IsArray() {
		d.Hitboxes = decodeRects(boxes)
	}
	if boxes := r.Get("hurtboxes"); boxes.IsArray() {
		d.Hurtboxes = decodeRects(boxes)
	}

	if trail := r.Get("visuals.trailColor"); trail.Exists() {
		col, err := ParseHexColor(trail.String())
		if err != nil {
			return d, fmt.Errorf("%w: %s: visuals.trailColor: %v", ErrInvalidFighterDefinition, d.Label(), err)
		}
		d.Visuals.TrailColor = col
	}
	return d, nil
}

func decodeComboRoute(r gjson.Result) ComboRoute {
	route := ComboRoute{
		Damage:           r.Get("damage").Float(),
		MeterGain:        r.Get("meterGain").Float(),
		ArmorFrames:      int(r.Get("armorFrames").Int()),
		RequiresCorner:   r.Get("requiresCorner").Bool(),
		RequiresGrounded: r.Get("requiresGrounded").Bool(),
	}
	input := r.Get("input")
	if input.IsArray() {
		for _, step := range input.Array() {
			route.Inputs = append(route.Inputs, step.String())
		}
	} else {
		route.Inputs = SplitRouteInput(input.String())
	}
	route.Name = r.Get("name").String()
	if route.Name == "" {
		route.Name = strings.Join(route.Inputs, "→")
	}
	return route
}

// SplitRouteInput splits "light→light→heavy" (or "light->light->heavy") into
// its steps.
func SplitRouteInput(s string) []string {
	s = strings.ReplaceAll(s, "->", "→")
	var steps []string
	for _, part := range strings.Split(s, "→") {
		part = strings.TrimSpace(part)
		if part != "" {
			steps = append(steps, part)
		}
	}
	return steps
}

func decodeRects(arr gjson.Result) []common.Rect {
	rects := make([]common.Rect, 0)
	for _, b := range arr.Array() {
		rects = append(rects, common.Rect{
			X:      b.Get("x").Float(),
			Y:      b.Get("y").Float(),
			Width:  b.Get("width").Float(),
			Height: b.Get("height").Float(),
		})
	}
	return rects
}
