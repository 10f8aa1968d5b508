package prefabs

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// BindingsFile is the embedded key binding table.
const BindingsFile = "bindings.ini"

// Bindings maps a player section ("player1") to action → raw source names.
// An action bound to several sources is active while any of them is down.
type Bindings map[string]map[string][]string

// ParseBindings reads an ini document with one section per player.
func ParseBindings(data []byte) (Bindings, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: bindings: %w", err)
	}
	out := Bindings{}
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}
		actions := make(map[string][]string, len(section.Keys()))
		for _, key := range section.Keys() {
			sources := key.Strings(",")
			if len(sources) == 0 {
				continue
			}
			actions[key.Name()] = sources
		}
		out[section.Name()] = actions
	}
	return out, nil
}

// LoadBindings reads the named binding file through Load.
func LoadBindings(name string) (Bindings, error) {
	if name == "" {
		name = BindingsFile
	}
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseBindings(data)
}
