package system

import (
	"fmt"
	"os"

	"github.com/milk9111/stickclash/obj"
	"github.com/tidwall/sjson"
)

// Summary renders the match result and per-fighter counters as JSON.
func (m *Match) Summary() ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("system: summary of nil match")
	}
	doc := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	set("ticks", m.Ticks)
	set("elapsed", m.Elapsed)
	set("over", m.Over)
	set("winner", m.Winner)
	if w := m.Fighter(m.Winner); w != nil {
		set("winnerName", w.Name())
	}
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "fighters", []byte(`[]`))
	}

	for i, f := range []*obj.Fighter{m.P1, m.P2} {
		if err != nil {
			break
		}
		st := m.Stats[i]
		entry := []byte(`{}`)
		fields := []struct {
			path  string
			value any
		}{
			{"slot", f.Slot},
			{"name", f.Name()},
			{"archetype", f.Def.Archetype},
			{"health", f.Health.Current},
			{"maxHealth", f.Health.Max},
			{"hitsLanded", st.HitsLanded},
			{"hitsBlocked", st.HitsBlocked},
			{"armorAbsorbs", st.ArmorAbsorbs},
			{"damageDealt", st.DamageDealt},
			{"maxCombo", st.MaxCombo},
			{"specials", st.Specials},
			{"dashes", st.Dashes},
			{"routes", append([]string{}, st.Routes...)},
		}
		for _, fld := range fields {
			entry, err = sjson.SetBytes(entry, fld.path, fld.value)
			if err != nil {
				break
			}
		}
		if err == nil {
			doc, err = sjson.SetRawBytes(doc, "fighters.-1", entry)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("system: summary: %w", err)
	}
	return doc, nil
}

// WriteSummary writes the match summary to path.
func WriteSummary(path string, m *Match) error {
	data, err := m.Summary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("system: write summary %s: %w", path, err)
	}
	return nil
}
