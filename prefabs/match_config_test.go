package prefabs

import (
	"math"
	"testing"
)

func TestLoadMatchConfigEmbedded(t *testing.T) {
	cfg, err := LoadMatchConfig(MatchConfigFile)
	if err != nil {
		t.Fatalf("LoadMatchConfig: %v", err)
	}
	def := DefaultMatchConfig()
	if math.Abs(cfg.MaxStep-def.MaxStep) > 1e-6 {
		t.Fatalf("max_step = %v, want ~%v", cfg.MaxStep, def.MaxStep)
	}
	cfg.MaxStep = def.MaxStep
	if cfg != def {
		t.Fatalf("embedded match.yaml drifted from defaults:\n got %+v\nwant %+v", cfg, def)
	}
}

func TestParseMatchConfigOverlay(t *testing.T) {
	cfg, err := ParseMatchConfig([]byte("attack_duration: 0.25\ncomeback:\n  threshold: 0.5\n"))
	if err != nil {
		t.Fatalf("ParseMatchConfig: %v", err)
	}
	if cfg.AttackDuration != 0.25 {
		t.Fatalf("attack_duration = %v", cfg.AttackDuration)
	}
	if cfg.Comeback.Threshold != 0.5 || cfg.Comeback.DamageBoost != 1.2 {
		t.Fatalf("comeback = %+v", cfg.Comeback)
	}
	if cfg.HitRecovery != 0.3 || cfg.HitStop.HeavyFrames != 12 {
		t.Fatalf("untouched defaults changed: %+v", cfg)
	}
}

func TestParseMatchConfigInvalid(t *testing.T) {
	cfg, err := ParseMatchConfig([]byte("attack_duration: [oops"))
	if err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
	if cfg != DefaultMatchConfig() {
		t.Fatalf("malformed yaml should fall back to defaults")
	}
}

func TestLoadBindingsEmbedded(t *testing.T) {
	b, err := LoadBindings(BindingsFile)
	if err != nil {
		t.Fatalf("LoadBindings: %v", err)
	}
	cases := []struct {
		player, action, first string
	}{
		{"player1", "light", "J"},
		{"player1", "jump", "Space"},
		{"player1", "right", "D"},
		{"player2", "block", "Comma"},
		{"player2", "dodge", "Period"},
		{"player2", "left", "ArrowLeft"},
		{"player1", "throw", "H"},
		{"player2", "throw", "B"},
	}
	for _, c := range cases {
		t.Run(c.player+"_"+c.action, func(t *testing.T) {
			sources := b[c.player][c.action]
			if len(sources) == 0 || sources[0] != c.first {
				t.Fatalf("%s.%s = %q, want first %q", c.player, c.action, sources, c.first)
			}
		})
	}
	if len(b["player1"]) != 11 || len(b["player2"]) != 11 {
		t.Fatalf("expected 11 actions per player, got %d/%d", len(b["player1"]), len(b["player2"]))
	}
}

func TestParseBindingsMultipleSources(t *testing.T) {
	b, err := ParseBindings([]byte("[player1]\nlight = J, K ,pad0.RightLeft\n"))
	if err != nil {
		t.Fatalf("ParseBindings: %v", err)
	}
	got := b["player1"]["light"]
	if len(got) != 3 || got[1] != "K" || got[2] != "pad0.RightLeft" {
		t.Fatalf("light = %q", got)
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"cpu.tengo":                 "scripts/cpu.tengo",
		"scripts/cpu.lua":           "scripts/cpu.lua",
		"prefabs/scripts/cpu.tengo": "scripts/cpu.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := LoadScript("cpu.tengo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}
