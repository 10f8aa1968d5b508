package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MatchConfigFile is the embedded match tuning file.
const MatchConfigFile = "match.yaml"

// MatchConfig carries every tunable number the combat core uses. Times are in
// seconds, speeds in world units per second.
type MatchConfig struct {
	AttackDuration  float64 `yaml:"attack_duration"`
	HitRecovery     float64 `yaml:"hit_recovery"`
	SpecialDuration float64 `yaml:"special_duration"`

	ComboGate    float64 `yaml:"combo_gate"`
	ComboDecay   float64 `yaml:"combo_decay"`
	ComboRegen   float64 `yaml:"combo_regen"`
	BlockRegen   float64 `yaml:"block_regen"`
	StaminaRegen float64 `yaml:"stamina_regen"`
	ComboScaling float64 `yaml:"combo_scaling"`
	BlockChip    float64 `yaml:"block_chip"`
	BlockDrain   float64 `yaml:"block_drain"`

	DodgeCooldown      float64 `yaml:"dodge_cooldown"`
	DodgeInvincibility float64 `yaml:"dodge_invincibility"`

	Dash DashConfig `yaml:"dash"`

	Gravity          float64 `yaml:"gravity"`
	VerticalImpulse  float64 `yaml:"vertical_impulse"`
	KnockdownImpulse float64 `yaml:"knockdown_impulse"`
	TeleportOffset   float64 `yaml:"teleport_offset"`
	CornerDistance   float64 `yaml:"corner_distance"`

	HitStop     HitStopConfig     `yaml:"hit_stop"`
	ScreenShake ScreenShakeConfig `yaml:"screen_shake"`
	Comeback    ComebackConfig    `yaml:"comeback"`
	Camera      CameraConfig      `yaml:"camera"`
	Stage       StageConfig       `yaml:"stage"`

	// MaxStep caps the seconds a single tick may advance. Zero disables the cap.
	MaxStep float64 `yaml:"max_step"`
}

type DashConfig struct {
	Cost         float64 `yaml:"cost"`
	SpeedFactor  float64 `yaml:"speed_factor"`
	CancelWindow float64 `yaml:"cancel_window"`
	AfterImages  int     `yaml:"after_images"`
	Opacity      float64 `yaml:"opacity"`
}

type HitStopConfig struct {
	LightFrames int     `yaml:"light_frames"`
	HeavyFrames int     `yaml:"heavy_frames"`
	TimeScale   float64 `yaml:"time_scale"`
}

// ScreenShakeConfig describes the heavy-hit shake. A hit sets the shake timer to Duration; while it
// runs the view jitters by up to timer×Intensity pixels.
type ScreenShakeConfig struct {
	Duration  float64 `yaml:"duration"`
	Intensity float64 `yaml:"intensity"`
}

type ComebackConfig struct {
	Threshold    float64 `yaml:"threshold"`
	DamageBoost  float64 `yaml:"damage_boost"`
	DefenseBoost float64 `yaml:"defense_boost"`
}

type CameraConfig struct {
	// Smooth is the per-tick follow factor; 0 snaps to the fighters.
	Smooth         float64 `yaml:"smooth"`
	CloseDistance  float64 `yaml:"close_distance"`
	CloseZoom      float64 `yaml:"close_zoom"`
	VerticalOffset float64 `yaml:"vertical_offset"`
}

type StageConfig struct {
	Width   float64 `yaml:"width"`
	GroundY float64 `yaml:"ground_y"`
	P1X     float64 `yaml:"p1_x"`
	P2X     float64 `yaml:"p2_x"`
}

// DefaultMatchConfig returns the stock tuning.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		AttackDuration:  0.2,
		HitRecovery:     0.3,
		SpecialDuration: 0.4,

		ComboGate:    20,
		ComboDecay:   15,
		ComboRegen:   5,
		BlockRegen:   10,
		StaminaRegen: 5,
		ComboScaling: 0.8,
		BlockChip:    0.3,
		BlockDrain:   0.7,

		DodgeCooldown:      1.5,
		DodgeInvincibility: 0.25,

		Dash: DashConfig{
			Cost:         15,
			SpeedFactor:  2.5,
			CancelWindow: 0.15,
			AfterImages:  3,
			Opacity:      0.7,
		},

		Gravity:          1800,
		VerticalImpulse:  300,
		KnockdownImpulse: 900,
		TeleportOffset:   100,
		CornerDistance:   60,

		HitStop:     HitStopConfig{LightFrames: 8, HeavyFrames: 12, TimeScale: 0.1},
		ScreenShake: ScreenShakeConfig{Duration: 0.1, Intensity: 50},
		Comeback:    ComebackConfig{Threshold: 0.3, DamageBoost: 1.2, DefenseBoost: 0.8},
		Camera:      CameraConfig{CloseDistance: 200, CloseZoom: 1.2, VerticalOffset: 50},
		Stage:       StageConfig{Width: 800, GroundY: 300, P1X: 200, P2X: 600},

		MaxStep: 1.0 / 15.0,
	}
}

// ParseMatchConfig overlays YAML onto the defaults; keys the document omits
// keep their default values.
func ParseMatchConfig(data []byte) (MatchConfig, error) {
	cfg := DefaultMatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultMatchConfig(), fmt.Errorf("prefabs: match config: %w", err)
	}
	return cfg, nil
}

// LoadMatchConfig reads the named tuning file through Load.
func LoadMatchConfig(name string) (MatchConfig, error) {
	if name == "" {
		name = MatchConfigFile
	}
	data, err := Load(name)
	if err != nil {
		return DefaultMatchConfig(), fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseMatchConfig(data)
}
