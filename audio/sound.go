package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/stickclash/component"
)

const sampleRate = beep.SampleRate(44100)

// Sound names one synthesized cue.
type Sound int

const (
	SoundNone Sound = iota
	SoundLightHit
	SoundHeavyHit
	SoundBlock
	SoundArmor
	SoundSpecial
	SoundDash
	SoundRoute
	SoundKO
)

// SoundFor picks the cue for a combat event.
func SoundFor(evt component.CombatEvent) (Sound, bool) {
	switch evt.Type {
	case component.EventHitLanded:
		switch {
		case evt.Blocked:
			return SoundBlock, true
		case evt.Kind == component.AttackHeavy || evt.Kind == component.AttackSpecial:
			return SoundHeavyHit, true
		}
		return SoundLightHit, true
	case component.EventArmorTriggered:
		return SoundArmor, true
	case component.EventSpecialCast:
		return SoundSpecial, true
	case component.EventDashStarted:
		return SoundDash, true
	case component.EventComboRoute:
		return SoundRoute, true
	case component.EventKO:
		return SoundKO, true
	}
	return SoundNone, false
}

// Create builds a fresh, finite streamer for s at the given volume (0..1).
func Create(s Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	var out beep.Streamer
	switch s {
	case SoundLightHit:
		d := 80 * time.Millisecond
		out = NewEnvelope(NewOscillator(220, -80, d, WaveSquare, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
		out = newVolume(out, 0.35)
	case SoundHeavyHit:
		d := 180 * time.Millisecond
		body := NewEnvelope(NewOscillator(110, -60, d, WaveSaw, rate), d, 2*time.Millisecond, 140*time.Millisecond, rate)
		crack := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), d, time.Millisecond, 170*time.Millisecond, rate)
		out = beep.Mix(newVolume(body, 0.5), newVolume(crack, 0.3))
	case SoundBlock:
		d := 60 * time.Millisecond
		out = NewEnvelope(NewOscillator(660, 0, d, WaveSquare, rate), d, time.Millisecond, 40*time.Millisecond, rate)
		out = newVolume(out, 0.2)
	case SoundArmor:
		d := 150 * time.Millisecond
		fund := NewEnvelope(NewOscillator(440, 0, d, WaveSine, rate), d, time.Millisecond, 120*time.Millisecond, rate)
		over := NewEnvelope(NewOscillator(880, 0, d, WaveSine, rate), d, time.Millisecond, 60*time.Millisecond, rate)
		out = beep.Mix(newVolume(fund, 0.6), newVolume(over, 0.3))
	case SoundSpecial:
		d := 300 * time.Millisecond
		out = NewEnvelope(NewOscillator(330, 440, d, WaveSaw, rate), d, 20*time.Millisecond, 150*time.Millisecond, rate)
		out = newVolume(out, 0.3)
	case SoundDash:
		d := 120 * time.Millisecond
		out = NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), d, 30*time.Millisecond, 80*time.Millisecond, rate)
		out = newVolume(out, 0.2)
	case SoundRoute:
		d := 100 * time.Millisecond
		first := NewEnvelope(NewOscillator(880, 0, d, WaveSine, rate), d, time.Millisecond, 50*time.Millisecond, rate)
		second := NewEnvelope(NewOscillator(1320, 0, d, WaveSine, rate), d, time.Millisecond, 80*time.Millisecond, rate)
		out = beep.Seq(newVolume(first, 0.4), newVolume(second, 0.4))
	case SoundKO:
		d := 600 * time.Millisecond
		out = NewEnvelope(NewOscillator(220, -180, d, WaveSaw, rate), d, 5*time.Millisecond, 400*time.Millisecond, rate)
		out = newVolume(out, 0.5)
	default:
		return beep.Silence(0)
	}
	return newVolume(out, vol)
}

// Manager plays combat cues through the speaker. Cues are mixed on the
// speaker's goroutine; Play only hands a streamer over under the speaker lock.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	played      int
}

func NewManager(volume float64) *Manager {
	return &Manager{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the audio device. Calling it twice is a no-op.
func (m *Manager) Init() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

func (m *Manager) SetMuted(muted bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

func (m *Manager) Muted() bool {
	if m == nil {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Play starts a cue. It does nothing before Init or while muted.
func (m *Manager) Play(s Sound) {
	if m == nil || s == SoundNone {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || m.muted {
		return
	}
	st := Create(s, sampleRate, m.volume)
	speaker.Lock()
	m.mixer.Add(st)
	speaker.Unlock()
	m.played++
}

// HandleEvent is a combat event handler that plays the matching cue.
func (m *Manager) HandleEvent(evt component.CombatEvent) {
	if s, ok := SoundFor(evt); ok {
		m.Play(s)
	}
}

// Played reports how many cues were handed to the mixer.
func (m *Manager) Played() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played
}

// Close stops every cue.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}
