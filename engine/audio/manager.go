// Package audio mixes music and effects through beep with per-category volumes.
package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"

	"github.com/spaghettifunk/zippy/engine/core"
)

const DEFAULT_SAMPLE_RATE beep.SampleRate = 44100

type ManagerConfig struct {
	Enabled      bool
	MasterVolume float32
	MusicVolume  float32
	EffectVolume float32
	SampleRate   beep.SampleRate
	// Output defaults to the system speaker, or a NullOutput when disabled.
	Output Output
}

type Manager struct {
	output  Output
	rate    beep.SampleRate
	master  float32
	volumes map[Category]float32
	sounds  map[string]*Sound
	players []*Player

	paused   bool
	disposed bool
}

func NewManager(config *ManagerConfig) (*Manager, error) {
	rate := config.SampleRate
	if rate <= 0 {
		rate = DEFAULT_SAMPLE_RATE
	}
	output := config.Output
	if output == nil {
		if config.Enabled {
			output = NewSpeakerOutput()
		} else {
			output = NewNullOutput()
		}
	}
	if err := output.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		err = fmt.Errorf("func NewManager - failed to open audio output: %w: %v", core.ErrServiceUnavailable, err)
		core.LogError("%s", err)
		return nil, err
	}

	m := &Manager{
		output: output,
		rate:   rate,
		master: float32(clampVolume(config.MasterVolume)),
		volumes: map[Category]float32{
			MUSIC:  float32(clampVolume(config.MusicVolume)),
			EFFECT: float32(clampVolume(config.EffectVolume)),
		},
		sounds: make(map[string]*Sound),
	}
	core.LogInfo("audio initialised at %d Hz", int(rate))
	return m, nil
}

func (m *Manager) SampleRate() beep.SampleRate {
	return m.rate
}

// LoadSound decodes a wav clip and caches it by name. A cached name is
// returned as is.
func (m *Manager) LoadSound(name string, r io.Reader) (*Sound, error) {
	if s, ok := m.sounds[name]; ok {
		return s, nil
	}
	s, err := DecodeSound(name, r, m.rate)
	if err != nil {
		return nil, err
	}
	m.sounds[name] = s
	return s, nil
}

func (m *Manager) AddSound(s *Sound) {
	m.sounds[s.Name] = s
}

func (m *Manager) Sound(name string) (*Sound, error) {
	s, ok := m.sounds[name]
	if !ok {
		return nil, fmt.Errorf("func Sound - `%s`: %w", name, core.ErrNotFound)
	}
	return s, nil
}

func (m *Manager) NewPlayer(sound *Sound, category Category) *Player {
	return &Player{manager: m, sound: sound, category: category, volume: 1}
}

// PlayEffect fires a one-shot effect.
func (m *Manager) PlayEffect(sound *Sound) *Player {
	p := m.NewPlayer(sound, EFFECT)
	if err := p.Play(); err != nil {
		core.LogWarn("%s", err)
	}
	return p
}

func (m *Manager) track(p *Player) {
	if p.tracked {
		return
	}
	p.tracked = true
	m.players = append(m.players, p)
}

func (m *Manager) Players() int {
	return len(m.players)
}

func (m *Manager) gainFor(c Category) float64 {
	return float64(m.master) * float64(m.volumes[c])
}

func (m *Manager) MasterVolume() float32 {
	return m.master
}

func (m *Manager) SetMasterVolume(v float32) {
	m.master = float32(clampVolume(v))
	m.reapply()
}

func (m *Manager) Volume(c Category) float32 {
	return m.volumes[c]
}

func (m *Manager) SetVolume(c Category, v float32) {
	m.volumes[c] = float32(clampVolume(v))
	m.reapply()
}

func (m *Manager) reapply() {
	for _, p := range m.players {
		p.applyGain()
	}
}

func (m *Manager) Paused() bool {
	return m.paused
}

// Pause holds every stream in place. Players paused on their own stay
// paused after Resume.
func (m *Manager) Pause() {
	m.paused = true
	for _, p := range m.players {
		p.setPaused(true)
	}
}

func (m *Manager) Resume() {
	m.paused = false
	for _, p := range m.players {
		p.setPaused(p.paused)
	}
}

func (m *Manager) CanUpdate() bool {
	return !m.disposed
}

// Update sweeps finished and stopped players and fires their OnFinish.
func (m *Manager) Update(dt time.Duration) {
	var finished []*Player
	live := m.players[:0]
	for _, p := range m.players {
		if p.finished() {
			finished = append(finished, p)
		}
		if p.playing && !p.disposed {
			live = append(live, p)
			continue
		}
		p.tracked = false
	}
	for i := len(live); i < len(m.players); i++ {
		m.players[i] = nil
	}
	m.players = live

	for _, p := range finished {
		if p.OnFinish != nil {
			p.OnFinish()
		}
	}
}

func (m *Manager) Dispose() {
	if m.disposed {
		return
	}
	for _, p := range m.players {
		p.Dispose()
	}
	m.players = nil
	m.output.Clear()
	m.output.Close()
	m.disposed = true
}
