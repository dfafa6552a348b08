package audio

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/spaghettifunk/zippy/engine/core"
)

type Category int

const (
	MUSIC Category = iota
	EFFECT
)

func (c Category) String() string {
	if c == MUSIC {
		return "MUSIC"
	}
	return "EFFECT"
}

/**
 * @brief A Player streams one Sound. Its gain is the product of the master
 * volume, its category volume and its own volume. Finished players are swept
 * from the manager on the next Update, which is also when OnFinish fires.
 */
type Player struct {
	manager  *Manager
	sound    *Sound
	category Category
	volume   float32
	loop     bool

	ctrl *beep.Ctrl
	gain *effects.Volume
	// done is replaced on every Play so a stopped stream cannot report completion.
	done *atomic.Bool

	playing  bool
	paused   bool
	tracked  bool
	disposed bool

	OnFinish func()
}

func (p *Player) Sound() *Sound {
	return p.sound
}

func (p *Player) Category() Category {
	return p.category
}

func (p *Player) Loop() bool {
	return p.loop
}

// SetLoop takes effect on the next Play.
func (p *Player) SetLoop(loop bool) {
	p.loop = loop
}

func (p *Player) Playing() bool {
	return p.playing
}

func (p *Player) Paused() bool {
	return p.paused
}

func (p *Player) Volume() float32 {
	return p.volume
}

func (p *Player) SetVolume(v float32) {
	p.volume = float32(clampVolume(v))
	p.applyGain()
}

func clampVolume(v float32) float64 {
	return math.Max(0, math.Min(1, float64(v)))
}

func (p *Player) applyGain() {
	if p.gain == nil {
		return
	}
	g := p.manager.gainFor(p.category) * float64(p.volume)
	p.manager.output.Lock()
	if g <= 0 {
		p.gain.Silent = true
	} else {
		p.gain.Silent = false
		p.gain.Volume = math.Log2(g)
	}
	p.manager.output.Unlock()
}

// Play restarts the sound from the beginning.
func (p *Player) Play() error {
	if p.disposed {
		return fmt.Errorf("func Play - player for `%s`: %w", p.sound.Name, core.ErrDisposed)
	}
	p.Stop()

	var source beep.Streamer = p.sound.stream()
	if p.loop {
		source = beep.Loop(-1, p.sound.stream())
	}
	done := new(atomic.Bool)
	p.done = done
	p.gain = &effects.Volume{
		Streamer: beep.Seq(source, beep.Callback(func() { done.Store(true) })),
		Base:     2,
	}
	p.ctrl = &beep.Ctrl{Streamer: p.gain, Paused: p.paused || p.manager.paused}
	p.applyGain()

	p.playing = true
	p.manager.track(p)
	p.manager.output.Play(p.ctrl)
	return nil
}

// Stop drops the stream without firing OnFinish.
func (p *Player) Stop() {
	if p.ctrl != nil {
		p.manager.output.Lock()
		p.ctrl.Streamer = nil
		p.manager.output.Unlock()
	}
	p.ctrl = nil
	p.gain = nil
	p.done = nil
	p.playing = false
}

func (p *Player) Pause() {
	p.paused = true
	p.setPaused(true)
}

func (p *Player) Resume() {
	p.paused = false
	p.setPaused(p.manager.paused)
}

func (p *Player) setPaused(paused bool) {
	if p.ctrl == nil {
		return
	}
	p.manager.output.Lock()
	p.ctrl.Paused = paused
	p.manager.output.Unlock()
}

// finished reports and consumes a completed stream.
func (p *Player) finished() bool {
	if p.done == nil || !p.done.Load() {
		return false
	}
	p.ctrl = nil
	p.gain = nil
	p.done = nil
	p.playing = false
	return true
}

func (p *Player) Dispose() {
	if p.disposed {
		return
	}
	p.Stop()
	p.OnFinish = nil
	p.disposed = true
}
