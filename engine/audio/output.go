package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the device side of the mixer. Streamers handed to Play run on
// the audio thread; anything they read must be changed under Lock.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

type speakerOutput struct{}

// NewSpeakerOutput plays through the system audio device.
func NewSpeakerOutput() Output {
	return speakerOutput{}
}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Clear()               { speaker.Clear() }
func (speakerOutput) Close()               { speaker.Close() }

// NullOutput mixes into nothing unless pulled. Headless runs and tests use it.
type NullOutput struct {
	mu    sync.Mutex
	mixer beep.Mixer
}

func NewNullOutput() *NullOutput {
	return &NullOutput{}
}

func (o *NullOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return nil
}

func (o *NullOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s)
	o.mu.Unlock()
}

func (o *NullOutput) Lock()   { o.mu.Lock() }
func (o *NullOutput) Unlock() { o.mu.Unlock() }

func (o *NullOutput) Clear() {
	o.mu.Lock()
	o.mixer.Clear()
	o.mu.Unlock()
}

func (o *NullOutput) Close() {
	o.Clear()
}

// Pull streams n samples the way the device thread would and returns them.
func (o *NullOutput) Pull(n int) [][2]float64 {
	samples := make([][2]float64, n)
	o.mu.Lock()
	o.mixer.Stream(samples)
	o.mu.Unlock()
	return samples
}

// Streaming is the number of streamers still mixing.
func (o *NullOutput) Streaming() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mixer.Len()
}
