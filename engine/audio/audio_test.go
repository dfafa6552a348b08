package audio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/core"
)

const testRate = beep.SampleRate(1000)

func constant(n int, v float64) beep.Streamer {
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	}))
}

func newTestManager(t *testing.T) (*Manager, *NullOutput) {
	out := NewNullOutput()
	m, err := NewManager(&ManagerConfig{
		MasterVolume: 1,
		MusicVolume:  1,
		EffectVolume: 1,
		SampleRate:   testRate,
		Output:       out,
	})
	require.NoError(t, err)
	return m, out
}

func tone(n int) *Sound {
	return NewSound("tone", constant(n, 0.8), beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2})
}

type failingOutput struct{ NullOutput }

func (*failingOutput) Init(beep.SampleRate, int) error { return errors.New("no device") }

func TestOutputFailureIsUnavailable(t *testing.T) {
	_, err := NewManager(&ManagerConfig{Output: &failingOutput{}})
	assert.ErrorIs(t, err, core.ErrServiceUnavailable)
}

func TestVolumesMultiply(t *testing.T) {
	m, out := newTestManager(t)
	m.SetMasterVolume(0.5)
	m.SetVolume(EFFECT, 0.5)

	p := m.PlayEffect(tone(100))
	got := out.Pull(10)
	assert.InDelta(t, 0.2, got[0][0], 1e-3)

	p.SetVolume(0.5)
	got = out.Pull(10)
	assert.InDelta(t, 0.1, got[0][0], 1e-3)

	m.SetVolume(EFFECT, 0)
	got = out.Pull(10)
	assert.Equal(t, 0.0, got[0][0])
	assert.Equal(t, float32(0.5), m.MasterVolume())
}

func TestFinishedPlayersAreSweptOnUpdate(t *testing.T) {
	m, out := newTestManager(t)
	p := m.PlayEffect(tone(50))
	finished := 0
	p.OnFinish = func() { finished++ }
	assert.Equal(t, 1, m.Players())

	out.Pull(100)
	assert.True(t, p.Playing())
	assert.Equal(t, 0, finished)

	m.Update(0)
	assert.False(t, p.Playing())
	assert.Equal(t, 1, finished)
	assert.Equal(t, 0, m.Players())

	m.Update(0)
	assert.Equal(t, 1, finished)
}

func TestStopDoesNotFinish(t *testing.T) {
	m, out := newTestManager(t)
	p := m.PlayEffect(tone(50))
	p.OnFinish = func() { t.Fatal("stopped player reported finish") }
	p.Stop()
	out.Pull(100)
	m.Update(0)
	assert.Equal(t, 0, m.Players())
	assert.Equal(t, 0, out.Streaming())
}

func TestLoopingMusicKeepsPlaying(t *testing.T) {
	m, out := newTestManager(t)
	p := m.NewPlayer(tone(20), MUSIC)
	p.SetLoop(true)
	require.NoError(t, p.Play())

	got := out.Pull(100)
	assert.InDelta(t, 0.8, got[99][0], 1e-3)
	m.Update(0)
	assert.True(t, p.Playing())
}

func TestPauseSilencesAndResumeRespectsPlayerPause(t *testing.T) {
	m, out := newTestManager(t)
	a := m.PlayEffect(tone(1000))
	b := m.PlayEffect(tone(1000))
	b.Pause()

	m.Pause()
	assert.Equal(t, 0.0, out.Pull(5)[0][0])

	m.Resume()
	assert.InDelta(t, 0.8, out.Pull(5)[0][0], 1e-3)
	assert.True(t, b.Paused())

	a.Pause()
	b.Resume()
	assert.InDelta(t, 0.8, out.Pull(5)[0][0], 1e-3)
}

func TestDisposedPlayerRefusesPlay(t *testing.T) {
	m, _ := newTestManager(t)
	p := m.NewPlayer(tone(10), EFFECT)
	p.Dispose()
	p.Dispose()
	assert.ErrorIs(t, p.Play(), core.ErrDisposed)

	m.Dispose()
	m.Dispose()
	assert.False(t, m.CanUpdate())
}

func TestLoadSoundResamplesWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coin.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: testRate / 2, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, constant(100, 0.25), format))
	require.NoError(t, f.Close())

	m, _ := newTestManager(t)
	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	s, err := m.LoadSound("coin.wav", r)
	require.NoError(t, err)
	assert.InDelta(t, 200, s.Len(), 4)
	assert.InDelta(t, 0.2, s.Duration(), 0.01)

	cached, err := m.Sound("coin.wav")
	require.NoError(t, err)
	assert.Same(t, s, cached)

	_, err = m.Sound("missing.wav")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestLoadSoundRejectsGarbage(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.LoadSound("bad.wav", strings.NewReader("not a wav"))
	assert.Error(t, err)
}
