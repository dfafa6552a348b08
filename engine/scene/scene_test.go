package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/zippy/engine/core"
)

type member struct {
	parentVisible bool
	alpha         float32
	disposed      int
}

func (m *member) SetParentVisible(v bool) { m.parentVisible = v }
func (m *member) SetAlpha(a float32)      { m.alpha = a }
func (m *member) Dispose()                { m.disposed++ }

type registry struct {
	entries []core.Updatable
}

func (r *registry) Add(u core.Updatable) { r.entries = append(r.entries, u) }
func (r *registry) Remove(u core.Updatable) {
	for i, e := range r.entries {
		if e == u {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

type toggle struct{ enabled bool }

func (t *toggle) SetTouchEnabled(e bool) { t.enabled = e }

func TestSceneVisibilityPropagates(t *testing.T) {
	s := NewScene(nil)
	a := &member{parentVisible: true}
	s.Add(a)
	assert.False(t, a.parentVisible)

	s.SetVisible(true)
	assert.True(t, a.parentVisible)
	s.SetVisible(false)

	s.Remove(a)
	assert.True(t, a.parentVisible)
	assert.Empty(t, s.Members())
	s.Remove(a)
}

func TestSceneDisposeCascadesOnce(t *testing.T) {
	r := &registry{}
	s := NewScene(r)
	s.Attach(s)
	a, b := &member{}, &member{}
	s.Add(a)
	s.Add(b)
	assert.Len(t, r.entries, 1)

	s.Dispose()
	s.Dispose()
	assert.Equal(t, 1, a.disposed)
	assert.Equal(t, 1, b.disposed)
	assert.Empty(t, r.entries)
	assert.False(t, s.CanUpdate())
}

func TestFadeLerpsAndFiresOnce(t *testing.T) {
	r := &registry{}
	f := NewFadeScene(r)
	assert.Same(t, f, r.entries[0])
	m := &member{}
	f.Add(m)
	button := &toggle{enabled: true}
	f.AddControl(button)
	assert.False(t, f.CanUpdate())

	fired := 0
	f.StartFade(0, 1, func() { fired++ })
	assert.False(t, button.enabled)
	assert.True(t, f.CanUpdate())

	f.Update(165 * time.Millisecond)
	assert.InDelta(t, 0.5, m.alpha, 1e-4)
	assert.Equal(t, 0, fired)

	f.Update(200 * time.Millisecond)
	assert.Equal(t, float32(1), m.alpha)
	assert.Equal(t, 1, fired)
	assert.False(t, f.Fading())

	f.Update(time.Second)
	assert.Equal(t, 1, fired)
}

func TestRestartedFadeDropsOldHook(t *testing.T) {
	f := NewFadeScene(nil)
	first, second := 0, 0
	f.StartFade(1, 0, func() { first++ })
	f.StartFade(0, 1, func() { second++ })
	f.Update(FADE_TIME)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestDisposeDuringFadeNeverFires(t *testing.T) {
	r := &registry{}
	f := NewFadeScene(r)
	f.StartFade(0, 1, func() { t.Fatal("fired after dispose") })
	f.Dispose()
	f.Update(FADE_TIME)
	assert.Empty(t, r.entries)
}
