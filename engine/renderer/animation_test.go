package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

func frames(n int) []math.Vec4 {
	return GenerateFrames(n, 64, 64, 128, 128)
}

func step(a *Animation, n int, dt time.Duration) []int {
	var seen []int
	for i := 0; i < n; i++ {
		a.Update(dt)
		seen = append(seen, a.CurrentFrame())
	}
	return seen
}

func TestGenerateFramesWalksAtlasRows(t *testing.T) {
	f := GenerateFrames(3, 64, 64, 128, 128)
	assert.Equal(t, math.NewVec4(0, 0, 0.5, 0.5), f[0])
	assert.Equal(t, math.NewVec4(0.5, 0, 1, 0.5), f[1])
	assert.Equal(t, math.NewVec4(0, 0.5, 0.5, 1), f[2])
}

func TestLoopWrapsToFirstFrame(t *testing.T) {
	a := NewAnimation(frames(4), 4)
	a.SetPlaying(true)
	completed := 0
	a.OnComplete = func() { completed++ }

	seen := step(a, 4, 250*time.Millisecond)
	assert.Equal(t, []int{1, 2, 3, 0}, seen)
	assert.Equal(t, 1, completed)
	assert.True(t, a.Playing())
}

func TestReverseFlipsDirectionOnce(t *testing.T) {
	a := NewAnimation(frames(4), 4)
	a.SetEndBehaviour(REVERSE)
	a.SetPlaying(true)

	seen := step(a, 4, 250*time.Millisecond)
	assert.Equal(t, []int{1, 2, 3, 2}, seen)
	assert.Equal(t, float32(-4), a.Fps())

	seen = step(a, 3, 250*time.Millisecond)
	assert.Equal(t, []int{1, 0, 1}, seen)
	assert.Equal(t, float32(4), a.Fps())
}

func TestStopHoldsLastFrame(t *testing.T) {
	a := NewAnimation(frames(4), 8)
	a.SetEndBehaviour(STOP)
	a.SetPlaying(true)
	completed := 0
	a.OnComplete = func() { completed++ }

	step(a, 5, a.ChangeTime())
	assert.Equal(t, 3, a.CurrentFrame())
	assert.False(t, a.Playing())
	assert.False(t, a.CanUpdate())
	assert.Equal(t, 1, completed)
}

func TestSingleStepPerUpdate(t *testing.T) {
	a := NewAnimation(frames(4), 10)
	a.SetPlaying(true)

	a.Update(time.Second)
	assert.Equal(t, 1, a.CurrentFrame())

	a.Update(10 * time.Millisecond)
	assert.Equal(t, 2, a.CurrentFrame(), "the remainder carries over")
}

func TestNamedRanges(t *testing.T) {
	a := NewAnimation(frames(4), 4)
	require.NoError(t, a.AddRange("Idle", Range{Start: 0, End: 0}))
	require.NoError(t, a.AddRange("Run", Range{Start: 1, End: 4}))
	assert.ErrorIs(t, a.AddRange("Bad", Range{Start: 2, End: 9}), core.ErrIndexOutOfRange)
	assert.ErrorIs(t, a.Play("Fly"), core.ErrUnknownAnimation)

	require.NoError(t, a.Play("Run"))
	a.SetPlaying(true)
	assert.Equal(t, []int{2, 3, 1, 2}, step(a, 4, 250*time.Millisecond))

	require.NoError(t, a.Play("Idle"))
	assert.Equal(t, []int{0, 0}, step(a, 2, 250*time.Millisecond))
}

func TestAnimatedSpriteInvalidatesVerticesOnFrameChange(t *testing.T) {
	f := newFixture(t)
	tex, err := f.textures.Acquire("coin.png")
	require.NoError(t, err)
	reg := &fakeRegistry{}

	a := NewAnimatedSprite(f.canvas, &AnimatedSpriteConfig{
		Texture: tex, FrameWidth: 64, FrameHeight: 64, NumberOfFrames: 4, Fps: 10, Registry: reg,
	})
	require.Len(t, reg.entries, 1)
	a.SetPlaying(true)

	f.renderer.Update()
	assert.False(t, a.VerticesInvalid())
	a.Update(100 * time.Millisecond)
	assert.True(t, a.VerticesInvalid())

	f.renderer.Update()
	uv := a.CurrentUV()
	v := a.Vertices()
	assert.Equal(t, uv.X, v[3])
	assert.Equal(t, uv.W, v[4])

	a.Dispose()
	assert.Empty(t, reg.entries)
	assert.Nil(t, a.OnComplete)
	assert.Equal(t, 0, f.textures.refs["coin.png"])
}

func TestAnimatedSpriteFromData(t *testing.T) {
	f := newFixture(t)
	reg := &fakeRegistry{}
	rec := content.ParseRecord("AnimatedSprite,Texture|coin.png,ImageSize|64|64,Fps|10,NumberOfFrames|4,EndBehaviour|REVERSE,Playing|true,CurrentFrame|2,Position|5|6")

	a, err := NewAnimatedSpriteFromData(f.canvas, reg, rec.Data())
	require.NoError(t, err)
	assert.Equal(t, REVERSE, a.EndBehaviour())
	assert.True(t, a.Playing())
	assert.Equal(t, 2, a.CurrentFrame())
	assert.Equal(t, float32(64), a.Width())
	assert.Equal(t, math.NewVec2(5, 6), a.Position())
	assert.Len(t, reg.entries, 1)

	_, err = NewAnimatedSpriteFromData(f.canvas, reg, content.ParseRecord("AnimatedSprite,Texture|coin.png").Data())
	assert.ErrorIs(t, err, core.ErrMissingField)

	_, err = NewAnimatedSpriteFromData(f.canvas, reg, content.ParseRecord("AnimatedSprite,Texture|coin.png,NumberOfFrames|4,EndBehaviour|BOUNCE").Data())
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}
