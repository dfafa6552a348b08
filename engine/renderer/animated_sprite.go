package renderer

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// Registry is where animated sprites enrol for per-frame updates. The
// scheduler's UpdateManager satisfies it.
type Registry interface {
	Add(u core.Updatable)
	Remove(u core.Updatable)
}

// animatedQuad draws the current animation frame.
type animatedQuad struct {
	anim *Animation
}

func (q animatedQuad) GenerateVertices(d *Drawable) []metadata.Vertex {
	return quadVertices(d, q.anim.CurrentUV())
}

func (q animatedQuad) GenerateIndices(d *Drawable, base uint32) []uint32 {
	return quadIndices(base)
}

// AnimatedSprite is a sprite whose uv rectangle comes from an Animation.
type AnimatedSprite struct {
	*Sprite
	*Animation

	registry Registry
}

type AnimatedSpriteConfig struct {
	ZOrder         int
	Texture        *metadata.Texture
	FrameWidth     float32
	FrameHeight    float32
	NumberOfFrames int
	Fps            float32
	// Registry receives the sprite for per-frame updates; nil leaves it unscheduled.
	Registry Registry
}

func NewAnimatedSprite(canvas *Canvas, config *AnimatedSpriteConfig) *AnimatedSprite {
	var tw, th float32
	if config.Texture != nil {
		tw, th = config.Texture.Width, config.Texture.Height
	}
	anim := NewAnimation(GenerateFrames(config.NumberOfFrames, config.FrameWidth, config.FrameHeight, tw, th), config.Fps)

	s := newSprite(canvas, config.ZOrder, config.Texture, animatedQuad{anim: anim})
	s.SetWidth(config.FrameWidth)
	s.SetHeight(config.FrameHeight)
	anim.frameChanged = s.InvalidateVertices

	a := &AnimatedSprite{Sprite: s, Animation: anim, registry: config.Registry}
	if a.registry != nil {
		a.registry.Add(a)
	}
	s.OnDispose(func() {
		if a.registry != nil {
			a.registry.Remove(a)
		}
		a.Animation.dispose()
	})
	return a
}

// animatedFields are the keys on top of the sprite keys.
type animatedFields struct {
	imageSize      math.Vec2
	hasImageSize   bool
	fps            float32
	numberOfFrames int
	behaviour      string
	playing        bool
	currentFrame   int
}

func readAnimatedFields(r *content.Reader) animatedFields {
	return animatedFields{
		imageSize:      r.Vec2("ImageSize", math.NewVec2Zero()),
		hasImageSize:   r.Has("ImageSize"),
		fps:            r.Float("Fps", 0),
		numberOfFrames: r.RequireInt("NumberOfFrames"),
		behaviour:      r.String("EndBehaviour", LOOP.String()),
		playing:        r.Bool("Playing", false),
		currentFrame:   r.Int("CurrentFrame", 0),
	}
}

// NewAnimatedSpriteFromData reads the sprite keys plus ImageSize, Fps,
// NumberOfFrames, EndBehaviour, Playing and CurrentFrame.
func NewAnimatedSpriteFromData(canvas *Canvas, registry Registry, data content.Data) (*AnimatedSprite, error) {
	r := data.Reader()
	sf := readSpriteFields(r)
	af := readAnimatedFields(r)
	if err := r.Err(); err != nil {
		err = fmt.Errorf("func NewAnimatedSpriteFromData - %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	if af.numberOfFrames <= 0 {
		return nil, fmt.Errorf("func NewAnimatedSpriteFromData - NumberOfFrames %d: %w", af.numberOfFrames, core.ErrInvalidValue)
	}
	behaviour, err := ParseEndBehaviour(af.behaviour)
	if err != nil {
		return nil, fmt.Errorf("func NewAnimatedSpriteFromData - %w", err)
	}
	tex, err := sf.acquire(canvas)
	if err != nil {
		return nil, fmt.Errorf("func NewAnimatedSpriteFromData - %w", err)
	}

	size := af.imageSize
	if !af.hasImageSize {
		size = math.NewVec2(tex.Width, tex.Height)
	}
	a := NewAnimatedSprite(canvas, &AnimatedSpriteConfig{
		ZOrder:         sf.zOrder,
		Texture:        tex,
		FrameWidth:     size.X,
		FrameHeight:    size.Y,
		NumberOfFrames: af.numberOfFrames,
		Fps:            af.fps,
		Registry:       registry,
	})
	sf.apply(a.Sprite)
	a.SetEndBehaviour(behaviour)
	a.SetPlaying(af.playing)
	if err := a.SetCurrentFrame(af.currentFrame); err != nil {
		a.Dispose()
		return nil, fmt.Errorf("func NewAnimatedSpriteFromData - %w", err)
	}
	return a, nil
}
