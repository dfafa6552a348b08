package renderer

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

type EndBehaviour int

const (
	LOOP EndBehaviour = iota
	REVERSE
	STOP
)

func (e EndBehaviour) String() string {
	switch e {
	case LOOP:
		return "LOOP"
	case REVERSE:
		return "REVERSE"
	case STOP:
		return "STOP"
	}
	return fmt.Sprintf("EndBehaviour(%d)", int(e))
}

func ParseEndBehaviour(s string) (EndBehaviour, error) {
	switch s {
	case "LOOP":
		return LOOP, nil
	case "REVERSE":
		return REVERSE, nil
	case "STOP":
		return STOP, nil
	}
	return LOOP, fmt.Errorf("end behaviour %q: %w", s, core.ErrInvalidValue)
}

// Range is a half-open span of frames [Start, End).
type Range struct {
	Start, End int
}

/**
 * @brief Animation is the frame state machine of an animated sprite. It walks a
 * table of uv rectangles at a signed frame rate, moving one frame per update
 * once the accumulated time reaches 1/|fps|. Reaching either end of the active
 * range applies the end behaviour and fires OnComplete.
 */
type Animation struct {
	frames     []math.Vec4
	fps        float32
	changeTime time.Duration
	elapsed    time.Duration
	current    int
	playing    bool
	behaviour  EndBehaviour

	ranges     map[string]Range
	active     Range
	activeName string

	// frameChanged is called whenever the current frame moves.
	frameChanged func()
	// OnComplete fires once per boundary event, after the end behaviour ran.
	OnComplete func()
}

// GenerateFrames walks a texture atlas left to right, then top to bottom,
// producing numFrames uv rectangles of frameWidth x frameHeight pixels.
func GenerateFrames(numFrames int, frameWidth, frameHeight, textureWidth, textureHeight float32) []math.Vec4 {
	frames := make([]math.Vec4, numFrames)
	if textureWidth <= 0 || textureHeight <= 0 {
		return frames
	}
	fw := frameWidth / textureWidth
	fh := frameHeight / textureHeight
	var x, y float32
	for i := range frames {
		u := x / textureWidth
		v := y / textureHeight
		frames[i] = math.NewVec4(u, v, u+fw, v+fh)
		x += frameWidth
		if x >= textureWidth {
			x = 0
			y += frameHeight
		}
	}
	return frames
}

func NewAnimation(frames []math.Vec4, fps float32) *Animation {
	a := &Animation{
		frames:    frames,
		behaviour: LOOP,
		ranges:    make(map[string]Range),
		active:    Range{Start: 0, End: len(frames)},
	}
	a.SetFps(fps)
	return a
}

func (a *Animation) Frames() []math.Vec4 {
	return a.frames
}

func (a *Animation) NumberOfFrames() int {
	return len(a.frames)
}

func (a *Animation) Fps() float32 {
	return a.fps
}

// SetFps also recomputes the change time from |fps|. Zero fps never steps.
func (a *Animation) SetFps(fps float32) {
	a.fps = fps
	if fps == 0 {
		a.changeTime = 0
		return
	}
	a.changeTime = time.Duration(float64(time.Second) / float64(math.Abs(fps)))
}

func (a *Animation) ChangeTime() time.Duration {
	return a.changeTime
}

func (a *Animation) Playing() bool {
	return a.playing
}

func (a *Animation) SetPlaying(p bool) {
	a.playing = p
}

func (a *Animation) EndBehaviour() EndBehaviour {
	return a.behaviour
}

func (a *Animation) SetEndBehaviour(b EndBehaviour) {
	a.behaviour = b
}

func (a *Animation) CurrentFrame() int {
	return a.current
}

func (a *Animation) SetCurrentFrame(frame int) error {
	if frame < 0 || frame >= len(a.frames) {
		return fmt.Errorf("frame %d of %d: %w", frame, len(a.frames), core.ErrIndexOutOfRange)
	}
	a.setFrame(frame)
	return nil
}

func (a *Animation) setFrame(frame int) {
	a.current = frame
	if a.frameChanged != nil {
		a.frameChanged()
	}
}

// CurrentUV is the uv rectangle for the frame on screen.
func (a *Animation) CurrentUV() math.Vec4 {
	if len(a.frames) == 0 {
		return math.NewVec4(0, 0, 1, 1)
	}
	return a.frames[math.Clamp(a.current, 0, len(a.frames)-1)]
}

// AddRange registers a named frame span.
func (a *Animation) AddRange(name string, r Range) error {
	if r.Start < 0 || r.End > len(a.frames) || r.Start > r.End {
		return fmt.Errorf("animation `%s` [%d,%d) of %d frames: %w", name, r.Start, r.End, len(a.frames), core.ErrIndexOutOfRange)
	}
	a.ranges[name] = r
	return nil
}

func (a *Animation) HasRange(name string) bool {
	_, ok := a.ranges[name]
	return ok
}

func (a *Animation) ActiveRange() Range {
	return a.active
}

func (a *Animation) ActiveName() string {
	return a.activeName
}

// Play switches to a named range and jumps to its first frame.
func (a *Animation) Play(name string) error {
	r, ok := a.ranges[name]
	if !ok {
		return fmt.Errorf("animation `%s`: %w", name, core.ErrUnknownAnimation)
	}
	a.active = r
	a.activeName = name
	a.setFrame(r.Start)
	return nil
}

func (a *Animation) CanUpdate() bool {
	return a.playing
}

// Update advances at most one frame. The accumulator keeps the remainder.
func (a *Animation) Update(dt time.Duration) {
	if !a.playing || a.changeTime == 0 {
		return
	}
	a.elapsed += dt
	if a.elapsed < a.changeTime {
		return
	}
	a.elapsed -= a.changeTime
	if a.fps > 0 {
		a.setFrame(a.current + 1)
	} else {
		a.setFrame(a.current - 1)
	}
	a.checkBounds()
}

func (a *Animation) checkBounds() {
	if (a.fps > 0 && a.current >= a.active.End) || (a.fps < 0 && a.current < a.active.Start) {
		a.endReached()
	}
}

func (a *Animation) endReached() {
	first := a.active.Start
	last := math.Clamp(a.active.End-1, first, len(a.frames)-1)
	if last < first {
		last = first
	}

	switch a.behaviour {
	case LOOP:
		if a.fps > 0 {
			a.setFrame(first)
		} else {
			a.setFrame(last)
		}
	case REVERSE:
		if a.fps > 0 {
			a.setFrame(math.Clamp(last-1, first, last))
		} else {
			a.setFrame(math.Clamp(first+1, first, last))
		}
		a.SetFps(-a.fps)
	case STOP:
		a.playing = false
		if a.fps > 0 {
			a.setFrame(last)
		} else {
			a.setFrame(first)
		}
	}
	if a.OnComplete != nil {
		a.OnComplete()
	}
}

func (a *Animation) dispose() {
	a.OnComplete = nil
	a.frameChanged = nil
	a.playing = false
}
