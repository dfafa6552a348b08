package scenes

import (
	"time"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
	"github.com/spaghettifunk/zippy/game/constants"
)

type messageState int

const (
	MESSAGE_IDLE messageState = iota
	MESSAGE_TRANSITION_IN
	MESSAGE_HOLDING
	MESSAGE_FADING_OUT_TEXT
	MESSAGE_FADING_IN_TEXT
	MESSAGE_TRANSITION_OUT
)

const (
	MESSAGE_TRANSITION_TIME = 500 * time.Millisecond
	MESSAGE_TEXT_FADE_TIME  = 250 * time.Millisecond
	MESSAGE_HOLD_TIME       = 2 * time.Second
	// MESSAGE_FORCED_HOLD_TIME applies when ForceActive changes the text.
	MESSAGE_FORCED_HOLD_TIME = 3 * time.Second
)

/**
 * @brief FullscreenMessage covers the screen with a black background and a
 * line of centred text. It drives the transitions between states: fade in,
 * hold, swap the text, fade out. Each operation takes a completion hook that
 * fires at most once; starting another operation drops the previous hook.
 */
type FullscreenMessage struct {
	ctx        *Context
	background *renderer.Sprite
	text       *renderer.TextDisplay

	state    messageState
	nextText string
	timeLeft time.Duration
	onDone   core.Hook
	disposed bool
}

func NewFullscreenMessage(ctx *Context) (*FullscreenMessage, error) {
	m := &FullscreenMessage{ctx: ctx}
	pixel, err := ctx.UI.Textures().Acquire(metadata.PIXEL_TEXTURE_NAME)
	if err != nil {
		return nil, logged(err)
	}
	m.background = renderer.NewSprite(ctx.UI, constants.ZORDER_TRANSITION_BG, pixel)
	m.background.SetWidth(ctx.Target.X)
	m.background.SetHeight(ctx.Target.Y)
	m.background.SetOffset(ctx.Target.Div(math.NewVec2(2, 2)))
	m.background.SetColour(math.NewVec4(0, 0, 0, 0))

	if m.text, err = ctx.Fonts.NewText(ctx.UI, constants.ZORDER_TRANSITION_TEXT); err != nil {
		m.background.Dispose()
		return nil, err
	}
	m.text.SetAlignment(renderer.CENTER)
	m.text.SetColour(math.NewVec4(1, 1, 1, 0))

	ctx.Scheduler.Add(m)
	return m, nil
}

func (m *FullscreenMessage) State() messageState {
	return m.state
}

func (m *FullscreenMessage) Text() string {
	return m.text.Text()
}

func (m *FullscreenMessage) BackgroundAlpha() float32 {
	return m.background.Colour().W
}

func (m *FullscreenMessage) TextAlpha() float32 {
	return m.text.Colour().W
}

func (m *FullscreenMessage) setText(text string) {
	if err := m.text.SetText(text); err != nil {
		core.LogError("%s", err)
		return
	}
	m.text.SetOffset(math.NewVec2(m.text.Width()/2, m.text.Height()/2))
}

func (m *FullscreenMessage) setAlpha(background, text float32) {
	m.background.SetColour(math.NewVec4(0, 0, 0, background))
	m.text.SetColour(math.NewVec4(1, 1, 1, text))
}

func (m *FullscreenMessage) start(state messageState, d time.Duration, onDone func()) {
	m.state = state
	m.timeLeft = d
	m.onDone.Set(onDone)
}

// ForceActive shows text at once on a black screen. The hook fires right
// away when the text is already showing, after a hold otherwise.
func (m *FullscreenMessage) ForceActive(text string, onDone func()) {
	hold := MESSAGE_FORCED_HOLD_TIME
	if m.text.Text() == text {
		hold = 0
	}
	m.setText(text)
	m.setAlpha(1, 1)
	m.start(MESSAGE_HOLDING, hold, onDone)
}

func (m *FullscreenMessage) HideText() {
	m.text.SetColour(math.NewVec4(1, 1, 1, 0))
}

// TransitionIn fades the screen to black with text on it, then holds.
func (m *FullscreenMessage) TransitionIn(text string, onDone func()) {
	m.setText(text)
	m.start(MESSAGE_TRANSITION_IN, MESSAGE_TRANSITION_TIME, onDone)
}

// TransitionOut fades the whole message away.
func (m *FullscreenMessage) TransitionOut(onDone func()) {
	m.start(MESSAGE_TRANSITION_OUT, MESSAGE_TRANSITION_TIME, onDone)
}

// ChangeText fades the current text out, swaps in text, fades it in and
// holds.
func (m *FullscreenMessage) ChangeText(text string, onDone func()) {
	m.nextText = text
	m.start(MESSAGE_FADING_OUT_TEXT, MESSAGE_TEXT_FADE_TIME, onDone)
}

func (m *FullscreenMessage) CanUpdate() bool {
	return !m.disposed && m.state != MESSAGE_IDLE
}

func (m *FullscreenMessage) Update(dt time.Duration) {
	m.timeLeft -= dt
	done := m.timeLeft <= 0

	switch m.state {
	case MESSAGE_TRANSITION_IN:
		a := math.Clamp(1-ratio(m.timeLeft, MESSAGE_TRANSITION_TIME), 0, 1)
		m.setAlpha(a, a)
		if done {
			m.state = MESSAGE_HOLDING
			m.timeLeft = MESSAGE_HOLD_TIME
		}
	case MESSAGE_HOLDING:
		if done {
			m.state = MESSAGE_IDLE
			m.onDone.Fire()
		}
	case MESSAGE_FADING_OUT_TEXT:
		m.text.SetAlpha(math.Clamp(ratio(m.timeLeft, MESSAGE_TEXT_FADE_TIME), 0, 1))
		if done {
			m.setText(m.nextText)
			m.state = MESSAGE_FADING_IN_TEXT
			m.timeLeft = MESSAGE_TEXT_FADE_TIME
		}
	case MESSAGE_FADING_IN_TEXT:
		m.text.SetAlpha(math.Clamp(1-ratio(m.timeLeft, MESSAGE_TEXT_FADE_TIME), 0, 1))
		if done {
			m.state = MESSAGE_HOLDING
			m.timeLeft = MESSAGE_HOLD_TIME
		}
	case MESSAGE_TRANSITION_OUT:
		a := math.Clamp(ratio(m.timeLeft, MESSAGE_TRANSITION_TIME), 0, 1)
		m.setAlpha(a, a)
		if done {
			m.state = MESSAGE_IDLE
			m.onDone.Fire()
		}
	}
}

func ratio(left, total time.Duration) float32 {
	return float32(left.Seconds() / total.Seconds())
}

func (m *FullscreenMessage) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.onDone.Clear()
	m.ctx.Scheduler.Remove(m)
	m.background.Dispose()
	m.text.Dispose()
}
