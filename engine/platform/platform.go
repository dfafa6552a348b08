// Package platform opens the game window and turns its input into engine
// events. The mouse stands in for a single touch.
package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

const MOUSE_TOUCH_ID = 0

var startTime float64 = 0

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// PointerSink receives touches in framebuffer pixels, origin top-left.
type PointerSink interface {
	Press(id int, position math.Vec2)
	Move(id int, position math.Vec2)
	Release(id int, position math.Vec2)
}

type Platform struct {
	Window *glfw.Window

	events  *core.EventBus
	pointer PointerSink
	pressed bool
}

func New(events *core.EventBus) (*Platform, error) {
	return &Platform{
		Window: nil,
		events: events,
	}, nil
}

// SetPointerSink routes mouse input. A nil sink drops it.
func (p *Platform) SetPointerSink(sink PointerSink) {
	p.pointer = sink
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetFocusCallback(p.focusCallback)
	p.Window.SetIconifyCallback(p.iconifyCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// WaitMessages blocks until at least one window event arrives, then
// processes it like PumpMessages.
func (p *Platform) WaitMessages() bool {
	glfw.WaitEvents()
	return !p.Window.ShouldClose()
}

// Wake unblocks a WaitMessages call. Safe from any goroutine.
func (p *Platform) Wake() {
	glfw.PostEmptyEvent()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) FramebufferSize() math.Vec2 {
	w, h := p.Window.GetFramebufferSize()
	return math.NewVec2(float32(w), float32(h))
}

// GetAbsoluteTime is the time in seconds since Startup.
func GetAbsoluteTime() float64 {
	return glfw.GetTime() - startTime
}

// toFramebuffer converts a cursor position from screen coordinates, which
// differ from pixels on high density displays.
func (p *Platform) toFramebuffer(xpos, ypos float64) math.Vec2 {
	ww, wh := p.Window.GetSize()
	fw, fh := p.Window.GetFramebufferSize()
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
	}
	return math.NewVec2(float32(xpos*sx), float32(ypos*sy))
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		p.events.Fire(core.EventContext{Code: core.EVENT_CODE_KEY_PRESSED, Key: int(key)})
		if key == glfw.KeyEscape {
			p.events.Fire(core.EventContext{Code: core.EVENT_CODE_APPLICATION_QUIT})
		}
	case glfw.Release:
		p.events.Fire(core.EventContext{Code: core.EVENT_CODE_KEY_RELEASED, Key: int(key)})
	}
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || p.pointer == nil {
		return
	}
	pos := p.toFramebuffer(w.GetCursorPos())
	switch action {
	case glfw.Press:
		p.pressed = true
		p.pointer.Press(MOUSE_TOUCH_ID, pos)
	case glfw.Release:
		p.pressed = false
		p.pointer.Release(MOUSE_TOUCH_ID, pos)
	}
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if p.pressed && p.pointer != nil {
		p.pointer.Move(MOUSE_TOUCH_ID, p.toFramebuffer(xpos, ypos))
	}
}

func (p *Platform) focusCallback(w *glfw.Window, focused bool) {
	if focused {
		p.events.Fire(core.EventContext{Code: core.EVENT_CODE_RESUMED})
	} else {
		p.events.Fire(core.EventContext{Code: core.EVENT_CODE_SUSPENDED})
	}
}

func (p *Platform) iconifyCallback(w *glfw.Window, iconified bool) {
	p.focusCallback(w, !iconified)
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.events.Fire(core.EventContext{Code: core.EVENT_CODE_RESIZED, Width: width, Height: height})
}
