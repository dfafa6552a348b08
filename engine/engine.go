package engine

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/platform"
	"github.com/spaghettifunk/zippy/engine/renderer/headless"
	"github.com/spaghettifunk/zippy/engine/renderer/opengl"
	"github.com/spaghettifunk/zippy/engine/systems"
)

// HEADLESS_FRAME_TIME is the step a headless run advances its clock by.
const HEADLESS_FRAME_TIME = time.Second / 60

// window is the part of platform.Platform the loop drives.
type window interface {
	PumpMessages() bool
	WaitMessages() bool
	Wake()
	SwapBuffers()
	FramebufferSize() math.Vec2
	SetPointerSink(sink platform.PointerSink)
	Shutdown() error
}

type Engine struct {
	currentStage  Stage
	gameInstance  Game
	config        *core.Config
	isRunning     bool
	isSuspended   bool
	headless      bool
	platform      window
	systemManager *systems.SystemManager
	events        *core.EventBus
	manualClock   *core.ManualClock
	frames        int
	width         uint32
	height        uint32
}

func New(g Game, app *ApplicationConfig) (*Engine, error) {
	cfg := app.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	core.SetLogLevel(core.ParseLogLevel(cfg.App.LogLevel))

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       cfg,
		headless:     cfg.App.Headless,
		width:        cfg.App.Width,
		height:       cfg.App.Height,
	}

	device := app.Device
	clock := app.Clock
	if device == nil && e.headless {
		device = headless.New()
	}
	if e.headless && clock == nil {
		e.manualClock = core.NewManualClock(time.Now())
		clock = e.manualClock
	}

	events := core.NewEventBus()
	if device == nil {
		p, err := platform.New(events)
		if err != nil {
			core.LogError("%s", err)
			return nil, err
		}
		if err := p.Startup(cfg.App.Name, cfg.App.PosX, cfg.App.PosY, cfg.App.Width, cfg.App.Height); err != nil {
			return nil, err
		}
		gld, err := opengl.New()
		if err != nil {
			p.Shutdown()
			return nil, err
		}
		e.platform = p
		device = gld
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Config:      cfg,
		BaseDir:     app.BaseDir,
		Device:      device,
		Clock:       clock,
		AudioOutput: app.AudioOutput,
		Store:       app.Store,
		Events:      events,
	})
	if err != nil {
		if e.platform != nil {
			e.platform.Shutdown()
		}
		core.LogError("%s", err)
		return nil, err
	}
	e.systemManager = sm
	e.events = events
	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("func Initialize - engine is %s: %w", e.currentStage, core.ErrInvalidValue)
	}
	e.currentStage = EngineStageInitializing

	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_SUSPENDED, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_RESUMED, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	display := math.NewVec2(float32(e.width), float32(e.height))
	if e.platform != nil {
		display = e.platform.FramebufferSize()
		e.platform.SetPointerSink(&pointerSink{engine: e})
	}
	e.Init(display)

	if err := e.gameInstance.LoadContent(e.systemManager); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

// Init keeps the authored width and stretches the height to the display's
// aspect ratio; the game decides how the difference shifts the view.
func (e *Engine) Init(display math.Vec2) {
	initial := e.gameInstance.InitialResolution()
	newHeight := (initial.X / display.X) * display.Y
	resolution := math.NewVec2(initial.X, newHeight)
	e.systemManager.Renderer.Init(resolution, display, e.gameInstance.CalculateExtraOffset(newHeight-initial.Y))
}

// Pause stops time for every scheduled entry and for audio, and drops any
// touch in progress.
func (e *Engine) Pause() {
	e.systemManager.Scheduler.Pause()
	e.systemManager.Audio.Pause()
	e.systemManager.Touch.CancelTouches()
}

func (e *Engine) Resume() {
	e.systemManager.Scheduler.Resume()
	e.systemManager.Audio.Resume()
}

// Update runs one frame of game time.
func (e *Engine) Update() {
	sm := e.systemManager
	sm.Scheduler.Update()
	sm.Renderer.Update()
	if sm.Audio.CanUpdate() {
		sm.Audio.Update(0)
	}
	sm.Touch.Update()
}

func (e *Engine) Draw() {
	e.systemManager.Renderer.Draw()
	if e.platform != nil {
		e.platform.SwapBuffers()
	}
}

// Frames is the number of frames run so far.
func (e *Engine) Frames() int {
	return e.frames
}

// Quit stops the loop after the current frame.
func (e *Engine) Quit() {
	e.isRunning = false
	if e.platform != nil {
		e.platform.Wake()
	}
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("func Run - engine is %s: %w", e.currentStage, core.ErrInvalidValue)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true
	limit := 0
	if e.headless {
		limit = e.config.App.HeadlessFrames
		core.LogInfo("running headless for %d frames", limit)
	}

	for e.isRunning {
		if e.platform != nil && !e.pumpMessages() {
			e.isRunning = false
			break
		}
		// a suspended window blocks in pumpMessages until the next event
		if e.isSuspended && e.platform != nil {
			continue
		}

		frameStart := time.Now()
		e.Update()
		e.Draw()
		e.systemManager.Metrics.Update(time.Since(frameStart))
		e.frames++

		if e.manualClock != nil {
			e.manualClock.Advance(HEADLESS_FRAME_TIME)
		}
		if limit > 0 && e.frames >= limit {
			e.isRunning = false
		}
	}

	fps, frameTime := e.systemManager.Metrics.Frame()
	core.LogInfo("loop stopped after %d frames (%.0f fps, %.2f ms)", e.frames, fps, frameTime)
	return nil
}

func (e *Engine) pumpMessages() bool {
	if e.isSuspended {
		return e.platform.WaitMessages()
	}
	return e.platform.PumpMessages()
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false
	if err := e.systemManager.Shutdown(); err != nil {
		core.LogError("%s", err)
		return err
	}
	if e.platform != nil {
		return e.platform.Shutdown()
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(ctx core.EventContext, listener interface{}) bool {
	switch ctx.Code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	case core.EVENT_CODE_SUSPENDED:
		if !e.isSuspended {
			core.LogInfo("Window lost focus, pausing.")
			e.isSuspended = true
			e.Pause()
		}
		return true
	case core.EVENT_CODE_RESUMED:
		if e.isSuspended {
			core.LogInfo("Window regained focus, resuming.")
			e.isSuspended = false
			e.Resume()
		}
		return true
	}
	return false
}

func (e *Engine) onKey(ctx core.EventContext, listener interface{}) bool {
	if ctx.Code == core.EVENT_CODE_KEY_PRESSED {
		core.LogDebug("key %d pressed", ctx.Key)
	}
	return false
}

func (e *Engine) onResized(ctx core.EventContext, listener interface{}) bool {
	width, height := uint32(ctx.Width), uint32(ctx.Height)
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		return false
	}
	e.Init(math.NewVec2(float32(width), float32(height)))
	return true
}

// pointerSink moves framebuffer pixels into the logical target space the
// touch listeners work in.
type pointerSink struct {
	engine *Engine
}

func (s *pointerSink) logical(p math.Vec2) math.Vec2 {
	r := s.engine.systemManager.Renderer
	return p.Sub(r.ViewOffset()).Mul(r.ScreenScale())
}

func (s *pointerSink) Press(id int, position math.Vec2) {
	s.engine.systemManager.Touch.Press(id, s.logical(position))
}

func (s *pointerSink) Move(id int, position math.Vec2) {
	s.engine.systemManager.Touch.Move(id, s.logical(position))
}

func (s *pointerSink) Release(id int, position math.Vec2) {
	s.engine.systemManager.Touch.Release(id, s.logical(position))
}
