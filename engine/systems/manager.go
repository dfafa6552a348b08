package systems

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spaghettifunk/zippy/engine/assets"
	"github.com/spaghettifunk/zippy/engine/audio"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/scheduler"
	"github.com/spaghettifunk/zippy/engine/state"
	"github.com/spaghettifunk/zippy/engine/storage"
	"github.com/spaghettifunk/zippy/engine/touch"
)

const (
	SPRITE_SHADER_NAME     = "sprite"
	SPRITE_VERTEX_SHADER   = "Shaders/VertexShader.txt"
	SPRITE_FRAGMENT_SHADER = "Shaders/FragmentShader.txt"
)

type SystemManagerConfig struct {
	Config *core.Config
	// BaseDir holds the content root. Defaults to the working directory.
	BaseDir string
	Device  renderer.Device
	// Clock drives the scheduler. Defaults to the system clock.
	Clock core.TimeSource
	// AudioOutput overrides the speaker, for tests and headless runs.
	AudioOutput audio.Output
	// Store overrides the preferences file.
	Store storage.Store
	// Events is the platform's event bus, if one is already running.
	Events *core.EventBus
}

/**
 * @brief SystemManager is the context handed to the game. It owns every
 * engine service and shuts them down in reverse dependency order.
 */
type SystemManager struct {
	Config *core.Config

	Assets    *assets.AssetManager
	Renderer  *renderer.Renderer
	Scheduler *scheduler.UpdateManager
	States    *state.Manager
	Touch     *touch.Manager
	Physics   physics.World
	Audio     *audio.Manager
	Store     storage.Store
	Textures  *TextureSystem
	Shaders   *ShaderSystem
	Fonts     *FontSystem
	Events    *core.EventBus
	Metrics   *core.Metrics
}

func NewSystemManager(config *SystemManagerConfig) (*SystemManager, error) {
	cfg := config.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if config.Device == nil {
		err := fmt.Errorf("func NewSystemManager - a render device is required: %w", core.ErrMissingField)
		core.LogError("%s", err)
		return nil, err
	}

	am, err := assets.NewAssetManager(&assets.AssetManagerConfig{
		BaseDir:  config.BaseDir,
		WatchDir: cfg.Content.Root,
		Watch:    cfg.Content.HotReload,
	})
	if err != nil {
		return nil, err
	}

	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 1024,
	}, am, config.Device)
	if err != nil {
		am.Shutdown()
		return nil, err
	}
	ss, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount: 16,
	}, am, config.Device)
	if err != nil {
		am.Shutdown()
		return nil, err
	}
	fs, err := NewFontSystem(&FontSystemConfig{
		MaxBitmapFontCount: 16,
	}, am, ts)
	if err != nil {
		am.Shutdown()
		return nil, err
	}

	am2, err := audio.NewManager(&audio.ManagerConfig{
		Enabled:      cfg.Audio.Enabled,
		MasterVolume: cfg.Audio.MasterVolume,
		MusicVolume:  cfg.Audio.MusicVolume,
		EffectVolume: cfg.Audio.EffectVolume,
		Output:       config.AudioOutput,
	})
	if err != nil {
		// Audio is optional: carry on silently.
		core.LogWarn("audio disabled: %s", err)
		am2, err = audio.NewManager(&audio.ManagerConfig{Output: audio.NewNullOutput()})
		if err != nil {
			am.Shutdown()
			return nil, err
		}
	}

	store := config.Store
	if store == nil {
		fstore, err := storage.OpenFileStore(cfg.Storage.Path)
		if err != nil {
			core.LogWarn("preferences unreadable, using an empty store: %s", err)
			store = storage.NewMemoryStore()
		} else {
			store = fstore
		}
	}

	events := config.Events
	if events == nil {
		events = core.NewEventBus()
	}

	c := cfg.Render.ClearColour
	sm := &SystemManager{
		Config:    cfg,
		Assets:    am,
		Renderer:  renderer.NewRenderer(config.Device, &renderer.RendererConfig{ClearColour: math.NewVec4(c[0], c[1], c[2], c[3])}),
		Scheduler: scheduler.NewUpdateManager(config.Clock),
		States:    state.NewManager(),
		Touch:     touch.NewManager(),
		Physics: physics.NewWorld(&physics.WorldConfig{
			Gravity: math.NewVec2(cfg.Physics.GravityX, cfg.Physics.GravityY),
			Ratio:   cfg.Physics.DisplayToSimRatio,
		}),
		Audio:    am2,
		Store:    store,
		Textures: ts,
		Shaders:  ss,
		Fonts:    fs,
		Events:   events,
		Metrics:  core.NewMetrics(),
	}
	return sm, nil
}

// Initialize uploads the shared GPU resources and registers the long-lived
// scheduler entries: content watching, the state machine and physics.
func (sm *SystemManager) Initialize() error {
	if err := sm.Textures.Initialize(); err != nil {
		return err
	}
	if _, err := sm.SpriteShader(); err != nil {
		return err
	}
	sm.Scheduler.Add(sm.Assets)
	sm.Scheduler.Add(sm.States)
	sm.Scheduler.Add(sm.Physics)
	return nil
}

// Content prefixes name with the configured content root.
func (sm *SystemManager) Content(name string) string {
	return sm.Config.Content.Root + "/" + name
}

// SpriteShader is the program every canvas draws with.
func (sm *SystemManager) SpriteShader() (*renderer.Shader, error) {
	return sm.Shaders.Acquire(SPRITE_SHADER_NAME, sm.Content(SPRITE_VERTEX_SHADER), sm.Content(SPRITE_FRAGMENT_SHADER))
}

// NewCanvas builds a canvas that draws with the sprite shader and shares
// the texture cache.
func (sm *SystemManager) NewCanvas(zOrder int, camera renderer.Viewer) (*renderer.Canvas, error) {
	shader, err := sm.SpriteShader()
	if err != nil {
		return nil, err
	}
	return renderer.NewCanvas(sm.Renderer, &renderer.CanvasConfig{
		ZOrder:   zOrder,
		Camera:   camera,
		Shader:   shader,
		Textures: sm.Textures,
	})
}

// LoadSound decodes a wav asset once and caches it in the audio manager.
func (sm *SystemManager) LoadSound(name string) (*audio.Sound, error) {
	if s, err := sm.Audio.Sound(name); err == nil {
		return s, nil
	}
	b, err := sm.Assets.LoadAudio(name)
	if err != nil {
		return nil, err
	}
	return sm.Audio.LoadSound(name, bytes.NewReader(b))
}

// Shutdown stops the game flow first so states can release what they hold,
// then tears the services down.
func (sm *SystemManager) Shutdown() error {
	sm.States.Shutdown()
	sm.Touch.CancelTouches()
	sm.Audio.Dispose()
	sm.Physics.Shutdown()

	var errs []error
	errs = append(errs, sm.Fonts.Shutdown())
	errs = append(errs, sm.Renderer.Shutdown())
	errs = append(errs, sm.Shaders.Shutdown())
	errs = append(errs, sm.Textures.Shutdown())
	errs = append(errs, sm.Assets.Shutdown())
	return errors.Join(errs...)
}
