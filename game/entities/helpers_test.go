package entities

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/components"
	"github.com/spaghettifunk/zippy/engine/renderer/headless"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
	"github.com/spaghettifunk/zippy/engine/storage"
	"github.com/spaghettifunk/zippy/game/constants"
)

const frame = time.Second / 60

type fakeTextures struct {
	refs map[string]int
	next metadata.TextureHandle
}

func (f *fakeTextures) Acquire(name string) (*metadata.Texture, error) {
	if name == "missing.png" {
		return nil, fmt.Errorf("texture `%s`: %w", name, core.ErrNotFound)
	}
	f.next++
	f.refs[name]++
	return &metadata.Texture{ID: core.NewID(), Name: name, Handle: f.next, Width: 128, Height: 64}, nil
}

func (f *fakeTextures) Release(t *metadata.Texture) {
	f.refs[t.Name]--
}

type fakeScheduler struct {
	entries []core.Updatable
}

func (s *fakeScheduler) Add(u core.Updatable) {
	s.entries = append(s.entries, u)
}

func (s *fakeScheduler) Remove(u core.Updatable) {
	for i, e := range s.entries {
		if e == u {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

type fakeScoreboard struct {
	coins     []*Collectible
	enemies   []*Enemy
	completed int
	deaths    int
}

func (f *fakeScoreboard) IncrementCoins(c *Collectible) { f.coins = append(f.coins, c) }
func (f *fakeScoreboard) OnEnemyDefeated(e *Enemy)     { f.enemies = append(f.enemies, e) }
func (f *fakeScoreboard) OnComplete()                  { f.completed++ }
func (f *fakeScoreboard) OnDeath()                     { f.deaths++ }

type fakeHealthBar struct {
	health float32
}

func (f *fakeHealthBar) UpdateBar(h float32) { f.health = h }

type testStage struct {
	*Stage
	textures   *fakeTextures
	scheduler  *fakeScheduler
	scoreboard *fakeScoreboard
}

func newTestStage(t *testing.T) *testStage {
	t.Helper()
	device := headless.New()
	r := renderer.NewRenderer(device, &renderer.RendererConfig{})
	r.Init(math.NewVec2(1920, 1080), math.NewVec2(1920, 1080), math.NewVec2Zero())
	shader, err := renderer.NewShader(device, metadata.ShaderSource{Name: "Sprite"})
	require.NoError(t, err)

	camera := components.NewLookAtCamera(math.NewVec2Zero(), math.NewVec2(1920, 1080))
	textures := &fakeTextures{refs: make(map[string]int)}
	canvas, err := renderer.NewCanvas(r, &renderer.CanvasConfig{Camera: camera, Shader: shader, Textures: textures})
	require.NoError(t, err)

	ts := &testStage{textures: textures, scheduler: &fakeScheduler{}, scoreboard: &fakeScoreboard{}}
	ts.Stage = &Stage{
		Canvas:     canvas,
		Scheduler:  ts.scheduler,
		Physics:    physics.NewWorld(&physics.WorldConfig{Gravity: math.NewVec2(0, -9.81), Ratio: 350}),
		Camera:     camera,
		Store:      storage.NewMemoryStore(),
		Scoreboard: ts.scoreboard,
	}
	return ts
}

func (s *testStage) step(frames int) {
	for i := 0; i < frames; i++ {
		s.Physics.Step(frame)
	}
}

// faller drops a player-category box from p, in display units.
func (s *testStage) faller(p math.Vec2) physics.Body {
	u := s.units()
	b := s.Physics.CreateRectangle(u.ToSimUnits(p), u.ToSimUnits(math.NewVec2(20, 20)), 1)
	b.SetType(physics.DYNAMIC)
	b.SetCategory(constants.PLAYER_CATEGORY)
	return b
}
