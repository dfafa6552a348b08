// Package entities holds the level objects: platforms, collectibles and the
// characters that move through the physics world.
package entities

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/components"
	"github.com/spaghettifunk/zippy/engine/storage"
)

// Scoreboard receives the gameplay events entities raise. The game scene
// implements it.
type Scoreboard interface {
	IncrementCoins(coin *Collectible)
	OnEnemyDefeated(enemy *Enemy)
	OnComplete()
	OnDeath()
}

/**
 * @brief Stage is everything an entity needs from the running game: the world
 * canvas, the scheduler, the physics world and the camera that bounds it.
 */
type Stage struct {
	Canvas     *renderer.Canvas
	Scheduler  renderer.Registry
	Physics    physics.World
	Camera     *components.LookAtCamera
	Store      storage.Store
	Scoreboard Scoreboard
}

func (s *Stage) units() physics.Units {
	return s.Physics.Units()
}

// Entity is anything a level file can place.
type Entity interface {
	Dispose()
}

// NewRegistry maps every level tag this package knows to its constructor.
func NewRegistry(stage *Stage) *content.Registry[Entity] {
	r := content.NewRegistry[Entity]()
	r.Register("Platform", func(rec content.Record) (Entity, error) {
		return NewPlatformFromData(stage, rec.Data())
	})
	r.Register("Coin", func(rec content.Record) (Entity, error) {
		return NewCoinFromData(stage, rec.Data())
	})
	r.Register("Treasure", func(rec content.Record) (Entity, error) {
		return NewTreasureFromData(stage, rec.Data())
	})
	r.Register("Goblin", func(rec content.Record) (Entity, error) {
		return NewGoblinFromData(stage, rec.Data())
	})
	return r
}

// withDefaults fills in every key the record leaves out.
func withDefaults(data content.Data, defaults map[string][]string) content.Data {
	for k, v := range defaults {
		if !data.Has(k) {
			data = data.With(k, v...)
		}
	}
	return data
}

func vec2Field(x, y float32) []string {
	return []string{fmt.Sprint(x), fmt.Sprint(y)}
}

func logged(err error) error {
	core.LogError("%s", err)
	return err
}
