package scenes

import (
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/game/constants"
)

const HEALTH_FG_TEXTURE = "Content/Graphics/UI/HealthFg.png"

// healthBarInset is the foreground's offset inside the background frame.
var healthBarInset = math.NewVec2(6, 6)

// HealthBar is the HUD bar over the health background.
type HealthBar struct {
	*renderer.HealthBar
}

func NewHealthBar(ui *renderer.Canvas, background math.Vec2) (*HealthBar, error) {
	tex, err := ui.Textures().Acquire(HEALTH_FG_TEXTURE)
	if err != nil {
		return nil, logged(err)
	}
	b := &HealthBar{HealthBar: renderer.NewHealthBar(ui, constants.ZORDER_HEALTH_FG, tex)}
	b.SetPosition(background.Add(healthBarInset))
	return b, nil
}

// UpdateBar shows health out of PLAYER_MAX_HEALTH.
func (b *HealthBar) UpdateBar(health float32) {
	b.SetPercentage(health / constants.PLAYER_MAX_HEALTH)
}
