package physics

import "github.com/spaghettifunk/zippy/engine/math"

// DEFAULT_DISPLAY_TO_SIM_RATIO is the number of display pixels per metre.
const DEFAULT_DISPLAY_TO_SIM_RATIO float32 = 350

// Units converts between display pixels and simulation metres.
type Units struct {
	Ratio float32
}

func NewUnits(ratio float32) Units {
	if ratio <= 0 {
		ratio = DEFAULT_DISPLAY_TO_SIM_RATIO
	}
	return Units{Ratio: ratio}
}

func (u Units) ToSim(v float32) float32 {
	return v / u.Ratio
}

func (u Units) ToDisplay(v float32) float32 {
	return v * u.Ratio
}

func (u Units) ToSimUnits(v math.Vec2) math.Vec2 {
	return math.NewVec2(v.X/u.Ratio, v.Y/u.Ratio)
}

func (u Units) ToDisplayUnits(v math.Vec2) math.Vec2 {
	return v.MulScalar(u.Ratio)
}
