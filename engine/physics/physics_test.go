package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/zippy/engine/math"
)

const frame = time.Second / 60

func newTestWorld() World {
	return NewWorld(&WorldConfig{Gravity: math.NewVec2(0, -9.81), Ratio: 350})
}

func run(w World, frames int) {
	for i := 0; i < frames; i++ {
		w.Step(frame)
	}
}

func dropOnto(w World) (ground, box Body) {
	ground = w.CreateRectangle(math.NewVec2(0, 0), math.NewVec2(10, 0.2), 1)
	box = w.CreateRectangle(math.NewVec2(0, 2), math.NewVec2(0.5, 0.5), 1)
	box.SetType(DYNAMIC)
	return ground, box
}

func TestUnitsRoundTrip(t *testing.T) {
	u := NewUnits(0)
	assert.Equal(t, DEFAULT_DISPLAY_TO_SIM_RATIO, u.Ratio)
	assert.Equal(t, math.NewVec2(1, 2), u.ToSimUnits(math.NewVec2(350, 700)))
	assert.Equal(t, float32(700), u.ToDisplay(2))
}

func TestDynamicBodyRestsOnGround(t *testing.T) {
	w := newTestWorld()
	_, box := dropOnto(w)
	run(w, 180)
	assert.Greater(t, box.Position().Y, float32(0))
	assert.Less(t, box.Position().Y, float32(1))
}

func TestRefusedContactLetsBodyFallThrough(t *testing.T) {
	w := newTestWorld()
	ground, box := dropOnto(w)
	calls := 0
	ground.OnCollision(func(c Contact) bool {
		calls++
		assert.Same(t, box, c.Other)
		return false
	})
	run(w, 180)
	assert.Equal(t, 1, calls)
	assert.Less(t, box.Position().Y, float32(-1))
}

func TestMaskFiltersCollisions(t *testing.T) {
	w := newTestWorld()
	ground, box := dropOnto(w)
	ground.SetCategory(Cat2)
	ground.SetCollidesWith(Cat3)
	box.SetCategory(Cat1)
	box.SetCollidesWith(Cat3)
	touched, calls := false, 0
	box.OnCollision(func(Contact) bool { touched = true; return true })
	ground.OnCollision(func(Contact) bool { calls++; return true })

	run(w, 180)
	assert.False(t, touched)
	assert.Zero(t, calls)
	assert.Equal(t, Cat2, ground.Category())
	assert.Less(t, box.Position().Y, float32(-1))
}

func TestOneSidedMaskStillFilters(t *testing.T) {
	w := newTestWorld()
	ground, box := dropOnto(w)
	ground.SetCategory(Cat2)
	box.SetCategory(Cat1)
	box.SetCollidesWith(Cat1 | Cat3)
	calls := 0
	ground.OnCollision(func(Contact) bool { calls++; return true })

	run(w, 180)
	assert.Zero(t, calls)
	assert.Less(t, box.Position().Y, float32(-1))
}

func TestRemoveBodyFromHandlerIsDeferred(t *testing.T) {
	w := newTestWorld()
	ground, box := dropOnto(w)
	box.SetUserData("coin")
	ground.OnCollision(func(c Contact) bool {
		assert.Equal(t, "coin", c.Other.UserData())
		w.RemoveBody(c.Other)
		return true
	})

	assert.NotPanics(t, func() { run(w, 180) })
	assert.Equal(t, 1, w.BodyCount())
	assert.NotPanics(t, func() { w.RemoveBody(box) })
}

func TestDisabledWorldSkipsUpdate(t *testing.T) {
	w := newTestWorld()
	assert.True(t, w.CanUpdate())
	w.SetEnabled(false)
	assert.False(t, w.CanUpdate())
}

func TestRevoluteMotor(t *testing.T) {
	w := newTestWorld()
	a := w.CreateRectangle(math.NewVec2(0, 1), math.NewVec2(0.2, 0.4), 5)
	b := w.CreateCircle(math.NewVec2(0, 0.8), 0.1, 5)
	a.SetType(DYNAMIC)
	b.SetType(DYNAMIC)
	j := w.CreateRevoluteJoint(a, b, math.Vec2{})
	j.SetMaxMotorTorque(10000)
	j.EnableMotor(true)
	j.SetMotorSpeed(3)
	assert.Equal(t, float32(3), j.MotorSpeed())

	w.RemoveBody(b)
	assert.NotPanics(t, func() { w.RemoveJoint(j) })
	assert.Equal(t, 1, w.BodyCount())
}

func TestSeparationHandler(t *testing.T) {
	w := newTestWorld()
	_, box := dropOnto(w)
	separated := false
	box.OnSeparation(func(Contact) { separated = true })
	run(w, 120)
	assert.False(t, separated)

	box.SetVelocity(math.NewVec2(0, 10))
	run(w, 10)
	assert.True(t, separated)
}
