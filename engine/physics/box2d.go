package physics

import (
	"time"

	"github.com/ByteArena/box2d"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

const (
	velocityIterations = 8
	positionIterations = 3
)

type WorldConfig struct {
	Gravity math.Vec2
	// Ratio is display pixels per simulation metre.
	Ratio float32
}

func vec(v math.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(float64(v.X), float64(v.Y))
}

func fromVec(v box2d.B2Vec2) math.Vec2 {
	return math.NewVec2(float32(v.X), float32(v.Y))
}

type b2Body struct {
	world        *b2World
	body         *box2d.B2Body
	category     Category
	mask         Category
	userData     any
	onCollision  CollisionHandler
	onSeparation SeparationHandler
}

func (b *b2Body) Position() math.Vec2 {
	return fromVec(b.body.GetPosition())
}

// whenUnlocked runs fn now, or right after the step when called from a
// contact callback, since box2d refuses structural changes mid-step.
func (b *b2Body) whenUnlocked(fn func()) {
	if b.world.stepping {
		b.world.deferred = append(b.world.deferred, fn)
		return
	}
	fn()
}

func (b *b2Body) SetPosition(p math.Vec2) {
	b.whenUnlocked(func() {
		b.body.SetTransform(vec(p), b.body.GetAngle())
		b.body.SetAwake(true)
	})
}

func (b *b2Body) Rotation() float32 {
	return float32(b.body.GetAngle())
}

func (b *b2Body) Velocity() math.Vec2 {
	return fromVec(b.body.GetLinearVelocity())
}

func (b *b2Body) SetVelocity(v math.Vec2) {
	b.body.SetLinearVelocity(vec(v))
}

func (b *b2Body) ApplyImpulse(impulse math.Vec2) {
	b.body.ApplyLinearImpulse(vec(impulse), b.body.GetWorldCenter(), true)
}

func (b *b2Body) Type() BodyType {
	switch b.body.GetType() {
	case box2d.B2BodyType.B2_dynamicBody:
		return DYNAMIC
	case box2d.B2BodyType.B2_kinematicBody:
		return KINEMATIC
	}
	return STATIC
}

func (b *b2Body) SetType(t BodyType) {
	kind := box2d.B2BodyType.B2_staticBody
	switch t {
	case DYNAMIC:
		kind = box2d.B2BodyType.B2_dynamicBody
	case KINEMATIC:
		kind = box2d.B2BodyType.B2_kinematicBody
	}
	b.whenUnlocked(func() { b.body.SetType(kind) })
}

func (b *b2Body) eachFixture(fn func(f *box2d.B2Fixture)) {
	for f := b.body.GetFixtureList(); f != nil; f = f.GetNext() {
		fn(f)
	}
}

func (b *b2Body) SetFriction(friction float32) {
	b.eachFixture(func(f *box2d.B2Fixture) { f.SetFriction(float64(friction)) })
}

func (b *b2Body) SetRestitution(r float32) {
	b.eachFixture(func(f *box2d.B2Fixture) { f.SetRestitution(float64(r)) })
}

func (b *b2Body) SetSensor(s bool) {
	b.eachFixture(func(f *box2d.B2Fixture) { f.SetSensor(s) })
}

func (b *b2Body) SetFixedRotation(fixed bool) {
	b.body.SetFixedRotation(fixed)
}

func (b *b2Body) applyFilter() {
	b.eachFixture(func(f *box2d.B2Fixture) {
		filter := f.GetFilterData()
		filter.CategoryBits = uint16(b.category)
		filter.MaskBits = uint16(b.mask)
		f.SetFilterData(filter)
	})
}

func (b *b2Body) Category() Category {
	return b.category
}

func (b *b2Body) SetCategory(c Category) {
	b.category = c
	b.applyFilter()
}

func (b *b2Body) CollidesWith() Category {
	return b.mask
}

func (b *b2Body) SetCollidesWith(mask Category) {
	b.mask = mask
	b.applyFilter()
}

func (b *b2Body) Enabled() bool {
	return b.body.IsActive()
}

func (b *b2Body) SetEnabled(enabled bool) {
	b.whenUnlocked(func() { b.body.SetActive(enabled) })
}

func (b *b2Body) UserData() any {
	return b.userData
}

func (b *b2Body) SetUserData(data any) {
	b.userData = data
}

func (b *b2Body) OnCollision(h CollisionHandler) {
	b.onCollision = h
}

func (b *b2Body) OnSeparation(h SeparationHandler) {
	b.onSeparation = h
}

type b2Joint struct {
	joint *box2d.B2RevoluteJoint
}

func (j *b2Joint) MotorSpeed() float32 {
	return float32(j.joint.GetMotorSpeed())
}

func (j *b2Joint) SetMotorSpeed(speed float32) {
	j.joint.SetMotorSpeed(float64(speed))
}

func (j *b2Joint) SetMaxMotorTorque(torque float32) {
	j.joint.SetMaxMotorTorque(float64(torque))
}

func (j *b2Joint) EnableMotor(enabled bool) {
	j.joint.EnableMotor(enabled)
}

/**
 * @brief b2World adapts a box2d world. Contacts a handler refused stay in a
 * disabled set until they end, and are re-disabled before every solve since
 * box2d re-enables contacts each step.
 */
type b2World struct {
	world    box2d.B2World
	units    Units
	enabled  bool
	stepping bool

	bodies   map[*box2d.B2Body]*b2Body
	joints   []*b2Joint
	disabled map[box2d.B2ContactInterface]bool
	deferred []func()
}

func NewWorld(config *WorldConfig) World {
	w := &b2World{
		world:    box2d.MakeB2World(vec(config.Gravity)),
		units:    NewUnits(config.Ratio),
		enabled:  true,
		bodies:   make(map[*box2d.B2Body]*b2Body),
		disabled: make(map[box2d.B2ContactInterface]bool),
	}
	w.world.SetContactListener(w)
	// category and mask bits are only read through a contact filter
	w.world.SetContactFilter(&box2d.B2ContactFilter{})
	core.LogInfo("physics world created, gravity (%v, %v)", config.Gravity.X, config.Gravity.Y)
	return w
}

func (w *b2World) Units() Units {
	return w.units
}

func (w *b2World) Enabled() bool {
	return w.enabled
}

func (w *b2World) SetEnabled(enabled bool) {
	w.enabled = enabled
}

func (w *b2World) BodyCount() int {
	return len(w.bodies)
}

func (w *b2World) createBody(position math.Vec2, shape box2d.B2ShapeInterface, density float32) *b2Body {
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_staticBody
	def.Position = vec(position)

	body := w.world.CreateBody(&def)

	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = shape
	fixture.Density = float64(density)
	fixture.Friction = 0.2
	body.CreateFixtureFromDef(&fixture)

	b := &b2Body{world: w, body: body, category: Cat1, mask: CatAll}
	b.applyFilter()
	w.bodies[body] = b
	return b
}

func (w *b2World) CreateRectangle(position, size math.Vec2, density float32) Body {
	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(float64(size.X)/2, float64(size.Y)/2)
	return w.createBody(position, &shape, density)
}

func (w *b2World) CreateCircle(position math.Vec2, radius, density float32) Body {
	shape := box2d.MakeB2CircleShape()
	shape.M_radius = float64(radius)
	return w.createBody(position, &shape, density)
}

func (w *b2World) CreateRevoluteJoint(a, b Body, anchor math.Vec2) Joint {
	ba, bb := a.(*b2Body), b.(*b2Body)
	def := box2d.MakeB2RevoluteJointDef()
	def.Initialize(ba.body, bb.body, ba.body.GetWorldPoint(vec(anchor)))
	def.CollideConnected = false

	j := &b2Joint{joint: w.world.CreateJoint(&def).(*box2d.B2RevoluteJoint)}
	w.joints = append(w.joints, j)
	return j
}

func (w *b2World) RemoveBody(b Body) {
	body, ok := b.(*b2Body)
	if !ok {
		return
	}
	if w.stepping {
		w.deferred = append(w.deferred, func() { w.RemoveBody(b) })
		return
	}
	if _, live := w.bodies[body.body]; !live {
		return
	}
	delete(w.bodies, body.body)
	body.onCollision = nil
	body.onSeparation = nil
	w.world.DestroyBody(body.body)
}

func (w *b2World) RemoveJoint(j Joint) {
	joint, ok := j.(*b2Joint)
	if !ok {
		return
	}
	if w.stepping {
		w.deferred = append(w.deferred, func() { w.RemoveJoint(j) })
		return
	}
	i := slices.Index(w.joints, joint)
	if i < 0 {
		return
	}
	// destroying a body already destroyed its joints
	w.joints = slices.Delete(w.joints, i, i+1)
	if w.jointAttached(joint) {
		w.world.DestroyJoint(joint.joint)
	}
}

func (w *b2World) jointAttached(j *b2Joint) bool {
	_, a := w.bodies[j.joint.GetBodyA()]
	_, b := w.bodies[j.joint.GetBodyB()]
	return a && b
}

func (w *b2World) Step(dt time.Duration) {
	w.stepping = true
	w.world.Step(dt.Seconds(), velocityIterations, positionIterations)
	w.stepping = false

	pending := w.deferred
	w.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

func (w *b2World) CanUpdate() bool {
	return w.enabled
}

func (w *b2World) Update(dt time.Duration) {
	w.Step(dt)
}

// Shutdown removes every body; joints go with them.
func (w *b2World) Shutdown() {
	for _, b := range w.bodies {
		w.RemoveBody(b)
	}
	w.joints = nil
	w.disabled = make(map[box2d.B2ContactInterface]bool)
}

func (w *b2World) pair(contact box2d.B2ContactInterface) (*b2Body, *b2Body) {
	a := w.bodies[contact.GetFixtureA().GetBody()]
	b := w.bodies[contact.GetFixtureB().GetBody()]
	return a, b
}

// BeginContact asks both sides; either one can refuse the contact.
func (w *b2World) BeginContact(contact box2d.B2ContactInterface) {
	a, b := w.pair(contact)
	if a == nil || b == nil {
		return
	}
	solve := true
	if a.onCollision != nil && !a.onCollision(Contact{Self: a, Other: b}) {
		solve = false
	}
	if b.onCollision != nil && !b.onCollision(Contact{Self: b, Other: a}) {
		solve = false
	}
	if !solve {
		w.disabled[contact] = true
		contact.SetEnabled(false)
	}
}

func (w *b2World) EndContact(contact box2d.B2ContactInterface) {
	delete(w.disabled, contact)
	a, b := w.pair(contact)
	if a == nil || b == nil {
		return
	}
	if a.onSeparation != nil {
		a.onSeparation(Contact{Self: a, Other: b})
	}
	if b.onSeparation != nil {
		b.onSeparation(Contact{Self: b, Other: a})
	}
}

func (w *b2World) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
	if w.disabled[contact] {
		contact.SetEnabled(false)
	}
}

func (w *b2World) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}
