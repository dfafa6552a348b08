// Package physics puts a small 2D rigid-body surface in front of the
// simulation library. Everything outside this package talks to World, Body
// and Joint only; positions here are in simulation units (metres).
package physics

import (
	"time"

	"github.com/spaghettifunk/zippy/engine/math"
)

type BodyType int

const (
	STATIC BodyType = iota
	KINEMATIC
	DYNAMIC
)

// Category is a collision category bit. A body collides with another body
// when each one's mask contains the other's category.
type Category uint16

const (
	CatNone Category = 0
	Cat1    Category = 1 << 0
	Cat2    Category = 1 << 1
	Cat3    Category = 1 << 2
	Cat4    Category = 1 << 3
	Cat5    Category = 1 << 4
	Cat6    Category = 1 << 5
	CatAll  Category = 0xFFFF
)

// Contact describes a collision from the point of view of Self.
type Contact struct {
	Self  Body
	Other Body
}

// CollisionHandler runs when two bodies start touching. Returning false
// disables the contact for as long as the bodies keep touching.
type CollisionHandler func(c Contact) bool

// SeparationHandler runs when two bodies stop touching.
type SeparationHandler func(c Contact)

type Body interface {
	Position() math.Vec2
	SetPosition(p math.Vec2)
	Rotation() float32
	Velocity() math.Vec2
	SetVelocity(v math.Vec2)
	// ApplyImpulse pushes the body at its centre of mass.
	ApplyImpulse(impulse math.Vec2)

	Type() BodyType
	SetType(t BodyType)
	SetFriction(f float32)
	SetRestitution(r float32)
	SetSensor(s bool)
	SetFixedRotation(fixed bool)

	Category() Category
	SetCategory(c Category)
	CollidesWith() Category
	SetCollidesWith(mask Category)

	Enabled() bool
	SetEnabled(enabled bool)

	UserData() any
	SetUserData(data any)

	OnCollision(h CollisionHandler)
	OnSeparation(h SeparationHandler)
}

type Joint interface {
	MotorSpeed() float32
	SetMotorSpeed(speed float32)
	SetMaxMotorTorque(torque float32)
	EnableMotor(enabled bool)
}

/**
 * @brief World owns bodies and joints and advances the simulation. It is a
 * scheduler entry: CanUpdate reports Enabled and Update steps by the frame
 * delta.
 */
type World interface {
	// CreateRectangle makes a static box centred on position.
	CreateRectangle(position, size math.Vec2, density float32) Body
	// CreateCircle makes a static circle centred on position.
	CreateCircle(position math.Vec2, radius, density float32) Body
	CreateRevoluteJoint(a, b Body, anchor math.Vec2) Joint
	// RemoveBody and RemoveJoint may be called from collision handlers;
	// removal then happens right after the step.
	RemoveBody(b Body)
	RemoveJoint(j Joint)

	Step(dt time.Duration)
	CanUpdate() bool
	Update(dt time.Duration)

	Enabled() bool
	SetEnabled(enabled bool)
	Units() Units
	BodyCount() int
	Shutdown()
}
