package math

import (
	m "math"
)

const (
	/** @brief Pi as a float32. */
	K_PI float32 = m.Pi
	/** @brief A quarter turn in radians. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief Default tolerance for Compare. */
	K_EPSILON float32 = 0.0001
)

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec2Zero() Vec2 {
	return Vec2{}
}

// NewVec2One is the identity scale.
func NewVec2One() Vec2 {
	return Vec2{X: 1, Y: 1}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul and Div work component by component.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{v.X / o.X, v.Y / o.Y}
}

func (v Vec2) MulScalar(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

/**
 * @brief Compare reports whether every component of v is within tolerance
 * of the matching component of o.
 */
func (v Vec2) Compare(o Vec2, tolerance float32) bool {
	return Abs(v.X-o.X) <= tolerance && Abs(v.Y-o.Y) <= tolerance
}

// ToVec3 lifts v onto the plane at depth z.
func (v Vec2) ToVec3(z float32) Vec3 {
	return Vec3{v.X, v.Y, z}
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Up() Vec3 {
	return Vec3{Y: 1}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) MulScalar(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(m.Sqrt(float64(v.Dot(v))))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1 / l)
}

/**
 * @brief Transform applies mt to v as a point (w = 1), with v as a row
 * vector on the left.
 */
func (v Vec3) Transform(mt Mat4) Vec3 {
	d := mt.Data
	return Vec3{
		X: v.X*d[0] + v.Y*d[4] + v.Z*d[8] + d[12],
		Y: v.X*d[1] + v.Y*d[5] + v.Z*d[9] + d[13],
		Z: v.X*d[2] + v.Y*d[6] + v.Z*d[10] + d[14],
	}
}

func (v Vec3) Compare(o Vec3, tolerance float32) bool {
	return Abs(v.X-o.X) <= tolerance && Abs(v.Y-o.Y) <= tolerance && Abs(v.Z-o.Z) <= tolerance
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// NewVec4One is opaque white.
func NewVec4One() Vec4 {
	return Vec4{1, 1, 1, 1}
}

func (v Vec4) Compare(o Vec4, tolerance float32) bool {
	return Abs(v.X-o.X) <= tolerance && Abs(v.Y-o.Y) <= tolerance &&
		Abs(v.Z-o.Z) <= tolerance && Abs(v.W-o.W) <= tolerance
}
