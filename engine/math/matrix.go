package math

import (
	m "math"
)

// NewMat4Identity returns the identity matrix.
func NewMat4Identity() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		out.Data[i*5] = 1
	}
	return out
}

/**
 * @brief Mul returns mt·o. With row vectors the product applies mt first
 * and o second, so World = Rot.Mul(Scale).Mul(Trans) rotates last.
 */
func (mt Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * o.Data[i*4+col]
			}
			out.Data[row*4+col] = sum
		}
	}
	return out
}

func (mt Mat4) Compare(o Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if Abs(mt.Data[i]-o.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

/**
 * @brief NewMat4Orthographic maps the box [left,right]x[bottom,top]x[near,far]
 * onto clip space. The camera builds it as (-w/2, w/2, -h/2, h/2, 1, 1000).
 */
func NewMat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	out := NewMat4Identity()
	lr := 1 / (left - right)
	bt := 1 / (bottom - top)
	nf := 1 / (near - far)

	out.Data[0] = -2 * lr
	out.Data[5] = -2 * bt
	out.Data[10] = 2 * nf
	out.Data[12] = (left + right) * lr
	out.Data[13] = (top + bottom) * bt
	out.Data[14] = (far + near) * nf
	return out
}

// NewMat4LookAt is the view matrix of an eye at position looking at target.
func NewMat4LookAt(position, target, up Vec3) Mat4 {
	forward := target.Sub(position).Normalized()
	right := forward.Cross(up).Normalized()
	camUp := right.Cross(forward)

	var out Mat4
	out.Data[0], out.Data[1], out.Data[2] = right.X, camUp.X, -forward.X
	out.Data[4], out.Data[5], out.Data[6] = right.Y, camUp.Y, -forward.Y
	out.Data[8], out.Data[9], out.Data[10] = right.Z, camUp.Z, -forward.Z
	out.Data[12] = -right.Dot(position)
	out.Data[13] = -camUp.Dot(position)
	out.Data[14] = forward.Dot(position)
	out.Data[15] = 1
	return out
}

func NewMat4Translation(position Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[12], out.Data[13], out.Data[14] = position.X, position.Y, position.Z
	return out
}

func NewMat4Scale(scale Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[0], out.Data[5], out.Data[10] = scale.X, scale.Y, scale.Z
	return out
}

// NewMat4EulerZ rotates counter-clockwise about Z by angle radians.
func NewMat4EulerZ(angle float32) Mat4 {
	out := NewMat4Identity()
	s, c := m.Sincos(float64(angle))
	out.Data[0], out.Data[1] = float32(c), float32(s)
	out.Data[4], out.Data[5] = float32(-s), float32(c)
	return out
}
