package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector. Also used for colours (r, g, b, a)
// and uv rectangles (left, top, right, bottom).
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief a 4x4 matrix in row-vector convention: translation lives in
 * Data[12..14] and a.Mul(b) applies a first, then b.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

// Extents2D is an axis aligned box.
type Extents2D struct {
	Min Vec2
	Max Vec2
}

// Inside reports whether p lies strictly inside the box; points on an edge
// are outside.
func (e Extents2D) Inside(p Vec2) bool {
	return p.X > e.Min.X && p.X < e.Max.X && p.Y > e.Min.Y && p.Y < e.Max.Y
}
