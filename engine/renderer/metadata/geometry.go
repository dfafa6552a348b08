package metadata

import "github.com/spaghettifunk/zippy/engine/math"

/** @brief Floats per interleaved vertex: position xyz, uv, colour rgba. */
const FLOATS_PER_VERTEX = 9

/** @brief Float offsets of each attribute inside one interleaved vertex. */
const (
	POSITION_OFFSET = 0
	UV_OFFSET       = 3
	COLOUR_OFFSET   = 5
)

/**
 * @brief Represents a single vertex in 2D sprite space.
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position math.Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord math.Vec2
	/** @brief The colour of the vertex. */
	Colour math.Vec4
}

func NewVertex(position math.Vec3, uv math.Vec2, colour math.Vec4) Vertex {
	return Vertex{Position: position, Texcoord: uv, Colour: colour}
}

// AppendFloats writes the interleaved layout for v onto out.
func (v Vertex) AppendFloats(out []float32) []float32 {
	return append(out,
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Texcoord.X, v.Texcoord.Y,
		v.Colour.X, v.Colour.Y, v.Colour.Z, v.Colour.W)
}

/**
 * @brief The viewport and clear state for one frame.
 */
type Viewport struct {
	X, Y          int32
	Width, Height int32
}
