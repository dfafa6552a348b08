package components

import (
	"time"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/math"
)

/**
 * @brief Represents an orthographic 2D camera centred on its position. The
 * view-projection matrix is cached and only rebuilt by UpdateMatrices after
 * the position changed, so canvases can tell when member matrices went stale.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the matrix is flagged for rebuild.
	 */
	position math.Vec2
	/** @brief Width and height of the visible area in logical pixels. */
	dimensions math.Vec2
	/** @brief Set whenever the position changes, cleared by UpdateMatrices. */
	matrixInvalid bool

	view           math.Mat4
	projection     math.Mat4
	viewProjection math.Mat4
}

func NewCamera(position, dimensions math.Vec2) *Camera {
	c := &Camera{
		position:   position,
		dimensions: dimensions,
		projection: math.NewMat4Orthographic(-dimensions.X/2, dimensions.X/2, -dimensions.Y/2, dimensions.Y/2, 1, 1000),
	}
	c.UpdateMatrices()
	return c
}

func (c *Camera) GetPosition() math.Vec2 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec2) {
	c.position = position
	c.matrixInvalid = true
}

func (c *Camera) GetDimensions() math.Vec2 {
	return c.dimensions
}

func (c *Camera) MatrixInvalid() bool {
	return c.matrixInvalid
}

// UpdateMatrices rebuilds view and view-projection from the position.
func (c *Camera) UpdateMatrices() {
	c.view = math.NewMat4LookAt(
		math.NewVec3(c.position.X, c.position.Y, 1),
		math.NewVec3(c.position.X, c.position.Y, 0),
		math.NewVec3Up(),
	)
	c.viewProjection = c.view.Mul(c.projection)
	c.matrixInvalid = false
}

func (c *Camera) GetView() math.Mat4 {
	return c.view
}

func (c *Camera) GetProjection() math.Mat4 {
	return c.projection
}

func (c *Camera) ViewProjection() math.Mat4 {
	return c.viewProjection
}

// Target is what a LookAtCamera follows.
type Target interface {
	Position() math.Vec2
}

/**
 * @brief A camera that follows a target inside a rectangle given by its
 * top-left and bottom-right corners.
 */
type LookAtCamera struct {
	*Camera

	target        Target
	topLeft       math.Vec2
	bottomRight   math.Vec2
	startPosition math.Vec2
	active        bool
}

func NewLookAtCamera(position, dimensions math.Vec2) *LookAtCamera {
	return &LookAtCamera{Camera: NewCamera(position, dimensions)}
}

func (c *LookAtCamera) SetTarget(t Target) {
	c.target = t
}

func (c *LookAtCamera) SetLimits(topLeft, bottomRight, startPosition math.Vec2) {
	c.topLeft = topLeft
	c.bottomRight = bottomRight
	c.startPosition = startPosition
}

// SetLimitsFromData reads TopLeft, BottomRight and StartPosition. Missing
// keys keep their current value.
func (c *LookAtCamera) SetLimitsFromData(data content.Data) error {
	r := data.Reader()
	topLeft := r.Vec2("TopLeft", c.topLeft)
	bottomRight := r.Vec2("BottomRight", c.bottomRight)
	start := r.Vec2("StartPosition", c.startPosition)
	if err := r.Err(); err != nil {
		return err
	}
	c.SetLimits(topLeft, bottomRight, start)
	return nil
}

func (c *LookAtCamera) TopLeft() math.Vec2 {
	return c.topLeft
}

func (c *LookAtCamera) BottomRight() math.Vec2 {
	return c.bottomRight
}

func (c *LookAtCamera) StartPosition() math.Vec2 {
	return c.startPosition
}

func (c *LookAtCamera) Active() bool {
	return c.active
}

func (c *LookAtCamera) SetActive(a bool) {
	c.active = a
}

func (c *LookAtCamera) CanUpdate() bool {
	return c.active && c.target != nil
}

// Update moves the camera onto the target, clamped to the limits.
func (c *LookAtCamera) Update(dt time.Duration) {
	p := c.target.Position()
	x := math.Clamp(p.X, c.topLeft.X, c.bottomRight.X)
	y := math.Clamp(p.Y, c.bottomRight.Y, c.topLeft.Y)
	c.SetPosition(math.NewVec2(x, y))
}

// Reset jumps back to the start position.
func (c *LookAtCamera) Reset() {
	c.SetPosition(c.startPosition)
}
