package renderer

import (
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type RendererConfig struct {
	ClearColour math.Vec4
}

// Renderer owns the canvases and runs the per-frame update and draw passes
// in ascending canvas z-order.
type Renderer struct {
	device   Device
	canvases []*Canvas

	clearColour      math.Vec4
	targetDimensions math.Vec2
	scaledDimensions math.Vec2
	viewOffset       math.Vec2
	screenScale      math.Vec2
}

func NewRenderer(device Device, config *RendererConfig) *Renderer {
	return &Renderer{
		device:      device,
		clearColour: config.ClearColour,
		screenScale: math.NewVec2One(),
	}
}

// Init records the logical target resolution, the physical device size and
// the viewport offset. ScreenScale maps physical pixels to logical ones.
func (r *Renderer) Init(targetDimensions, deviceDimensions, viewOffset math.Vec2) {
	r.targetDimensions = targetDimensions
	r.scaledDimensions = deviceDimensions
	r.viewOffset = viewOffset
	if deviceDimensions.X > 0 && deviceDimensions.Y > 0 {
		r.screenScale = targetDimensions.Div(deviceDimensions)
	}
	core.LogInfo("renderer `%s` target %vx%v device %vx%v", r.device.Name(),
		targetDimensions.X, targetDimensions.Y, deviceDimensions.X, deviceDimensions.Y)
}

func (r *Renderer) Device() Device {
	return r.device
}

func (r *Renderer) Canvases() []*Canvas {
	return r.canvases
}

func (r *Renderer) TargetDimensions() math.Vec2 {
	return r.targetDimensions
}

func (r *Renderer) ScaledDimensions() math.Vec2 {
	return r.scaledDimensions
}

func (r *Renderer) ViewOffset() math.Vec2 {
	return r.viewOffset
}

func (r *Renderer) ScreenScale() math.Vec2 {
	return r.screenScale
}

func (r *Renderer) ClearColour() math.Vec4 {
	return r.clearColour
}

func (r *Renderer) SetClearColour(c math.Vec4) {
	r.clearColour = c
}

func byCanvasZ(a, b *Canvas) int {
	return a.zOrder - b.zOrder
}

func (r *Renderer) addCanvas(c *Canvas) {
	r.canvases = append(r.canvases, c)
	slices.SortStableFunc(r.canvases, byCanvasZ)
}

func (r *Renderer) removeCanvas(c *Canvas) {
	if i := slices.Index(r.canvases, c); i >= 0 {
		r.canvases = slices.Delete(r.canvases, i, i+1)
	}
}

// Update re-sorts canvases whose z-order changed, then updates each one.
func (r *Renderer) Update() {
	resort := false
	for _, c := range r.canvases {
		if c.zOrderChanged {
			resort = true
			c.zOrderChanged = false
		}
	}
	if resort {
		slices.SortStableFunc(r.canvases, byCanvasZ)
	}
	for _, c := range slices.Clone(r.canvases) {
		c.Update()
	}
}

func (r *Renderer) viewport() metadata.Viewport {
	return metadata.Viewport{
		X:      int32(r.viewOffset.X),
		Y:      int32(r.viewOffset.Y),
		Width:  int32(r.scaledDimensions.X),
		Height: int32(r.scaledDimensions.Y),
	}
}

func (r *Renderer) Draw() {
	r.device.BeginFrame(r.viewport(), r.clearColour)
	for _, c := range slices.Clone(r.canvases) {
		c.Draw()
	}
}

// Shutdown disposes every remaining canvas, then the device.
func (r *Renderer) Shutdown() error {
	for _, c := range slices.Clone(r.canvases) {
		c.Dispose()
	}
	return r.device.Shutdown()
}
