// Package geom maps between screen space and model space.
package geom

import "math"

// Zoom limits and per-tick multipliers.
const (
	MinScale    = 0.5
	MaxScale    = 3.0
	ZoomInStep  = 1.1
	ZoomOutStep = 0.9
)

// Point is a 2D coordinate in either screen or model space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp interpolates linearly from p towards q by t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Viewport is the pan offset and zoom scale of the model-to-screen transform.
// The zero value is not usable; start from Identity.
type Viewport struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
}

// Identity returns a viewport with no pan and unit scale.
func Identity() Viewport {
	return Viewport{Scale: 1}
}

// ScreenToModel converts a screen-space point to model space.
func (v Viewport) ScreenToModel(p Point) Point {
	return Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (p.Y - v.OffsetY) / v.Scale,
	}
}

// ModelToScreen converts a model-space point to screen space.
func (v Viewport) ModelToScreen(p Point) Point {
	return Point{
		X: p.X*v.Scale + v.OffsetX,
		Y: p.Y*v.Scale + v.OffsetY,
	}
}

// Zoom applies one wheel tick. A positive deltaY zooms out, anything else
// zooms in. Scaling is about the origin, not the pointer.
func (v *Viewport) Zoom(deltaY float64) {
	step := ZoomInStep
	if deltaY > 0 {
		step = ZoomOutStep
	}
	v.Scale = ClampScale(v.Scale * step)
}

// PanTo sets the offset directly.
func (v *Viewport) PanTo(x, y float64) {
	v.OffsetX = x
	v.OffsetY = y
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	*v = Identity()
}

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}
