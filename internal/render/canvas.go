// Package render paints a scene, its viewport and highlight state onto a
// drawing surface.
package render

import "image/color"

// LineCap is the shape drawn at the ends of stroked open paths.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// Font selects the label face. Sizes are in model-space pixels.
type Font struct {
	Size float64
	Bold bool
}

// ColorStop is one stop of a gradient, Offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.Color
}

// RadialGradient runs from the centre (X, Y) out to radius R, in the
// coordinate space current when it is set.
type RadialGradient struct {
	X, Y, R float64
	Stops   []ColorStop
}

// Canvas is an immediate-mode 2D surface with HTML-canvas-like semantics:
// a current path built with BeginPath/MoveTo/LineTo/Arc/Rect that Fill and
// Stroke paint without consuming, and a transform stack saved by Save and
// restored by Restore together with the style state.
type Canvas interface {
	// Clear erases the whole width x height surface to the background,
	// ignoring the current transform.
	Clear(width, height float64)
	Save()
	Restore()
	Translate(x, y float64)
	Scale(s float64)
	Rotate(angle float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a full circle as a closed subpath.
	Arc(x, y, r float64)
	Rect(x, y, w, h float64)
	Fill()
	Stroke()
	// FillRect paints a rectangle with the fill style. The current path is
	// discarded.
	FillRect(x, y, w, h float64)

	SetFillColor(c color.Color)
	SetFillRadialGradient(g RadialGradient)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(lc LineCap)

	SetFont(f Font)
	// MeasureText returns the advance width of s in the current font.
	MeasureText(s string) float64
	// FillText draws s centred horizontally and vertically on (x, y).
	FillText(s string, x, y float64)
}
