// Package raster implements render.Canvas on a gg image context.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matsen/routeviz/internal/render"
)

// Canvas draws into an RGBA image. gg consumes paths on Fill and Stroke,
// so this wrapper uses the Preserve variants and clears on BeginPath.
type Canvas struct {
	dc *gg.Context

	regular *truetype.Font
	bold    *truetype.Font
	faces   map[render.Font]font.Face

	// Text is drawn in the last solid fill colour; gg keeps a separate
	// text colour, so track it alongside gg's own state stack. Line width
	// is kept in user units and scaled to device pixels on Stroke.
	text      color.Color
	lineWidth float64
	stack     []state
}

type state struct {
	text      color.Color
	lineWidth float64
}

// New returns a width x height canvas cleared to render.Background.
func New(width, height int) (*Canvas, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}

	c := &Canvas{
		dc:        gg.NewContext(width, height),
		regular:   regular,
		bold:      bold,
		faces:     make(map[render.Font]font.Face),
		text:      color.Black,
		lineWidth: 1,
	}
	c.Clear(float64(width), float64(height))
	return c, nil
}

// Image returns the backing image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the current image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the current image to path.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving png %s: %w", path, err)
	}
	return nil
}

func (c *Canvas) Clear(width, height float64) {
	c.dc.Push()
	c.dc.SetColor(render.Background)
	c.dc.Clear()
	c.dc.Pop()
	c.dc.ClearPath()
}

func (c *Canvas) Save() {
	c.dc.Push()
	c.stack = append(c.stack, state{text: c.text, lineWidth: c.lineWidth})
}

func (c *Canvas) Restore() {
	c.dc.Pop()
	if n := len(c.stack); n > 0 {
		c.text = c.stack[n-1].text
		c.lineWidth = c.stack[n-1].lineWidth
		c.stack = c.stack[:n-1]
	}
}

// scale is the uniform scale factor of the current transform.
func (c *Canvas) scale() float64 {
	ox, oy := c.dc.TransformPoint(0, 0)
	ux, uy := c.dc.TransformPoint(1, 0)
	vx, vy := c.dc.TransformPoint(0, 1)
	return math.Sqrt(math.Abs((ux-ox)*(vy-oy) - (uy-oy)*(vx-ox)))
}

func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *Canvas) Scale(s float64) { c.dc.Scale(s, s) }
func (c *Canvas) Rotate(angle float64) { c.dc.Rotate(angle) }

func (c *Canvas) BeginPath() { c.dc.ClearPath() }
func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *Canvas) Arc(x, y, r float64) { c.dc.DrawCircle(x, y, r) }
func (c *Canvas) Rect(x, y, w, h float64) { c.dc.DrawRectangle(x, y, w, h) }
func (c *Canvas) Fill() { c.dc.FillPreserve() }
func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }
func (c *Canvas) SetStrokeColor(col color.Color) { c.dc.SetStrokeStyle(gg.NewSolidPattern(col)) }

// Stroke converts the line width to device pixels; gg does not apply the
// transform to it.
func (c *Canvas) Stroke() {
	c.dc.SetLineWidth(c.lineWidth * c.scale())
	c.dc.StrokePreserve()
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *Canvas) SetFillColor(col color.Color) {
	c.dc.SetFillStyle(gg.NewSolidPattern(col))
	c.text = col
}

// SetFillRadialGradient maps the gradient into device space, where gg
// evaluates patterns.
func (c *Canvas) SetFillRadialGradient(g render.RadialGradient) {
	cx, cy := c.dc.TransformPoint(g.X, g.Y)
	ox, oy := c.dc.TransformPoint(0, 0)
	ux, uy := c.dc.TransformPoint(1, 0)
	r := g.R * math.Hypot(ux-ox, uy-oy)

	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	c.dc.SetFillStyle(grad)
}

func (c *Canvas) SetLineCap(lc render.LineCap) {
	switch lc {
	case render.CapRound:
		c.dc.SetLineCap(gg.LineCapRound)
	case render.CapSquare:
		c.dc.SetLineCap(gg.LineCapSquare)
	default:
		c.dc.SetLineCap(gg.LineCapButt)
	}
}

func (c *Canvas) SetFont(f render.Font) {
	face, ok := c.faces[f]
	if !ok {
		ttf := c.regular
		if f.Bold {
			ttf = c.bold
		}
		face = truetype.NewFace(ttf, &truetype.Options{
			Size:    f.Size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		c.faces[f] = face
	}
	c.dc.SetFontFace(face)
}

func (c *Canvas) MeasureText(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

func (c *Canvas) FillText(s string, x, y float64) {
	c.dc.Push()
	c.dc.SetColor(c.text)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
	c.dc.Pop()
}
