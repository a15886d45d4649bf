// Package vector implements render.Canvas as an SVG document.
//
// Paths are emitted in device coordinates: points are transformed as they
// are added, the way a canvas does, so later transform changes do not move
// them. Circles and line widths assume the transform is a similarity
// (uniform scale, rotation, translation), which is all the renderer uses.
package vector

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matsen/routeviz/internal/render"
)

type paint struct {
	color    color.NRGBA
	gradient *deviceGradient
}

type deviceGradient struct {
	x, y, r float64
	stops   []render.ColorStop
}

type state struct {
	m         gg.Matrix
	fill      paint
	stroke    color.NRGBA
	lineWidth float64
	lineCap   render.LineCap
	font      render.Font
}

type bbox struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func (b *bbox) add(x, y, pad float64) {
	if b.empty {
		*b = bbox{minX: x - pad, minY: y - pad, maxX: x + pad, maxY: y + pad}
		return
	}
	b.minX = math.Min(b.minX, x-pad)
	b.minY = math.Min(b.minY, y-pad)
	b.maxX = math.Max(b.maxX, x+pad)
	b.maxY = math.Max(b.maxY, y+pad)
}

// Canvas writes SVG elements as it is drawn on. Call Close to finish the
// document.
type Canvas struct {
	doc *svg.SVG

	st    state
	stack []state

	path []string
	box  bbox

	regular *opentype.Font
	bold    *opentype.Font
	faces   map[render.Font]font.Face

	gradients int
}

// New starts a width x height SVG document on w.
func New(w io.Writer, width, height int) (*Canvas, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}

	c := &Canvas{
		doc:     svg.New(w),
		regular: regular,
		bold:    bold,
		faces:   make(map[render.Font]font.Face),
		box:     bbox{empty: true},
	}
	c.st = state{
		m:         gg.Identity(),
		fill:      paint{color: color.NRGBA{0, 0, 0, 255}},
		stroke:    color.NRGBA{0, 0, 0, 255},
		lineWidth: 1,
	}
	c.doc.Start(width, height)
	return c, nil
}

// Close ends the document.
func (c *Canvas) Close() {
	c.doc.End()
}

func (c *Canvas) Clear(width, height float64) {
	d := fmt.Sprintf("M0,0 L%s,0 L%s,%s L0,%s Z", num(width), num(width), num(height), num(height))
	c.doc.Path(d, "fill:"+hex(render.Background))
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.st)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.st = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(x, y float64) { c.st.m = c.st.m.Translate(x, y) }
func (c *Canvas) Scale(s float64) { c.st.m = c.st.m.Scale(s, s) }
func (c *Canvas) Rotate(angle float64) { c.st.m = c.st.m.Rotate(angle) }

// scale is the length of a unit vector after the current transform.
func (c *Canvas) scale() float64 {
	m := c.st.m
	return math.Sqrt(math.Abs(m.XX*m.YY - m.XY*m.YX))
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
	c.box = bbox{empty: true}
}

func (c *Canvas) MoveTo(x, y float64) {
	dx, dy := c.st.m.TransformPoint(x, y)
	c.path = append(c.path, "M"+pt(dx, dy))
	c.box.add(dx, dy, 0)
}

func (c *Canvas) LineTo(x, y float64) {
	dx, dy := c.st.m.TransformPoint(x, y)
	c.path = append(c.path, "L"+pt(dx, dy))
	c.box.add(dx, dy, 0)
}

func (c *Canvas) Arc(x, y, r float64) {
	cx, cy := c.st.m.TransformPoint(x, y)
	dr := r * c.scale()
	rr := num(dr) + "," + num(dr)
	c.path = append(c.path,
		"M"+pt(cx-dr, cy),
		"A"+rr+" 0 1 0 "+pt(cx+dr, cy),
		"A"+rr+" 0 1 0 "+pt(cx-dr, cy),
		"Z")
	c.box.add(cx, cy, dr)
}

func (c *Canvas) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.path = append(c.path, "Z")
}

func (c *Canvas) Fill() {
	if len(c.path) == 0 {
		return
	}
	c.doc.Path(strings.Join(c.path, " "), c.fillStyle()+";stroke:none")
}

func (c *Canvas) Stroke() {
	if len(c.path) == 0 {
		return
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s;stroke-linecap:%s",
		hex(c.st.stroke), opacity(c.st.stroke), num(c.st.lineWidth*c.scale()), capName(c.st.lineCap))
	c.doc.Path(strings.Join(c.path, " "), style)
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.BeginPath()
	c.Rect(x, y, w, h)
	c.Fill()
	c.BeginPath()
}

func (c *Canvas) SetFillColor(col color.Color) {
	c.st.fill = paint{color: nrgba(col)}
}

func (c *Canvas) SetFillRadialGradient(g render.RadialGradient) {
	x, y := c.st.m.TransformPoint(g.X, g.Y)
	c.st.fill = paint{gradient: &deviceGradient{
		x: x, y: y, r: g.R * c.scale(),
		stops: append([]render.ColorStop(nil), g.Stops...),
	}}
}

func (c *Canvas) SetStrokeColor(col color.Color) { c.st.stroke = nrgba(col) }
func (c *Canvas) SetLineWidth(w float64) { c.st.lineWidth = w }
func (c *Canvas) SetLineCap(lc render.LineCap) { c.st.lineCap = lc }
func (c *Canvas) SetFont(f render.Font) { c.st.font = f }

func (c *Canvas) MeasureText(s string) float64 {
	face, err := c.face(c.st.font)
	if err != nil {
		// Fall back to the average advance of the Go fonts.
		return float64(len([]rune(s))) * c.st.font.Size * 0.6
	}
	return float64(font.MeasureString(face, s)) / 64
}

func (c *Canvas) FillText(s string, x, y float64) {
	m := c.st.m
	dx, dy := m.TransformPoint(x, y)
	c.doc.Gtransform(fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		num(m.XX), num(m.YX), num(m.XY), num(m.YY), num(dx), num(dy)))

	weight := "normal"
	if c.st.font.Bold {
		weight = "bold"
	}
	c.doc.Text(0, 0, s, fmt.Sprintf(
		"%s;font-family:Go,sans-serif;font-size:%spx;font-weight:%s;text-anchor:middle;dominant-baseline:central",
		c.fillStyle(), num(c.st.font.Size), weight))
	c.doc.Gend()
}

func (c *Canvas) face(f render.Font) (font.Face, error) {
	if face, ok := c.faces[f]; ok {
		return face, nil
	}
	otf := c.regular
	if f.Bold {
		otf = c.bold
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %vpx face: %w", f.Size, err)
	}
	c.faces[f] = face
	return face, nil
}

// fillStyle returns the fill declaration, emitting a gradient definition
// when the fill is a gradient. svgo gradients are in bounding-box
// percentages, so the device-space gradient is mapped onto the current
// path's box.
func (c *Canvas) fillStyle() string {
	f := c.st.fill
	if f.gradient == nil {
		return fmt.Sprintf("fill:%s;fill-opacity:%s", hex(f.color), opacity(f.color))
	}

	g := f.gradient
	b := c.box
	w, h := b.maxX-b.minX, b.maxY-b.minY
	if b.empty || w <= 0 || h <= 0 {
		// Nothing to map onto; use the first stop.
		if len(g.stops) == 0 {
			return "fill:none"
		}
		col := nrgba(g.stops[0].Color)
		return fmt.Sprintf("fill:%s;fill-opacity:%s", hex(col), opacity(col))
	}

	stops := make([]svg.Offcolor, 0, len(g.stops))
	for _, s := range g.stops {
		col := nrgba(s.Color)
		stops = append(stops, svg.Offcolor{
			Offset:  pct(s.Offset),
			Color:   hex(col),
			Opacity: float64(col.A) / 255,
		})
	}

	c.gradients++
	id := "grad" + strconv.Itoa(c.gradients)
	c.doc.Def()
	c.doc.RadialGradient(id,
		pct((g.x-b.minX)/w), pct((g.y-b.minY)/h), pct(g.r/w),
		pct((g.x-b.minX)/w), pct((g.y-b.minY)/h),
		stops)
	c.doc.DefEnd()
	return "fill:url(#" + id + ")"
}

// pct converts a fraction to an svgo percentage, clamped to a uint8.
func pct(f float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(f*100))))
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func pt(x, y float64) string {
	return num(x) + "," + num(y)
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func hex(c color.Color) string {
	n := nrgba(c)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func opacity(c color.NRGBA) string {
	return strconv.FormatFloat(math.Round(float64(c.A)/255*1000)/1000, 'f', -1, 64)
}

func capName(lc render.LineCap) string {
	switch lc {
	case render.CapRound:
		return "round"
	case render.CapSquare:
		return "square"
	default:
		return "butt"
	}
}
