package render

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/matsen/routeviz/internal/anim"
	"github.com/matsen/routeviz/internal/geom"
	"github.com/matsen/routeviz/internal/scene"
)

// Highlights is the read side of the highlight state. *anim.Coordinator
// implements it.
type Highlights interface {
	IsHighlighted(id string) bool
	IsVisited(id string) bool
	IsEdgeOnPath(a, b string) bool
	Icon() (anim.MovingIcon, bool)
}

// Renderer paints frames. It keeps no per-frame state, so one Renderer can
// serve any number of scenes.
type Renderer struct {
	log *zap.SugaredLogger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Draw paints one frame: clear, apply the viewport, then edges, nodes and
// the moving icon. frame drives the pulse of highlighted elements.
func (r *Renderer) Draw(c Canvas, width, height float64, sc *scene.Scene, vp geom.Viewport, hl Highlights, frame int) {
	c.Clear(width, height)
	c.Save()
	defer c.Restore()

	c.Translate(vp.OffsetX, vp.OffsetY)
	c.Scale(vp.Scale)

	pulse := Pulse(frame)
	r.drawEdges(c, sc, hl, pulse)
	for _, n := range sc.Nodes() {
		drawNode(c, n, hl, pulse)
	}
	if icon, ok := hl.Icon(); ok {
		r.drawIcon(c, sc, icon)
	}
}

func (r *Renderer) drawEdges(c Canvas, sc *scene.Scene, hl Highlights, pulse float64) {
	for _, e := range sc.Edges() {
		from, ok := sc.Node(e.A)
		if !ok {
			r.log.Debugw("skipping edge with missing endpoint", "from", e.A, "to", e.B)
			continue
		}
		to, ok := sc.Node(e.B)
		if !ok {
			r.log.Debugw("skipping edge with missing endpoint", "from", e.A, "to", e.B)
			continue
		}

		onPath := hl.IsEdgeOnPath(e.A, e.B)
		if onPath {
			c.SetStrokeColor(pathEdgeColor(pulse))
			c.SetLineWidth(4 + 2*pulse)
		} else {
			c.SetStrokeColor(edgeColor)
			c.SetLineWidth(edgeWidth)
		}
		c.BeginPath()
		c.MoveTo(from.X, from.Y)
		c.LineTo(to.X, to.Y)
		c.Stroke()

		drawEdgeLabel(c, e.Weight.String(), (from.X+to.X)/2, (from.Y+to.Y)/2, onPath)
	}
}

// drawEdgeLabel centres the weight on an opaque plate sized to the text.
func drawEdgeLabel(c Canvas, label string, mx, my float64, active bool) {
	c.SetFont(Font{Size: edgeLabelSize, Bold: true})
	w := c.MeasureText(label)

	c.SetFillColor(labelPlate)
	c.FillRect(mx-w/2-4, my-8, w+8, 16)

	if active {
		c.SetFillColor(edgeLabelActive)
	} else {
		c.SetFillColor(edgeLabelColor)
	}
	c.FillText(label, mx, my)
}

func drawNode(c Canvas, n *scene.Node, hl Highlights, pulse float64) {
	highlighted := hl.IsHighlighted(n.ID)
	visited := hl.IsVisited(n.ID)
	gradR := scene.NodeRadius + pulse*10

	switch {
	case highlighted && visited:
		drawGlow(c, n.X, n.Y, visitedGlow, 20+pulse*10)
		c.SetFillRadialGradient(RadialGradient{X: n.X, Y: n.Y, R: gradR, Stops: []ColorStop{
			{Offset: 0, Color: visitedInner},
			{Offset: 1, Color: visitedOuter},
		}})
	case highlighted:
		drawGlow(c, n.X, n.Y, activeGlow, 15+pulse*10)
		c.SetFillRadialGradient(RadialGradient{X: n.X, Y: n.Y, R: gradR, Stops: []ColorStop{
			{Offset: 0, Color: activeInner},
			{Offset: 1, Color: activeOuter},
		}})
	default:
		c.SetFillColor(n.Color)
	}

	c.BeginPath()
	c.Arc(n.X, n.Y, scene.NodeRadius)
	c.Fill()

	switch {
	case visited:
		c.SetStrokeColor(visitedInner)
		c.SetLineWidth(visitedBorder)
	case highlighted:
		c.SetStrokeColor(activeOuter)
		c.SetLineWidth(nodeBorderWidth)
	default:
		c.SetStrokeColor(edgeColor)
		c.SetLineWidth(nodeBorderWidth)
	}
	c.Stroke()

	c.SetFont(Font{Size: nodeLabelSize, Bold: true})
	if highlighted || visited {
		c.SetFillColor(nodeLabelLite)
	} else {
		c.SetFillColor(nodeLabelDark)
	}
	c.FillText(n.ID, n.X, n.Y)
}

// drawGlow stands in for a blurred shadow: translucent rings reaching
// half the blur radius past the node edge, densest near the node.
func drawGlow(c Canvas, x, y float64, tint color.NRGBA, blur float64) {
	ring := tint
	ring.A = uint8(float64(tint.A) / glowRings)
	c.SetFillColor(ring)
	for i := glowRings; i >= 1; i-- {
		c.BeginPath()
		c.Arc(x, y, scene.NodeRadius+blur/2*float64(i)/glowRings)
		c.Fill()
	}
}

func (r *Renderer) drawIcon(c Canvas, sc *scene.Scene, icon anim.MovingIcon) {
	at, ok := anim.RestingPlacement(icon, sc.Locate)
	if !ok {
		return
	}

	c.Save()
	defer c.Restore()
	c.Translate(at.X, at.Y)
	c.Rotate(at.Heading)

	switch icon.Kind {
	case anim.Pedestrian:
		drawPedestrian(c, icon.Progress)
	default:
		drawVehicle(c)
	}
}
