// Package input turns pointer and wheel events into scene and viewport
// changes.
package input

import (
	"go.uber.org/zap"

	"github.com/matsen/routeviz/internal/geom"
	"github.com/matsen/routeviz/internal/scene"
)

// Cursor is the pointer feedback the host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

// String returns the CSS cursor name.
func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// DragMode is what a pressed pointer is moving.
type DragMode int

const (
	DragNone DragMode = iota
	DragNode
	DragPan
)

// DragState is the gesture in progress. For DragNode, Grab is the
// model-space offset from the node centre to the pointer; for DragPan it is
// the screen position minus the viewport offset at press time.
type DragState struct {
	Mode   DragMode
	NodeID string
	Grab   geom.Point
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller applies pointer gestures to a scene and viewport it does not
// own. Every handler reports whether the host should redraw.
type Controller struct {
	scene  *scene.Scene
	vp     *geom.Viewport
	log    *zap.SugaredLogger
	drag   DragState
	cursor Cursor
}

// NewController returns a controller acting on sc and vp.
func NewController(sc *scene.Scene, vp *geom.Viewport, opts ...Option) *Controller {
	c := &Controller{
		scene: sc,
		vp:    vp,
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Drag returns the gesture in progress.
func (c *Controller) Drag() DragState {
	return c.drag
}

// Cursor returns the current pointer feedback.
func (c *Controller) Cursor() Cursor {
	return c.cursor
}

// PointerDown starts dragging the node under the pointer, or panning when
// there is none. sx, sy are surface-relative screen coordinates.
func (c *Controller) PointerDown(sx, sy float64) bool {
	pos := c.vp.ScreenToModel(geom.Point{X: sx, Y: sy})

	if n, ok := c.scene.NodeAt(pos); ok {
		c.drag = DragState{
			Mode:   DragNode,
			NodeID: n.ID,
			Grab:   geom.Point{X: pos.X - n.X, Y: pos.Y - n.Y},
		}
		c.log.Debugw("node drag started", "node", n.ID)
	} else {
		c.drag = DragState{
			Mode: DragPan,
			Grab: geom.Point{X: sx - c.vp.OffsetX, Y: sy - c.vp.OffsetY},
		}
	}
	c.cursor = CursorGrabbing
	return false
}

// PointerMove continues a drag or, with no button held, updates hover
// feedback.
func (c *Controller) PointerMove(sx, sy float64) bool {
	switch c.drag.Mode {
	case DragNode:
		pos := c.vp.ScreenToModel(geom.Point{X: sx, Y: sy})
		c.scene.MoveNode(c.drag.NodeID, pos.X-c.drag.Grab.X, pos.Y-c.drag.Grab.Y)
		return true
	case DragPan:
		c.vp.PanTo(sx-c.drag.Grab.X, sy-c.drag.Grab.Y)
		return true
	default:
		if _, ok := c.scene.NodeAt(c.vp.ScreenToModel(geom.Point{X: sx, Y: sy})); ok {
			c.cursor = CursorGrab
		} else {
			c.cursor = CursorDefault
		}
		return false
	}
}

// PointerUp ends any drag.
func (c *Controller) PointerUp() bool {
	if c.drag.Mode == DragNode {
		c.log.Debugw("node drag ended", "node", c.drag.NodeID)
	}
	c.drag = DragState{}
	c.cursor = CursorDefault
	return false
}

// PointerLeave ends any drag, as releasing the button would.
func (c *Controller) PointerLeave() bool {
	return c.PointerUp()
}

// Wheel zooms one step and reports that a redraw is needed and that the
// host's default scrolling must be suppressed.
func (c *Controller) Wheel(deltaY float64) (redraw, preventDefault bool) {
	c.vp.Zoom(deltaY)
	return true, true
}
