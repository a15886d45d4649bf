// Package visualizer wires the scene, viewport, highlight coordinator,
// input controller and renderer into one interactive graph view.
package visualizer

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/matsen/routeviz/internal/anim"
	"github.com/matsen/routeviz/internal/geom"
	"github.com/matsen/routeviz/internal/input"
	"github.com/matsen/routeviz/internal/render"
	"github.com/matsen/routeviz/internal/scene"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Option configures a Visualizer.
type Option func(*Visualizer)

// WithSize sets the initial surface size.
func WithSize(width, height float64) Option {
	return func(v *Visualizer) {
		v.width, v.height = width, height
	}
}

// WithSeed seeds the auto-layout RNG. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(v *Visualizer) {
		v.seed = seed
	}
}

// WithCanvas sets the drawing surface.
func WithCanvas(c render.Canvas) Option {
	return func(v *Visualizer) {
		v.canvas = c
	}
}

// WithLogger sets the logger; child loggers go to the coordinator,
// controller and renderer.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(v *Visualizer) {
		v.log = l
	}
}

// WithAfterDraw registers a callback run after every frame-loop redraw with
// the frame that was painted.
func WithAfterDraw(fn func(frame int)) Option {
	return func(v *Visualizer) {
		v.afterDraw = fn
	}
}

// Visualizer is a single graph view. Like the pieces it wires together it
// is confined to one goroutine.
type Visualizer struct {
	scene    *scene.Scene
	viewport geom.Viewport
	coord    *anim.Coordinator
	ctrl     *input.Controller
	renderer *render.Renderer

	canvas        render.Canvas
	width, height float64
	seed          int64
	rng           *rand.Rand
	log           *zap.SugaredLogger
	afterDraw     func(frame int)
}

// New returns an empty visualizer whose animations run on sched.
func New(sched anim.Scheduler, opts ...Option) *Visualizer {
	v := &Visualizer{
		scene:    scene.New(),
		viewport: geom.Identity(),
		width:    DefaultWidth,
		height:   DefaultHeight,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(v)
	}

	seed := v.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	v.rng = rand.New(rand.NewSource(seed))

	v.coord = anim.NewCoordinator(sched,
		anim.WithLogger(v.log.Named("anim")),
		anim.WithFrameHook(v.onFrame))
	v.ctrl = input.NewController(v.scene, &v.viewport, input.WithLogger(v.log.Named("input")))
	v.renderer = render.NewRenderer(render.WithLogger(v.log.Named("render")))
	return v
}

// Scene returns the live scene.
func (v *Visualizer) Scene() *scene.Scene {
	return v.scene
}

// Viewport returns the current transform.
func (v *Visualizer) Viewport() geom.Viewport {
	return v.viewport
}

// Coordinator returns the highlight state.
func (v *Visualizer) Coordinator() *anim.Coordinator {
	return v.coord
}

// Size returns the surface size.
func (v *Visualizer) Size() (width, height float64) {
	return v.width, v.height
}

// Cursor returns the pointer feedback for the host.
func (v *Visualizer) Cursor() input.Cursor {
	return v.ctrl.Cursor()
}

// SetCanvas swaps the drawing surface. It does not redraw.
func (v *Visualizer) SetCanvas(c render.Canvas) {
	v.canvas = c
}

// Draw paints the current state using the coordinator's frame counter.
func (v *Visualizer) Draw() {
	v.draw(v.coord.Frame())
}

func (v *Visualizer) draw(frame int) {
	if v.canvas == nil {
		return
	}
	v.renderer.Draw(v.canvas, v.width, v.height, v.scene, v.viewport, v.coord, frame)
}

func (v *Visualizer) onFrame(frame int) {
	v.draw(frame)
	if v.afterDraw != nil {
		v.afterDraw(frame)
	}
}

// Resize changes the surface size and redraws immediately.
func (v *Visualizer) Resize(width, height float64) {
	v.width, v.height = width, height
	v.Draw()
}

// AddNode adds a node; existing nodes are left where they are.
func (v *Visualizer) AddNode(id string, x, y float64) {
	v.scene.AddNode(id, x, y)
}

// AddEdge inserts or replaces the edge between a and b.
func (v *Visualizer) AddEdge(a, b string, w scene.Weight) {
	v.scene.AddEdge(a, b, w)
}

// RemoveEdge deletes the edge between a and b.
func (v *Visualizer) RemoveEdge(a, b string) {
	v.scene.RemoveEdge(a, b)
}

// AutoLayout scatters the nodes over the surface and resets the viewport.
func (v *Visualizer) AutoLayout() {
	if v.scene.Len() == 0 {
		return
	}
	v.scene.AutoLayout(v.rng, v.width, v.height)
	v.viewport.Reset()
}

// Clear empties the scene, drops highlights, resets the viewport and
// redraws.
func (v *Visualizer) Clear() {
	v.reset()
	v.Draw()
}

func (v *Visualizer) reset() {
	v.scene.Clear()
	v.coord.ClearHighlights()
	v.viewport.Reset()
}

// LoadSnapshot replaces the graph with snap, lays it out and redraws.
func (v *Visualizer) LoadSnapshot(snap *scene.Snapshot) {
	v.reset()
	v.scene.Load(snap)
	v.AutoLayout()
	v.Draw()
	v.log.Infow("graph loaded", "cities", v.scene.Len(), "routes", len(v.scene.Edges()))
}

// SetHighlightPath highlights path and sends an icon of kind along it.
func (v *Visualizer) SetHighlightPath(path []string, kind anim.IconKind) {
	v.coord.SetHighlightPath(path, kind)
}

// SetHighlightNodes highlights a set of nodes without motion.
func (v *Visualizer) SetHighlightNodes(nodes []string) {
	v.coord.SetHighlightNodes(nodes)
}

// ClearHighlights drops all highlighting and redraws.
func (v *Visualizer) ClearHighlights() {
	v.coord.ClearHighlights()
	v.Draw()
}

// PointerDown handles a button press at surface coordinates (sx, sy).
func (v *Visualizer) PointerDown(sx, sy float64) {
	v.redrawIf(v.ctrl.PointerDown(sx, sy))
}

// PointerMove handles pointer motion.
func (v *Visualizer) PointerMove(sx, sy float64) {
	v.redrawIf(v.ctrl.PointerMove(sx, sy))
}

// PointerUp handles a button release.
func (v *Visualizer) PointerUp() {
	v.redrawIf(v.ctrl.PointerUp())
}

// PointerLeave handles the pointer leaving the surface.
func (v *Visualizer) PointerLeave() {
	v.redrawIf(v.ctrl.PointerLeave())
}

// Wheel zooms one step. It reports whether the host must suppress its
// default scroll handling, which is always.
func (v *Visualizer) Wheel(deltaY float64) bool {
	redraw, prevent := v.ctrl.Wheel(deltaY)
	v.redrawIf(redraw)
	return prevent
}

func (v *Visualizer) redrawIf(redraw bool) {
	if redraw {
		v.Draw()
	}
}
