package anim

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// earlyArrival is the in-segment fraction past which the next node is
// already marked visited.
const earlyArrival = 0.9

// Handle identifies a pending frame callback. The zero Handle means none.
type Handle uint64

// Scheduler delivers frame callbacks "before the next repaint".
type Scheduler interface {
	// RequestTick schedules fn for the next frame.
	RequestTick(fn func()) Handle
	// CancelTick drops a pending callback. Unknown or zero handles are ignored.
	CancelTick(h Handle)
}

// State is the highlight mode of a Coordinator.
type State int

const (
	Idle State = iota
	StaticHighlight
	PathAnimating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case StaticHighlight:
		return "static_highlight"
	case PathAnimating:
		return "path_animating"
	default:
		return "unknown"
	}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Coordinator) {
		c.log = l
	}
}

// WithFrameHook sets the callback run at the start of every frame, before
// the icon advances. Hosts use it to repaint.
func WithFrameHook(fn func(frame int)) Option {
	return func(c *Coordinator) {
		c.onFrame = fn
	}
}

// Coordinator holds highlight state and drives the frame loop. It is not
// safe for concurrent use; all calls must come from the host's event thread.
type Coordinator struct {
	sched   Scheduler
	log     *zap.SugaredLogger
	onFrame func(frame int)

	state       State
	path        []string
	highlighted map[string]bool
	visited     map[string]bool
	icon        *MovingIcon
	// marked is the highest path index already in visited.
	marked int

	frame   int
	pending Handle
	running bool
}

// NewCoordinator returns an idle coordinator that schedules frames on sched.
func NewCoordinator(sched Scheduler, opts ...Option) *Coordinator {
	c := &Coordinator{
		sched:       sched,
		log:         zap.NewNop().Sugar(),
		highlighted: make(map[string]bool),
		visited:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFrameHook replaces the per-frame callback.
func (c *Coordinator) SetFrameHook(fn func(frame int)) {
	c.onFrame = fn
}

// SetHighlightNodes highlights a node set without motion. Any path, icon
// and visited marks are dropped. The loop keeps running so the nodes pulse.
func (c *Coordinator) SetHighlightNodes(nodes []string) {
	c.reset()
	for _, id := range nodes {
		c.highlighted[id] = true
	}
	c.state = StaticHighlight
	c.log.Debugw("highlighting nodes", "count", len(c.highlighted))
	c.restart()
}

// SetHighlightPath highlights path and starts an icon of the given kind at
// its first node. Paths shorter than two nodes highlight without an icon.
// A loop already in flight is cancelled before the new one starts.
func (c *Coordinator) SetHighlightPath(path []string, kind IconKind) {
	c.reset()
	if len(path) == 0 {
		c.log.Debugw("empty path highlight, staying idle")
		return
	}

	c.path = append([]string(nil), path...)
	for _, id := range c.path {
		c.highlighted[id] = true
	}
	c.visited[c.path[0]] = true
	c.marked = 0

	if len(c.path) < 2 {
		c.state = StaticHighlight
	} else {
		c.state = PathAnimating
		c.icon = &MovingIcon{Kind: kind, Path: c.path}
	}

	c.log.Debugw("highlighting path", "nodes", len(c.path), "icon", kind.String(), "state", c.state.String())
	c.restart()
}

// ClearHighlights returns to Idle from any state and cancels the loop.
func (c *Coordinator) ClearHighlights() {
	c.reset()
	c.log.Debugw("highlights cleared")
}

// Stop cancels the frame loop without touching highlight state. Stopping
// an already stopped loop does nothing.
func (c *Coordinator) Stop() {
	c.running = false
	if c.pending != 0 {
		c.sched.CancelTick(c.pending)
		c.pending = 0
	}
}

// reset stops the loop and drops every highlight.
func (c *Coordinator) reset() {
	c.Stop()
	c.state = Idle
	c.path = nil
	c.highlighted = make(map[string]bool)
	c.visited = make(map[string]bool)
	c.icon = nil
	c.marked = 0
}

// restart cancels any pending frame and schedules a fresh loop from frame 0.
func (c *Coordinator) restart() {
	c.Stop()
	c.frame = 0
	c.running = true
	c.pending = c.sched.RequestTick(c.tick)
}

// tick runs one frame: repaint hook, frame counter, icon advance, reschedule.
func (c *Coordinator) tick() {
	c.pending = 0
	if !c.running {
		return
	}

	c.notify()
	if !c.running || c.pending != 0 {
		// The hook cleared or restarted the highlight.
		return
	}
	c.frame++

	if c.advance() {
		c.Stop()
		c.log.Debugw("icon arrived", "frames", c.frame)
		// Paint the arrival; nothing else will.
		c.notify()
		return
	}

	c.pending = c.sched.RequestTick(c.tick)
}

func (c *Coordinator) notify() {
	if c.onFrame != nil {
		c.onFrame(c.frame)
	}
}

// advance moves the icon one step and reports whether it just arrived.
func (c *Coordinator) advance() bool {
	icon := c.icon
	if icon == nil || len(icon.Path) < 2 || icon.Done() {
		return false
	}

	icon.Progress += icon.Kind.Speed()

	last := len(icon.Path) - 1
	segPos := icon.Progress * float64(last)
	reach := int(math.Floor(segPos))
	if reach < last && segPos-float64(reach) > earlyArrival {
		reach++
	}
	// One tick can cross several short segments; mark every node passed.
	for ; c.marked < reach && c.marked < last; c.marked++ {
		c.visited[icon.Path[c.marked+1]] = true
	}

	if icon.Progress >= 1 {
		icon.Progress = 1
		c.visited[icon.Path[len(icon.Path)-1]] = true
		return true
	}
	return false
}

// State returns the current highlight mode.
func (c *Coordinator) State() State {
	return c.state
}

// Frame returns the frame counter, reset to 0 whenever a highlight starts.
func (c *Coordinator) Frame() int {
	return c.frame
}

// Running reports whether a frame callback is scheduled.
func (c *Coordinator) Running() bool {
	return c.running
}

// Path returns a copy of the highlighted path.
func (c *Coordinator) Path() []string {
	return append([]string(nil), c.path...)
}

// Icon returns a copy of the moving icon, if any.
func (c *Coordinator) Icon() (MovingIcon, bool) {
	if c.icon == nil {
		return MovingIcon{}, false
	}
	icon := *c.icon
	icon.Path = append([]string(nil), c.icon.Path...)
	return icon, true
}

// IsHighlighted reports whether id is in the highlighted set.
func (c *Coordinator) IsHighlighted(id string) bool {
	return c.highlighted[id]
}

// IsVisited reports whether the icon has reached (or is about to reach) id.
func (c *Coordinator) IsVisited(id string) bool {
	return c.visited[id]
}

// HighlightedNodes returns the highlighted set, sorted.
func (c *Coordinator) HighlightedNodes() []string {
	return sortedKeys(c.highlighted)
}

// VisitedNodes returns the visited set, sorted.
func (c *Coordinator) VisitedNodes() []string {
	return sortedKeys(c.visited)
}

// IsEdgeOnPath reports whether (a, b) is a consecutive pair of the
// highlighted path in either direction.
func (c *Coordinator) IsEdgeOnPath(a, b string) bool {
	for i := 0; i+1 < len(c.path); i++ {
		p, q := c.path[i], c.path[i+1]
		if (p == a && q == b) || (p == b && q == a) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
