package scene

import (
	"math/rand"

	"github.com/matsen/routeviz/internal/geom"
)

const (
	// NodeRadius is the drawn radius of a node and the hit-test radius.
	NodeRadius = 30.0

	// LayoutPadding keeps auto-layout positions away from the canvas border.
	LayoutPadding = 80.0
)

// Scene is the graph being drawn. Nodes iterate in insertion order, which
// also decides which node wins a hit-test when nodes overlap.
type Scene struct {
	order []string
	nodes map[string]*Node
	edges []Edge
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{nodes: make(map[string]*Node)}
}

// AddNode adds a node at (x, y). An existing node is left untouched,
// including its position and colour.
func (s *Scene) AddNode(id string, x, y float64) {
	if _, ok := s.nodes[id]; ok {
		return
	}
	s.nodes[id] = &Node{ID: id, X: x, Y: y, Color: ColorFor(id)}
	s.order = append(s.order, id)
}

// AddEdge inserts an edge between a and b, replacing any edge that already
// joins the pair in either direction.
func (s *Scene) AddEdge(a, b string, w Weight) {
	s.RemoveEdge(a, b)
	s.edges = append(s.edges, Edge{A: a, B: b, Weight: w})
}

// RemoveEdge deletes the edge joining a and b, if any.
func (s *Scene) RemoveEdge(a, b string) {
	kept := s.edges[:0]
	for _, e := range s.edges {
		if !e.Connects(a, b) {
			kept = append(kept, e)
		}
	}
	s.edges = kept
}

// Clear removes every node and edge.
func (s *Scene) Clear() {
	s.order = nil
	s.nodes = make(map[string]*Node)
	s.edges = nil
}

// Node returns the node with the given ID.
func (s *Scene) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Locate returns the position of the node with the given ID.
func (s *Scene) Locate(id string) (geom.Point, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return geom.Point{}, false
	}
	return n.Pos(), true
}

// MoveNode sets a node's position. Unknown IDs are ignored.
func (s *Scene) MoveNode(id string, x, y float64) {
	if n, ok := s.nodes[id]; ok {
		n.X, n.Y = x, y
	}
}

// Nodes returns the nodes in insertion order. The pointers are live.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Edges returns a copy of the edge list.
func (s *Scene) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Edge returns the edge joining a and b.
func (s *Scene) Edge(a, b string) (Edge, bool) {
	for _, e := range s.edges {
		if e.Connects(a, b) {
			return e, true
		}
	}
	return Edge{}, false
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.order)
}

// NodeAt returns the first node, in insertion order, whose centre lies
// strictly within NodeRadius of the model-space point p.
func (s *Scene) NodeAt(p geom.Point) (*Node, bool) {
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Pos().Dist(p) < NodeRadius {
			return n, true
		}
	}
	return nil, false
}

// AutoLayout scatters every node uniformly at random inside the
// width x height canvas, keeping LayoutPadding from each border. It does
// not avoid overlaps. Pass a seeded rng for reproducible layouts.
func (s *Scene) AutoLayout(rng *rand.Rand, width, height float64) {
	if len(s.order) == 0 {
		return
	}

	w := width - 2*LayoutPadding
	h := height - 2*LayoutPadding
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	for _, id := range s.order {
		n := s.nodes[id]
		n.X = LayoutPadding + rng.Float64()*w
		n.Y = LayoutPadding + rng.Float64()*h
	}
}

// Load replaces the scene contents with a snapshot. Every route adds its
// endpoints at the origin and upserts its edge; cities without routes are
// added afterwards so they stay visible.
func (s *Scene) Load(snap *Snapshot) {
	s.Clear()
	if snap == nil {
		return
	}

	for _, r := range snap.Routes {
		s.AddNode(r.From, 0, 0)
		s.AddNode(r.To, 0, 0)
		s.AddEdge(r.From, r.To, r.Distance)
	}
	for _, c := range snap.Cities {
		s.AddNode(c, 0, 0)
	}
}
