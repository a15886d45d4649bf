package viz

import (
	"fmt"

	"github.com/matsen/routeviz/internal/scene"
)

// Highlights reports the highlight state of cities and routes. The
// animation coordinator satisfies it.
type Highlights interface {
	IsHighlighted(id string) bool
	IsVisited(id string) bool
	IsEdgeOnPath(a, b string) bool
}

// BuildGraphFromScene captures the scene's cities at their current positions
// together with their routes. hl may be nil.
func BuildGraphFromScene(sc *scene.Scene, hl Highlights) *GraphData {
	edges := sc.Edges()
	degree := make(map[string]int)
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}

	nodes := make([]Node, 0, sc.Len())
	for _, n := range sc.Nodes() {
		c := n.Color
		node := Node{
			ID:     n.ID,
			Label:  n.ID,
			X:      n.X,
			Y:      n.Y,
			Color:  fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
			Degree: degree[n.ID],
		}
		if hl != nil {
			node.Highlighted = hl.IsHighlighted(n.ID)
			node.Visited = hl.IsVisited(n.ID)
		}
		nodes = append(nodes, node)
	}

	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := sc.Node(e.A); !ok {
			continue
		}
		if _, ok := sc.Node(e.B); !ok {
			continue
		}
		out = append(out, Edge{
			Source: e.A,
			Target: e.B,
			Label:  e.Weight.String(),
			OnPath: hl != nil && hl.IsEdgeOnPath(e.A, e.B),
		})
	}

	return &GraphData{Nodes: nodes, Edges: out}
}
