// Package viz exports a route graph as a self-contained interactive HTML page.
package viz

// GraphData contains all data needed to render the page.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a city with its layout position and highlight flags.
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"-"`
	Y     float64 `json:"-"`
	Color string  `json:"color"`

	Highlighted bool `json:"highlighted"`
	Visited     bool `json:"visited"`

	Degree int `json:"degree"`
}

// Edge is a route between two cities.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	OnPath bool   `json:"onPath"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
