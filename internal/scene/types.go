// Package scene holds the nodes and edges being drawn.
package scene

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"

	"github.com/matsen/routeviz/internal/geom"
)

// Node is a city placed in model space.
type Node struct {
	ID    string     `json:"id"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Color color.RGBA `json:"-"`
}

// Pos returns the node position as a point.
func (n *Node) Pos() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// Edge is an undirected, weighted connection between two nodes.
type Edge struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Weight Weight `json:"weight"`
}

// Connects reports whether the edge joins a and b in either direction.
func (e Edge) Connects(a, b string) bool {
	return e.Key() == NewPairKey(a, b)
}

// Key returns the unordered identity of the edge.
func (e Edge) Key() PairKey {
	return NewPairKey(e.A, e.B)
}

// PairKey identifies an unordered pair of node IDs. Lo sorts before Hi.
type PairKey struct {
	Lo string
	Hi string
}

// NewPairKey normalises (a, b) so that (a, b) and (b, a) compare equal.
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// Weight is an edge weight: either a number or a free-form label.
type Weight struct {
	num   float64
	label string
	isNum bool
}

// Number returns a numeric weight.
func Number(v float64) Weight {
	return Weight{num: v, isNum: true}
}

// Label returns a text weight.
func Label(s string) Weight {
	return Weight{label: s}
}

// Float returns the numeric value and whether the weight is numeric.
func (w Weight) Float() (float64, bool) {
	return w.num, w.isNum
}

// String formats the weight for display. Integral numbers carry no decimal point.
func (w Weight) String() string {
	if !w.isNum {
		return w.label
	}
	return strconv.FormatFloat(w.num, 'f', -1, 64)
}

// MarshalJSON writes numbers as JSON numbers and labels as strings.
func (w Weight) MarshalJSON() ([]byte, error) {
	if w.isNum {
		return json.Marshal(w.num)
	}
	return json.Marshal(w.label)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (w *Weight) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*w = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("weight must be a number or string: %s", string(data))
	}
	*w = Label(s)
	return nil
}
