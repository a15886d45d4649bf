package anim

import (
	"math"

	"github.com/matsen/routeviz/internal/geom"
)

// Locator resolves a node ID to its model-space position.
type Locator func(id string) (geom.Point, bool)

// Placement is where the icon sits and which way it faces (radians).
type Placement struct {
	geom.Point
	Heading float64
}

// PositionOnPath interpolates progress along path. It reports false for
// paths shorter than two nodes, for progress at or past the final segment,
// and when a segment endpoint is unknown to locate.
func PositionOnPath(path []string, progress float64, locate Locator) (Placement, bool) {
	if len(path) < 2 {
		return Placement{}, false
	}

	total := len(path) - 1
	segPos := progress * float64(total)
	idx := int(math.Floor(segPos))
	frac := segPos - float64(idx)
	if idx >= total || idx < 0 {
		return Placement{}, false
	}

	return segmentPlacement(path[idx], path[idx+1], frac, locate)
}

// RestingPlacement places an icon by its progress, parking a finished icon
// on the last node facing along the final segment.
func RestingPlacement(icon MovingIcon, locate Locator) (Placement, bool) {
	if !icon.Done() {
		return PositionOnPath(icon.Path, icon.Progress, locate)
	}
	n := len(icon.Path)
	if n < 2 {
		return Placement{}, false
	}
	return segmentPlacement(icon.Path[n-2], icon.Path[n-1], 1, locate)
}

func segmentPlacement(fromID, toID string, frac float64, locate Locator) (Placement, bool) {
	from, ok := locate(fromID)
	if !ok {
		return Placement{}, false
	}
	to, ok := locate(toID)
	if !ok {
		return Placement{}, false
	}

	return Placement{
		Point:   from.Lerp(to, frac),
		Heading: math.Atan2(to.Y-from.Y, to.X-from.X),
	}, true
}
