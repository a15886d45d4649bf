// Package anim owns highlight state and advances the moving icon frame by frame.
package anim

import (
	"errors"
	"fmt"
	"strings"
)

// IconKind selects the glyph and speed of the moving icon.
type IconKind int

const (
	Vehicle IconKind = iota
	Pedestrian
)

// Per-tick progress deltas. They are not time-normalised, so the animation
// length depends on how often the host delivers frames (tuned for ~60 fps).
const (
	VehicleSpeed    = 0.0015
	PedestrianSpeed = 0.0008
)

// ErrUnknownIconKind is returned by ParseIconKind for unrecognised names.
var ErrUnknownIconKind = errors.New("unknown icon kind")

// Speed returns the per-tick progress delta for the kind.
func (k IconKind) Speed() float64 {
	if k == Pedestrian {
		return PedestrianSpeed
	}
	return VehicleSpeed
}

func (k IconKind) String() string {
	switch k {
	case Vehicle:
		return "vehicle"
	case Pedestrian:
		return "pedestrian"
	default:
		return fmt.Sprintf("IconKind(%d)", int(k))
	}
}

// ParseIconKind accepts "vehicle"/"bus" and "pedestrian"/"person".
func ParseIconKind(s string) (IconKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vehicle", "bus":
		return Vehicle, nil
	case "pedestrian", "person":
		return Pedestrian, nil
	default:
		return Vehicle, fmt.Errorf("%w: %q (valid: vehicle, pedestrian)", ErrUnknownIconKind, s)
	}
}

// MovingIcon is the marker travelling along a highlighted path.
type MovingIcon struct {
	Kind     IconKind
	Progress float64 // 0..1 along Path
	Path     []string
}

// Done reports whether the icon has reached the end of its path.
func (m MovingIcon) Done() bool {
	return m.Progress >= 1
}
