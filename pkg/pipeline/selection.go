package pipeline

import "github.com/taigrr/blockfield/pkg/math3d"

// SelectionFlags records which markers matched an instance.
type SelectionFlags uint8

const (
	SelectedPrimary SelectionFlags = 1 << iota
	SelectedSecondary
)

// Primary reports whether the first marker matched.
func (f SelectionFlags) Primary() bool { return f&SelectedPrimary != 0 }

// Secondary reports whether the second marker matched.
func (f SelectionFlags) Secondary() bool { return f&SelectedSecondary != 0 }

// Select compares both markers against an instance translation. A marker
// only takes part when its w is exactly 1, and xyz must match exactly.
func Select(g FrameGlobals, translation math3d.Vec3) SelectionFlags {
	var f SelectionFlags
	if matches(g.Selected, translation) {
		f |= SelectedPrimary
	}
	if matches(g.Selected2, translation) {
		f |= SelectedSecondary
	}
	return f
}

func matches(marker math3d.Vec4, t math3d.Vec3) bool {
	return marker.W == 1 && marker.X == t.X && marker.Y == t.Y && marker.Z == t.Z
}

// Highlight holds the override colors for selected instances.
type Highlight struct {
	Primary   math3d.Vec4
	Secondary math3d.Vec4
}

// DefaultHighlight paints the primary selection opaque red and the
// secondary opaque blue.
func DefaultHighlight() Highlight {
	return Highlight{
		Primary:   math3d.V4(1, 0, 0, 1),
		Secondary: math3d.V4(0, 0, 1, 1),
	}
}

// Resolve returns the final color for a fragment. The primary marker wins
// when both match, and an override replaces the color outright.
func (h Highlight) Resolve(c math3d.Vec4, f SelectionFlags) math3d.Vec4 {
	switch {
	case f.Primary():
		return h.Primary
	case f.Secondary():
		return h.Secondary
	default:
		return c
	}
}
