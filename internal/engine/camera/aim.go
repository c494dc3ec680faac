// Package camera implements aiming and the capture state machine that turns a
// shutter press or tap into a found object.
package camera

import (
	gomath "math"

	"github.com/Faultbox/wildsnap/internal/engine/viewport"
	"github.com/Faultbox/wildsnap/internal/scene"
	"github.com/Faultbox/wildsnap/pkg/math"
)

// DefaultTolerance is the per-axis distance from the viewport center, in world
// pixels, within which an object counts as centered.
const DefaultTolerance = 50

// AimAssist decides whether an object can be photographed from the current
// viewport and how far to move toward it.
type AimAssist struct {
	Tolerance float64
}

// IsInView reports whether an object's bounding square overlaps the viewport.
// Objects without a position are never in view.
func (a AimAssist) IsInView(vp *viewport.Viewport, obj *scene.Object) bool {
	if obj == nil || !obj.Positioned {
		return false
	}
	return math.SquareAround(obj.Center(), obj.Radius).Intersects(vp.Rect())
}

// Offset returns the full delta from the viewport center to the object.
func (a AimAssist) Offset(vp *viewport.Viewport, obj *scene.Object) math.Vec2 {
	return obj.Center().Sub(vp.Center())
}

// Centered reports whether a delta is within tolerance on both axes.
func (a AimAssist) Centered(delta math.Vec2) bool {
	return gomath.Abs(delta.X) <= a.Tolerance && gomath.Abs(delta.Y) <= a.Tolerance
}

// ComputeNudge returns a half step toward centering the object. Each axis is
// judged on its own: an axis already within tolerance does not move.
func (a AimAssist) ComputeNudge(vp *viewport.Viewport, obj *scene.Object) math.Vec2 {
	if obj == nil || !obj.Positioned {
		return math.Vec2{}
	}
	delta := a.Offset(vp, obj)
	var nudge math.Vec2
	if gomath.Abs(delta.X) > a.Tolerance {
		nudge.X = delta.X * 0.5
	}
	if gomath.Abs(delta.Y) > a.Tolerance {
		nudge.Y = delta.Y * 0.5
	}
	return nudge
}
