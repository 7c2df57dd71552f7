// Package frenet converts between world poses and centerline-relative
// (arc length, lateral offset) coordinates.
package frenet

import (
	"math"

	"github.com/benhalverson/rc-coach/internal/centerline"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// Pose locates a body relative to a centerline: arc length s wrapped
// into [0, TotalLength), signed lateral offset d (positive to the
// right of the travel direction), the body's world heading, and the
// heading error against the centerline tangent, normalized to [-pi, pi].
type Pose struct {
	S            float64
	D            float64
	Heading      float64
	HeadingError float64
}

// Pose2D is a position and heading in the centerline's frame of
// reference (the same frame its points were given in).
type Pose2D struct {
	X       float64
	Y       float64
	Heading float64
}

// FromWorld converts a world pose to Frenet coordinates by projecting
// the position onto the centerline.
func FromWorld(params centerline.Params, x, y, heading float64) Pose {
	proj := centerline.Nearest(params, geometry.Point2D{X: x, Y: y})

	s := proj.S
	if params.TotalLength > 0 {
		s = math.Mod(math.Mod(s, params.TotalLength)+params.TotalLength, params.TotalLength)
	}

	ref := centerline.PoseAt(params, s)
	return Pose{
		S:            s,
		D:            proj.D,
		Heading:      heading,
		HeadingError: geometry.NormalizeAngle(heading - ref.Heading),
	}
}

// ToWorld converts Frenet coordinates back to a world pose: the
// centerline position at s displaced by d along the perpendicular
// (centerline heading + pi/2), with the world heading recovered from
// the heading error.
func ToWorld(params centerline.Params, s, d, headingError float64) Pose2D {
	ref := centerline.PoseAt(params, s)
	perp := ref.Heading + math.Pi/2

	return Pose2D{
		X:       ref.Position.X + d*math.Cos(perp),
		Y:       ref.Position.Y + d*math.Sin(perp),
		Heading: geometry.NormalizeAngle(ref.Heading + headingError),
	}
}
