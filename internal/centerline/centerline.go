// Package centerline parameterizes an ordered point sequence by arc
// length and answers pose and projection queries along it. The
// sequence is treated as a closed loop for heading and curvature
// purposes: segment i runs from vertex i to vertex (i+1) mod n.
package centerline

import (
	"errors"
	"math"

	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// ErrTooFewPoints is returned when a centerline has fewer than 2 points.
var ErrTooFewPoints = errors.New("centerline: need at least 2 points")

// minCurvatureSpan is the smallest arc-length window the curvature
// finite difference is taken over; near-duplicate vertices below this
// span would blow the estimate up, so curvature is pinned to 0 there.
const minCurvatureSpan = 0.1

// rateDenominatorEpsilon guards the 1+curvature*d denominator of
// ArcLengthRate against the singularity where the offset point sits on
// the instantaneous center of curvature.
const rateDenominatorEpsilon = 1e-6

// Params is the arc-length parameterization of a centerline. It is a
// pure function of the point sequence: recompute it after every edit,
// never mutate it in place.
//
// TotalLength sums only the first n-1 segments. The closing segment
// (last vertex back to the first) is excluded even though Headings and
// Curvatures are computed as if the loop is closed. Historical exports
// depend on this, so it is preserved as-is; see also Nearest.
type Params struct {
	Points      []geometry.Point2D
	ArcLengths  []float64 // cumulative distance at each vertex, ArcLengths[0]=0
	Headings    []float64 // radians, direction from each vertex to the next (mod n)
	Curvatures  []float64 // central finite-difference estimate per vertex
	TotalLength float64
}

// Parameterize builds Params from an ordered point sequence. Points
// may be in any single frame (normalized or pixel); all outputs are in
// the same units.
func Parameterize(points []geometry.Point2D) (Params, error) {
	n := len(points)
	if n < 2 {
		return Params{}, ErrTooFewPoints
	}

	pts := make([]geometry.Point2D, n)
	copy(pts, points)

	arcLengths := make([]float64, n)
	headings := make([]float64, n)
	for i := 0; i < n; i++ {
		next := pts[(i+1)%n]
		headings[i] = math.Atan2(next.Y-pts[i].Y, next.X-pts[i].X)
		if i > 0 {
			arcLengths[i] = arcLengths[i-1] + pts[i].Distance(pts[i-1])
		}
	}

	curvatures := make([]float64, n)
	for i := 0; i < n; i++ {
		nextIdx := (i + 1) % n
		prevIdx := (i - 1 + n) % n
		dS := arcLengths[nextIdx] - arcLengths[prevIdx]
		if math.Abs(dS) <= minCurvatureSpan {
			continue
		}
		curvatures[i] = (headings[nextIdx] - headings[prevIdx]) / dS
	}

	return Params{
		Points:      pts,
		ArcLengths:  arcLengths,
		Headings:    headings,
		Curvatures:  curvatures,
		TotalLength: arcLengths[n-1],
	}, nil
}

// Pose is an interpolated state on the centerline.
type Pose struct {
	Position  geometry.Point2D
	Heading   float64
	Curvature float64
}

// PoseAt returns the interpolated pose at arc length s. s is wrapped
// into [0, TotalLength), so negative and beyond-length values are
// valid inputs.
func PoseAt(p Params, s float64) Pose {
	n := len(p.Points)
	if p.TotalLength <= 0 {
		// All vertices coincide; return the degenerate anchor pose.
		return Pose{Position: p.Points[0], Heading: p.Headings[0], Curvature: p.Curvatures[0]}
	}

	s = math.Mod(math.Mod(s, p.TotalLength)+p.TotalLength, p.TotalLength)

	idx := 0
	for i := 0; i < n; i++ {
		if p.ArcLengths[i] <= s {
			idx = i
		}
	}
	if idx > n-2 {
		idx = n - 2
	}

	span := p.ArcLengths[idx+1] - p.ArcLengths[idx]
	t := 0.0
	if span > 0 {
		t = (s - p.ArcLengths[idx]) / span
	}

	a, b := p.Points[idx], p.Points[idx+1]
	return Pose{
		Position: geometry.Point2D{
			X: a.X + t*(b.X-a.X),
			Y: a.Y + t*(b.Y-a.Y),
		},
		Heading:   p.Headings[idx] + t*(p.Headings[idx+1]-p.Headings[idx]),
		Curvature: p.Curvatures[idx] + t*(p.Curvatures[idx+1]-p.Curvatures[idx]),
	}
}

// Projection is the result of projecting a point onto the centerline.
type Projection struct {
	S        float64 // arc length at the projected point
	Distance float64 // Euclidean distance to the centerline
	D        float64 // signed lateral offset, positive right of travel
}

// Nearest projects a point onto the closest of the n segments,
// including the closing segment from the last vertex back to the
// first. The closing segment's upper arc-length bound is taken as
// ArcLengths[0]+TotalLength, which exceeds TotalLength, so a
// projection landing there returns an S that PoseAt will wrap back
// into the early part of the path. Preserved source behavior; do not
// "fix" one side without deciding the open-curve/closed-loop question
// for all of Params.
func Nearest(p Params, point geometry.Point2D) Projection {
	n := len(p.Points)
	best := Projection{Distance: math.MaxFloat64}

	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]

		s0 := p.ArcLengths[i]
		s1 := p.ArcLengths[0] + p.TotalLength
		if i < n-1 {
			s1 = p.ArcLengths[i+1]
		}

		proj := geometry.ProjectOntoSegment(point, a, b)
		if proj.Distance < best.Distance {
			best = Projection{
				S:        s0 + proj.T*(s1-s0),
				Distance: proj.Distance,
				D:        proj.Offset,
			}
		}
	}

	return best
}

// ArcLengthRate returns ds/dt for a body at arc length s, lateral
// offset d, with the given heading error and scalar speed:
//
//	ds/dt = speed * cos(headingError) / (1 + curvature(s)*d)
//
// Near the curvature singularity (offset at the instantaneous turn
// center) the rate is 0 rather than unbounded; callers may log the
// condition but it is not an error.
func ArcLengthRate(p Params, s, d, headingError, speed float64) float64 {
	denom := 1 + PoseAt(p, s).Curvature*d
	if math.Abs(denom) < rateDenominatorEpsilon {
		return 0
	}
	return speed * math.Cos(headingError) / denom
}
