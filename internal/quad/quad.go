// Package quad canonicalizes and validates user-picked quadrilaterals
// before they are handed to the rectification engine.
package quad

import (
	"errors"
	"math"
	"sort"

	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// ErrInvalidPointCount is returned when a quad does not have exactly 4 points.
var ErrInvalidPointCount = errors.New("quad: need exactly 4 points")

// Quad holds four pixel-space corners in canonical order:
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]geometry.Point2D

// Points returns the corners as a slice.
func (q Quad) Points() []geometry.Point2D {
	return q[:]
}

// Order canonicalizes four arbitrarily ordered corner points into
// TL, TR, BR, BL. The points are sorted by polar angle around their
// centroid, rotated so the top-most point (ties broken by smallest x)
// comes first, and the winding is repaired by swapping the second and
// fourth corners if it came out reversed. Ordering an already-ordered
// quad returns the same order.
func Order(points []geometry.Point2D) (Quad, error) {
	if len(points) != 4 {
		return Quad{}, ErrInvalidPointCount
	}

	center := geometry.Centroid(points)

	sorted := make([]geometry.Point2D, 4)
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai := math.Atan2(sorted[i].Y-center.Y, sorted[i].X-center.X)
		aj := math.Atan2(sorted[j].Y-center.Y, sorted[j].X-center.X)
		return ai < aj
	})

	// Rotate so the point with the smallest y (then smallest x) leads.
	start := 0
	for i := 1; i < 4; i++ {
		if sorted[i].Y < sorted[start].Y ||
			(sorted[i].Y == sorted[start].Y && sorted[i].X < sorted[start].X) {
			start = i
		}
	}

	var q Quad
	for i := 0; i < 4; i++ {
		q[i] = sorted[(start+i)%4]
	}

	// If the walk ended up going through the bottom-left first, the
	// second corner sits lower than the fourth; swap them to restore
	// TL, TR, BR, BL.
	if q[1].Y > q[3].Y {
		q[1], q[3] = q[3], q[1]
	}

	return q, nil
}

// OrderLegacy orders corners by coordinate-sum extremes: smallest x+y
// is TL, largest x-y is TR, largest x+y is BR, largest y-x is BL.
// This breaks down for strongly rotated quads and must not be used for
// new picks; it exists only so historical exports re-validate with the
// exact corner assignment they were saved with.
func OrderLegacy(points []geometry.Point2D) (Quad, error) {
	if len(points) != 4 {
		return Quad{}, ErrInvalidPointCount
	}

	extreme := func(score func(p geometry.Point2D) float64) geometry.Point2D {
		best := points[0]
		for _, p := range points[1:] {
			if score(p) > score(best) {
				best = p
			}
		}
		return best
	}

	return Quad{
		extreme(func(p geometry.Point2D) float64 { return -(p.X + p.Y) }), // TL
		extreme(func(p geometry.Point2D) float64 { return p.X - p.Y }),    // TR
		extreme(func(p geometry.Point2D) float64 { return p.X + p.Y }),    // BR
		extreme(func(p geometry.Point2D) float64 { return p.Y - p.X }),    // BL
	}, nil
}
