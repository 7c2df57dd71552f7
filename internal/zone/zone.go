// Package zone answers containment and nearest-distance queries over
// polygon annotations on the rectified track.
package zone

import (
	"math"

	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// Type identifies what a zone marks on the track surface.
type Type string

// Known zone types.
const (
	TypeJump     Type = "jump"
	TypeWallride Type = "wallride"
)

// Zone is a polygon annotation in normalized coordinates. Zones are
// independent of each other; overlap is permitted and never deduplicated.
type Zone struct {
	ID      string
	Type    Type
	Polygon []geometry.Point2D
	Params  map[string]float64
}

// Options configures QueryAtPoint.
type Options struct {
	// MaxDistance, when set, drops the nearest result if the closest
	// zone is farther away than this.
	MaxDistance *float64
}

// NearestZone pairs a zone with its distance from the query point.
type NearestZone struct {
	Zone     Zone
	Distance float64
}

// Query is the result of QueryAtPoint. Containing preserves the input
// zone order; Nearest is nil when no zone qualifies.
type Query struct {
	Containing []Zone
	Nearest    *NearestZone
}

// QueryAtPoint reports which zones contain the point and which zone is
// closest to it. Zones with fewer than 3 vertices are skipped. A
// containing zone has distance 0; otherwise the distance is the
// minimum over the polygon's edges. Ties go to the first zone
// encountered.
func QueryAtPoint(point geometry.Point2D, zones []Zone, opts Options) Query {
	var q Query

	for _, z := range zones {
		if len(z.Polygon) < 3 {
			continue
		}

		var dist float64
		if geometry.PointInPolygon(point, z.Polygon) {
			q.Containing = append(q.Containing, z)
		} else {
			dist = edgeDistance(point, z.Polygon)
		}

		if q.Nearest == nil || dist < q.Nearest.Distance {
			q.Nearest = &NearestZone{Zone: z, Distance: dist}
		}
	}

	if opts.MaxDistance != nil && q.Nearest != nil && q.Nearest.Distance > *opts.MaxDistance {
		q.Nearest = nil
	}

	return q
}

// SignedDistance returns the distance from the point to the zone's
// boundary, negative when the point is inside the polygon. Zones with
// fewer than 3 vertices have no interior and return +Inf.
func SignedDistance(point geometry.Point2D, z Zone) float64 {
	if len(z.Polygon) < 3 {
		return math.Inf(1)
	}

	d := edgeDistance(point, z.Polygon)
	if geometry.PointInPolygon(point, z.Polygon) {
		return -d
	}
	return d
}

// edgeDistance returns the minimum distance from p to any edge of the
// polygon.
func edgeDistance(p geometry.Point2D, polygon []geometry.Point2D) float64 {
	n := len(polygon)
	min := math.MaxFloat64
	for i := 0; i < n; i++ {
		proj := geometry.ProjectOntoSegment(p, polygon[i], polygon[(i+1)%n])
		if proj.Distance < min {
			min = proj.Distance
		}
	}
	return min
}
