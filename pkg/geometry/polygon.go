package geometry

import "math"

// PointInPolygon tests if a point is inside a polygon using ray casting.
// The edge test is half-open so horizontal edges are not double-counted.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// IsConvex returns true if the polygon vertices form a convex polygon.
// The polygon is assumed to be simple (non-self-intersecting).
func IsConvex(polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	n := len(polygon)
	var sign int

	for i := 0; i < n; i++ {
		cross := Cross(
			polygon[i],
			polygon[(i+1)%n],
			polygon[(i+2)%n],
		)

		if cross != 0 {
			currentSign := 1
			if cross < 0 {
				currentSign = -1
			}

			if sign == 0 {
				sign = currentSign
			} else if currentSign != sign {
				return false
			}
		}
	}

	return true
}

// PolygonArea returns the absolute area of the polygon via the
// shoelace formula.
func PolygonArea(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// SegmentProjection describes the closest point on a segment to a
// query point.
type SegmentProjection struct {
	T        float64 // parameter along the segment, clamped to [0,1]
	Distance float64 // distance from the query point to the closest point
	Offset   float64 // signed offset along the right-hand normal (-dy,dx)/len
}

// ProjectOntoSegment projects p onto the segment a-b. A zero-length
// segment yields T=0, Offset=0 and the plain distance to a.
func ProjectOntoSegment(p, a, b Point2D) SegmentProjection {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return SegmentProjection{T: 0, Distance: p.Distance(a), Offset: 0}
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
	length := math.Sqrt(lenSq)
	offset := ((p.X-a.X)*(-dy) + (p.Y-a.Y)*dx) / length

	return SegmentProjection{T: t, Distance: p.Distance(closest), Offset: offset}
}

// Cross computes the cross product of vectors OA and OB.
func Cross(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
