package quad

import (
	"fmt"

	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// Reason identifies why a quad failed validation.
type Reason string

// Validation failure reasons, in the order they are checked.
const (
	ReasonInvalidPointCount           Reason = "InvalidPointCount"
	ReasonOutOfBounds                 Reason = "OutOfBounds"
	ReasonPointsTooClose              Reason = "PointsTooClose"
	ReasonNonConvexOrSelfIntersecting Reason = "NonConvexOrSelfIntersecting"
	ReasonAreaTooSmall                Reason = "AreaTooSmall"
)

// Options holds the validation thresholds. Shrinking either threshold
// never invalidates a quad that passed with larger values.
type Options struct {
	MinSeparation float64 // minimum pairwise corner distance, pixels
	MinArea       float64 // minimum enclosed area, square pixels
}

// DefaultOptions returns the validation thresholds used for user picks.
func DefaultOptions() Options {
	return Options{
		MinSeparation: 20,
		MinArea:       5000,
	}
}

// Result reports the outcome of Validate. Failures are values, not
// errors, so callers can surface the reason without unwrapping.
type Result struct {
	OK     bool
	Reason Reason // empty when OK
	Detail string // human-readable description of the failure
}

// Validate checks that the points form a usable quadrilateral within
// the given image bounds. Checks run in a fixed order and stop at the
// first failure: point count, image bounds, pairwise separation,
// convexity, enclosed area. The points are checked in the order given;
// run Order first for user picks.
func Validate(points []geometry.Point2D, imageWidth, imageHeight float64, opts Options) Result {
	if len(points) != 4 {
		return fail(ReasonInvalidPointCount, fmt.Sprintf("got %d points, need 4", len(points)))
	}

	for i, p := range points {
		if p.X < 0 || p.X > imageWidth || p.Y < 0 || p.Y > imageHeight {
			return fail(ReasonOutOfBounds,
				fmt.Sprintf("point %d (%.1f, %.1f) outside %gx%g image", i, p.X, p.Y, imageWidth, imageHeight))
		}
	}

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if d := points[i].Distance(points[j]); d < opts.MinSeparation {
				return fail(ReasonPointsTooClose,
					fmt.Sprintf("points %d and %d are %.1fpx apart, need %.1f", i, j, d, opts.MinSeparation))
			}
		}
	}

	if !geometry.IsConvex(points) {
		return fail(ReasonNonConvexOrSelfIntersecting, "corners do not form a convex quadrilateral")
	}

	if area := geometry.PolygonArea(points); area < opts.MinArea {
		return fail(ReasonAreaTooSmall,
			fmt.Sprintf("area %.0fpx2 below minimum %.0f", area, opts.MinArea))
	}

	return Result{OK: true}
}

func fail(reason Reason, detail string) Result {
	return Result{Reason: reason, Detail: detail}
}
