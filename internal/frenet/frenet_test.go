package frenet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benhalverson/rc-coach/internal/centerline"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

func squareParams(t *testing.T) centerline.Params {
	t.Helper()
	params, err := centerline.Parameterize([]geometry.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	require.NoError(t, err)
	return params
}

func TestFromWorld(t *testing.T) {
	t.Parallel()

	t.Run("projects onto the nearest segment", func(t *testing.T) {
		t.Parallel()
		params := squareParams(t)
		pose := FromWorld(params, 5, 1, 0.3)

		assert.InDelta(t, 5, pose.S, 1e-12)
		assert.InDelta(t, 1, pose.D, 1e-12)
		assert.InDelta(t, 0.3, pose.Heading, 1e-12)
	})

	t.Run("heading error is against the centerline tangent", func(t *testing.T) {
		t.Parallel()
		params := squareParams(t)
		// Above the first vertex the tangent heading is exactly 0.
		pose := FromWorld(params, 0, -3, 0.5)
		assert.InDelta(t, 0, pose.S, 1e-12)
		assert.InDelta(t, -3, pose.D, 1e-12)
		assert.InDelta(t, 0.5, pose.HeadingError, 1e-12)
	})

	t.Run("heading error normalized to [-pi, pi]", func(t *testing.T) {
		t.Parallel()
		params := squareParams(t)
		pose := FromWorld(params, 0, -3, 3*math.Pi)
		assert.InDelta(t, math.Pi, pose.HeadingError, 1e-9)
		assert.LessOrEqual(t, pose.HeadingError, math.Pi)
		assert.GreaterOrEqual(t, pose.HeadingError, -math.Pi)
	})

	t.Run("s stays within one lap", func(t *testing.T) {
		t.Parallel()
		params := squareParams(t)
		// Near the closing segment the raw projection can reach
		// TotalLength; the Frenet pose wraps it back into range.
		pose := FromWorld(params, -1, 5, 0)
		assert.GreaterOrEqual(t, pose.S, 0.0)
		assert.Less(t, pose.S, params.TotalLength)
	})
}

func TestToWorld(t *testing.T) {
	t.Parallel()

	t.Run("displaces along the perpendicular", func(t *testing.T) {
		t.Parallel()
		params := squareParams(t)
		// At s=0 the tangent is +x, so the perpendicular is +y.
		world := ToWorld(params, 0, 2, 0)
		assert.InDelta(t, 0, world.X, 1e-12)
		assert.InDelta(t, 2, world.Y, 1e-12)
		assert.InDelta(t, 0, world.Heading, 1e-12)
	})

	t.Run("world heading combines tangent and error", func(t *testing.T) {
		t.Parallel()
		params := squareParams(t)
		world := ToWorld(params, 0, 0, 0.4)
		assert.InDelta(t, 0.4, world.Heading, 1e-12)

		// A full extra turn in the error normalizes away.
		world = ToWorld(params, 0, 0, 0.4+2*math.Pi)
		assert.InDelta(t, 0.4, world.Heading, 1e-9)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Round trips are exact only where the interpolated heading equals
	// the segment tangent: at vertex projections, or anywhere along a
	// run whose endpoints share the same heading. The first two
	// vertices here are collinear, so the whole first segment
	// qualifies.
	params, err := centerline.Parameterize([]geometry.Point2D{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	})
	require.NoError(t, err)

	cases := []struct {
		name    string
		x, y    float64
		heading float64
	}{
		{"above the start vertex", 0, -3, 0.5},
		{"inside the straight run", 2, -1, -0.25},
		{"other side of the straight run", 4, 1.5, 2.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pose := FromWorld(params, tc.x, tc.y, tc.heading)
			world := ToWorld(params, pose.S, pose.D, pose.HeadingError)

			assert.InDelta(t, tc.x, world.X, 1e-9)
			assert.InDelta(t, tc.y, world.Y, 1e-9)
			assert.InDelta(t, geometry.NormalizeAngle(tc.heading), world.Heading, 1e-9)
		})
	}
}
