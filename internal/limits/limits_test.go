package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benhalverson/rc-coach/internal/centerline"
	"github.com/benhalverson/rc-coach/internal/zone"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

func lineParams(t *testing.T, points ...geometry.Point2D) centerline.Params {
	t.Helper()
	params, err := centerline.Parameterize(points)
	require.NoError(t, err)
	return params
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("no zones yields default half width", func(t *testing.T) {
		t.Parallel()
		params := lineParams(t, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})

		tl := Extract(params, nil, 10)
		require.Len(t, tl.LeftBounds, 10)
		require.Len(t, tl.RightBounds, 10)
		for i := range tl.LeftBounds {
			assert.Equal(t, -0.5, tl.LeftBounds[i])
			assert.Equal(t, 0.5, tl.RightBounds[i])
		}
	})

	t.Run("non-positive sample count uses the default", func(t *testing.T) {
		t.Parallel()
		params := lineParams(t, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})

		tl := Extract(params, nil, 0)
		assert.Len(t, tl.LeftBounds, DefaultNumSamples)
		assert.Len(t, tl.RightBounds, DefaultNumSamples)
	})

	t.Run("zone distance feeds both bounds identically", func(t *testing.T) {
		t.Parallel()
		params := lineParams(t, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
		zones := []zone.Zone{{
			ID:   "z",
			Type: zone.TypeWallride,
			Polygon: []geometry.Point2D{
				{X: 0.4, Y: 0.1}, {X: 0.6, Y: 0.1}, {X: 0.6, Y: 0.3}, {X: 0.4, Y: 0.3},
			},
		}}

		// Three samples land at s = 0, 0.5 and 1 (which wraps to 0).
		tl := Extract(params, zones, 3)
		require.Len(t, tl.LeftBounds, 3)

		// Middle sample sits at (0.5, 0), 0.1 below the zone edge.
		assert.InDelta(t, -0.1, tl.LeftBounds[1], 1e-9)
		assert.InDelta(t, 0.1, tl.RightBounds[1], 1e-9)

		// Bounds mirror each other at every sample by construction.
		for i := range tl.LeftBounds {
			assert.InDelta(t, -tl.RightBounds[i], tl.LeftBounds[i], 1e-12)
		}
	})

	t.Run("sample inside a zone flips the signs", func(t *testing.T) {
		t.Parallel()
		params := lineParams(t, geometry.Point2D{X: 0.5, Y: 0.2}, geometry.Point2D{X: 0.55, Y: 0.2})
		zones := []zone.Zone{{
			ID: "z",
			Polygon: []geometry.Point2D{
				{X: 0.4, Y: 0.1}, {X: 0.6, Y: 0.1}, {X: 0.6, Y: 0.3}, {X: 0.4, Y: 0.3},
			},
		}}

		tl := Extract(params, zones, 1)
		require.Len(t, tl.LeftBounds, 1)
		// Inside the zone the signed distance is negative, so the
		// placeholder assignment gives a positive left bound. Known
		// artifact of not classifying zone side yet.
		assert.InDelta(t, 0.1, tl.LeftBounds[0], 1e-9)
		assert.InDelta(t, -0.1, tl.RightBounds[0], 1e-9)
	})

	t.Run("nearest of several zones wins", func(t *testing.T) {
		t.Parallel()
		params := lineParams(t, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
		zones := []zone.Zone{
			{ID: "far", Polygon: []geometry.Point2D{
				{X: 0.4, Y: 0.5}, {X: 0.6, Y: 0.5}, {X: 0.6, Y: 0.7}, {X: 0.4, Y: 0.7},
			}},
			{ID: "near", Polygon: []geometry.Point2D{
				{X: 0.4, Y: 0.1}, {X: 0.6, Y: 0.1}, {X: 0.6, Y: 0.2}, {X: 0.4, Y: 0.2},
			}},
		}

		tl := Extract(params, zones, 3)
		assert.InDelta(t, 0.1, tl.RightBounds[1], 1e-9)
	})

	t.Run("degenerate zones are ignored", func(t *testing.T) {
		t.Parallel()
		params := lineParams(t, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
		zones := []zone.Zone{{ID: "x", Polygon: []geometry.Point2D{{X: 0, Y: 0}}}}

		tl := Extract(params, zones, 2)
		assert.Equal(t, -0.5, tl.LeftBounds[0])
		assert.Equal(t, 0.5, tl.RightBounds[0])
	})
}
