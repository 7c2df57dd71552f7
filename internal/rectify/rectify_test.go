package rectify

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benhalverson/rc-coach/internal/quad"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestNewHomography(t *testing.T) {
	t.Parallel()

	t.Run("maps output corners onto the quad", func(t *testing.T) {
		t.Parallel()
		q := quad.Quad{
			{X: 120, Y: 80}, {X: 600, Y: 95}, {X: 640, Y: 470}, {X: 100, Y: 440},
		}
		hom, err := NewHomography(q, 800, 600)
		require.NoError(t, err)

		outCorners := []geometry.Point2D{
			{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 600}, {X: 0, Y: 600},
		}
		for i, oc := range outCorners {
			got, ok := hom.Apply(oc)
			require.True(t, ok)
			assert.InDelta(t, q[i].X, got.X, 1e-6)
			assert.InDelta(t, q[i].Y, got.Y, 1e-6)
		}
	})

	t.Run("axis-aligned quad reduces to a scaling", func(t *testing.T) {
		t.Parallel()
		q := quad.Quad{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		}
		hom, err := NewHomography(q, 50, 50)
		require.NoError(t, err)

		got, ok := hom.Apply(geometry.Point2D{X: 25, Y: 25})
		require.True(t, ok)
		assert.InDelta(t, 50, got.X, 1e-6)
		assert.InDelta(t, 50, got.Y, 1e-6)
	})

	t.Run("collinear corners are degenerate", func(t *testing.T) {
		t.Parallel()
		q := quad.Quad{
			{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3},
		}
		_, err := NewHomography(q, 100, 100)
		assert.ErrorIs(t, err, ErrDegenerateQuad)
	})
}

func TestWarpEngine(t *testing.T) {
	t.Parallel()

	t.Run("warps a solid region to a solid raster", func(t *testing.T) {
		t.Parallel()
		red := color.RGBA{R: 200, G: 30, B: 30, A: 255}
		src := solidImage(60, 60, red)
		q := quad.Quad{
			{X: 5, Y: 5}, {X: 55, Y: 5}, {X: 55, Y: 55}, {X: 5, Y: 55},
		}

		out, err := WarpEngine{}.Rectify(src, q, 20, 20)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 20, 20), out.Bounds())

		r, g, b, a := out.At(10, 10).RGBA()
		assert.InDelta(t, uint32(200), r>>8, 1)
		assert.InDelta(t, uint32(30), g>>8, 1)
		assert.InDelta(t, uint32(30), b>>8, 1)
		assert.EqualValues(t, 255, a>>8)

		assert.False(t, IsMostlyBlank(out, DefaultBlankThreshold))
	})

	t.Run("rejects invalid output size", func(t *testing.T) {
		t.Parallel()
		src := solidImage(10, 10, color.RGBA{A: 255})
		q := quad.Quad{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 9, Y: 9}, {X: 0, Y: 9}}

		_, err := WarpEngine{}.Rectify(src, q, 0, 20)
		assert.Error(t, err)
	})

	t.Run("quad outside the source comes back blank", func(t *testing.T) {
		t.Parallel()
		src := solidImage(10, 10, color.RGBA{R: 255, A: 255})
		q := quad.Quad{
			{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}, {X: 100, Y: 200},
		}

		out, err := WarpEngine{}.Rectify(src, q, 16, 16)
		require.NoError(t, err)
		assert.True(t, IsMostlyBlank(out, DefaultBlankThreshold))
	})
}

func TestBlankDetection(t *testing.T) {
	t.Parallel()

	t.Run("transparent raster is fully blank", func(t *testing.T) {
		t.Parallel()
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		assert.Equal(t, 1.0, BlankFraction(img))
		assert.True(t, IsMostlyBlank(img, 0)) // 0 uses the default threshold
	})

	t.Run("solid raster is not blank", func(t *testing.T) {
		t.Parallel()
		img := solidImage(8, 8, color.RGBA{R: 180, G: 180, B: 180, A: 255})
		assert.Zero(t, BlankFraction(img))
		assert.False(t, IsMostlyBlank(img, DefaultBlankThreshold))
	})

	t.Run("near-black counts as blank", func(t *testing.T) {
		t.Parallel()
		img := solidImage(8, 8, color.RGBA{R: 2, G: 2, B: 2, A: 255})
		assert.Equal(t, 1.0, BlankFraction(img))
	})
}

func TestFallbackCrop(t *testing.T) {
	t.Parallel()

	t.Run("crops and scales the quad's bounding box", func(t *testing.T) {
		t.Parallel()
		blue := color.RGBA{B: 220, A: 255}
		src := solidImage(100, 100, blue)
		q := quad.Quad{
			{X: 10, Y: 10}, {X: 90, Y: 20}, {X: 85, Y: 90}, {X: 15, Y: 80},
		}

		out := FallbackCrop(src, q, 32, 32)
		assert.Equal(t, image.Rect(0, 0, 32, 32), out.Bounds())

		_, _, b, a := out.At(16, 16).RGBA()
		assert.EqualValues(t, 220, b>>8)
		assert.EqualValues(t, 255, a>>8)
	})

	t.Run("quad fully outside the source yields an empty raster", func(t *testing.T) {
		t.Parallel()
		src := solidImage(10, 10, color.RGBA{R: 255, A: 255})
		q := quad.Quad{
			{X: 50, Y: 50}, {X: 60, Y: 50}, {X: 60, Y: 60}, {X: 50, Y: 60},
		}

		out := FallbackCrop(src, q, 8, 8)
		assert.Equal(t, 1.0, BlankFraction(out))
	})
}
