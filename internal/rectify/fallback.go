package rectify

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/benhalverson/rc-coach/internal/quad"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// DefaultBlankThreshold is the blank-pixel fraction above which a
// rectification result is treated as failed.
const DefaultBlankThreshold = 0.6

// BlankFraction returns the fraction of pixels that carry no usable
// content: fully transparent or near-black. An empty image counts as
// fully blank.
func BlankFraction(img image.Image) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 1
	}

	blank := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 || (r < 0x0400 && g < 0x0400 && b < 0x0400) {
				blank++
			}
		}
	}
	return float64(blank) / float64(total)
}

// IsMostlyBlank reports whether a rectification result should be
// considered degenerate. A non-positive threshold uses
// DefaultBlankThreshold.
func IsMostlyBlank(img image.Image, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultBlankThreshold
	}
	return BlankFraction(img) >= threshold
}

// FallbackCrop is the degraded path when the rectification engine
// fails or returns a mostly-blank raster: the axis-aligned bounding
// box of the quad is cropped out of the source and scaled to the
// requested size. Perspective is not corrected, but downstream sizing
// still gets a raster of the right dimensions.
func FallbackCrop(src image.Image, q quad.Quad, width, height int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return out
	}

	bb := geometry.BoundingBox(q.Points())
	crop := image.Rect(
		int(math.Floor(bb.X)),
		int(math.Floor(bb.Y)),
		int(math.Ceil(bb.X+bb.Width)),
		int(math.Ceil(bb.Y+bb.Height)),
	).Intersect(src.Bounds())
	if crop.Empty() {
		return out
	}

	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), src, crop, xdraw.Src, nil)
	return out
}
