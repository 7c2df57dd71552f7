package rectify

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/benhalverson/rc-coach/internal/quad"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// Engine is the rectification collaborator contract: given a source
// photo and a validated, ordered quad, produce a top-down raster of
// the requested size. An OpenCV-backed warp satisfies this interface;
// WarpEngine is the built-in pure Go implementation. Callers should
// treat an error or a mostly-blank result (IsMostlyBlank) as a signal
// to fall back to FallbackCrop.
type Engine interface {
	Rectify(src image.Image, q quad.Quad, width, height int) (image.Image, error)
}

// WarpEngine rectifies by inverse-mapping every output pixel through
// the quad homography with bilinear sampling. Output pixels that map
// outside the source stay transparent.
type WarpEngine struct{}

// Rectify implements Engine.
func (WarpEngine) Rectify(src image.Image, q quad.Quad, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rectify: invalid output size %dx%d", width, height)
	}

	hom, err := NewHomography(q, width, height)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sp, ok := hom.Apply(geometry.Point2D{X: float64(x), Y: float64(y)})
			if !ok {
				continue
			}
			out.SetRGBA(x, y, sampleBilinear(src, sp))
		}
	}
	return out, nil
}

// sampleBilinear samples the source image at a fractional position.
// Positions outside the source bounds come back fully transparent.
func sampleBilinear(src image.Image, p geometry.Point2D) color.RGBA {
	bounds := src.Bounds()

	x0 := int(math.Floor(p.X))
	y0 := int(math.Floor(p.Y))
	if x0 < bounds.Min.X || y0 < bounds.Min.Y || x0 >= bounds.Max.X || y0 >= bounds.Max.Y {
		return color.RGBA{}
	}

	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= bounds.Max.X {
		x1 = bounds.Max.X - 1
	}
	if y1 >= bounds.Max.Y {
		y1 = bounds.Max.Y - 1
	}

	fx := p.X - float64(x0)
	fy := p.Y - float64(y0)

	blend := func(c00, c10, c01, c11 uint32) uint8 {
		top := float64(c00)*(1-fx) + float64(c10)*fx
		bottom := float64(c01)*(1-fx) + float64(c11)*fx
		return uint8((top*(1-fy) + bottom*fy) / 257)
	}

	r00, g00, b00, a00 := src.At(x0, y0).RGBA()
	r10, g10, b10, a10 := src.At(x1, y0).RGBA()
	r01, g01, b01, a01 := src.At(x0, y1).RGBA()
	r11, g11, b11, a11 := src.At(x1, y1).RGBA()

	return color.RGBA{
		R: blend(r00, r10, r01, r11),
		G: blend(g00, g10, g01, g11),
		B: blend(b00, b10, b01, b11),
		A: blend(a00, a10, a01, a11),
	}
}
