// Package rectify prepares validated quads for perspective
// rectification and defines the contract the external warp engine
// plugs into, including what a failed or mostly-blank result means and
// the crop fallback used in that case.
package rectify

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/benhalverson/rc-coach/internal/quad"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// ErrDegenerateQuad is returned when no perspective mapping exists for
// the corner correspondence (collinear or coincident corners).
var ErrDegenerateQuad = errors.New("rectify: degenerate quad, no homography exists")

// Homography is a 3x3 perspective mapping from output-raster
// coordinates onto the source photo's pixel frame.
type Homography struct {
	m [9]float64 // row-major, m[8] normalized to 1
}

// NewHomography solves the perspective mapping that sends the corners
// of a width x height output raster onto the ordered quad corners:
// (0,0) to TL, (w,0) to TR, (w,h) to BR, (0,h) to BL. The 8 unknowns
// come from the standard direct linear system over the 4
// correspondences.
func NewHomography(q quad.Quad, width, height int) (Homography, error) {
	w := float64(width)
	h := float64(height)
	src := [4]geometry.Point2D{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}

	// Each correspondence contributes two rows:
	// X = (a x + b y + c) / (g x + h y + 1)
	// Y = (d x + e y + f) / (g x + h y + 1)
	A := mat.NewDense(8, 8, nil)
	B := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := q[i].X, q[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -x*xp)
		A.Set(i*2, 7, -y*xp)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -x*yp)
		A.Set(i*2+1, 7, -y*yp)
		B.SetVec(i*2+1, yp)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return Homography{}, ErrDegenerateQuad
	}

	var hom Homography
	for i := 0; i < 8; i++ {
		hom.m[i] = params.AtVec(i)
	}
	hom.m[8] = 1
	return hom, nil
}

// Apply maps an output-raster point into source pixel coordinates.
// Points on the mapping's horizon (zero denominator) return false.
func (h Homography) Apply(p geometry.Point2D) (geometry.Point2D, bool) {
	w := h.m[6]*p.X + h.m[7]*p.Y + h.m[8]
	if w == 0 {
		return geometry.Point2D{}, false
	}
	return geometry.Point2D{
		X: (h.m[0]*p.X + h.m[1]*p.Y + h.m[2]) / w,
		Y: (h.m[3]*p.X + h.m[4]*p.Y + h.m[5]) / w,
	}, true
}
