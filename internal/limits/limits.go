// Package limits derives per-sample lateral track-limit bounds along a
// centerline from zone geometry.
package limits

import (
	"math"

	"github.com/benhalverson/rc-coach/internal/centerline"
	"github.com/benhalverson/rc-coach/internal/zone"
)

// DefaultNumSamples is the sample count used when the caller passes a
// non-positive value.
const DefaultNumSamples = 100

// defaultHalfWidth is assumed when no zone is anywhere near a sample.
const defaultHalfWidth = 0.5

// TrackLimits holds lateral bounds sampled uniformly over
// [0, TotalLength], aligned by index. LeftBounds entries are negative
// (left of travel), RightBounds positive.
type TrackLimits struct {
	LeftBounds  []float64
	RightBounds []float64
}

// Extract samples numSamples arc lengths uniformly over the
// centerline and, at each sample, feeds the minimum-magnitude signed
// zone distance into both bounds identically: left gets the negated
// value, right the value itself, with -0.5/+0.5 when no zone exists.
//
// This is a first approximation: it does not yet classify which side
// of the centerline a zone lies on. A corrected version would sign
// each zone by its lateral offset via the right-hand normal used by
// centerline.Nearest before assigning it to a bound.
func Extract(params centerline.Params, zones []zone.Zone, numSamples int) TrackLimits {
	if numSamples <= 0 {
		numSamples = DefaultNumSamples
	}

	left := make([]float64, numSamples)
	right := make([]float64, numSamples)

	step := 0.0
	if numSamples > 1 {
		step = params.TotalLength / float64(numSamples-1)
	}

	for i := 0; i < numSamples; i++ {
		pos := centerline.PoseAt(params, float64(i)*step).Position

		signed := 0.0
		bestMag := math.MaxFloat64
		found := false
		for _, z := range zones {
			if len(z.Polygon) < 3 {
				continue
			}
			d := zone.SignedDistance(pos, z)
			if math.Abs(d) < bestMag {
				bestMag = math.Abs(d)
				signed = d
				found = true
			}
		}

		if !found {
			left[i] = -defaultHalfWidth
			right[i] = defaultHalfWidth
			continue
		}
		left[i] = -signed
		right[i] = signed
	}

	return TrackLimits{LeftBounds: left, RightBounds: right}
}
