// Package coords converts points between the three coordinate frames
// of a track model: the top-down raster in pixels, the normalized unit
// square, and the physical track surface in meters. All conversions
// are per-axis affine scalings; there is no shear or rotation.
package coords

import (
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// Normalizer converts between pixel, normalized and metric frames for
// one track. Both sizes must have positive width and height.
type Normalizer struct {
	pixelSize  geometry.Size
	metricSize geometry.Size

	normToPixel  geometry.AffineTransform
	pixelToNorm  geometry.AffineTransform
	normToMetric geometry.AffineTransform
	metricToNorm geometry.AffineTransform
}

// NewNormalizer creates a Normalizer for a raster of pixelSize pixels
// covering a track of metricSize meters.
func NewNormalizer(pixelSize, metricSize geometry.Size) Normalizer {
	return Normalizer{
		pixelSize:    pixelSize,
		metricSize:   metricSize,
		normToPixel:  geometry.Scale(pixelSize.Width, pixelSize.Height),
		pixelToNorm:  geometry.Scale(1/pixelSize.Width, 1/pixelSize.Height),
		normToMetric: geometry.Scale(metricSize.Width, metricSize.Height),
		metricToNorm: geometry.Scale(1/metricSize.Width, 1/metricSize.Height),
	}
}

// PixelSize returns the raster size in pixels.
func (n Normalizer) PixelSize() geometry.Size {
	return n.pixelSize
}

// MetricSize returns the track size in meters.
func (n Normalizer) MetricSize() geometry.Size {
	return n.metricSize
}

// PixelToNorm converts a pixel-frame point to the unit square.
func (n Normalizer) PixelToNorm(p geometry.Point2D) geometry.Point2D {
	return n.pixelToNorm.Apply(p)
}

// NormToPixel converts a unit-square point to the pixel frame.
func (n Normalizer) NormToPixel(p geometry.Point2D) geometry.Point2D {
	return n.normToPixel.Apply(p)
}

// NormToMetric converts a unit-square point to meters.
func (n Normalizer) NormToMetric(p geometry.Point2D) geometry.Point2D {
	return n.normToMetric.Apply(p)
}

// MetricToNorm converts a metric point to the unit square.
func (n Normalizer) MetricToNorm(p geometry.Point2D) geometry.Point2D {
	return n.metricToNorm.Apply(p)
}

// PixelToMetric converts a pixel-frame point to meters.
func (n Normalizer) PixelToMetric(p geometry.Point2D) geometry.Point2D {
	return n.normToMetric.Apply(n.pixelToNorm.Apply(p))
}

// MetricToPixel converts a metric point to the pixel frame.
func (n Normalizer) MetricToPixel(p geometry.Point2D) geometry.Point2D {
	return n.normToPixel.Apply(n.metricToNorm.Apply(p))
}

// PixelsPerMeter returns the per-axis raster resolution.
func (n Normalizer) PixelsPerMeter() geometry.Size {
	return geometry.Size{
		Width:  n.pixelSize.Width / n.metricSize.Width,
		Height: n.pixelSize.Height / n.metricSize.Height,
	}
}
