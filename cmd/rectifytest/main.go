// Command rectifytest rectifies a photographed track surface given
// four picked corners and writes the top-down raster, falling back to
// a bounding-box crop when the warp fails or comes back mostly blank.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	_ "golang.org/x/image/tiff"

	"github.com/benhalverson/rc-coach/internal/quad"
	"github.com/benhalverson/rc-coach/internal/rectify"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

func main() {
	in := flag.String("i", "", "Path to source photo")
	out := flag.String("o", "topdown.png", "Path to output PNG")
	corners := flag.String("q", "", "Corner points as 'x,y;x,y;x,y;x,y' (any order)")
	width := flag.Int("w", 1024, "Output width in pixels")
	height := flag.Int("h", 1024, "Output height in pixels")
	flag.Parse()

	log := logrus.New()

	if *in == "" || *corners == "" {
		fmt.Println("Usage: rectifytest -i <photo> -q 'x,y;x,y;x,y;x,y' [-o out.png] [-w 1024] [-h 1024]")
		os.Exit(1)
	}

	src, err := loadImage(*in)
	if err != nil {
		log.WithError(err).Fatal("failed to load photo")
	}
	bounds := src.Bounds()

	points, err := parseCorners(*corners)
	if err != nil {
		log.WithError(err).Fatal("failed to parse corners")
	}

	ordered, err := quad.Order(points)
	if err != nil {
		log.WithError(err).Fatal("failed to order corners")
	}

	result := quad.Validate(ordered.Points(), float64(bounds.Dx()), float64(bounds.Dy()), quad.DefaultOptions())
	if !result.OK {
		log.WithFields(logrus.Fields{
			"reason": result.Reason,
			"detail": result.Detail,
		}).Fatal("quad rejected")
	}

	var engine rectify.Engine = rectify.WarpEngine{}
	topdown, err := engine.Rectify(src, ordered, *width, *height)
	if err != nil {
		log.WithError(err).Warn("warp failed, using crop fallback")
		topdown = rectify.FallbackCrop(src, ordered, *width, *height)
	} else if rectify.IsMostlyBlank(topdown, rectify.DefaultBlankThreshold) {
		log.WithField("blankFraction", rectify.BlankFraction(topdown)).
			Warn("warp result mostly blank, using crop fallback")
		topdown = rectify.FallbackCrop(src, ordered, *width, *height)
	}

	if err := writePNG(*out, topdown); err != nil {
		log.WithError(err).Fatal("failed to write output")
	}
	log.WithField("path", *out).Info("wrote top-down raster")
}

// parseCorners parses "x,y;x,y;x,y;x,y" into four points.
func parseCorners(s string) ([]geometry.Point2D, error) {
	parts := strings.Split(s, ";")
	points := make([]geometry.Point2D, 0, len(parts))
	for _, part := range parts {
		xy := strings.Split(strings.TrimSpace(part), ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("bad corner %q", part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad corner %q: %w", part, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad corner %q: %w", part, err)
		}
		points = append(points, geometry.Point2D{X: x, Y: y})
	}
	return points, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
