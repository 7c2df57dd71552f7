// Command trackcheck loads a track document and reports on its
// geometry: quad validity, centerline parameterization, zone coverage
// and derived track limits.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/benhalverson/rc-coach/internal/centerline"
	"github.com/benhalverson/rc-coach/internal/coords"
	"github.com/benhalverson/rc-coach/internal/limits"
	"github.com/benhalverson/rc-coach/internal/quad"
	"github.com/benhalverson/rc-coach/internal/track"
	"github.com/benhalverson/rc-coach/internal/zone"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

func main() {
	project := flag.String("project", "", "Path to track document (JSON)")
	samples := flag.Int("samples", limits.DefaultNumSamples, "Track limit sample count")
	srcW := flag.Float64("srcw", 0, "Source photo width in pixels (enables quad validation)")
	srcH := flag.Float64("srch", 0, "Source photo height in pixels")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *project == "" {
		flag.Usage()
		os.Exit(1)
	}

	doc, err := track.Load(*project)
	if err != nil {
		log.WithError(err).Fatal("failed to load track document")
	}

	log.WithFields(logrus.Fields{
		"id":     doc.ID,
		"name":   doc.Name,
		"meters": logrus.Fields{"w": doc.WidthMeters, "h": doc.HeightMeters},
		"pixels": logrus.Fields{"w": doc.TopdownPx.W, "h": doc.TopdownPx.H},
	}).Info("loaded track document")

	checkQuad(log, doc, *srcW, *srcH)
	derived := checkCenterline(log, doc, *samples)
	checkZones(log, doc)

	if derived == nil {
		return
	}

	norm := coords.NewNormalizer(
		geometry.NewSize(float64(doc.TopdownPx.W), float64(doc.TopdownPx.H)),
		geometry.NewSize(doc.WidthMeters, doc.HeightMeters),
	)
	ppm := norm.PixelsPerMeter()
	log.WithFields(logrus.Fields{"x": ppm.Width, "y": ppm.Height}).Info("pixels per meter")
}

// checkQuad re-validates the imported source quad when the photo
// dimensions are known.
func checkQuad(log *logrus.Logger, doc *track.Document, srcW, srcH float64) {
	ordered, err := quad.Order(doc.Import.SrcQuadPx[:])
	if err != nil {
		log.WithError(err).Error("source quad is unusable")
		return
	}

	if srcW <= 0 || srcH <= 0 {
		log.Info("source photo size not given, skipping quad validation (-srcw/-srch)")
		return
	}

	result := quad.Validate(ordered.Points(), srcW, srcH, quad.DefaultOptions())
	if !result.OK {
		log.WithFields(logrus.Fields{
			"reason": result.Reason,
			"detail": result.Detail,
		}).Warn("source quad fails validation")
		return
	}
	log.Info("source quad validates")
}

// checkCenterline parameterizes the centerline and extracts limits.
func checkCenterline(log *logrus.Logger, doc *track.Document, samples int) *track.Derived {
	derived, err := track.Recompute(doc, samples)
	if err != nil {
		log.WithError(err).Error("centerline cannot be parameterized")
		return nil
	}

	params := derived.Params
	log.WithFields(logrus.Fields{
		"points":      len(params.Points),
		"totalLength": params.TotalLength,
	}).Info("centerline parameterized")

	// Spot-check the wrap behavior at the start of the path.
	start := centerline.PoseAt(params, 0)
	log.WithFields(logrus.Fields{
		"x":       start.Position.X,
		"y":       start.Position.Y,
		"heading": start.Heading,
	}).Debug("pose at s=0")

	log.WithFields(logrus.Fields{
		"samples": len(derived.Limits.LeftBounds),
	}).Info("track limits extracted")

	return &derived
}

// checkZones runs a containment query at each zone's centroid; a zone
// that does not contain its own centroid is worth a look (concave or
// self-intersecting outline).
func checkZones(log *logrus.Logger, doc *track.Document) {
	zones := doc.EngineZones()
	for _, z := range zones {
		if len(z.Polygon) < 3 {
			log.WithField("zone", z.ID).Warn("zone has fewer than 3 vertices, queries will skip it")
			continue
		}

		center := geometry.Centroid(z.Polygon)
		q := zone.QueryAtPoint(center, zones, zone.Options{})

		containsSelf := false
		for _, c := range q.Containing {
			if c.ID == z.ID {
				containsSelf = true
				break
			}
		}

		entry := log.WithFields(logrus.Fields{
			"zone": z.ID,
			"type": z.Type,
		})
		if containsSelf {
			entry.Info("zone centroid query ok")
		} else {
			entry.Warn("zone does not contain its own centroid")
		}
	}
}
