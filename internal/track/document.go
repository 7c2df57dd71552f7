// Package track defines the persisted track document and the derived
// geometry recomputed from it after each edit.
package track

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/benhalverson/rc-coach/internal/zone"
	"github.com/benhalverson/rc-coach/pkg/geometry"
)

// TopdownPx is the size of the rectified top-down raster in pixels.
type TopdownPx struct {
	W int `json:"w"`
	H int `json:"h"`
}

// ZoneRecord is the persisted form of a zone. Polygon coordinates are
// normalized to [0,1].
type ZoneRecord struct {
	ID     string             `json:"id"`
	Type   string             `json:"type"`
	Poly   [][2]float64       `json:"poly"`
	Params map[string]float64 `json:"params,omitempty"`
}

// ImportInfo records where the track came from: the source photo and
// the pixel-space quad that was rectified.
type ImportInfo struct {
	SrcImageName string              `json:"srcImageName"`
	SrcQuadPx    [4]geometry.Point2D `json:"srcQuadPx"`
}

// Document is the exported track model. All polygon and centerline
// coordinates are normalized to [0,1]; physical size lives in the
// meter fields.
type Document struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	WidthMeters  float64      `json:"widthMeters"`
	HeightMeters float64      `json:"heightMeters"`
	TopdownPx    TopdownPx    `json:"topdownPx"`
	Zones        []ZoneRecord `json:"zones"`
	Centerline   [][2]float64 `json:"centerline,omitempty"`
	Import       ImportInfo   `json:"import"`
}

// New creates an empty document with a fresh id.
func New(name string) *Document {
	return &Document{
		ID:    uuid.NewString(),
		Name:  name,
		Zones: []ZoneRecord{},
	}
}

// Load reads a track document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("track: parse %s: %w", path, err)
	}

	return &doc, nil
}

// Save writes the document to a JSON file.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CenterlinePoints returns the centerline as engine points.
func (d *Document) CenterlinePoints() []geometry.Point2D {
	pts := make([]geometry.Point2D, len(d.Centerline))
	for i, c := range d.Centerline {
		pts[i] = geometry.Point2D{X: c[0], Y: c[1]}
	}
	return pts
}

// SetCenterline replaces the centerline from engine points.
func (d *Document) SetCenterline(points []geometry.Point2D) {
	d.Centerline = make([][2]float64, len(points))
	for i, p := range points {
		d.Centerline[i] = [2]float64{p.X, p.Y}
	}
}

// EngineZones converts the persisted zones into query-ready zones.
func (d *Document) EngineZones() []zone.Zone {
	zones := make([]zone.Zone, len(d.Zones))
	for i, r := range d.Zones {
		poly := make([]geometry.Point2D, len(r.Poly))
		for j, v := range r.Poly {
			poly[j] = geometry.Point2D{X: v[0], Y: v[1]}
		}
		zones[i] = zone.Zone{
			ID:      r.ID,
			Type:    zone.Type(r.Type),
			Polygon: poly,
			Params:  r.Params,
		}
	}
	return zones
}

// AddZone appends a zone record with a fresh id and returns it.
func (d *Document) AddZone(zoneType zone.Type, poly []geometry.Point2D, params map[string]float64) ZoneRecord {
	rec := ZoneRecord{
		ID:     uuid.NewString(),
		Type:   string(zoneType),
		Poly:   make([][2]float64, len(poly)),
		Params: params,
	}
	for i, p := range poly {
		rec.Poly[i] = [2]float64{p.X, p.Y}
	}
	d.Zones = append(d.Zones, rec)
	return rec
}
