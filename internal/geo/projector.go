// Package geo projects GeoJSON outlines and city points onto a fixed-size
// drawing surface.
package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 800
	DefaultPadding = 50
)

// Point is a position on the drawing surface, Y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projector fits the first feature of a collection into a Width x Height
// canvas. Longitude and latitude are scaled independently, so the result is
// stretched to fill the canvas rather than preserving shape.
type Projector struct {
	Width   float64
	Height  float64
	Padding float64
}

func NewProjector() Projector {
	return Projector{Width: DefaultWidth, Height: DefaultHeight, Padding: DefaultPadding}
}

type Projection struct {
	OutlinePath string           `json:"outline_path"`
	CityPoints  map[string]Point `json:"city_points"`

	minLng, minLat float64
	scaleX, scaleY float64
	height         float64
	padding        float64
}

// ParseFeatureCollection decodes a GeoJSON FeatureCollection document.
func ParseFeatureCollection(data []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	return fc, nil
}

// Project computes the outline path of the first feature and the position of
// every later Point feature carrying a "location" property. Both use the
// same transform, so city pins line up with the outline.
func (p Projector) Project(fc *geojson.FeatureCollection) (*Projection, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, fmt.Errorf("feature collection is empty")
	}

	var outline orb.MultiPolygon
	switch g := fc.Features[0].Geometry.(type) {
	case orb.Polygon:
		outline = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		outline = g
	default:
		return nil, fmt.Errorf("outline feature must be a Polygon or MultiPolygon, got %T", fc.Features[0].Geometry)
	}

	bound, ok := ringBound(outline)
	if !ok {
		return nil, fmt.Errorf("outline feature has no coordinates")
	}
	spanX := bound.Max.X() - bound.Min.X()
	spanY := bound.Max.Y() - bound.Min.Y()
	if spanX == 0 || spanY == 0 {
		return nil, fmt.Errorf("outline feature has zero extent")
	}

	proj := &Projection{
		CityPoints: make(map[string]Point),
		minLng:     bound.Min.X(),
		minLat:     bound.Min.Y(),
		scaleX:     (p.Width - p.Padding*2) / spanX,
		scaleY:     (p.Height - p.Padding*2) / spanY,
		height:     p.Height,
		padding:    p.Padding,
	}

	proj.OutlinePath = proj.path(outline)

	for _, f := range fc.Features[1:] {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		name := f.Properties.MustString("location", "")
		if name == "" {
			continue
		}
		proj.CityPoints[name] = proj.Point(pt.Lon(), pt.Lat())
	}

	return proj, nil
}

// Point applies the projection transform to a longitude/latitude pair.
func (pr *Projection) Point(lng, lat float64) Point {
	return Point{
		X: (lng-pr.minLng)*pr.scaleX + pr.padding,
		Y: pr.height - ((lat-pr.minLat)*pr.scaleY + pr.padding),
	}
}

func (pr *Projection) path(mp orb.MultiPolygon) string {
	var b strings.Builder
	for pi, poly := range mp {
		for ri, ring := range poly {
			for i, c := range ring {
				pt := pr.Point(c.Lon(), c.Lat())
				if i == 0 {
					if pi > 0 || ri > 0 {
						b.WriteString(" M")
					} else {
						b.WriteString("M")
					}
				} else {
					b.WriteString(" L")
				}
				b.WriteString(" ")
				b.WriteString(formatFloat(pt.X))
				b.WriteString(",")
				b.WriteString(formatFloat(pt.Y))
				if i == len(ring)-1 {
					b.WriteString(" Z")
				}
			}
		}
	}
	return b.String()
}

func ringBound(mp orb.MultiPolygon) (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	for _, poly := range mp {
		for _, ring := range poly {
			for _, c := range ring {
				if !found {
					bound = orb.Bound{Min: c, Max: c}
					found = true
					continue
				}
				bound = bound.Extend(c)
			}
		}
	}
	return bound, found
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
