package portfolio

import (
	"strings"
	"time"

	"github.com/agenthands/folio/internal/geo"
)

// FallbackPoint is where a location with no matching city is pinned.
var FallbackPoint = geo.Point{X: 400, Y: 400}

type LocationPoint struct {
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Dates       string    `json:"dates"`
	Location    string    `json:"location"`
	Coordinates geo.Point `json:"coordinates"`
}

// FormatDate turns "2020-01" into "Jan 2020". "Present" and anything that
// does not parse are returned unchanged.
func FormatDate(s string) string {
	if s == "Present" {
		return s
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2006")
}

func FormatDateRange(start, end string) string {
	return FormatDate(start) + " — " + FormatDate(end)
}

// Locations pins every experience entry on the map. The city is the last
// comma-separated part of the entry's location and is looked up as given in
// lower case and then capitalised. A nil projection pins everything at
// FallbackPoint.
func Locations(p *Profile, proj *geo.Projection) []LocationPoint {
	out := make([]LocationPoint, 0, len(p.Experience))
	for _, e := range p.Experience {
		out = append(out, LocationPoint{
			Company:     e.Company,
			Position:    e.Position,
			Dates:       FormatDateRange(e.StartDate, e.EndDate),
			Location:    e.Location,
			Coordinates: cityPoint(proj, e.Location),
		})
	}
	return out
}

func cityPoint(proj *geo.Projection, location string) geo.Point {
	if proj == nil {
		return FallbackPoint
	}
	city := location
	if i := strings.LastIndex(city, ","); i >= 0 {
		city = city[i+1:]
	}
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return FallbackPoint
	}

	if pt, ok := proj.CityPoints[city]; ok {
		return pt
	}
	if pt, ok := proj.CityPoints[strings.ToUpper(city[:1])+city[1:]]; ok {
		return pt
	}
	return FallbackPoint
}
