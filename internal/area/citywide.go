package area

import (
	"strings"

	"github.com/propscout/hmo-app/internal/geometry"
)

// citywideRestriction is a known city-wide Article 4 direction
// that the feed does not always carry. The polygon used for it is
// a crude square around the city center, a deliberate coverage
// over accuracy tradeoff; every area built from this table is
// marked Approximate.
type citywideRestriction struct {
	City    string
	Council string
	Lat     float64
	Lon     float64
	// Half-width of the stand-in square, in degrees.
	Radius float64
}

var citywideRestrictions = []citywideRestriction{
	{City: "Birmingham", Council: "Birmingham City Council", Lat: 52.4862, Lon: -1.8904, Radius: 0.12},
	{City: "Manchester", Council: "Manchester City Council", Lat: 53.4808, Lon: -2.2426, Radius: 0.08},
	{City: "Liverpool", Council: "Liverpool City Council", Lat: 53.4084, Lon: -2.9916, Radius: 0.08},
	{City: "Leeds", Council: "Leeds City Council", Lat: 53.8008, Lon: -1.5491, Radius: 0.10},
	{City: "Sheffield", Council: "Sheffield City Council", Lat: 53.3811, Lon: -1.4701, Radius: 0.08},
	{City: "Nottingham", Council: "Nottingham City Council", Lat: 52.9548, Lon: -1.1581, Radius: 0.07},
	{City: "Newcastle", Council: "Newcastle City Council", Lat: 54.9783, Lon: -1.6178, Radius: 0.06},
	{City: "Oxford", Council: "Oxford City Council", Lat: 51.7520, Lon: -1.2577, Radius: 0.05},
}

func (c citywideRestriction) area() Area {
	return Area{
		Name:         c.City + " city-wide Article 4 direction",
		Council:      c.Council,
		Reference:    "citywide-" + strings.ToLower(c.City),
		Description:  "Approximate bounding polygon around the city center, not the published boundary.",
		Status:       StatusActive,
		Restrictions: []string{"HMO conversions"},
		Approximate:  true,
		Geometry:     geometry.Box(geometry.NewPoint(c.Lon, c.Lat), c.Radius).AsMultiPolygon(),
	}
}

// mergeCitywide appends the stand-in area for every city the feed
// produced nothing for. A feed area "references" a city when its
// name or council mentions it.
func mergeCitywide(areas []Area) []Area {
	for _, c := range citywideRestrictions {
		city := strings.ToLower(c.City)

		covered := false
		for _, a := range areas {
			if strings.Contains(strings.ToLower(a.Name), city) ||
				strings.Contains(strings.ToLower(a.Council), city) {
				covered = true
				break
			}
		}

		if !covered {
			areas = append(areas, c.area())
		}
	}

	return areas
}
