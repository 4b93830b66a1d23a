package geometry

// Polygon is a GeoJSON polygon. The first ring is the
// perimeter, any remaining rings are holes.
type Polygon []PointCollection

func (p Polygon) Perimeter() PointCollection {
	if len(p) == 0 {
		return nil
	}

	return p[0]
}

func (p Polygon) Holes() []PointCollection {
	if len(p) < 2 {
		return nil
	}

	// make a copy to prevent memory leaks.
	holes := make([]PointCollection, len(p)-1)
	copy(holes, p[1:])

	return holes
}

// Valid reports whether the polygon has a closed perimeter
// ring and every hole ring is closed.
func (p Polygon) Valid() bool {
	if !p.Perimeter().Closed() {
		return false
	}

	for _, hole := range p.Holes() {
		if !hole.Closed() {
			return false
		}
	}

	return true
}

// Contains reports whether pt lies inside the perimeter and
// outside every hole.
func (p Polygon) Contains(pt Point) bool {
	if !pt.Valid() || !p.Perimeter().contains(pt) {
		return false
	}

	for _, hole := range p.Holes() {
		if hole.contains(pt) {
			return false
		}
	}

	return true
}

func (p Polygon) AsMultiPolygon() MultiPolygon {
	return MultiPolygon{p}
}

type MultiPolygon []Polygon

// Valid reports whether the multi polygon holds at least one
// polygon and every polygon is valid.
func (m MultiPolygon) Valid() bool {
	if len(m) == 0 {
		return false
	}

	for _, polygon := range m {
		if !polygon.Valid() {
			return false
		}
	}

	return true
}

// Contains reports whether pt lies inside any of the polygons.
func (m MultiPolygon) Contains(pt Point) bool {
	for _, polygon := range m {
		if polygon.Contains(pt) {
			return true
		}
	}

	return false
}

// Box returns the four corner polygon covering the square
// centered on pt with the given half-width in degrees. Used
// for the approximate city-wide areas that have no published
// boundary.
func Box(center Point, halfWidth float64) Polygon {
	if !center.Valid() {
		return Polygon{}
	}

	lon, lat := center.Lon(), center.Lat()
	ring := PointCollection{
		NewPoint(lon-halfWidth, lat-halfWidth),
		NewPoint(lon+halfWidth, lat-halfWidth),
		NewPoint(lon+halfWidth, lat+halfWidth),
		NewPoint(lon-halfWidth, lat+halfWidth),
		NewPoint(lon-halfWidth, lat-halfWidth),
	}

	return Polygon{ring}
}
