package geometry

import (
	"fmt"
	"strings"
)

// Point is a GeoJSON position: index 0 is longitude,
// index 1 is latitude.
type Point []float64

func NewPoint(lon, lat float64) Point {
	return Point{lon, lat}
}

func (p Point) Lon() float64 {
	return p[0]
}

func (p Point) Lat() float64 {
	return p[1]
}

// Valid reports whether the point holds at least a
// longitude and latitude pair.
func (p Point) Valid() bool {
	return len(p) >= 2
}

func (p Point) String() string {
	if !p.Valid() {
		return ""
	}

	return fmt.Sprintf("(%f,%f)", p.Lon(), p.Lat())
}

type PointCollection []Point

func (p PointCollection) String() string {
	if len(p) == 0 {
		return ""
	}

	var ss []string
	for _, pt := range p {
		ss = append(ss, pt.String())
	}

	return fmt.Sprintf("(%s)", strings.Join(ss, ","))
}

// Closed reports whether the ring has at least four points
// and the first and last points are equal. GeoJSON linear
// rings are explicitly closed.
func (p PointCollection) Closed() bool {
	if len(p) < 4 {
		return false
	}

	first, last := p[0], p[len(p)-1]
	if !first.Valid() || !last.Valid() {
		return false
	}

	return first.Lon() == last.Lon() && first.Lat() == last.Lat()
}

// contains runs a ray cast from the point toward positive
// longitude and counts edge crossings. An odd count means
// the point is inside the ring.
func (p PointCollection) contains(pt Point) bool {
	inside := false

	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[i], p[j]
		if !a.Valid() || !b.Valid() {
			return false
		}

		intersects := (a.Lat() > pt.Lat()) != (b.Lat() > pt.Lat()) &&
			pt.Lon() < (b.Lon()-a.Lon())*(pt.Lat()-a.Lat())/(b.Lat()-a.Lat())+a.Lon()
		if intersects {
			inside = !inside
		}
	}

	return inside
}
