package geocode

import (
	"regexp"
	"strings"
)

// Accuracy grades how precisely a result locates the input.
// Exact is a full postcode match, Partial is an outcode or
// free-text centroid, District is a static district table hit,
// City is a city-level approximation.
type Accuracy string

const (
	AccuracyExact    Accuracy = "exact"
	AccuracyPartial  Accuracy = "partial"
	AccuracyDistrict Accuracy = "district"
	AccuracyCity     Accuracy = "city"
)

// Result is a resolved coordinate for a postcode or partial
// postcode. Transient, recomputed per request.
type Result struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Accuracy Accuracy `json:"accuracy"`
	Source   string   `json:"source"`
}

var (
	fullPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2}[A-Z]?\s?[0-9][A-Z]{2}$`)
	outcodePattern      = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2}[A-Z]?$`)
	districtPattern     = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2}$`)
)

// Normalize uppercases the input and strips surrounding
// whitespace. Interior whitespace collapses to a single space.
func Normalize(postcode string) string {
	fields := strings.Fields(strings.ToUpper(postcode))
	return strings.Join(fields, " ")
}

// IsFullPostcode reports whether s looks like a complete UK
// postcode, e.g. "SW1A 1AA".
func IsFullPostcode(s string) bool {
	return fullPostcodePattern.MatchString(s)
}

// IsOutcode reports whether s looks like the outward part of a
// UK postcode, e.g. "SW1A".
func IsOutcode(s string) bool {
	return outcodePattern.MatchString(s)
}

// IsDistrict reports whether s looks like a bare postcode
// district, e.g. "B1".
func IsDistrict(s string) bool {
	return districtPattern.MatchString(s)
}
