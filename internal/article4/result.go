package article4

import (
	"regexp"

	"github.com/propscout/hmo-app/internal/area"
)

// Source names which reconciler step produced a result.
const (
	SourceOfficial   = "official-api"
	SourceDatabase   = "database"
	SourceGeographic = "geographic"
	SourceBlended    = "blended"
	SourceUnknown    = "unknown"
	SourceError      = "Error"
)

// CheckResult is the unit returned across every layer of the
// reconciler, so results from different sources can be compared
// and merged. Confidence is a heuristic [0,1] value, not a
// calibrated probability.
type CheckResult struct {
	InArticle4       bool               `json:"inArticle4"`
	Areas            []area.MatchedArea `json:"areas"`
	Confidence       float64            `json:"confidence"`
	Source           string             `json:"source"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
	Postcode         string             `json:"postcode"`
}

// ErrorResult is the terminal fallback: every step exhausted, or
// the input never qualified for any step. Callers always receive
// a well-formed result, never an error.
func ErrorResult(postcode string) CheckResult {
	return CheckResult{
		InArticle4: false,
		Areas:      []area.MatchedArea{},
		Confidence: 0,
		Source:     SourceError,
		Postcode:   postcode,
	}
}

// postcodePattern accepts both partial ("SW1A") and full
// ("SW1A 1AA") UK postcodes. Preserved exactly for compatibility
// with existing clients.
var postcodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9]{1,2}[A-Za-z]?(\s?[0-9][A-Za-z]{2})?$`)

// ValidPostcode reports whether s passes the postcode regex the
// HTTP surface validates against.
func ValidPostcode(s string) bool {
	return postcodePattern.MatchString(s)
}

var districtPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2}`)

// DistrictOf extracts the postcode district from a normalized
// postcode, e.g. "SW1A 1AA" -> "SW1", "E1 6AN" -> "E1". Empty
// when no district can be found.
func DistrictOf(normalized string) string {
	return districtPattern.FindString(normalized)
}
