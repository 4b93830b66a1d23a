package official

import (
	"encoding/json"
	"fmt"

	"github.com/propscout/hmo-app/internal/area"
)

// ParseError is returned when the paid API's response does not
// carry a recognizable verdict. The raw shape of this API has
// drifted across versions, so the adapter maps every known key
// spelling into the internal types here at the boundary and fails
// loudly instead of propagating missing fields.
type ParseError struct {
	Reason string
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("official api: unparseable response: %s", p.Reason)
}

// rawCheck covers the key spellings the API has used for the
// verdict and the matched areas.
type rawCheck struct {
	InArticle4 *bool     `json:"inArticle4"`
	InA4       *bool     `json:"in_article4"`
	Article4   *bool     `json:"article4"`
	Areas      []rawArea `json:"areas"`
	Matches    []rawArea `json:"matches"`
}

type rawArea struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Council   string `json:"council"`
	Authority string `json:"authority"`
	Reference string `json:"reference"`
	Ref       string `json:"ref"`
}

func parseCheck(raw json.RawMessage) (Check, error) {
	var rc rawCheck
	if err := json.Unmarshal(raw, &rc); err != nil {
		return Check{}, &ParseError{Reason: err.Error()}
	}

	var verdict *bool
	switch {
	case rc.InArticle4 != nil:
		verdict = rc.InArticle4
	case rc.InA4 != nil:
		verdict = rc.InA4
	case rc.Article4 != nil:
		verdict = rc.Article4
	}
	if verdict == nil {
		return Check{}, &ParseError{Reason: "no verdict field"}
	}

	rawAreas := rc.Areas
	if len(rawAreas) == 0 {
		rawAreas = rc.Matches
	}

	check := Check{InArticle4: *verdict, Areas: []area.MatchedArea{}}
	for _, ra := range rawAreas {
		check.Areas = append(check.Areas, ra.matchedArea())
	}

	return check, nil
}

func (ra rawArea) matchedArea() area.MatchedArea {
	m := area.MatchedArea{
		Name:         ra.Name,
		Council:      ra.Council,
		Reference:    ra.Reference,
		Restrictions: []string{"HMO conversions"},
	}
	if m.Name == "" {
		m.Name = ra.Title
	}
	if m.Council == "" {
		m.Council = ra.Authority
	}
	if m.Reference == "" {
		m.Reference = ra.Ref
	}

	return m
}
