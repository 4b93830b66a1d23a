package planning

import (
	"encoding/json"
	"fmt"
	"time"
)

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Type       string          `json:"type"`
	Geometry   geo             `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// properties is the subset of planning.data.gov.uk entity
// properties this service reads. The feed publishes dates as
// "YYYY-MM-DD" strings, empty when unknown.
type properties struct {
	Name         string `json:"name"`
	Reference    string `json:"reference"`
	Organisation string `json:"organisation-entity"`
	Description  string `json:"description"`
	Notes        string `json:"notes"`
	StartDate    string `json:"start-date"`
	EndDate      string `json:"end-date"`
}

func (f *feature) parseArea() (Area, error) {
	var props properties
	if err := json.Unmarshal(f.Properties, &props); err != nil {
		return Area{}, fmt.Errorf("failed to unmarshal area properties: %w", err)
	}

	geo, err := f.Geometry.ParseMultiPolygon()
	if err != nil {
		return Area{}, fmt.Errorf("failed to parse Geometry as a MultiPolygon: %w", err)
	}

	area := Area{
		Name:        props.Name,
		Reference:   props.Reference,
		Council:     props.Organisation,
		Description: props.Description,
		Geometry:    geo,
	}
	if props.Notes != "" && area.Description == "" {
		area.Description = props.Notes
	}

	area.StartDate = parseFeedDate(props.StartDate)
	area.EndDate = parseFeedDate(props.EndDate)

	return area, nil
}

func parseFeedDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}

	return &t
}
