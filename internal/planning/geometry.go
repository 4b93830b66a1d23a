package planning

import (
	"encoding/json"
	"fmt"

	"github.com/propscout/hmo-app/internal/geometry"
)

type geo struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (g *geo) ParseMultiPolygon() (geometry.MultiPolygon, error) {
	var parsed geometry.MultiPolygon
	var gErr error
	switch g.Type {
	case "":
		return geometry.MultiPolygon{}, nil
	case "Polygon":
		var polygon geometry.Polygon
		gErr = json.Unmarshal(g.Coordinates, &polygon)
		parsed = polygon.AsMultiPolygon()
	case "MultiPolygon":
		var multiPolygon geometry.MultiPolygon
		gErr = json.Unmarshal(g.Coordinates, &multiPolygon)
		parsed = multiPolygon
	default:
		return nil, fmt.Errorf("unsupported geometry type: %s", g.Type)
	}
	if gErr != nil {
		return nil, fmt.Errorf("failed parsing MultiPolygon (Type: %s): %w", g.Type, gErr)
	}

	return parsed, nil
}
