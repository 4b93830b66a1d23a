package area

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propscout/hmo-app/internal/geocode"
	"github.com/propscout/hmo-app/internal/geometry"
)

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, ConfidenceExact, ConfidenceFor(geocode.AccuracyExact))
	assert.Equal(t, ConfidencePartial, ConfidenceFor(geocode.AccuracyPartial))
	assert.Equal(t, ConfidenceDistrict, ConfidenceFor(geocode.AccuracyDistrict))
	assert.Equal(t, ConfidenceCity, ConfidenceFor(geocode.AccuracyCity))
	assert.Equal(t, ConfidenceCity, ConfidenceFor(geocode.Accuracy("unknown")))
}

func TestFindContaining(t *testing.T) {
	resolver := &Resolver{Logger: zerolog.Nop()}
	areas := []Area{
		{
			Name:         "Westminster Article 4 Direction",
			Reference:    "art4-westminster",
			Restrictions: []string{"HMO conversions"},
			Geometry:     geometry.Box(geometry.NewPoint(-0.14, 51.5), 0.05).AsMultiPolygon(),
		},
		{
			Name:      "Selly Oak Article 4",
			Reference: "art4-selly-oak",
			Geometry:  geometry.Box(geometry.NewPoint(-1.93, 52.44), 0.02).AsMultiPolygon(),
		},
	}

	matches := resolver.FindContaining(51.5, -0.14, geocode.AccuracyExact, areas)
	require.Len(t, matches, 1)
	assert.Equal(t, "art4-westminster", matches[0].Reference)
	assert.Equal(t, ConfidenceExact, matches[0].Confidence)
	assert.False(t, matches[0].Approximate)

	matches = resolver.FindContaining(55.9533, -3.1883, geocode.AccuracyExact, areas)
	assert.Empty(t, matches)
}

func TestFindContainingSkipsMalformedGeometry(t *testing.T) {
	resolver := &Resolver{Logger: zerolog.Nop()}
	areas := []Area{
		{Reference: "art4-malformed", Geometry: geometry.MultiPolygon{}},
		{
			Reference: "art4-unclosed",
			Geometry: geometry.MultiPolygon{geometry.Polygon{geometry.PointCollection{
				geometry.NewPoint(0, 0),
				geometry.NewPoint(1, 0),
				geometry.NewPoint(1, 1),
			}}},
		},
		{
			Reference: "art4-good",
			Geometry:  geometry.Box(geometry.NewPoint(-0.14, 51.5), 0.05).AsMultiPolygon(),
		},
	}

	matches := resolver.FindContaining(51.5, -0.14, geocode.AccuracyExact, areas)
	require.Len(t, matches, 1)
	assert.Equal(t, "art4-good", matches[0].Reference)
}

func TestFindContainingCitywideBoost(t *testing.T) {
	resolver := &Resolver{Logger: zerolog.Nop()}
	areas := mergeCitywide(nil)

	// Birmingham city center resolved from the bare district "B1".
	matches := resolver.FindContaining(52.4796, -1.9026, geocode.AccuracyDistrict, areas)
	require.Len(t, matches, 1)
	assert.Equal(t, "citywide-birmingham", matches[0].Reference)
	assert.True(t, matches[0].Approximate)
	assert.InDelta(t, 0.85, matches[0].Confidence, 0.0001)
}

func TestFindContainingConfidenceCap(t *testing.T) {
	resolver := &Resolver{Logger: zerolog.Nop()}
	areas := mergeCitywide(nil)

	// Exact accuracy plus the stand-in boost saturates at 1.
	matches := resolver.FindContaining(52.4862, -1.8904, geocode.AccuracyExact, areas)
	require.Len(t, matches, 1)
	assert.Equal(t, 1.0, matches[0].Confidence)
}
