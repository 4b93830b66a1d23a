package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateMonthlyRent(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		bedrooms int
		expected int
	}{
		{name: "london baseline", city: "London", bedrooms: 4, expected: 900},
		{name: "oxford baseline", city: "oxford", bedrooms: 3, expected: 495},
		{name: "unlisted city falls back", city: "Hull", bedrooms: 5, expected: 550},
		{name: "zero bedrooms counts as one room", city: "Bristol", bedrooms: 0, expected: 150},
		{name: "negative bedrooms counts as one room", city: "manchester", bedrooms: -2, expected: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateMonthlyRent(tt.city, tt.bedrooms))
		})
	}
}

func TestAddInvestmentMetrics(t *testing.T) {
	l := Listing{City: "Manchester", Bedrooms: 5, Price: 240000}
	l.AddInvestmentMetrics()

	assert.Equal(t, 600, l.MonthlyRent)
	assert.Equal(t, 7200, l.AnnualRent)
	assert.Equal(t, 3.0, l.GrossYield)

	// Yield is rounded to two decimal places.
	l = Listing{City: "London", Bedrooms: 3, Price: 710000}
	l.AddInvestmentMetrics()
	assert.Equal(t, 675, l.MonthlyRent)
	assert.Equal(t, 8100, l.AnnualRent)
	assert.Equal(t, 1.14, l.GrossYield)

	// A zero price never divides.
	l = Listing{City: "Leeds", Bedrooms: 4}
	l.AddInvestmentMetrics()
	assert.Zero(t, l.GrossYield)
}
