package geocode

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sw1a 1aa", "SW1A 1AA"},
		{"  SW1A1AA  ", "SW1A1AA"},
		{"sw1a   1aa", "SW1A 1AA"},
		{"b1", "B1"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		input    string
		full     bool
		outcode  bool
		district bool
	}{
		{"SW1A 1AA", true, false, false},
		{"SW1A1AA", true, false, false},
		{"M1 1AE", true, false, false},
		{"SW1A", false, true, false},
		{"B1", false, true, true},
		{"EC1A", false, true, false},
		{"NOT A POSTCODE", false, false, false},
		{"123", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.full, IsFullPostcode(tt.input), "full")
			assert.Equal(t, tt.outcode, IsOutcode(tt.input), "outcode")
			assert.Equal(t, tt.district, IsDistrict(tt.input), "district")
		})
	}
}
