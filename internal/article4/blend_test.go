package article4

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlendAgree(t *testing.T) {
	tests := []struct {
		name               string
		db, geo            CheckResult
		expectedConfidence float64
	}{
		{
			name:               "higher of the two wins",
			db:                 CheckResult{InArticle4: true, Confidence: 0.65, Source: SourceDatabase},
			geo:                CheckResult{InArticle4: true, Confidence: 0.80, Source: SourceGeographic},
			expectedConfidence: 0.80,
		},
		{
			name:               "database side can win",
			db:                 CheckResult{InArticle4: false, Confidence: 0.90, Source: SourceDatabase},
			geo:                CheckResult{InArticle4: false, Confidence: 0.80, Source: SourceGeographic},
			expectedConfidence: 0.90,
		},
		{
			name:               "agreement floors low confidence",
			db:                 CheckResult{InArticle4: true, Confidence: 0.50, Source: SourceDatabase},
			geo:                CheckResult{InArticle4: true, Confidence: 0.60, Source: SourceGeographic},
			expectedConfidence: BlendAgreeFloor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blended := Blend(tt.db, tt.geo)

			assert.Equal(t, SourceBlended, blended.Source)
			assert.Equal(t, tt.db.InArticle4, blended.InArticle4)
			assert.InDelta(t, tt.expectedConfidence, blended.Confidence, 0.0001)
		})
	}
}

func TestBlendDisagree(t *testing.T) {
	db := CheckResult{InArticle4: true, Confidence: 0.65, Source: SourceDatabase}
	geo := CheckResult{InArticle4: false, Confidence: 0.90, Source: SourceGeographic}

	blended := Blend(db, geo)

	// The geographic side wins on raw confidence, but disagreement
	// caps the blended confidence.
	assert.Equal(t, SourceBlended, blended.Source)
	assert.False(t, blended.InArticle4)
	assert.InDelta(t, BlendDisagreeCap, blended.Confidence, 0.0001)

	// A winner already below the cap keeps its own confidence.
	blended = Blend(
		CheckResult{InArticle4: true, Confidence: 0.68},
		CheckResult{InArticle4: false, Confidence: 0.60},
	)
	assert.True(t, blended.InArticle4)
	assert.InDelta(t, 0.68, blended.Confidence, 0.0001)
}

func TestBlendNeverExceedsBounds(t *testing.T) {
	confidences := []float64{0, 0.25, 0.5, 0.69, 0.7, 0.75, 0.85, 0.95, 1}

	for _, dbC := range confidences {
		for _, geoC := range confidences {
			for _, dbIn := range []bool{true, false} {
				for _, geoIn := range []bool{true, false} {
					blended := Blend(
						CheckResult{InArticle4: dbIn, Confidence: dbC},
						CheckResult{InArticle4: geoIn, Confidence: geoC},
					)

					assert.GreaterOrEqual(t, blended.Confidence, 0.0)
					assert.LessOrEqual(t, blended.Confidence, 1.0)
					if dbIn != geoIn {
						assert.LessOrEqual(t, blended.Confidence, BlendDisagreeCap)
					} else {
						assert.GreaterOrEqual(t, blended.Confidence, BlendAgreeFloor)
					}
				}
			}
		}
	}
}
