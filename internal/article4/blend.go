package article4

// Confidence constants used by the reconciler. The official API
// always reports ConfidenceOfficial regardless of what the other
// steps would have produced.
const (
	// ConfidenceOfficial is the fixed maximum attached to a
	// successful paid API result.
	ConfidenceOfficial = 0.95

	// TargetThreshold is the minimum database-row confidence at
	// which the local table step answers on its own.
	TargetThreshold = 0.70

	// BlendAgreeFloor is the lowest blended confidence when two
	// sources agree on the in/out boundary.
	BlendAgreeFloor = 0.75

	// BlendDisagreeCap keeps a blended result below full
	// confidence when the sources disagree, to signal the
	// disagreement to callers.
	BlendDisagreeCap = 0.85
)

// Blend combines a low-confidence database result with a
// geographic result.
//
// When both agree on the in/out boundary the blended confidence
// is the higher of the two, floored at BlendAgreeFloor. When they
// disagree the result with the higher raw confidence wins, but
// its confidence is capped at BlendDisagreeCap.
//
// Pure function; property-tested independently of any network
// call.
func Blend(db, geo CheckResult) CheckResult {
	if db.InArticle4 == geo.InArticle4 {
		blended := geo
		if db.Confidence > geo.Confidence {
			blended = db
		}
		if blended.Confidence < BlendAgreeFloor {
			blended.Confidence = BlendAgreeFloor
		}
		blended.Source = SourceBlended
		return blended
	}

	winner := geo
	if db.Confidence > geo.Confidence {
		winner = db
	}
	if winner.Confidence > BlendDisagreeCap {
		winner.Confidence = BlendDisagreeCap
	}
	winner.Source = SourceBlended

	return winner
}
