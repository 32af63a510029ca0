package gaze

// Attention score deductions. Independent and additive: every condition
// that holds subtracts its full weight.
const (
	deductLookingAway   = 30
	deductExcessiveBlnk = 20
	deductSuspiciousMov = 25
	deductAbnormalRate  = 15

	// Normal human blink-rate band, blinks per minute.
	minNormalBlinkRate = 5
	maxNormalBlinkRate = 30
)

// ScoreAttention computes the composite attention score for one frame
// from the frame's flags. Pure function: starts at 100, applies each
// deduction, clamps at 0.
func ScoreAttention(lookingAway bool, blink BlinkData, movement MovementData) float64 {
	score := 100.0

	if lookingAway {
		score -= deductLookingAway
	}
	if blink.ExcessiveBlinking {
		score -= deductExcessiveBlnk
	}
	if movement.Suspicious {
		score -= deductSuspiciousMov
	}
	if blink.BlinkRate < minNormalBlinkRate || blink.BlinkRate > maxNormalBlinkRate {
		score -= deductAbnormalRate
	}

	if score < 0 {
		score = 0
	}
	return score
}
