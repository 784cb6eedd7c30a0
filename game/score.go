package game

import "math"

// Bonus multiplier bounds for the hunt-efficiency reward.
const (
	MinBonus = 1.0
	MaxBonus = 1.3

	// extraStepsFactor scales the slack added to the minimum scram
	// budget; bigger is kinder to greedy gold routes.
	extraStepsFactor = 0.3

	// noBonusLength is the relative hunt overshoot at which the bonus
	// bottoms out at MinBonus.
	noBonusLength = 3
)

// BonusFactor compares the hunt's step count to the theoretical minimum and
// returns a multiplier in [MinBonus, MaxBonus]. At or under the optimum the
// bonus is maximal; past it the bonus decays linearly, bottoming out once
// the overshoot reaches noBonusLength times the optimum.
func BonusFactor(stepsTaken, minStepsToFind int) float64 {
	if minStepsToFind <= 0 {
		return MaxBonus
	}
	huntDiff := float64(stepsTaken-minStepsToFind) / float64(minStepsToFind)
	if huntDiff <= 0 {
		return MaxBonus
	}
	return math.Max(MinBonus, MaxBonus-huntDiff/noBonusLength*(MaxBonus-MinBonus))
}

// Score converts collected gold into the final score, truncating toward
// zero after applying the bonus multiplier.
func Score(bonus float64, gold int) int {
	return int(bonus * float64(gold))
}
