package odds

import "math"

// ImpliedProbability converts decimal odds to the bookmaker's implied
// probability. Odds at or below 1 carry no usable information and yield 0.
func ImpliedProbability(decimal float64) float64 {
	if decimal <= 1 || math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return 0
	}
	return 1 / decimal
}

// Overround is the summed implied probability of both sides minus one;
// positive values are the margin built into the pair.
func Overround(p Pair) float64 {
	return ImpliedProbability(p.Home) + ImpliedProbability(p.Away) - 1
}
