package ml

// FallbackClassifier picks the bookmaker favourite: HomeWin when the home
// price is strictly shorter than the away price. It is used when the
// logistic model cannot be fitted.
type FallbackClassifier struct{}

// Probability returns the home side's share of the implied probabilities,
// or 0 when either price is not a valid decimal price.
func (FallbackClassifier) Probability(homeOdds, awayOdds float64) float64 {
	if !validOdds(homeOdds) || !validOdds(awayOdds) {
		return 0
	}
	ih, ia := 1/homeOdds, 1/awayOdds
	return ih / (ih + ia)
}

// Predict returns HomeWin when the home side is the favourite.
func (f FallbackClassifier) Predict(homeOdds, awayOdds float64) int {
	if f.Probability(homeOdds, awayOdds) > 0.5 {
		return HomeWin
	}
	return AwayOrDraw
}

func validOdds(v float64) bool {
	return finite(v) && v > 1
}

// BuildClassifierOrFallback returns the fitted model, or the favourite
// heuristic together with the fit error.
func BuildClassifierOrFallback() (ProbabilityClassifier, error) {
	m, err := BuildClassifier()
	if err != nil {
		return FallbackClassifier{}, err
	}
	return m, nil
}
