// Package ml provides the match-outcome classifier used by the dashboard.
// The model is a two-feature logistic regression fit once at startup on a
// small fixed dataset of synthetic odds; callers receive it as a value and
// only ever read from it.
package ml

// Outcome labels produced by a Classifier.
const (
	AwayOrDraw = 0
	HomeWin    = 1
)

// Classifier maps a pair of decimal odds to HomeWin or AwayOrDraw.
// Implementations must return exactly 0 or 1 for every input.
type Classifier interface {
	Predict(homeOdds, awayOdds float64) int
}

// ProbabilityClassifier is a Classifier that also exposes P(HomeWin).
type ProbabilityClassifier interface {
	Classifier
	Probability(homeOdds, awayOdds float64) float64
}

// ClassifierFunc adapts an ordinary function to the Classifier interface.
type ClassifierFunc func(homeOdds, awayOdds float64) int

// Predict calls f and maps any result other than HomeWin to AwayOrDraw.
func (f ClassifierFunc) Predict(homeOdds, awayOdds float64) int {
	if f(homeOdds, awayOdds) == HomeWin {
		return HomeWin
	}
	return AwayOrDraw
}
