// Package predict turns fetched matches into display blocks and ties a
// single fetch to a single render pass.
package predict

import (
	"fmt"

	"sportiq/internal/ml"
	"sportiq/internal/odds"
	"sportiq/internal/sports"
)

// Label is the textual outcome shown for a match.
type Label string

const (
	LabelHomeWin    Label = "Home Win"
	LabelAwayOrDraw Label = "Away/Draw"
)

// LabelFor maps a classifier output to its label.
func LabelFor(class int) Label {
	if class == ml.HomeWin {
		return LabelHomeWin
	}
	return LabelAwayOrDraw
}

// MetricsInterface defines metrics methods needed by the renderer and session
type MetricsInterface interface {
	PredictionInc(label string)
	HistoryWriteFailedInc()
}

// DisplayBlock is one rendered match prediction.
type DisplayBlock struct {
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	Label       Label   `json:"label"`
	HomeOdds    float64 `json:"home_odds"`
	AwayOdds    float64 `json:"away_odds"`
	HomeImplied float64 `json:"home_implied"`
	AwayImplied float64 `json:"away_implied"`
	Probability float64 `json:"probability,omitempty"`
}

// HomeOddsText is the home odds formatted to two decimals.
func (b DisplayBlock) HomeOddsText() string { return fmt.Sprintf("%.2f", b.HomeOdds) }

// AwayOddsText is the away odds formatted to two decimals.
func (b DisplayBlock) AwayOddsText() string { return fmt.Sprintf("%.2f", b.AwayOdds) }

// Renderer samples odds per match and asks the classifier for a label.
type Renderer struct {
	classifier ml.Classifier
	sampler    *odds.Sampler
	metrics    MetricsInterface
}

// NewRenderer creates a renderer. metrics may be nil.
func NewRenderer(classifier ml.Classifier, sampler *odds.Sampler, metrics MetricsInterface) *Renderer {
	return &Renderer{classifier: classifier, sampler: sampler, metrics: metrics}
}

// Render emits one block per match, in order. Each match gets its own
// independent odds draw.
func (r *Renderer) Render(matches []sports.Match) []DisplayBlock {
	return Render(matches, r.classifier, r.sampler, r.metrics)
}

// Render is the stateless form of Renderer.Render. metrics may be nil.
func Render(matches []sports.Match, classifier ml.Classifier, sampler *odds.Sampler, metrics MetricsInterface) []DisplayBlock {
	blocks := make([]DisplayBlock, 0, len(matches))
	prob, hasProb := classifier.(ml.ProbabilityClassifier)

	for _, m := range matches {
		pair := sampler.Next()
		label := LabelFor(classifier.Predict(pair.Home, pair.Away))

		b := DisplayBlock{
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			Label:       label,
			HomeOdds:    pair.Home,
			AwayOdds:    pair.Away,
			HomeImplied: odds.ImpliedProbability(pair.Home),
			AwayImplied: odds.ImpliedProbability(pair.Away),
		}
		if hasProb {
			b.Probability = prob.Probability(pair.Home, pair.Away)
		}
		if metrics != nil {
			metrics.PredictionInc(string(label))
		}
		blocks = append(blocks, b)
	}

	return blocks
}
