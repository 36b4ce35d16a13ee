package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportiq/internal/ml"
	"sportiq/internal/odds"
	"sportiq/internal/sports"
)

type labelCounter map[string]int

func (c labelCounter) PredictionInc(label string) { c[label]++ }

func (c labelCounter) HistoryWriteFailedInc() { c["history_failed"]++ }

func alwaysHome() ml.Classifier {
	return ml.ClassifierFunc(func(h, a float64) int { return ml.HomeWin })
}

func TestRender_Empty(t *testing.T) {
	blocks := Render(nil, alwaysHome(), odds.NewSampler(1), nil)
	assert.NotNil(t, blocks)
	assert.Empty(t, blocks)
}

func TestRender_SeededIsExact(t *testing.T) {
	matches := []sports.Match{
		{HomeTeam: "Alpha FC", AwayTeam: "Beta United"},
		{HomeTeam: "Team X", AwayTeam: "?"},
	}

	ref := odds.NewSampler(2024)
	p1, p2 := ref.Next(), ref.Next()

	var seen [][2]float64
	clf := ml.ClassifierFunc(func(h, a float64) int {
		seen = append(seen, [2]float64{h, a})
		if len(seen) == 1 {
			return ml.HomeWin
		}
		return ml.AwayOrDraw
	})

	counts := labelCounter{}
	blocks := Render(matches, clf, odds.NewSampler(2024), counts)
	require.Len(t, blocks, 2)

	assert.Equal(t, [][2]float64{{p1.Home, p1.Away}, {p2.Home, p2.Away}}, seen)

	assert.Equal(t, "Alpha FC", blocks[0].HomeTeam)
	assert.Equal(t, "Beta United", blocks[0].AwayTeam)
	assert.Equal(t, LabelHomeWin, blocks[0].Label)
	assert.Equal(t, p1.Home, blocks[0].HomeOdds)
	assert.Equal(t, p1.Away, blocks[0].AwayOdds)

	assert.Equal(t, "Team X", blocks[1].HomeTeam)
	assert.Equal(t, "?", blocks[1].AwayTeam)
	assert.Equal(t, LabelAwayOrDraw, blocks[1].Label)

	assert.Equal(t, 1, counts["Home Win"])
	assert.Equal(t, 1, counts["Away/Draw"])
}

func TestRender_OddsFormatting(t *testing.T) {
	b := DisplayBlock{HomeOdds: 2.0, AwayOdds: 3.456}
	assert.Equal(t, "2.00", b.HomeOddsText())
	assert.Equal(t, "3.46", b.AwayOddsText())
}

func TestRender_UsesRealModel(t *testing.T) {
	model, err := ml.BuildClassifier()
	require.NoError(t, err)

	matches := make([]sports.Match, 50)
	for i := range matches {
		matches[i] = sports.Match{HomeTeam: "H", AwayTeam: "A"}
	}

	blocks := NewRenderer(model, odds.NewSampler(3), nil).Render(matches)
	require.Len(t, blocks, 50)

	for _, b := range blocks {
		assert.GreaterOrEqual(t, b.HomeOdds, 1.5)
		assert.Less(t, b.HomeOdds, 3.5)
		assert.GreaterOrEqual(t, b.AwayOdds, 2.5)
		assert.Less(t, b.AwayOdds, 4.5)
		assert.Equal(t, LabelFor(model.Predict(b.HomeOdds, b.AwayOdds)), b.Label)
		assert.InDelta(t, model.Probability(b.HomeOdds, b.AwayOdds), b.Probability, 1e-12)
		assert.InDelta(t, 1/b.HomeOdds, b.HomeImplied, 1e-12)
	}
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, LabelHomeWin, LabelFor(1))
	assert.Equal(t, LabelAwayOrDraw, LabelFor(0))
}
