package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportiq/internal/predict"
	"sportiq/internal/sports"
)

func TestWriteOutcome_Text(t *testing.T) {
	out := predict.Outcome{
		Sport: sports.Soccer,
		Blocks: []predict.DisplayBlock{
			{HomeTeam: "Alpha FC", AwayTeam: "Beta United", Label: predict.LabelHomeWin, HomeOdds: 1.9, AwayOdds: 3.5},
			{HomeTeam: "Team X", AwayTeam: "?", Label: predict.LabelAwayOrDraw, HomeOdds: 2.4, AwayOdds: 2.9},
		},
		Notices: []predict.Notice{{Level: predict.LevelInfo, Text: "1 malformed item skipped"}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutcome(&buf, out, false))

	want := "[info] 1 malformed item skipped\n" +
		"\n" +
		"### Alpha FC vs Beta United\nPrediction: Home Win\nHome Odds: 1.90\nAway Odds: 3.50\n---\n" +
		"### Team X vs ?\nPrediction: Away/Draw\nHome Odds: 2.40\nAway Odds: 2.90\n---\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteOutcome_EmptyResult(t *testing.T) {
	out := predict.Outcome{
		Blocks:  []predict.DisplayBlock{},
		Notices: []predict.Notice{{Level: predict.LevelError, Text: "API error 429"}, {Level: predict.LevelWarning, Text: predict.NoMatchesText}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutcome(&buf, out, false))
	assert.Equal(t, "[error] API error 429\n[warning] No live matches found.\n", buf.String())
}

func TestWriteOutcome_JSON(t *testing.T) {
	out := predict.Outcome{
		RunID:  "abc",
		Sport:  sports.Rugby,
		Blocks: []predict.DisplayBlock{{HomeTeam: "H", AwayTeam: "A", Label: predict.LabelHomeWin, HomeOdds: 2, AwayOdds: 3}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutcome(&buf, out, true))

	var decoded predict.Outcome
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "abc", decoded.RunID)
	assert.Equal(t, sports.Rugby, decoded.Sport)
	require.Len(t, decoded.Blocks, 1)
	assert.Equal(t, predict.LabelHomeWin, decoded.Blocks[0].Label)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "predict"}, names)

	predictCmd, _, err := root.Find([]string{"predict"})
	require.NoError(t, err)
	assert.NotNil(t, predictCmd.Flags().Lookup("sport"))
	assert.NotNil(t, predictCmd.Flags().Lookup("seed"))
	assert.NotNil(t, predictCmd.Flags().Lookup("json"))
}

func TestPredictCmd_UnknownSport(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"predict", "--sport", "curling"})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, sports.ErrUnknownSport)
}
