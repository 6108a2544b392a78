package game_test

import (
	"testing"

	"github.com/bclaudel/paname/internal/corpus"
	"github.com/bclaudel/paname/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	c := testCorpus()
	fs := game.NewFoundSet([]int64{1010, 2001})

	stats := game.ComputeStats(c, fs)

	assert.Equal(t, 2, stats.Found)
	assert.InDelta(t, 3.0, stats.StreetLength, 1e-9)
	assert.InDelta(t, 75.0, stats.StreetLengthPct, 1e-9) // 3 of 4 km
	assert.Equal(t, 1, stats.Stations)
	assert.InDelta(t, 25.0, stats.StationsPct, 1e-9) // 1 of 4 stations

	require.Len(t, stats.Lines, 3)
	assert.Equal(t, game.LineStats{Line: "METRO 1", Label: "1", Mode: corpus.ModeMetro, Found: 0, Total: 1}, stats.Lines[0])
	assert.Equal(t, game.LineStats{Line: "METRO 4", Label: "4", Mode: corpus.ModeMetro, Found: 1, Total: 2}, stats.Lines[1])
	assert.Equal(t, game.LineStats{Line: "METRO 5", Label: "5", Mode: corpus.ModeMetro, Found: 0, Total: 1}, stats.Lines[2])

	require.Len(t, stats.Modes, 1)
	assert.Equal(t, game.ModeStats{Mode: corpus.ModeMetro, Found: 1, Total: 4}, stats.Modes[0])
}

func TestComputeStats_empty(t *testing.T) {
	stats := game.ComputeStats(testCorpus(), game.NewFoundSet(nil))

	assert.Zero(t, stats.Found)
	assert.Zero(t, stats.StreetLengthPct)
	assert.Zero(t, stats.StationsPct)
	for _, line := range stats.Lines {
		assert.Zero(t, line.Found)
	}
}

func TestComputeStats_everythingFound(t *testing.T) {
	c := testCorpus()
	var ids []int64
	for _, e := range c.Entities() {
		ids = append(ids, e.ID)
	}
	stats := game.ComputeStats(c, game.NewFoundSet(ids))

	assert.InDelta(t, 100.0, stats.StreetLengthPct, 1e-9)
	assert.InDelta(t, 100.0, stats.StationsPct, 1e-9)
	for _, line := range stats.Lines {
		assert.Equal(t, line.Total, line.Found)
	}
}

// Stored ids the corpus no longer knows must not distort the percentages.
func TestComputeStats_unknownIDsIgnored(t *testing.T) {
	stats := game.ComputeStats(testCorpus(), game.NewFoundSet([]int64{2001, 999999}))

	assert.Equal(t, 1, stats.Found)
	assert.InDelta(t, 75.0, stats.StreetLengthPct, 1e-9)
}
