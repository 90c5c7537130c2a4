package tick

import (
	"testing"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSelectWinner_NoQualifiers(t *testing.T) {
	standings := []standing{
		{playerID: "a", planetPct: 0.1, territoryPct: 0.1},
		{playerID: "b", planetPct: 0.2, territoryPct: 0.3},
	}

	won, winner, victoryType, pct := selectWinner(standings, nil, 80)

	assert.False(t, won)
	assert.Equal(t, standing{}, winner)
	assert.Equal(t, model.VictoryType(""), victoryType)
	assert.Zero(t, pct)
}

func TestSelectWinner_HigherShareWins(t *testing.T) {
	standings := []standing{
		{playerID: "a", planetPct: 0.85, territoryPct: 0.1},
		{playerID: "b", planetPct: 0.95, territoryPct: 0.2},
	}
	order := map[string]int{"a": 1, "b": 2}

	won, winner, victoryType, pct := selectWinner(standings, order, 80)

	assert.True(t, won)
	assert.Equal(t, "b", winner.playerID)
	assert.Equal(t, model.PlanetControl, victoryType)
	assert.InDelta(t, 95.0, pct, 0.0001)
}

func TestSelectWinner_TiesBrokenByPlacementOrder(t *testing.T) {
	standings := []standing{
		{playerID: "a", planetPct: 0.9, territoryPct: 0.1},
		{playerID: "b", planetPct: 0.9, territoryPct: 0.1},
	}
	order := map[string]int{"a": 3, "b": 1}

	won, winner, _, _ := selectWinner(standings, order, 80)

	assert.True(t, won)
	assert.Equal(t, "b", winner.playerID, "the lower placement order must win an exact tie")
}

func TestSelectWinner_TerritoryControlWhenTerritoryLeads(t *testing.T) {
	standings := []standing{
		{playerID: "a", planetPct: 0.1, territoryPct: 0.85},
	}
	order := map[string]int{"a": 1}

	won, winner, victoryType, pct := selectWinner(standings, order, 80)

	assert.True(t, won)
	assert.Equal(t, "a", winner.playerID)
	assert.Equal(t, model.TerritoryControl, victoryType)
	assert.InDelta(t, 85.0, pct, 0.0001)
}

func TestSelectWinner_EqualSharesDefaultToPlanetControl(t *testing.T) {
	standings := []standing{
		{playerID: "a", planetPct: 0.8, territoryPct: 0.8},
	}
	order := map[string]int{"a": 1}

	won, _, victoryType, _ := selectWinner(standings, order, 80)

	assert.True(t, won)
	assert.Equal(t, model.PlanetControl, victoryType)
}

func TestRankFinalStandings_OrdersByTerritoryDescending(t *testing.T) {
	standings := []standing{
		{playerID: "a", territoryPct: 0.2},
		{playerID: "b", territoryPct: 0.5},
		{playerID: "c", territoryPct: 0.1},
	}

	ranked := rankFinalStandings(standings, nil)

	assert.Equal(t, []string{"b", "a", "c"}, ids(ranked))
}

func TestRankFinalStandings_TiesBrokenByPlacementOrder(t *testing.T) {
	standings := []standing{
		{playerID: "a", territoryPct: 0.3},
		{playerID: "b", territoryPct: 0.3},
	}
	order := map[string]int{"a": 5, "b": 2}

	ranked := rankFinalStandings(standings, order)

	assert.Equal(t, []string{"b", "a"}, ids(ranked))
}

func TestRankFinalStandings_DoesNotMutateInput(t *testing.T) {
	standings := []standing{
		{playerID: "a", territoryPct: 0.1},
		{playerID: "b", territoryPct: 0.5},
	}

	rankFinalStandings(standings, nil)

	assert.Equal(t, "a", standings[0].playerID, "original slice order must be preserved")
}

func ids(standings []standing) []string {
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.playerID
	}
	return out
}
