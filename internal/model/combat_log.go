package model

import "time"

// CombatResult :
// Describes the outcome of a single combat resolution (spec
// §4.3 Phase 3 step 9, step 10).
type CombatResult string

// Defines the possible combat results.
const (
	AttackerVictory CombatResult = "attacker_victory"
	DefenderVictory CombatResult = "defender_victory"
	CombatRetreat   CombatResult = "retreat"
)

// CombatLog :
// Append-only record of a single attack resolution, read by the
// stats computation of the finalizer (spec §4.6) and never
// mutated after being written.
//
// The `AttackerID` and `DefenderID` identify the participants;
// `DefenderID` is empty when the target planet was neutral.
//
// The `SystemID` is the planet the combat took place on.
//
// The `AttackerLosses` and `DefenderLosses` record the troops
// lost on each side.
//
// The `AttackerSurvivors` records the troops the attacker has
// left after the engagement.
//
// The `TerrainType` is the classification from spec §4.3 step 1.
//
// The `HadFlanking`, `WasEncircled` and `HadDefenseStation`
// record which combat modifiers applied (spec §4.3 steps 4-7).
//
// The `CombatResult` is the final outcome.
//
// The `OccurredAt` timestamps the resolution.
type CombatLog struct {
	ID                string       `json:"id"`
	GameID            string       `json:"gameId"`
	AttackerID        string       `json:"attackerId"`
	DefenderID        string       `json:"defenderId,omitempty"`
	SystemID          string       `json:"systemId"`
	AttackerLosses    float64      `json:"attackerLosses"`
	DefenderLosses    float64      `json:"defenderLosses"`
	AttackerSurvivors float64      `json:"attackerSurvivors"`
	TerrainType       Terrain      `json:"terrainType"`
	HadFlanking       bool         `json:"hadFlanking"`
	WasEncircled      bool         `json:"wasEncircled"`
	HadDefenseStation bool         `json:"hadDefenseStation"`
	CombatResult      CombatResult `json:"combatResult"`
	OccurredAt        time.Time    `json:"occurredAt"`
}

// GameTick :
// One row per game recording the current tick counter. All
// increments funnel through the atomic tick counter (spec §4.1)
// so that concurrent invocations for the same game never
// observe or produce the same `TickNumber` twice (invariant 5
// of spec §3).
type GameTick struct {
	GameID      string    `json:"gameId"`
	TickNumber  int       `json:"tickNumber"`
	LastTickAt  time.Time `json:"lastTickAt"`
}

// GameStats :
// Final per-participant summary, written exactly once per
// `(GameID, PlayerID)` by the finalizer (spec §4.6), upserted
// idempotently so that a re-entrant completion never produces
// duplicate rows.
//
// The `PlanetsControlled` and `TerritoryPercentage` are the
// final snapshot at game end.
//
// The `TroopsSent` sums the troop commitment of every attack
// launched by this player across the game.
//
// The `PlanetsCaptured` counts `attacker_victory` combat log
// rows attributed to this player.
//
// The `CombatWins` and `CombatLosses` summarize the combat log.
//
// The `StructuresBuilt` counts structures owned by this player.
//
// The `PeakTerritoryPercentage` tracks the true running maximum
// territory percentage this player ever held, resolving the
// Open Question of spec §9 (the heritage implementation set
// this equal to the final value; this version tracks the true
// peak per tick instead).
//
// The `FinalPlacement` mirrors `GamePlayer.FinalPlacement`.
type GameStats struct {
	GameID                  string  `json:"gameId"`
	PlayerID                string  `json:"playerId"`
	PlanetsControlled       int     `json:"planetsControlled"`
	TerritoryPercentage     float64 `json:"territoryPercentage"`
	TroopsSent              float64 `json:"troopsSent"`
	PlanetsCaptured         int     `json:"planetsCaptured"`
	CombatWins              int     `json:"combatWins"`
	CombatLosses            int     `json:"combatLosses"`
	StructuresBuilt         int     `json:"structuresBuilt"`
	PeakTerritoryPercentage float64 `json:"peakTerritoryPercentage"`
	FinalPlacement          int     `json:"finalPlacement"`
}
