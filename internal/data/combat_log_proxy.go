package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// CombatLogProxy :
// Intended as a wrapper to access the append-only combat log
// written once per attack resolution by the combat phase (spec
// §4.3 Phase 3 steps 9-10) and read back by the finalizer to
// compute per-player combat stats (spec §4.6).
type CombatLogProxy struct {
	commonProxy
}

// NewCombatLogProxy :
// Create a new proxy allowing to serve the combat log entries
// defined in the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to combat log entries.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewCombatLogProxy(dbase db.Proxy, log logger.Logger) CombatLogProxy {
	return CombatLogProxy{newCommonProxy(dbase, log)}
}

// Entries :
// Return a list of combat log entries registered so far matching
// the input filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the entries.
//
// Returns the list of entries matching the filters along with
// any error.
func (p CombatLogProxy) Entries(filters []db.Filter) ([]model.CombatLog, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"game_id",
			"attacker_id",
			"defender_id",
			"system_id",
			"attacker_losses",
			"defender_losses",
			"attacker_survivors",
			"terrain_type",
			"had_flanking",
			"was_encircled",
			"had_defense_station",
			"combat_result",
			"occurred_at",
		},
		Table:   "combat_logs",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query combat logs (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query combat logs (err: %v)", res.Err)
	}

	entries := make([]model.CombatLog, 0)

	for res.Next() {
		var e model.CombatLog
		var defenderID *string

		err := res.Scan(
			&e.ID,
			&e.GameID,
			&e.AttackerID,
			&defenderID,
			&e.SystemID,
			&e.AttackerLosses,
			&e.DefenderLosses,
			&e.AttackerSurvivors,
			&e.TerrainType,
			&e.HadFlanking,
			&e.WasEncircled,
			&e.HadDefenseStation,
			&e.CombatResult,
			&e.OccurredAt,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for combat log entry (err: %v)", err))
			continue
		}

		if defenderID != nil {
			e.DefenderID = *defenderID
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// ForGame :
// Convenience wrapper fetching every combat log entry of a game,
// as needed by the finalizer to compute per-player stats.
//
// The `gameID` identifies the game whose entries should be
// fetched.
//
// Returns the entries along with any error.
func (p CombatLogProxy) ForGame(gameID string) ([]model.CombatLog, error) {
	return p.Entries([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
	})
}

// Record :
// Used to request the insertion of a new combat log entry
// through the `record_combat` stored procedure, as issued once
// per resolved attack by the combat phase.
//
// The `e` defines the entry to record.
//
// Returns any error occurred while performing the insertion.
func (p CombatLogProxy) Record(e model.CombatLog) error {
	return p.dbase.InsertToDB(db.InsertReq{
		Script: "record_combat",
		Args:   []interface{}{e},
	})
}

// StatsProxy :
// Intended as a wrapper to access the final per-participant
// stats written exactly once per game by the finalizer (spec
// §4.6).
type StatsProxy struct {
	commonProxy
}

// NewStatsProxy :
// Create a new proxy allowing to serve the final stats defined
// in the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to final stats.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewStatsProxy(dbase db.Proxy, log logger.Logger) StatsProxy {
	return StatsProxy{newCommonProxy(dbase, log)}
}

// ForGame :
// Convenience wrapper fetching the final stats of every
// participant of a game.
//
// The `gameID` identifies the game whose stats should be
// fetched.
//
// Returns the stats along with any error.
func (p StatsProxy) ForGame(gameID string) ([]model.GameStats, error) {
	query := db.QueryDesc{
		Props: []string{
			"game_id",
			"player_id",
			"planets_controlled",
			"territory_percentage",
			"troops_sent",
			"planets_captured",
			"combat_wins",
			"combat_losses",
			"structures_built",
			"peak_territory_percentage",
			"final_placement",
		},
		Table: "game_stats",
		Filters: []db.Filter{
			{Key: "game_id", Values: []interface{}{gameID}},
		},
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query game stats (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query game stats (err: %v)", res.Err)
	}

	stats := make([]model.GameStats, 0)

	for res.Next() {
		var s model.GameStats

		err := res.Scan(
			&s.GameID,
			&s.PlayerID,
			&s.PlanetsControlled,
			&s.TerritoryPercentage,
			&s.TroopsSent,
			&s.PlanetsCaptured,
			&s.CombatWins,
			&s.CombatLosses,
			&s.StructuresBuilt,
			&s.PeakTerritoryPercentage,
			&s.FinalPlacement,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for game stats (err: %v)", err))
			continue
		}

		stats = append(stats, s)
	}

	return stats, nil
}

// Upsert :
// Persists the final stats of a single participant through the
// `upsert_game_stats` stored procedure, which must behave
// idempotently so that a re-entrant finalization attempt never
// produces duplicate rows (spec §4.6).
//
// The `s` defines the stats to persist.
//
// Returns any error occurred while performing the upsert.
func (p StatsProxy) Upsert(s model.GameStats) error {
	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "upsert_game_stats",
		Args:       []interface{}{s},
		SkipReturn: true,
	})
}

// UpdatePeakTerritoryPercentage :
// Advances the running maximum territory percentage tracked for
// a participant, resolving the Open Question of spec §9 by
// computing the true per-tick peak rather than mirroring the
// final value.
//
// The `gameID` and `playerID` identify the participant.
//
// The `percentage` is the territory percentage observed on the
// current tick; the stored peak is only updated if this value
// is greater.
//
// Returns any error occurring during the update.
func (p StatsProxy) UpdatePeakTerritoryPercentage(gameID string, playerID string, percentage float64) error {
	if !model.ValidUUID(gameID) || !model.ValidUUID(playerID) {
		return model.ErrInvalidGameID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "update_peak_territory_percentage",
		Args:       []interface{}{gameID, playerID, percentage},
		SkipReturn: true,
	})
}
