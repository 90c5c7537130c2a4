package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// PlayerProxy :
// Intended as a wrapper to access properties of players shared
// across games and persist mutations of their resources issued
// by the tick processor's resource generation phase.
type PlayerProxy struct {
	commonProxy
}

// NewPlayerProxy :
// Create a new proxy allowing to serve the players defined in
// the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to players.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewPlayerProxy(dbase db.Proxy, log logger.Logger) PlayerProxy {
	return PlayerProxy{newCommonProxy(dbase, log)}
}

// Players :
// Return a list of players registered so far matching the input
// filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the players.
//
// Returns the list of players matching the filters along with
// any error.
func (p PlayerProxy) Players(filters []db.Filter) ([]model.Player, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"username",
			"credits",
			"energy",
			"minerals",
			"research_points",
			"is_bot",
			"bot_difficulty",
		},
		Table:   "players",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query players (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query players (err: %v)", res.Err)
	}

	players := make([]model.Player, 0)

	for res.Next() {
		var pl model.Player
		var botDifficulty *model.BotDifficulty

		err := res.Scan(
			&pl.ID,
			&pl.Username,
			&pl.Credits,
			&pl.Energy,
			&pl.Minerals,
			&pl.ResearchPoints,
			&pl.IsBot,
			&botDifficulty,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for player (err: %v)", err))
			continue
		}

		if botDifficulty != nil {
			pl.BotDifficulty = *botDifficulty
		}

		players = append(players, pl)
	}

	return players, nil
}

// Player :
// Convenience wrapper to fetch a single player by their id.
//
// The `id` defines the identifier of the player to fetch.
//
// Returns the player matching this id along with any error.
func (p PlayerProxy) Player(id string) (model.Player, error) {
	players, err := p.Players([]db.Filter{
		{Key: "id", Values: []interface{}{id}},
	})

	if err != nil {
		return model.Player{}, err
	}
	if len(players) == 0 {
		return model.Player{}, fmt.Errorf("no player found with id \"%s\"", id)
	}

	return players[0], nil
}

// UpdateResources :
// Persists the clamped resource values of a player, as mutated
// by the resource generation phase of the tick processor.
//
// The `pl` defines the player whose resources should be saved.
//
// Returns any error occurring during the update.
func (p PlayerProxy) UpdateResources(pl model.Player) error {
	pl.ClampResources()

	return p.performWithLock(pl.ID, func() error {
		return p.dbase.InsertToDB(db.InsertReq{
			Script: "update_player_resources",
			Args: []interface{}{
				pl.ID,
				pl.Credits,
				pl.Energy,
				pl.Minerals,
				pl.ResearchPoints,
			},
			SkipReturn: true,
		})
	})
}

// GamePlayerProxy :
// Intended as a wrapper to access the per-game participation
// rows linking a player to a game, which carry most of the
// bookkeeping consumed by the presence watcher (spec §4.4) and
// the elimination/victory phases (spec §4.4, §4.5).
type GamePlayerProxy struct {
	commonProxy
}

// NewGamePlayerProxy :
// Create a new proxy allowing to serve the game/player links
// defined in the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to game participants.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewGamePlayerProxy(dbase db.Proxy, log logger.Logger) GamePlayerProxy {
	return GamePlayerProxy{newCommonProxy(dbase, log)}
}

// GamePlayers :
// Return a list of game participants registered so far matching
// the input filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the rows.
//
// Returns the list of participants matching the filters along
// with any error.
func (p GamePlayerProxy) GamePlayers(filters []db.Filter) ([]model.GamePlayer, error) {
	query := db.QueryDesc{
		Props: []string{
			"game_id",
			"player_id",
			"empire_color",
			"placement_order",
			"is_ready",
			"is_alive",
			"is_eliminated",
			"eliminated_at",
			"is_active",
			"last_seen",
			"final_placement",
			"final_territory_percentage",
		},
		Table:   "game_players",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query game players (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query game players (err: %v)", res.Err)
	}

	gamePlayers := make([]model.GamePlayer, 0)

	for res.Next() {
		var gp model.GamePlayer

		err := res.Scan(
			&gp.GameID,
			&gp.PlayerID,
			&gp.EmpireColor,
			&gp.PlacementOrder,
			&gp.IsReady,
			&gp.IsAlive,
			&gp.IsEliminated,
			&gp.EliminatedAt,
			&gp.IsActive,
			&gp.LastSeen,
			&gp.FinalPlacement,
			&gp.FinalTerritoryPercentage,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for game player (err: %v)", err))
			continue
		}

		gamePlayers = append(gamePlayers, gp)
	}

	return gamePlayers, nil
}

// ForGame :
// Convenience wrapper fetching every participant of a game.
//
// The `gameID` identifies the game whose participants should be
// fetched.
//
// Returns the participants along with any error.
func (p GamePlayerProxy) ForGame(gameID string) ([]model.GamePlayer, error) {
	return p.GamePlayers([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
	})
}

// AlivePlayers :
// Convenience wrapper fetching the still-alive participants of
// a game, as consumed by the elimination and victory phases.
//
// The `gameID` identifies the game whose alive participants
// should be fetched.
//
// Returns the participants along with any error.
func (p GamePlayerProxy) AlivePlayers(gameID string) ([]model.GamePlayer, error) {
	return p.GamePlayers([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
		{Key: "is_alive", Values: []interface{}{true}},
	})
}

// UpdatePresence :
// Persists the activity heartbeat of a participant, consumed by
// the presence model of spec §4.4.
//
// The `gameID` and `playerID` identify the participant.
//
// Returns any error occurring during the update.
func (p GamePlayerProxy) UpdatePresence(gameID string, playerID string) error {
	if !model.ValidUUID(gameID) || !model.ValidUUID(playerID) {
		return model.ErrInvalidGameID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "touch_game_player_presence",
		Args:       []interface{}{gameID, playerID},
		SkipReturn: true,
	})
}

// Eliminate :
// Persists the elimination of a participant at the current
// instant, as performed by the elimination phase (spec §4.5).
//
// The `gameID` and `playerID` identify the participant to
// eliminate.
//
// Returns any error occurring during the update.
func (p GamePlayerProxy) Eliminate(gameID string, playerID string) error {
	if !model.ValidUUID(gameID) || !model.ValidUUID(playerID) {
		return model.ErrInvalidGameID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "eliminate_game_player",
		Args:       []interface{}{gameID, playerID},
		SkipReturn: true,
	})
}

// MarkInactive :
// Immediately flags a participant as inactive, bypassing the
// presence timeout of spec §4.4. Used by the mark-inactive
// endpoint (spec §6), which a client invokes via a browser
// beacon right before its tab unloads.
//
// The `gameID` and `playerID` identify the participant.
//
// Returns any error occurring during the update.
func (p GamePlayerProxy) MarkInactive(gameID string, playerID string) error {
	if !model.ValidUUID(gameID) || !model.ValidUUID(playerID) {
		return model.ErrInvalidGameID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "mark_game_player_inactive",
		Args:       []interface{}{gameID, playerID},
		SkipReturn: true,
	})
}

// SetPlacementOrder :
// Persists a participant's seating order, used by the host
// promotion rule of spec §4.4 to reassign placement orders when
// the current host goes inactive.
//
// The `gameID` and `playerID` identify the participant.
//
// The `order` is the new placement order to record.
//
// Returns any error occurring during the update.
func (p GamePlayerProxy) SetPlacementOrder(gameID string, playerID string, order int) error {
	if !model.ValidUUID(gameID) || !model.ValidUUID(playerID) {
		return model.ErrInvalidGameID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "set_game_player_placement_order",
		Args:       []interface{}{gameID, playerID, order},
		SkipReturn: true,
	})
}

// SetFinalPlacement :
// Persists the final placement and territory percentage of a
// participant, written exactly once by the finalizer (spec
// §4.6).
//
// The `gameID` and `playerID` identify the participant.
//
// The `placement` and `territoryPercentage` are the values to
// record.
//
// Returns any error occurring during the update.
func (p GamePlayerProxy) SetFinalPlacement(gameID string, playerID string, placement int, territoryPercentage float64) error {
	if !model.ValidUUID(gameID) || !model.ValidUUID(playerID) {
		return model.ErrInvalidGameID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "set_game_player_final_placement",
		Args:       []interface{}{gameID, playerID, placement, territoryPercentage},
		SkipReturn: true,
	})
}
