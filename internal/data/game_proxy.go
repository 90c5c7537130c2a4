package data

import (
	"fmt"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// GameProxy :
// Intended as a wrapper to access properties of games and
// retrieve data from the database. This helps hiding the
// complexity of how the data is laid out in the DB and the
// precise name of tables from the exterior world.
type GameProxy struct {
	commonProxy
}

// NewGameProxy :
// Create a new proxy allowing to serve the games defined
// in the DB.
//
// The `dbase` represents the main DB proxy to use to fetch
// data related to games.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewGameProxy(dbase db.Proxy, log logger.Logger) GameProxy {
	return GameProxy{newCommonProxy(dbase, log)}
}

// Games :
// Return a list of games registered so far matching the
// input filters.
//
// The `filters` define some filtering properties that can
// be applied to the SQL query to only select part of the
// games available.
//
// Returns the list of games matching the filters along with
// any error.
func (p GameProxy) Games(filters []db.Filter) ([]model.Game, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"status",
			"map_seed",
			"victory_condition",
			"tick_rate_ms",
			"created_at",
			"started_at",
			"ended_at",
			"winner_id",
			"victory_type",
		},
		Table:   "games",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query games (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query games (err: %v)", res.Err)
	}

	games := make([]model.Game, 0)

	for res.Next() {
		var g model.Game
		var winnerID *string
		var victoryType *model.VictoryType
		var startedAt *time.Time
		var endedAt *time.Time

		err := res.Scan(
			&g.ID,
			&g.Status,
			&g.MapSeed,
			&g.VictoryCondition,
			&g.TickRateMs,
			&g.CreatedAt,
			&startedAt,
			&endedAt,
			&winnerID,
			&victoryType,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for game (err: %v)", err))
			continue
		}

		g.StartedAt = startedAt
		g.EndedAt = endedAt
		if winnerID != nil {
			g.WinnerID = *winnerID
		}
		if victoryType != nil {
			g.VictoryType = *victoryType
		}

		games = append(games, g)
	}

	return games, nil
}

// Game :
// Convenience wrapper to fetch a single game by its id.
//
// The `id` defines the identifier of the game to fetch.
//
// Returns the game matching this id along with any error
// (notably if no such game exists).
func (p GameProxy) Game(id string) (model.Game, error) {
	games, err := p.Games([]db.Filter{
		{Key: "id", Values: []interface{}{id}},
	})

	if err != nil {
		return model.Game{}, err
	}
	if len(games) == 0 {
		return model.Game{}, fmt.Errorf("no game found with id \"%s\"", id)
	}

	return games[0], nil
}

// CreateGame :
// Used to request the insertion of a new game through the
// `create_game` stored procedure.
//
// The `g` defines the game to create.
//
// Returns any error occurred while performing the insertion.
func (p GameProxy) CreateGame(g model.Game) error {
	if err := g.Valid(); err != nil {
		return err
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script: "create_game",
		Args:   []interface{}{g},
	})
}

// IncrementTick :
// Implements the atomic tick counter update used by the
// tick processor's tick increment phase: the increment and the return
// of the new value happen as a single DB round trip through
// the `increment_game_tick` stored procedure so that two
// concurrent invocations for the same game can never observe
// or produce the same tick number twice.
//
// The `gameID` identifies the game whose tick should be
// incremented.
//
// Returns the new tick number along with any error.
func (p GameProxy) IncrementTick(gameID string) (int, error) {
	if !model.ValidUUID(gameID) {
		return 0, model.ErrInvalidGameID
	}

	query := db.QueryDesc{
		Props:   []string{"tick_number"},
		Table:   fmt.Sprintf("increment_game_tick('%s')", gameID),
		Filters: nil,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil || res.Err != nil {
		return 0, fmt.Errorf("could not increment tick for game \"%s\" (err: %v / %v)", gameID, err, res.Err)
	}

	tick := 0
	if res.Next() {
		if err := res.Scan(&tick); err != nil {
			return 0, fmt.Errorf("could not read incremented tick for game \"%s\" (err: %v)", gameID, err)
		}
	}

	return tick, nil
}

// CompleteGame :
// Implements the guarded completion update required by the
// finalization phase: the game is only marked `completed` if
// it is currently `active`, so that a re-entrant finalization
// attempt (e.g. two tick invocations racing past the victory
// check) never completes the same game twice.
//
// The `gameID` identifies the game to complete.
//
// The `winnerID` and `victoryType` record how the game ended;
// `winnerID` may be empty for an abandoned game.
//
// Returns `true` if this call actually performed the
// transition (i.e. the game was still active), `false` if it
// had already been completed by a concurrent call, along with
// any error.
func (p GameProxy) CompleteGame(gameID string, winnerID string, victoryType model.VictoryType) (bool, error) {
	if !model.ValidUUID(gameID) {
		return false, model.ErrInvalidGameID
	}

	query := db.QueryDesc{
		Props: []string{"completed"},
		Table: fmt.Sprintf(
			"complete_game_if_active('%s', '%s', '%s')",
			gameID, winnerID, victoryType,
		),
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil || res.Err != nil {
		return false, fmt.Errorf("could not complete game \"%s\" (err: %v / %v)", gameID, err, res.Err)
	}

	completed := false
	if res.Next() {
		if err := res.Scan(&completed); err != nil {
			return false, fmt.Errorf("could not read completion result for game \"%s\" (err: %v)", gameID, err)
		}
	}

	return completed, nil
}
