package tick

import (
	"fmt"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/data"
	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// Processor :
// Runs the ordered phases of a single tick invocation for one
// game. A processor is logically single-threaded per call but
// safe to invoke concurrently for the same game (spec §5): the
// only two serialization points are the atomic tick counter
// (`internal/data.GameProxy.IncrementTick`) and the guarded
// completion update (`internal/data.GameProxy.CompleteGame`);
// every other write is last-writer-wins at the row level and
// re-establishes its invariant from scratch on each phase.
//
// The `games`, `planets`, `attacks`, `territory`, `structures`,
// `combatLogs`, `stats`, `players` and `gamePlayers` proxies give
// access to the persisted state each phase reads and mutates.
//
// The `log` notifies information and errors produced while
// running the phases.
type Processor struct {
	games       data.GameProxy
	planets     data.PlanetProxy
	attacks     data.AttackProxy
	territory   data.TerritoryProxy
	structures  data.StructureProxy
	combatLogs  data.CombatLogProxy
	stats       data.StatsProxy
	players     data.PlayerProxy
	gamePlayers data.GamePlayerProxy
	log         logger.Logger
}

// NewProcessor :
// Creates a new tick processor wrapping the provided proxies.
//
// Returns the created processor.
func NewProcessor(
	games data.GameProxy,
	planets data.PlanetProxy,
	attacks data.AttackProxy,
	territory data.TerritoryProxy,
	structures data.StructureProxy,
	combatLogs data.CombatLogProxy,
	stats data.StatsProxy,
	players data.PlayerProxy,
	gamePlayers data.GamePlayerProxy,
	log logger.Logger,
) Processor {
	return Processor{
		games:       games,
		planets:     planets,
		attacks:     attacks,
		territory:   territory,
		structures:  structures,
		combatLogs:  combatLogs,
		stats:       stats,
		players:     players,
		gamePlayers: gamePlayers,
		log:         log,
	}
}

// Stats :
// Mirrors the `stats` object of the tick endpoint's success
// response (spec §6).
type Stats struct {
	PlanetsProcessed int `json:"planetsProcessed"`
	AttacksProcessed int `json:"attacksProcessed"`
	SectorsCreated   int `json:"sectorsCreated"`
}

// Result :
// Mirrors the full response shape of the tick endpoint (spec
// §6): either a processed tick, a game-complete notification, or
// a skip message.
type Result struct {
	Success           bool    `json:"success"`
	Tick              int     `json:"tick,omitempty"`
	Stats             *Stats  `json:"stats,omitempty"`
	GameComplete      bool    `json:"gameComplete,omitempty"`
	Winner            string  `json:"winner,omitempty"`
	WinningPercentage float64 `json:"winningPercentage,omitempty"`
	Message           string  `json:"message,omitempty"`
}

// ErrInvalidGameID : Indicates that the tick was requested for
// an identifier that is not a valid UUID (spec §7 InputError).
var ErrInvalidGameID = fmt.Errorf("invalid game identifier")

// Process :
// Runs every phase of spec §4.3 in order for the given game and
// returns the shape the tick endpoint hands back to its caller.
// Each phase re-reads the state it needs rather than threading a
// long-lived snapshot through the whole call, per the suspension
// point guidance of spec §5.
//
// The `gameID` identifies the game to tick.
//
// Returns the tick result along with any fatal error (a fatal
// error here means the tick could not even be attempted; partial
// phase failures are logged and swallowed per spec §7).
func (p Processor) Process(gameID string) (Result, error) {
	if !model.ValidUUID(gameID) {
		return Result{}, ErrInvalidGameID
	}

	now := time.Now()

	// Phase 0 - Gate.
	game, proceed, skip, err := p.gate(gameID, now)
	if err != nil {
		return Result{}, err
	}
	if !proceed {
		return skip, nil
	}

	// Phase 1 - Tick increment.
	t, err := p.games.IncrementTick(gameID)
	if err != nil {
		return Result{}, fmt.Errorf("could not increment tick for game \"%s\" (err: %v)", gameID, err)
	}

	// Phase 2 - Troop growth.
	planetsProcessed, err := p.growth(gameID)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("growth phase failed for game \"%s\" (err: %v)", gameID, err))
	}

	// Phase 3 - Attack resolution.
	attacksProcessed, err := p.resolveAttacks(gameID, now)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("attack resolution failed for game \"%s\" (err: %v)", gameID, err))
	}

	// Phase 4 - Territory expansion.
	sectorsCreated, err := p.expandTerritory(gameID, t, game.TickRateMs, now)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("territory expansion failed for game \"%s\" (err: %v)", gameID, err))
	}

	// Phase 5 - Elimination.
	if err := p.eliminate(gameID, game, now); err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("elimination phase failed for game \"%s\" (err: %v)", gameID, err))
	}

	// Phase 6 & 7 - Victory check and finalization.
	complete, winnerID, winningPct, victoryType, err := p.checkVictory(gameID, game)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("victory check failed for game \"%s\" (err: %v)", gameID, err))
	}

	if complete {
		if err := p.finalize(gameID, winnerID, victoryType); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("finalization failed for game \"%s\" (err: %v)", gameID, err))
		}

		return Result{
			Success:           true,
			Tick:              t,
			GameComplete:      true,
			Winner:            winnerID,
			WinningPercentage: winningPct,
		}, nil
	}

	// Phase 8 - Resource generation.
	if err := p.generateResources(gameID); err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("resource generation failed for game \"%s\" (err: %v)", gameID, err))
	}

	// Phase 9 - Bot planner.
	if t%5 == 0 {
		if err := p.runBots(gameID, t, now); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("bot planner failed for game \"%s\" (err: %v)", gameID, err))
		}
	}

	// Phase 10 - Return.
	return Result{
		Success: true,
		Tick:    t,
		Stats: &Stats{
			PlanetsProcessed: planetsProcessed,
			AttacksProcessed: attacksProcessed,
			SectorsCreated:   sectorsCreated,
		},
	}, nil
}
