package tick

import (
	"fmt"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
)

// eliminate :
// Implements Phase 5 of spec §4.3: after the elimination grace
// period has elapsed since the game started, any participant
// still marked alive but controlling zero planets is eliminated.
//
// The `gameID` identifies the game to check.
//
// The `game` is the game's current state, used to read
// `StartedAt`.
//
// The `now` is the instant to evaluate the grace period and
// elimination timestamp against.
//
// Returns any error occurring while reading or persisting the
// eliminations.
func (p Processor) eliminate(gameID string, game model.Game, now time.Time) error {
	if !eliminationGraceElapsed(game, now) {
		return nil
	}

	participants, err := p.gamePlayers.AlivePlayers(gameID)
	if err != nil {
		return fmt.Errorf("could not load alive participants for game \"%s\" (err: %v)", gameID, err)
	}

	for _, gp := range participants {
		owned, err := p.planets.OwnedBy(gameID, gp.PlayerID)
		if err != nil {
			return fmt.Errorf("could not count planets for player \"%s\" (err: %v)", gp.PlayerID, err)
		}

		if len(owned) > 0 {
			continue
		}

		if err := p.gamePlayers.Eliminate(gameID, gp.PlayerID); err != nil {
			return fmt.Errorf("could not eliminate player \"%s\" (err: %v)", gp.PlayerID, err)
		}
	}

	return nil
}

// eliminationGraceElapsed :
// Reports whether a game has been running long enough for the
// elimination check of spec §4.3 Phase 5 to apply: the game must
// have started, and spec §4.3's grace period since `StartedAt`
// must have elapsed as of `now`.
func eliminationGraceElapsed(game model.Game, now time.Time) bool {
	return game.StartedAt != nil && now.Sub(*game.StartedAt) > model.EliminationGracePeriod
}
