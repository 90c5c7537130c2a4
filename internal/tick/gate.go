package tick

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// gate :
// Implements Phase 0 of spec §4.3. Reads the game's status,
// always runs the presence/abandonment watcher of spec §4.4
// regardless of status, and decides whether the remaining
// phases should run.
//
// The `gameID` identifies the game to gate.
//
// The `now` is the instant to evaluate presence against.
//
// Returns the loaded game, whether the caller should proceed to
// Phase 1, the skip result to return if not, and any error.
func (p Processor) gate(gameID string, now time.Time) (model.Game, bool, Result, error) {
	game, err := p.games.Game(gameID)
	if err != nil {
		return model.Game{}, false, Result{}, fmt.Errorf("could not load game \"%s\" (err: %v)", gameID, err)
	}

	if game.Status == model.Completed {
		return game, false, Result{Success: true, Message: "Game already completed"}, nil
	}

	abandoned, err := p.checkPresence(gameID, game.Status, now)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("presence check failed for game \"%s\" (err: %v)", gameID, err))
	}

	if abandoned {
		return game, false, Result{Success: true, Message: "Game abandoned due to inactivity"}, nil
	}

	// Re-read status since the presence check (or a concurrent
	// tick) may have completed the game in the meantime.
	game, err = p.games.Game(gameID)
	if err != nil {
		return model.Game{}, false, Result{}, fmt.Errorf("could not reload game \"%s\" (err: %v)", gameID, err)
	}

	if game.Status != model.Active {
		return game, false, Result{Success: true, Message: "Game not active"}, nil
	}

	return game, true, Result{}, nil
}

// checkPresence :
// Implements the presence/abandonment watcher of spec §4.4: the
// universal inactivity check (which may complete the game) and
// the host promotion rule.
//
// The `gameID` identifies the game to check.
//
// The `status` is the game's current status; host promotion only
// applies to active games (spec §4.4) since a waiting lobby's
// placement orders must stay stable until the game actually
// starts.
//
// The `now` is the instant to evaluate presence against.
//
// Returns `true` if the game was marked abandoned as a result of
// this call, along with any error.
func (p Processor) checkPresence(gameID string, status model.Status, now time.Time) (bool, error) {
	participants, err := p.gamePlayers.ForGame(gameID)
	if err != nil {
		return false, err
	}
	if len(participants) == 0 {
		return false, nil
	}

	if allParticipantsInactive(participants, now) {
		completed, err := p.games.CompleteGame(gameID, "", model.Abandoned)
		if err != nil {
			return false, err
		}
		return completed, nil
	}

	if status != model.Active {
		return false, nil
	}

	return false, p.promoteHostIfNeeded(gameID, participants, now)
}

// allParticipantsInactive :
// Reports whether every participant's last-seen timestamp falls
// outside spec §4.4's abandonment window as of `now`. An empty
// slice is handled by the caller before this is reached.
func allParticipantsInactive(participants []model.GamePlayer, now time.Time) bool {
	for _, gp := range participants {
		if !gp.LastSeen.Before(now.Add(-model.AbandonmentWindow)) {
			return false
		}
	}

	return true
}

// promoteHostIfNeeded :
// Implements the host promotion rule of spec §4.4: if the
// current host (the participant with the lowest
// `PlacementOrder`) is not currently active, the next active
// participant becomes the new host and placement orders shift
// deterministically while preserving the relative order of the
// remaining participants.
//
// The `gameID` identifies the game being checked.
//
// The `participants` are the game's current participants.
//
// The `now` is the instant to evaluate presence against.
//
// Returns any error occurring while persisting the reassignment.
func (p Processor) promoteHostIfNeeded(gameID string, participants []model.GamePlayer, now time.Time) error {
	reordered := computeHostPromotion(participants, now)
	if reordered == nil {
		return nil
	}

	for i, gp := range reordered {
		if gp.PlacementOrder == i+1 {
			continue
		}
		if err := p.gamePlayers.SetPlacementOrder(gameID, gp.PlayerID, i+1); err != nil {
			return err
		}
	}

	return nil
}

// computeHostPromotion :
// Pure core of `promoteHostIfNeeded`: if the current host (lowest
// `PlacementOrder`) is not present, moves the next present
// participant to the front while preserving the relative order of
// everyone else.
//
// Returns the new placement-ordered slice of participants, or
// `nil` if no promotion is needed (the host is present, or nobody
// else is).
func computeHostPromotion(participants []model.GamePlayer, now time.Time) []model.GamePlayer {
	ordered := make([]model.GamePlayer, len(participants))
	copy(ordered, participants)

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PlacementOrder < ordered[j].PlacementOrder
	})

	if len(ordered) == 0 || ordered[0].IsPresent(now) {
		return nil
	}

	newHostIdx := -1
	for i, gp := range ordered {
		if gp.IsPresent(now) {
			newHostIdx = i
			break
		}
	}

	if newHostIdx <= 0 {
		// Either nobody is present (the abandonment check above
		// will have handled that) or the host is already first.
		return nil
	}

	reordered := make([]model.GamePlayer, 0, len(ordered))
	reordered = append(reordered, ordered[newHostIdx])
	for i, gp := range ordered {
		if i == newHostIdx {
			continue
		}
		reordered = append(reordered, gp)
	}

	return reordered
}
