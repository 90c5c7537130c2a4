package tick

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// growth :
// Implements Phase 2 of spec §4.3: advances the troop count of
// every owned planet by one tick of S-curve growth, clamped to
// its effective garrison cap.
//
// The `gameID` identifies the game whose planets should grow.
//
// Returns the number of planets processed along with any error.
func (p Processor) growth(gameID string) (int, error) {
	planets, err := p.planets.ForGame(gameID)
	if err != nil {
		return 0, fmt.Errorf("could not load planets for game \"%s\" (err: %v)", gameID, err)
	}

	processed := 0

	for _, pl := range planets {
		if !pl.Owned() {
			continue
		}

		levels, err := p.structures.ColonyStationLevels(pl.ID)
		if err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not load colony levels for planet \"%s\" (err: %v)", pl.ID, err))
			continue
		}

		effectiveMax := model.EffectiveMaxTroops(levels)

		before := pl.TroopCount
		pl.ApplyGrowth(effectiveMax)

		if pl.TroopCount == before {
			processed++
			continue
		}

		if err := p.planets.UpdateOwnershipAndTroops(pl.ID, pl.OwnerID, pl.TroopCount); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not persist growth for planet \"%s\" (err: %v)", pl.ID, err))
			continue
		}

		processed++
	}

	return processed, nil
}
