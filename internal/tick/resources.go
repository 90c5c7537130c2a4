package tick

import (
	"fmt"
	"math"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// tradeStationRadius is the proximity within which a trade
// station contributes to an owned planet's credit income (spec
// §4.3 Phase 8).
const tradeStationRadius = 100.0

// energyEfficiencyPeak is the fraction of `model.MaxEnergy` at
// which energy income efficiency peaks (spec §4.3 Phase 8,
// credited to the heritage OpenFront formula).
const energyEfficiencyPeak = 0.42

// generateResources :
// Implements Phase 8 of spec §4.3: computes and applies the
// per-tick resource income of every still-alive participant.
//
// The `gameID` identifies the game whose participants should
// earn resources.
//
// Returns any error occurring while computing or persisting the
// income.
func (p Processor) generateResources(gameID string) error {
	participants, err := p.gamePlayers.AlivePlayers(gameID)
	if err != nil {
		return fmt.Errorf("could not load alive participants for game \"%s\" (err: %v)", gameID, err)
	}

	for _, gp := range participants {
		if err := p.generateForPlayer(gameID, gp.PlayerID); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("resource generation failed for player \"%s\" (err: %v)", gp.PlayerID, err))
		}
	}

	return nil
}

// generateForPlayer :
// Computes and applies one participant's resource income for the
// current tick.
func (p Processor) generateForPlayer(gameID string, playerID string) error {
	pl, err := p.players.Player(playerID)
	if err != nil {
		return err
	}

	owned, err := p.planets.OwnedBy(gameID, playerID)
	if err != nil {
		return err
	}

	structures, err := p.structures.OwnedBy(gameID, playerID)
	if err != nil {
		return err
	}

	planetCount := len(owned)

	efficiency := energyEfficiency(float64(pl.Energy))
	energyIncome := int(math.Floor((100 + math.Floor(math.Pow(float64(planetCount), 0.6)*100)) * efficiency))

	tradeStations := make([]model.Planet, 0)
	for _, s := range structures {
		if s.Type != model.TradeStation || !s.IsActive {
			continue
		}
		for _, planet := range owned {
			if planet.ID == s.SystemID {
				tradeStations = append(tradeStations, planet)
				break
			}
		}
	}

	proximityPairs := 0
	for _, station := range tradeStations {
		for _, q := range owned {
			if q.ID == station.ID {
				continue
			}
			if station.Pos.Distance(q.Pos) <= tradeStationRadius {
				proximityPairs++
			}
		}
	}

	creditsIncome := 10*planetCount + 10*proximityPairs

	activeMiningOnMinerals := 0
	for _, s := range structures {
		if s.Type != model.MiningStation || !s.IsActive {
			continue
		}
		for _, planet := range owned {
			if planet.ID == s.SystemID && planet.HasMinerals {
				activeMiningOnMinerals++
				break
			}
		}
	}

	mineralsIncome := 50 * activeMiningOnMinerals

	pl.Credits += creditsIncome
	pl.Energy += energyIncome
	pl.Minerals += mineralsIncome

	return p.players.UpdateResources(pl)
}

// energyEfficiency :
// Implements the energy income efficiency curve of spec §4.3
// Phase 8: it peaks at `energyEfficiencyPeak` of `MaxEnergy` and
// falls off symmetrically from 0.5 at both ends toward that peak.
func energyEfficiency(energy float64) float64 {
	ratio := energy / model.MaxEnergy

	var efficiency float64
	if ratio <= energyEfficiencyPeak {
		efficiency = 0.5 + (ratio/energyEfficiencyPeak)*0.5
	} else {
		efficiency = 1 - ((ratio-energyEfficiencyPeak)/(1-energyEfficiencyPeak))*0.5
	}

	if efficiency < 0 {
		return 0
	}
	if efficiency > 1 {
		return 1
	}

	return efficiency
}
