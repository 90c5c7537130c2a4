package tick

import (
	"fmt"
	"sort"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// standing bundles one participant's board share for the victory
// check and the finalizer (spec §4.3 Phase 6, §4.6).
type standing struct {
	playerID     string
	planetCount  int
	sectorCount  int
	planetPct    float64
	territoryPct float64
}

// standings :
// Computes each participant's planet and territory share of the
// board, as needed by the victory check and the finalizer.
//
// The `gameID` identifies the game to evaluate.
//
// Returns the per-participant standings along with any error.
func (p Processor) standings(gameID string) ([]standing, error) {
	participants, err := p.gamePlayers.ForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("could not load participants for game \"%s\" (err: %v)", gameID, err)
	}

	planets, err := p.planets.ForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("could not load planets for game \"%s\" (err: %v)", gameID, err)
	}

	sectors, err := p.territory.ForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("could not load sectors for game \"%s\" (err: %v)", gameID, err)
	}

	totalPlanets := len(planets)
	totalSectors := len(sectors)

	planetCounts := make(map[string]int)
	for _, pl := range planets {
		if pl.Owned() {
			planetCounts[pl.OwnerID]++
		}
	}

	sectorCounts := make(map[string]int)
	for _, s := range sectors {
		if s.OwnerID != "" {
			sectorCounts[s.OwnerID]++
		}
	}

	out := make([]standing, 0, len(participants))
	for _, gp := range participants {
		s := standing{playerID: gp.PlayerID}

		s.planetCount = planetCounts[gp.PlayerID]
		s.sectorCount = sectorCounts[gp.PlayerID]

		if totalPlanets > 0 {
			s.planetPct = float64(s.planetCount) / float64(totalPlanets)
		}
		if totalSectors > 0 {
			s.territoryPct = float64(s.sectorCount) / float64(totalSectors)
		}

		out = append(out, s)
	}

	return out, nil
}

// checkVictory :
// Implements Phase 6 of spec §4.3: determines whether any
// participant qualifies for victory and, if so, which one wins.
// Also advances each participant's tracked peak territory
// percentage, resolving the Open Question of spec §9 by
// recording the true per-tick maximum rather than the heritage
// implementation's final-value shortcut.
//
// The `gameID` identifies the game to evaluate.
//
// The `game` is the game's current configuration, used to read
// `VictoryCondition`.
//
// Returns whether the game should be completed, the winner's
// identifier (empty if none), the winning percentage, the
// victory type, and any error.
func (p Processor) checkVictory(gameID string, game model.Game) (bool, string, float64, model.VictoryType, error) {
	standings, err := p.standings(gameID)
	if err != nil {
		return false, "", 0, "", err
	}

	order, err := p.placementOrder(gameID)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not load placement order for game \"%s\" (err: %v)", gameID, err))
	}

	for _, s := range standings {
		if err := p.stats.UpdatePeakTerritoryPercentage(gameID, s.playerID, s.territoryPct*100); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not update peak territory for player \"%s\" (err: %v)", s.playerID, err))
		}
	}

	won, winner, victoryType, winningPct := selectWinner(standings, order, float64(game.VictoryCondition))
	if !won {
		return false, "", 0, "", nil
	}

	return true, winner.playerID, winningPct, victoryType, nil
}

// selectWinner :
// Pure qualify/tie-break core of `checkVictory` (spec §4.3 Phase
// 6): a participant qualifies once either share reaches
// `conditionPct`; among qualifiers the higher share wins, ties
// broken by placement order (lowest wins, i.e. the earliest to
// join).
//
// Returns whether anyone qualified, the winning standing, the
// victory type and the winning percentage.
func selectWinner(standings []standing, order map[string]int, conditionPct float64) (bool, standing, model.VictoryType, float64) {
	qualifiers := make([]standing, 0)
	for _, s := range standings {
		if s.planetPct*100 >= conditionPct || s.territoryPct*100 >= conditionPct {
			qualifiers = append(qualifiers, s)
		}
	}

	if len(qualifiers) == 0 {
		return false, standing{}, "", 0
	}

	sort.Slice(qualifiers, func(i, j int) bool {
		bi := max(qualifiers[i].planetPct, qualifiers[i].territoryPct)
		bj := max(qualifiers[j].planetPct, qualifiers[j].territoryPct)

		if bi != bj {
			return bi > bj
		}

		return order[qualifiers[i].playerID] < order[qualifiers[j].playerID]
	})

	winner := qualifiers[0]

	victoryType := model.TerritoryControl
	if winner.planetPct >= winner.territoryPct {
		victoryType = model.PlanetControl
	}

	winningPct := max(winner.planetPct, winner.territoryPct) * 100

	return true, winner, victoryType, winningPct
}

// placementOrder :
// Fetches the placement order of every participant of a game,
// used as the deterministic tie-break of spec §4.3 Phase 6.
func (p Processor) placementOrder(gameID string) (map[string]int, error) {
	participants, err := p.gamePlayers.ForGame(gameID)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int, len(participants))
	for _, gp := range participants {
		order[gp.PlayerID] = gp.PlacementOrder
	}

	return order, nil
}

// finalize :
// Implements Phase 7 / spec §4.6: guarded completion of the
// game, computation and idempotent persistence of final
// per-participant stats, and final placement ranking.
//
// The `gameID` identifies the game to finalize.
//
// The `winnerID` and `victoryType` describe how the game ended.
//
// Returns any error occurring while finalizing the game.
func (p Processor) finalize(gameID string, winnerID string, victoryType model.VictoryType) error {
	completed, err := p.games.CompleteGame(gameID, winnerID, victoryType)
	if err != nil {
		return fmt.Errorf("could not complete game \"%s\" (err: %v)", gameID, err)
	}
	if !completed {
		// Another concurrent tick already finalized this game.
		return nil
	}

	standings, err := p.standings(gameID)
	if err != nil {
		return err
	}

	priorPeaks, err := p.priorPeaks(gameID)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not load prior peaks for game \"%s\" (err: %v)", gameID, err))
	}

	combatLogs, err := p.combatLogs.ForGame(gameID)
	if err != nil {
		return fmt.Errorf("could not load combat logs for game \"%s\" (err: %v)", gameID, err)
	}

	order, err := p.placementOrder(gameID)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not load placement order for game \"%s\" (err: %v)", gameID, err))
	}

	ranked := rankFinalStandings(standings, order)

	for i, s := range ranked {
		stats, err := p.buildStats(gameID, s, combatLogs, priorPeaks)
		if err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not build stats for player \"%s\" (err: %v)", s.playerID, err))
			continue
		}

		placement := i + 1
		stats.FinalPlacement = placement

		if err := p.stats.Upsert(stats); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not persist stats for player \"%s\" (err: %v)", s.playerID, err))
		}

		if err := p.gamePlayers.SetFinalPlacement(gameID, s.playerID, placement, s.territoryPct*100); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not persist final placement for player \"%s\" (err: %v)", s.playerID, err))
		}
	}

	return nil
}

// rankFinalStandings :
// Pure ranking core of `finalize` (spec §4.6): orders participants
// by territory share descending, ties broken by placement order
// (lowest wins). Stable so equal-territory, equal-order entries
// (should not occur, but defends against duplicate placement
// orders) keep their input order.
func rankFinalStandings(standings []standing, order map[string]int) []standing {
	ranked := make([]standing, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].territoryPct != ranked[j].territoryPct {
			return ranked[i].territoryPct > ranked[j].territoryPct
		}
		return order[ranked[i].playerID] < order[ranked[j].playerID]
	})

	return ranked
}

// priorPeaks :
// Fetches the peak territory percentage tracked for every
// participant so far, used by the finalizer to avoid regressing
// the value below what was already observed mid-game.
func (p Processor) priorPeaks(gameID string) (map[string]float64, error) {
	existing, err := p.stats.ForGame(gameID)
	if err != nil {
		return nil, err
	}

	peaks := make(map[string]float64, len(existing))
	for _, s := range existing {
		peaks[s.PlayerID] = s.PeakTerritoryPercentage
	}

	return peaks, nil
}

// buildStats :
// Assembles the final `GameStats` row for a single participant
// from the combat log and current board standings (spec §4.6
// step 2).
func (p Processor) buildStats(gameID string, s standing, combatLogs []model.CombatLog, priorPeaks map[string]float64) (model.GameStats, error) {
	troopsSent, err := p.troopsSentBy(gameID, s.playerID)
	if err != nil {
		return model.GameStats{}, err
	}

	structures, err := p.structures.OwnedBy(gameID, s.playerID)
	if err != nil {
		return model.GameStats{}, err
	}

	planetsCaptured, wins, losses := 0, 0, 0
	for _, e := range combatLogs {
		if e.AttackerID == s.playerID {
			switch e.CombatResult {
			case model.AttackerVictory:
				planetsCaptured++
				wins++
			case model.DefenderVictory:
				losses++
			}
		}
		if e.DefenderID == s.playerID && e.CombatResult == model.AttackerVictory {
			losses++
		}
	}

	peak := s.territoryPct * 100
	if prior, ok := priorPeaks[s.playerID]; ok && prior > peak {
		peak = prior
	}

	return model.GameStats{
		GameID:                  gameID,
		PlayerID:                s.playerID,
		PlanetsControlled:       s.planetCount,
		TerritoryPercentage:     s.territoryPct * 100,
		TroopsSent:              troopsSent,
		PlanetsCaptured:         planetsCaptured,
		CombatWins:              wins,
		CombatLosses:            losses,
		StructuresBuilt:         len(structures),
		PeakTerritoryPercentage: peak,
	}, nil
}

// troopsSentBy :
// Sums the troop commitment of every attack a player has ever
// launched in a game, regardless of its current status (spec
// §4.6 step 2).
func (p Processor) troopsSentBy(gameID string, playerID string) (float64, error) {
	attacks, err := p.attacks.Attacks([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
		{Key: "attacker_id", Values: []interface{}{playerID}},
	})
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, a := range attacks {
		total += a.Troops
	}

	return total, nil
}
