package tick

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// encirclementRadius implements the "Euclidean ≤ 50" checks of
// spec §4.3 steps 4 and 5 (encirclement and nearby defense station).
const encirclementRadius = 50.0

// retreatReturnCap is the clamp applied to troops returning from
// a retreat (spec §4.3 step 3: "clamped to 500").
const retreatReturnCap = 500.0

// elevationDelta is the `y` advantage threshold of spec §4.3
// step 7.
const elevationDelta = 10.0

// resolveAttacks :
// Implements Phase 3 of spec §4.3: resolves every in-transit
// attack whose arrival time has passed, in the stable order the
// spec requires (`arrival_at` ascending, then `id` ascending),
// so that a same-tick capture chain resolves deterministically.
//
// The `gameID` identifies the game whose attacks should be
// resolved.
//
// The `now` is the instant used to decide which attacks have
// arrived.
//
// Returns the number of attacks processed along with any error.
func (p Processor) resolveAttacks(gameID string, now time.Time) (int, error) {
	pending, err := p.attacks.PendingArrivals(gameID)
	if err != nil {
		return 0, fmt.Errorf("could not load pending attacks for game \"%s\" (err: %v)", gameID, err)
	}

	arrived := make([]model.Attack, 0, len(pending))
	for _, a := range pending {
		if a.HasArrived(now) {
			arrived = append(arrived, a)
		}
	}

	sort.Slice(arrived, model.AttackOrder(arrived))

	processed := 0

	for _, a := range arrived {
		if err := p.resolveOne(gameID, a, arrived, now); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not resolve attack \"%s\" (err: %v)", a.ID, err))
			continue
		}
		processed++
	}

	return processed, nil
}

// resolveOne :
// Resolves a single attack following the ten steps of spec §4.3
// Phase 3. Loads the target planet fresh so that an earlier
// same-tick capture is visible to a later attack on the same
// planet.
func (p Processor) resolveOne(gameID string, a model.Attack, batch []model.Attack, now time.Time) error {
	target, err := p.planets.Planet(a.TargetPlanetID)
	if err != nil {
		return err
	}

	levels, err := p.structures.ColonyStationLevels(target.ID)
	if err != nil {
		return err
	}
	effectiveMax := model.EffectiveMaxTroops(levels)

	terrain := target.Terrain()

	// Step 2 - friendly arrival.
	if target.Owned() && target.OwnerID == a.AttackerID {
		newTroops := math.Min(effectiveMax, target.TroopCount+a.Troops)
		if err := p.planets.UpdateOwnershipAndTroops(target.ID, target.OwnerID, newTroops); err != nil {
			return err
		}
		return p.attacks.Resolve(a.ID, model.Arrived)
	}

	// Step 3 - retreat check.
	if a.ShouldRetreat(target.TroopCount) {
		returned := math.Min(retreatReturnCap, math.Floor(a.Troops*model.RetreatReturnRatio))

		source, err := p.planets.Planet(a.SourcePlanetID)
		if err == nil {
			sourceLevels, lerr := p.structures.ColonyStationLevels(source.ID)
			sourceMax := model.EffectiveMaxTroops(sourceLevels)
			if lerr == nil {
				newTroops := math.Min(sourceMax, source.TroopCount+returned)
				if uerr := p.planets.UpdateOwnershipAndTroops(source.ID, source.OwnerID, newTroops); uerr != nil {
					p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not return retreating troops to planet \"%s\" (err: %v)", source.ID, uerr))
				}
			}
		}

		if err := p.logCombat(gameID, a, target, terrain, 0, 0, 0, false, false, false, model.CombatRetreat, now); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not log retreat for attack \"%s\" (err: %v)", a.ID, err))
		}

		return p.attacks.Resolve(a.ID, model.Retreating)
	}

	// Step 4 - encirclement check.
	encircled, err := p.checkEncirclement(gameID, a.AttackerID, target)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not evaluate encirclement for attack \"%s\" (err: %v)", a.ID, err))
	}

	if encircled {
		if err := p.captureTarget(target, a.AttackerID, a.Troops); err != nil {
			return err
		}
		return p.finishAttack(gameID, a, target, terrain, 0, target.TroopCount, a.Troops, false, true, false, model.AttackerVictory, now)
	}

	// Step 5 - defense station flag.
	hasDefenseStation, err := p.hasDefenseStationNearby(gameID, target)
	if err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not evaluate defense station for attack \"%s\" (err: %v)", a.ID, err))
	}

	// Step 6 - flanking.
	flanking := p.checkFlanking(a, target, batch, now)

	// Step 7 - elevation.
	elevation := false
	if source, err := p.planets.Planet(a.SourcePlanetID); err == nil {
		elevation = source.Pos.Y-target.Pos.Y > elevationDelta
	}

	// Step 8 - combat math.
	attackMult := 1.0
	if flanking {
		attackMult *= 1.2
	}
	if elevation {
		attackMult *= 1.1
	}

	defenseMult := 1.0
	switch terrain {
	case model.TerrainNebula:
		defenseMult *= 1.5
	case model.TerrainAsteroid:
		defenseMult *= 1.25
	}
	if hasDefenseStation {
		defenseMult *= 5
	}

	ea := a.Troops * attackMult
	ed := target.TroopCount * defenseMult

	attackerLosses := math.Floor(ed * 0.3)
	defenderLosses := math.Floor(ea * 0.4)

	attackerWins := ea > ed

	// Step 9 - apply outcome.
	var result model.CombatResult
	var survivors float64

	if attackerWins {
		survivors = math.Max(0, a.Troops-attackerLosses)
		if err := p.captureTarget(target, a.AttackerID, survivors); err != nil {
			return err
		}
		result = model.AttackerVictory
	} else {
		newDefenderTroops := math.Max(0, target.TroopCount-defenderLosses)
		if err := p.planets.UpdateOwnershipAndTroops(target.ID, target.OwnerID, newDefenderTroops); err != nil {
			return err
		}
		survivors = math.Max(0, a.Troops-attackerLosses)
		result = model.DefenderVictory
	}

	return p.finishAttack(gameID, a, target, terrain, attackerLosses, defenderLosses, survivors, flanking, encircled, hasDefenseStation, result, now)
}

// captureTarget :
// Applies an attacker victory to the target planet: sets the new
// owner and troop count, then reassigns every territory sector
// it controls (spec §4.3 step 9, step 4).
func (p Processor) captureTarget(target model.Planet, newOwnerID string, newTroops float64) error {
	if err := p.planets.UpdateOwnershipAndTroops(target.ID, newOwnerID, newTroops); err != nil {
		return err
	}
	return p.territory.ReassignForPlanet(target.ID, newOwnerID)
}

// finishAttack :
// Appends the combat log entry and marks the attack `arrived`,
// the two bookkeeping steps common to every non-retreat
// resolution path (spec §4.3 step 10).
func (p Processor) finishAttack(
	gameID string,
	a model.Attack,
	target model.Planet,
	terrain model.Terrain,
	attackerLosses float64,
	defenderLosses float64,
	survivors float64,
	flanking bool,
	encircled bool,
	hadDefenseStation bool,
	result model.CombatResult,
	now time.Time,
) error {
	if err := p.logCombat(gameID, a, target, terrain, attackerLosses, defenderLosses, survivors, flanking, encircled, hadDefenseStation, result, now); err != nil {
		p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not log combat for attack \"%s\" (err: %v)", a.ID, err))
	}

	return p.attacks.Resolve(a.ID, model.Arrived)
}

// logCombat :
// Records a single combat resolution in the append-only combat
// log (spec §4.3 step 10).
func (p Processor) logCombat(
	gameID string,
	a model.Attack,
	target model.Planet,
	terrain model.Terrain,
	attackerLosses float64,
	defenderLosses float64,
	survivors float64,
	flanking bool,
	encircled bool,
	hadDefenseStation bool,
	result model.CombatResult,
	now time.Time,
) error {
	return p.combatLogs.Record(model.CombatLog{
		GameID:            gameID,
		AttackerID:        a.AttackerID,
		DefenderID:        target.OwnerID,
		SystemID:          target.ID,
		AttackerLosses:    attackerLosses,
		DefenderLosses:    defenderLosses,
		AttackerSurvivors: survivors,
		TerrainType:       terrain,
		HadFlanking:       flanking,
		WasEncircled:      encircled,
		HadDefenseStation: hadDefenseStation,
		CombatResult:      result,
		OccurredAt:        now,
	})
}

// checkEncirclement :
// Implements step 4 of spec §4.3 Phase 3: the target surrenders
// if the attacker owns at least one planet in each of the six
// cardinal directions around it, within the encirclement radius.
func (p Processor) checkEncirclement(gameID string, attackerID string, target model.Planet) (bool, error) {
	owned, err := p.planets.OwnedBy(gameID, attackerID)
	if err != nil {
		return false, err
	}

	covered := make(map[model.Axis]bool)

	for _, neighbor := range owned {
		if neighbor.ID == target.ID {
			continue
		}
		if !neighbor.Pos.WithinAABB(target.Pos, encirclementRadius) {
			continue
		}
		if neighbor.Pos.Distance(target.Pos) > encirclementRadius {
			continue
		}

		covered[target.Pos.DominantAxis(neighbor.Pos)] = true
	}

	axes := []model.Axis{
		model.AxisPosX, model.AxisNegX,
		model.AxisPosY, model.AxisNegY,
		model.AxisPosZ, model.AxisNegZ,
	}

	for _, axis := range axes {
		if !covered[axis] {
			return false, nil
		}
	}

	return true, nil
}

// hasDefenseStationNearby :
// Implements step 5 of spec §4.3 Phase 3: `true` iff some active
// defense platform owned by the target's defender exists on a
// planet within the defense station radius of the target.
func (p Processor) hasDefenseStationNearby(gameID string, target model.Planet) (bool, error) {
	if !target.Owned() {
		return false, nil
	}

	structures, err := p.structuresOfType(gameID, target.OwnerID, model.DefensePlatform)
	if err != nil {
		return false, err
	}

	for _, s := range structures {
		planet, err := p.planets.Planet(s.SystemID)
		if err != nil {
			continue
		}
		if planet.Pos.Distance(target.Pos) <= encirclementRadius {
			return true, nil
		}
	}

	return false, nil
}

// structuresOfType :
// Convenience wrapper fetching the active structures of a given
// type owned by a player within a game.
func (p Processor) structuresOfType(gameID string, ownerID string, structureType model.StructureType) ([]model.Structure, error) {
	all, err := p.structures.OwnedBy(gameID, ownerID)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Structure, 0)
	for _, s := range all {
		if s.Type == structureType && s.IsActive {
			filtered = append(filtered, s)
		}
	}

	return filtered, nil
}

// checkFlanking :
// Implements step 6 of spec §4.3 Phase 3: flanking occurs if, for
// this attack and every other in-transit attack by the same
// attacker on the same target that has also arrived, any pair of
// source positions forms an angle greater than 90 degrees at the
// target.
func (p Processor) checkFlanking(a model.Attack, target model.Planet, batch []model.Attack, now time.Time) bool {
	sources := make([]model.Position, 0, len(batch))

	for _, other := range batch {
		if other.AttackerID != a.AttackerID || other.TargetPlanetID != a.TargetPlanetID {
			continue
		}
		if !other.HasArrived(now) {
			continue
		}

		source, err := p.planets.Planet(other.SourcePlanetID)
		if err != nil {
			continue
		}

		sources = append(sources, source.Pos)
	}

	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			if angleAtVertex(target.Pos, sources[i], sources[j]) > 90 {
				return true
			}
		}
	}

	return false
}

// angleAtVertex :
// Computes the angle in degrees at `vertex` between the rays to
// `a` and `b`, using the dot product of the two vectors.
func angleAtVertex(vertex model.Position, a model.Position, b model.Position) float64 {
	va := model.NewPosition(a.X-vertex.X, a.Y-vertex.Y, a.Z-vertex.Z)
	vb := model.NewPosition(b.X-vertex.X, b.Y-vertex.Y, b.Z-vertex.Z)

	magA := math.Sqrt(va.X*va.X + va.Y*va.Y + va.Z*va.Z)
	magB := math.Sqrt(vb.X*vb.X + vb.Y*vb.Y + vb.Z*vb.Z)

	if magA == 0 || magB == 0 {
		return 0
	}

	dot := va.X*vb.X + va.Y*vb.Y + va.Z*vb.Z
	cos := dot / (magA * magB)

	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi
}
