package tick

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// enemyProximityRadius and neutralProximityRadius bound the
// bot planner's search for targets (spec §4.5, priorities 2-4).
const (
	enemyProximityRadius   = 150.0
	neutralProximityRadius = 100.0
)

// attackTravelSpeedDivisor and attackTravelUnitMs turn an
// Euclidean distance into an attack's travel time (spec §4.5:
// "arrival_at = now + ceil(Euclidean/2) · 100 ms").
const (
	attackTravelSpeedDivisor = 2.0
	attackTravelUnitMs       = 100 * time.Millisecond
)

// runBots :
// Implements Phase 9 of spec §4.3: drives every bot-controlled
// participant whose stagger schedule fires on this tick through
// the five priorities of §4.5, stopping at the first that
// succeeds.
//
// The `gameID` identifies the game to drive bots for.
//
// The `tickNumber` is the tick just assigned by Phase 1.
//
// The `now` is the instant to use for travel time computation.
//
// Returns any error occurring while loading participants.
func (p Processor) runBots(gameID string, tickNumber int, now time.Time) error {
	participants, err := p.gamePlayers.AlivePlayers(gameID)
	if err != nil {
		return fmt.Errorf("could not load alive participants for game \"%s\" (err: %v)", gameID, err)
	}

	for _, gp := range participants {
		pl, err := p.players.Player(gp.PlayerID)
		if err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("could not load bot \"%s\" (err: %v)", gp.PlayerID, err))
			continue
		}
		if !pl.IsBot {
			continue
		}

		if (tickNumber+stagger(pl.ID))%5 != 0 {
			continue
		}

		if err := p.driveBot(gameID, pl, now); err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("bot turn failed for \"%s\" (err: %v)", pl.ID, err))
		}
	}

	return nil
}

// stagger :
// Implements the "any stable per-id integer" requirement of
// spec §4.5 by hashing the player identifier.
func stagger(playerID string) int {
	h := fnv.New32a()
	h.Write([]byte(playerID))
	return int(h.Sum32() % 5)
}

// driveBot :
// Runs the five priorities of spec §4.5 in order for a single
// bot, stopping at the first one that performs an action.
func (p Processor) driveBot(gameID string, bot model.Player, now time.Time) error {
	epsilon := bot.BotDifficulty.Epsilon()

	owned, err := p.planets.OwnedBy(gameID, bot.ID)
	if err != nil {
		return err
	}
	if len(owned) == 0 {
		return nil
	}

	acted, err := p.botBuild(gameID, bot, owned, epsilon)
	if err != nil || acted {
		return err
	}

	acted, err = p.botEncirclementFinisher(gameID, bot, owned, epsilon, now)
	if err != nil || acted {
		return err
	}

	acted, err = p.botWeakNeutralExpansion(gameID, bot, owned, epsilon, now)
	if err != nil || acted {
		return err
	}

	acted, err = p.botOpportunisticAttack(gameID, bot, owned, epsilon, now)
	if err != nil || acted {
		return err
	}

	return p.botReinforce(gameID, owned, epsilon)
}

// botBuild :
// Implements priority 1 of spec §4.5: builds a mining station on
// a mineral-rich planet lacking one, or failing that a colony
// station on a planet lacking one.
func (p Processor) botBuild(gameID string, bot model.Player, owned []model.Planet, epsilon float64) (bool, error) {
	if float64(bot.Credits) < float64(model.MiningStationCost)*epsilon {
		return false, nil
	}
	if rand.Float64() >= epsilon {
		return false, nil
	}

	for _, pl := range owned {
		if !pl.HasMinerals {
			continue
		}

		structures, err := p.structures.ForPlanet(pl.ID)
		if err != nil {
			return false, err
		}

		hasMining := false
		for _, s := range structures {
			if s.Type == model.MiningStation {
				hasMining = true
				break
			}
		}
		if hasMining {
			continue
		}

		if err := p.buildStructure(gameID, bot, pl, model.MiningStation); err != nil {
			return false, err
		}
		return true, nil
	}

	shuffled := make([]model.Planet, len(owned))
	copy(shuffled, owned)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	for _, pl := range shuffled {
		structures, err := p.structures.ForPlanet(pl.ID)
		if err != nil {
			return false, err
		}

		hasColony := false
		for _, s := range structures {
			if s.Type == model.ColonyStation {
				hasColony = true
				break
			}
		}
		if hasColony {
			continue
		}

		if err := p.buildStructure(gameID, bot, pl, model.ColonyStation); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// buildStructure :
// Persists a freshly-built structure and deducts its cost from
// the bot's credits (spec §4.5 priority 1).
func (p Processor) buildStructure(gameID string, bot model.Player, pl model.Planet, structureType model.StructureType) error {
	structure := model.Structure{
		GameID:   gameID,
		SystemID: pl.ID,
		OwnerID:  bot.ID,
		Type:     structureType,
		Level:    1,
		Health:   100,
		IsActive: true,
	}

	if err := p.structures.CreateStructure(structure); err != nil {
		return err
	}

	bot.Credits -= model.MiningStationCost
	return p.players.UpdateResources(bot)
}

// botEncirclementFinisher :
// Implements priority 2 of spec §4.5: finishes off an enemy
// planet the bot has nearly surrounded.
func (p Processor) botEncirclementFinisher(gameID string, bot model.Player, owned []model.Planet, epsilon float64, now time.Time) (bool, error) {
	enemies, err := p.nearbyPlanets(gameID, owned, enemyProximityRadius, func(pl model.Planet) bool {
		return pl.Owned() && pl.OwnerID != bot.ID
	})
	if err != nil {
		return false, err
	}

	for _, target := range enemies {
		covered := make(map[model.Axis]bool)
		for _, o := range owned {
			if !o.Pos.WithinAABB(target.Pos, enemyProximityRadius) {
				continue
			}
			if o.Pos.Distance(target.Pos) > enemyProximityRadius {
				continue
			}
			covered[target.Pos.DominantAxis(o.Pos)] = true
		}

		if len(covered) < 4 {
			continue
		}

		source := nearestPlanet(owned, target.Pos)
		if source == nil {
			continue
		}

		troops := math.Floor(source.TroopCount * 0.7 * epsilon)
		if troops <= 50 {
			continue
		}

		if err := p.launchAttack(gameID, bot.ID, *source, target, troops, now); err != nil {
			return false, err
		}

		return true, nil
	}

	return false, nil
}

// botWeakNeutralExpansion :
// Implements priority 3 of spec §4.5: sends troops to capture a
// nearby weak neutral planet.
func (p Processor) botWeakNeutralExpansion(gameID string, bot model.Player, owned []model.Planet, epsilon float64, now time.Time) (bool, error) {
	neutrals, err := p.nearbyPlanets(gameID, owned, neutralProximityRadius, func(pl model.Planet) bool {
		return !pl.Owned()
	})
	if err != nil {
		return false, err
	}

	sort.Slice(neutrals, func(i, j int) bool {
		return neutrals[i].TroopCount < neutrals[j].TroopCount
	})

	for _, target := range neutrals {
		for _, source := range owned {
			if source.TroopCount <= target.TroopCount*1.5 {
				continue
			}

			troops := math.Floor(source.TroopCount * 0.6 * epsilon)
			if troops <= 0 {
				continue
			}

			if err := p.launchAttack(gameID, bot.ID, source, target, troops, now); err != nil {
				return false, err
			}

			return true, nil
		}
	}

	return false, nil
}

// botOpportunisticAttack :
// Implements priority 4 of spec §4.5: attacks a nearby enemy
// planet with a favorable troop ratio, preferring the most
// valuable target.
func (p Processor) botOpportunisticAttack(gameID string, bot model.Player, owned []model.Planet, epsilon float64, now time.Time) (bool, error) {
	enemies, err := p.nearbyPlanets(gameID, owned, enemyProximityRadius, func(pl model.Planet) bool {
		return pl.Owned() && pl.OwnerID != bot.ID
	})
	if err != nil {
		return false, err
	}

	sort.Slice(enemies, func(i, j int) bool {
		return resourceValue(enemies[i]) > resourceValue(enemies[j])
	})

	threshold := 1.5 / epsilon

	for _, target := range enemies {
		for _, source := range owned {
			if source.TroopCount <= 50 {
				continue
			}
			if source.TroopCount/math.Max(1, target.TroopCount) <= threshold {
				continue
			}

			troops := math.Floor(source.TroopCount * 0.5 * epsilon)
			if troops <= 0 {
				continue
			}

			if err := p.launchAttack(gameID, bot.ID, source, target, troops, now); err != nil {
				return false, err
			}

			return true, nil
		}
	}

	return false, nil
}

// botReinforce :
// Implements priority 5 of spec §4.5: moves troops from the
// bot's strongest planet to its weakest.
func (p Processor) botReinforce(gameID string, owned []model.Planet, epsilon float64) (bool, error) {
	if len(owned) < 2 {
		return false, nil
	}

	strongest, weakest := owned[0], owned[0]
	for _, pl := range owned[1:] {
		if pl.TroopCount > strongest.TroopCount {
			strongest = pl
		}
		if pl.TroopCount < weakest.TroopCount {
			weakest = pl
		}
	}

	if strongest.ID == weakest.ID {
		return false, nil
	}

	transfer := math.Floor(strongest.TroopCount * 0.3 * epsilon)
	if transfer <= 0 {
		return false, nil
	}

	levels, err := p.structures.ColonyStationLevels(weakest.ID)
	if err != nil {
		return false, err
	}

	newWeakest := math.Min(model.EffectiveMaxTroops(levels), weakest.TroopCount+transfer)

	if err := p.planets.UpdateOwnershipAndTroops(strongest.ID, strongest.OwnerID, strongest.TroopCount-transfer); err != nil {
		return false, err
	}
	if err := p.planets.UpdateOwnershipAndTroops(weakest.ID, weakest.OwnerID, newWeakest); err != nil {
		return false, err
	}

	return true, nil
}

// launchAttack :
// Creates an attack row and decrements the source planet's
// troops, matching the bookkeeping spec §4.5 requires of every
// bot-launched attack.
func (p Processor) launchAttack(gameID string, attackerID string, source model.Planet, target model.Planet, troops float64, now time.Time) error {
	distance := source.Pos.Distance(target.Pos)
	travel := time.Duration(math.Ceil(distance/attackTravelSpeedDivisor)) * attackTravelUnitMs

	attack := model.Attack{
		GameID:         gameID,
		AttackerID:     attackerID,
		SourcePlanetID: source.ID,
		TargetPlanetID: target.ID,
		Troops:         troops,
		ArrivalAt:      now.Add(travel),
		Status:         model.InTransit,
	}

	if err := p.attacks.CreateAttack(attack); err != nil {
		return err
	}

	return p.planets.UpdateOwnershipAndTroops(source.ID, source.OwnerID, source.TroopCount-troops)
}

// nearbyPlanets :
// Collects the distinct planets matching `match` that sit within
// `radius` of any of the bot's owned planets.
func (p Processor) nearbyPlanets(gameID string, owned []model.Planet, radius float64, match func(model.Planet) bool) ([]model.Planet, error) {
	all, err := p.planets.ForGame(gameID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	out := make([]model.Planet, 0)

	for _, candidate := range all {
		if !match(candidate) {
			continue
		}
		if seen[candidate.ID] {
			continue
		}

		for _, o := range owned {
			if o.Pos.Distance(candidate.Pos) <= radius {
				out = append(out, candidate)
				seen[candidate.ID] = true
				break
			}
		}
	}

	return out, nil
}

// nearestPlanet :
// Returns a pointer to whichever planet in `planets` is closest
// to `pos`, or `nil` if the slice is empty.
func nearestPlanet(planets []model.Planet, pos model.Position) *model.Planet {
	if len(planets) == 0 {
		return nil
	}

	nearest := planets[0]
	best := nearest.Pos.Distance(pos)

	for _, pl := range planets[1:] {
		d := pl.Pos.Distance(pos)
		if d < best {
			best = d
			nearest = pl
		}
	}

	return &nearest
}

// resourceValue :
// Implements the resource value heuristic of spec §4.5 priority
// 4: `has_minerals - in_nebula`.
func resourceValue(pl model.Planet) int {
	value := 0
	if pl.HasMinerals {
		value++
	}
	if pl.InNebula {
		value--
	}
	return value
}
