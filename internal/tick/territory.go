package tick

import (
	"fmt"
	"math"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// baseExpansionInterval is the expansion cadence, in ticks, for a
// planet with no cadence-modifying trait (spec §4.3 Phase 4
// "Cadence").
const baseExpansionInterval = 10

// expandTerritory :
// Implements Phase 4 of spec §4.3: grows the territory frontier
// of every owned planet whose guard, radius budget and cadence
// checks allow it this tick.
//
// The `gameID` identifies the game whose planets should expand.
//
// The `tickNumber` is the tick just assigned by Phase 1, used by
// the cadence check.
//
// The `tickRateMs` is the game's configured tick rate, used to
// convert ownership age into ticks.
//
// The `now` is the instant to evaluate guards against.
//
// Returns the number of sectors created along with any error.
func (p Processor) expandTerritory(gameID string, tickNumber int, tickRateMs int, now time.Time) (int, error) {
	planets, err := p.planets.ForGame(gameID)
	if err != nil {
		return 0, fmt.Errorf("could not load planets for game \"%s\" (err: %v)", gameID, err)
	}

	created := 0

	for _, pl := range planets {
		if !pl.Owned() {
			continue
		}

		n, err := p.expandPlanet(gameID, pl, tickNumber, tickRateMs, now)
		if err != nil {
			p.log.Trace(logger.Error, "tick", fmt.Sprintf("territory expansion failed for planet \"%s\" (err: %v)", pl.ID, err))
			continue
		}

		created += n
	}

	return created, nil
}

// expandPlanet :
// Runs the guard, tier classification, radius cap, cadence check
// and candidate generation of spec §4.3 Phase 4 for a single
// owned planet.
func (p Processor) expandPlanet(gameID string, pl model.Planet, tickNumber int, tickRateMs int, now time.Time) (int, error) {
	sectors, err := p.territory.ForPlanet(pl.ID)
	if err != nil {
		return 0, err
	}

	if len(sectors) > 0 {
		oldest := sectors[0].CapturedAt
		for _, s := range sectors[1:] {
			if s.CapturedAt.Before(oldest) {
				oldest = s.CapturedAt
			}
		}

		if now.Sub(oldest) < model.ExpansionGuardWindow {
			return 0, nil
		}
	}

	if model.RadiusBudgetExceeded(len(sectors)) {
		return 0, nil
	}

	interval := baseExpansionInterval
	if pl.TroopCount > 300 {
		interval = 8
	}
	if pl.InNebula {
		interval = 15
	}
	if pl.HasMinerals {
		interval = 7
	}

	if interval == 0 || tickNumber%interval != 0 {
		return 0, nil
	}

	ownershipAgeTicks := 0.0
	if len(sectors) > 0 && tickRateMs > 0 {
		oldest := sectors[0].CapturedAt
		for _, s := range sectors[1:] {
			if s.CapturedAt.Before(oldest) {
				oldest = s.CapturedAt
			}
		}
		ownershipAgeTicks = float64(now.Sub(oldest).Milliseconds()) / float64(tickRateMs)
	}

	tier := model.TierFor(ownershipAgeTicks)
	params := tier.ParamsFor()

	waveMax := 0
	for _, s := range sectors {
		if s.ExpansionWave > waveMax {
			waveMax = s.ExpansionWave
		}
	}

	edges := make([]model.TerritorySector, 0)
	for _, s := range sectors {
		if s.ExpansionWave == waveMax {
			edges = append(edges, s)
		}
	}
	if len(edges) == 0 {
		edges = append(edges, model.TerritorySector{
			Pos:                pl.Pos,
			ControlledByPlanetID: pl.ID,
			DistanceFromPlanet: 0,
		})
	}

	newWave := waveMax + 1
	step := model.CandidateStepDistance * model.CandidateStepMultiplier

	created := 0
	queued := make([]model.Position, 0)

	for _, edge := range edges {
		if created >= params.SectorsPerWave {
			break
		}

		for k := 0; k < model.ExpansionAzimuthCount; k++ {
			if created >= params.SectorsPerWave {
				break
			}

			theta := float64(k) * math.Pi / 4

			candidate := model.NewPosition(
				edge.Pos.X+step*math.Cos(theta),
				edge.Pos.Y,
				edge.Pos.Z+step*math.Sin(theta),
			)

			distanceFromPlanet := candidate.Distance(pl.Pos)
			if distanceFromPlanet > params.Radius {
				continue
			}

			if countWithin(sectors, candidate, model.DensityCapRadius) >= model.DensityCapCount {
				continue
			}

			if withinCollisionRadius(sectors, queued, candidate) {
				continue
			}

			sector := model.TerritorySector{
				GameID:               gameID,
				Pos:                  candidate,
				OwnerID:              pl.OwnerID,
				ControlledByPlanetID: pl.ID,
				CapturedAt:           now,
				ExpansionTier:        tier,
				ExpansionWave:        newWave,
				DistanceFromPlanet:   distanceFromPlanet,
			}

			if err := p.territory.CreateSector(sector); err != nil {
				return created, err
			}

			queued = append(queued, candidate)
			created++
		}
	}

	return created, nil
}

// countWithin :
// Counts how many existing sectors sit within `radius` of
// `candidate` (spec §4.3 Phase 4 candidate rule 2, density cap).
func countWithin(sectors []model.TerritorySector, candidate model.Position, radius float64) int {
	count := 0
	for _, s := range sectors {
		if s.Pos.Distance(candidate) <= radius {
			count++
		}
	}
	return count
}

// withinCollisionRadius :
// Reports whether any existing or already-queued-this-wave
// sector sits within the collision cap radius of `candidate`
// (spec §4.3 Phase 4 candidate rule 3).
func withinCollisionRadius(sectors []model.TerritorySector, queued []model.Position, candidate model.Position) bool {
	for _, s := range sectors {
		if s.Pos.Distance(candidate) <= model.CollisionCapRadius {
			return true
		}
	}
	for _, q := range queued {
		if q.Distance(candidate) <= model.CollisionCapRadius {
			return true
		}
	}
	return false
}
