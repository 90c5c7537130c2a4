package galaxy

import (
	"fmt"
	"math/rand"

	"github.com/Dorschm/stellar-sub001/internal/data"
	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
	"github.com/google/uuid"
)

// GridSize controls how many planets are laid out along each
// axis of the generated grid. A game's board has `GridSize^3`
// candidate slots, filled up to the requested planet count.
const GridSize = 6

// CellSpacing is the distance in map units between two adjacent
// grid slots.
const CellSpacing = 120.0

// DefaultPlanetCount is the number of planets generated for a
// new game absent any other configuration.
const DefaultPlanetCount = 48

// MineralChance and NebulaChance are the probabilities that a
// generated planet carries the corresponding terrain flag (spec
// §3: `HasMinerals`, `InNebula`).
const (
	MineralChance = 0.2
	NebulaChance  = 0.12
)

// BaseEnergyGeneration and EnergyGenerationJitter bound the
// random base energy yield assigned to a planet.
const (
	BaseEnergyGeneration  = 20
	EnergyGenerationJitter = 60
)

// Generator :
// Lays out the initial board of a game from its `MapSeed`,
// grounded on the teacher's deterministic, rng-seeded universe
// bootstrapping idiom (`internal/game/universe.go`'s
// `GenerateName`), generalized here from 2D galaxy/system/slot
// coordinates to the free-form 3D map this server operates on.
//
// The `planets` proxy is used to persist the generated board.
//
// The `log` notifies information about the generation process.
type Generator struct {
	planets data.PlanetProxy
	log     logger.Logger
}

// NewGenerator :
// Creates a new galaxy generator wrapping the provided planet
// proxy.
//
// Returns the created generator.
func NewGenerator(planets data.PlanetProxy, log logger.Logger) Generator {
	return Generator{planets: planets, log: log}
}

// Generate :
// Deterministically lays out `planetCount` planets for a game
// from its `mapSeed` and persists them, satisfying the
// requirement (spec §1, §3) that the `planets` table be
// populated for a game even though the lobby/matchmaking flow
// that would normally trigger this is out of scope.
//
// The `gameID` identifies the game to populate.
//
// The `mapSeed` seeds the deterministic generation.
//
// The `planetCount` is the number of planets to generate; use
// `DefaultPlanetCount` absent a more specific requirement.
//
// Returns the generated planets along with any error.
func (g Generator) Generate(gameID string, mapSeed int64, planetCount int) ([]model.Planet, error) {
	if !model.ValidUUID(gameID) {
		return nil, model.ErrInvalidGameID
	}
	if planetCount <= 0 {
		planetCount = DefaultPlanetCount
	}

	rng := rand.New(rand.NewSource(mapSeed))

	slots := GridSize * GridSize * GridSize
	if planetCount > slots {
		planetCount = slots
	}

	picked := pickDistinctSlots(rng, slots, planetCount)

	planets := make([]model.Planet, 0, planetCount)

	for i, slot := range picked {
		x, y, z := slotToCoordinate(slot)

		p := model.Planet{
			ID:     uuid.New().String(),
			GameID: gameID,
			Name:   fmt.Sprintf("System-%03d", i+1),
			Pos: model.NewPosition(
				x+jitter(rng),
				y+jitter(rng),
				z+jitter(rng),
			),
			EnergyGeneration: BaseEnergyGeneration + rng.Intn(EnergyGenerationJitter),
			HasMinerals:      rng.Float64() < MineralChance,
			InNebula:         rng.Float64() < NebulaChance,
		}

		if err := g.planets.CreatePlanet(p); err != nil {
			g.log.Trace(logger.Error, "galaxy", fmt.Sprintf("could not persist generated planet %s for game %s (err: %v)", p.ID, gameID, err))
			continue
		}

		planets = append(planets, p)
	}

	g.log.Trace(logger.Info, "galaxy", fmt.Sprintf("generated %d planets for game %s from seed %d", len(planets), gameID, mapSeed))

	return planets, nil
}

// pickDistinctSlots :
// Samples `count` distinct slot indices out of `[0, slots)`
// using a partial Fisher-Yates shuffle, so that the generated
// board never places two planets on the same grid cell.
func pickDistinctSlots(rng *rand.Rand, slots int, count int) []int {
	all := make([]int, slots)
	for i := range all {
		all[i] = i
	}

	rng.Shuffle(slots, func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	return all[:count]
}

// slotToCoordinate :
// Converts a linear grid slot index into a 3D position centered
// on the origin, spaced by `CellSpacing`.
func slotToCoordinate(slot int) (float64, float64, float64) {
	x := slot % GridSize
	y := (slot / GridSize) % GridSize
	z := slot / (GridSize * GridSize)

	center := float64(GridSize-1) / 2.0

	return (float64(x) - center) * CellSpacing,
		(float64(y) - center) * CellSpacing,
		(float64(z) - center) * CellSpacing
}

// jitter :
// Returns a small random offset so that generated planets are
// not perfectly grid-aligned.
func jitter(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * CellSpacing * 0.3
}
