package model

import (
	"math"
	"time"
)

// ExpansionTier :
// Classifies the territory expansion phase of a planet based
// on how long it has continuously held territory, see spec
// §4.3 Phase 4.
type ExpansionTier int

// Defines the possible expansion tiers.
const (
	TierOne   ExpansionTier = 1
	TierTwo   ExpansionTier = 2
	TierThree ExpansionTier = 3
)

// TierParams bundles the radius and sectors-per-wave values
// associated with an expansion tier (spec §4.3 Phase 4).
type TierParams struct {
	Radius         float64
	SectorsPerWave int
}

// ParamsFor :
// Returns the radius and sectors-per-wave for this tier.
func (t ExpansionTier) ParamsFor() TierParams {
	switch t {
	case TierOne:
		return TierParams{Radius: 20, SectorsPerWave: 8}
	case TierTwo:
		return TierParams{Radius: 35, SectorsPerWave: 16}
	default:
		return TierParams{Radius: 50, SectorsPerWave: 24}
	}
}

// TierFor :
// Classifies an ownership age (expressed in ticks) into an
// expansion tier per spec §4.3 Phase 4: tier 1 up to 50 ticks,
// tier 2 from 51 to 150, tier 3 beyond.
func TierFor(ownershipAgeTicks float64) ExpansionTier {
	switch {
	case ownershipAgeTicks <= 50:
		return TierOne
	case ownershipAgeTicks <= 150:
		return TierTwo
	default:
		return TierThree
	}
}

// TerritorySector :
// Defines a 10-unit cubelet of painted territory, the visual
// scoring unit of the game. Sectors are append-only: they are
// never deleted, only reassigned to a new owner when their
// controlling planet is captured (spec §3).
//
// The `ID` uniquely identifies the sector.
//
// The `GameID` is the owning game.
//
// The `Pos` locates the sector in the 3D map.
//
// The `OwnerID` mirrors the owner of `ControlledByPlanetID` and
// must be kept in sync within one tick of a capture (invariant
// 6 of spec §3).
//
// The `ControlledByPlanetID` is the planet whose expansion wave
// created this sector.
//
// The `CapturedAt` is refreshed whenever the controlling
// planet's ownership changes hands.
//
// The `ExpansionTier` records which tier was active when this
// sector was created.
//
// The `ExpansionWave` is the generation index of the breadth-
// first frontier expansion (spec glossary: "Wave").
//
// The `DistanceFromPlanet` is the Euclidean distance from this
// sector to its controlling planet at creation time.
type TerritorySector struct {
	ID                    string    `json:"id"`
	GameID                string    `json:"gameId"`
	Pos                   Position  `json:"position"`
	OwnerID               string    `json:"ownerId,omitempty"`
	ControlledByPlanetID  string    `json:"controlledByPlanetId"`
	CapturedAt            time.Time `json:"capturedAt"`
	ExpansionTier         ExpansionTier `json:"expansionTier"`
	ExpansionWave         int       `json:"expansionWave"`
	DistanceFromPlanet    float64   `json:"distanceFromPlanet"`
}

// ExpansionGuardWindow is the minimum time a planet must have
// held its oldest sector before a new expansion wave can be
// attempted (spec §4.3 Phase 4 "Guard").
const ExpansionGuardWindow = 1000 * time.Millisecond

// MaxExpansionRadiusBudget bounds total territory growth
// irrespective of tier (spec §4.3 Phase 4 "Radius cap"):
// expansion stops once `√(|S_P|+1) · 10 > 200`.
const MaxExpansionRadiusBudget = 200

// DensityCapRadius and DensityCapCount implement the density
// cap of spec §4.3 Phase 4 candidate rule 2: a candidate sector
// is rejected if 16 or more existing sectors already sit within
// this radius of it.
const (
	DensityCapRadius = 30
	DensityCapCount  = 16
)

// CollisionCapRadius implements the collision cap of spec §4.3
// Phase 4 candidate rule 3: a candidate is rejected if any
// existing or already-queued sector sits within this radius.
const CollisionCapRadius = 10

// CandidateStepDistance is the distance a new candidate sector
// is generated at from its parent edge sector, before the 1.5x
// multiplier applied in spec §4.3 Phase 4 ("from each edge
// sector, at 8 azimuths ... generate candidate (x+1.5·10·cosθ, ...")
const CandidateStepDistance = 10.0

// CandidateStepMultiplier is the 1.5 factor applied to
// `CandidateStepDistance` when generating candidates.
const CandidateStepMultiplier = 1.5

// ExpansionAzimuthCount is the number of azimuths sampled
// around each edge sector (spec §4.3 Phase 4: "at 8 azimuths").
const ExpansionAzimuthCount = 8

// RadiusBudgetExceeded :
// Implements the radius cap guard of spec §4.3 Phase 4: once a
// planet's territory grows past this budget, no more sectors
// are generated for it on this tick (or any later one on the
// same ownership streak).
//
// The `currentSectorCount` defines how many sectors this planet
// currently controls.
func RadiusBudgetExceeded(currentSectorCount int) bool {
	budget := math.Sqrt(float64(currentSectorCount+1)) * 10
	return budget > MaxExpansionRadiusBudget
}
