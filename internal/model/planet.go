package model

import (
	"fmt"
	"math"
)

// BaseMaxTroops is the garrison cap of a planet with no colony
// stations built on it (spec glossary: "Effective max troops").
const BaseMaxTroops = 500

// TroopsPerColonyLevel is how much a single level of a colony
// station raises the effective max troop count.
const TroopsPerColonyLevel = 100

// Terrain :
// Classifies a planet for the purpose of combat modifiers
// (spec §4.3 step 1).
type Terrain string

// Defines the possible terrain classifications.
const (
	TerrainSpace   Terrain = "space"
	TerrainAsteroid Terrain = "asteroid"
	TerrainNebula  Terrain = "nebula"
)

// Planet :
// Defines an owned or neutral node in the 3D map, the unit of
// ownership for the whole game. A planet's troop count and
// owner are mutated by the combat and growth phases; planets
// are never deleted while their parent game is in progress.
//
// The `ID` uniquely identifies the planet.
//
// The `GameID` is the owning game.
//
// The `Name` is a display name.
//
// The `Pos` locates the planet in the 3D map.
//
// The `OwnerID` is empty for a neutral planet.
//
// The `TroopCount` is the current garrison size; always within
// [0, EffectiveMaxTroops(structures)].
//
// The `EnergyGeneration` is a base value folded into the
// resource-generation phase (spec §4.3 Phase 8).
//
// The `HasMinerals` and `InNebula` classify the terrain, which
// feeds both combat modifiers and territory expansion cadence.
type Planet struct {
	ID               string   `json:"id"`
	GameID           string   `json:"gameId"`
	Name             string   `json:"name"`
	Pos              Position `json:"position"`
	OwnerID          string   `json:"ownerId,omitempty"`
	TroopCount       float64  `json:"troopCount"`
	EnergyGeneration int      `json:"energyGeneration"`
	HasMinerals      bool     `json:"hasMinerals"`
	InNebula         bool     `json:"inNebula"`
}

// ErrInvalidPlanetID : Indicates that a planet identifier was
// not a valid UUID.
var ErrInvalidPlanetID = fmt.Errorf("invalid planet identifier")

// Owned :
// Returns `true` if the planet currently has an owner.
func (p Planet) Owned() bool {
	return p.OwnerID != ""
}

// Terrain :
// Classifies the planet's terrain as described in spec §4.3
// step 1: nebula takes priority over asteroid, which takes
// priority over plain space.
func (p Planet) Terrain() Terrain {
	switch {
	case p.InNebula:
		return TerrainNebula
	case p.HasMinerals:
		return TerrainAsteroid
	default:
		return TerrainSpace
	}
}

// EffectiveMaxTroops :
// Computes the garrison cap for this planet given the total
// colony station levels built on it (spec glossary, invariant
// 1 of §3): `500 + Σ(colony_station.level · 100)`.
//
// The `colonyStationLevels` defines the sum of levels of every
// active colony station on this planet.
func EffectiveMaxTroops(colonyStationLevels int) float64 {
	return float64(BaseMaxTroops + colonyStationLevels*TroopsPerColonyLevel)
}

// GrowthAt :
// Computes the troop growth for a single tick given the
// current troop count and the effective max, following the
// S-curve of spec §4.3 Phase 2:
//
//	growth = (10 + troop_count^0.73 / 4) · max(0, 1 - troop_count/effective_max)
//
// The clamp against `effectiveMax` is applied by the caller via
// `min(effective_max, floor(troop_count + growth))`, not by
// this formula itself. The saturation factor is clamped at 0,
// so the growth is exactly zero at or above the cap; the
// caller's clamp still bounds the result when a tick's growth
// would carry the count past the cap.
func GrowthAt(troopCount float64, effectiveMax float64) float64 {
	if effectiveMax <= 0 {
		return 0
	}

	saturation := 1 - troopCount/effectiveMax
	if saturation < 0 {
		saturation = 0
	}

	return (10 + math.Pow(troopCount, 0.73)/4) * saturation
}

// ApplyGrowth :
// Advances this planet's troop count by one tick of growth,
// re-establishing invariant 1 of spec §3 by clamping the result
// to `effectiveMax`. Does nothing if the planet is already at
// or above its cap.
//
// The `effectiveMax` defines the current garrison cap for this
// planet (see `EffectiveMaxTroops`).
func (p *Planet) ApplyGrowth(effectiveMax float64) {
	if p.TroopCount >= effectiveMax {
		return
	}

	growth := GrowthAt(p.TroopCount, effectiveMax)
	next := math.Floor(p.TroopCount + growth)

	if next > effectiveMax {
		next = effectiveMax
	}

	p.TroopCount = next
}
