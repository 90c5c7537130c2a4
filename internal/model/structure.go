package model

import "fmt"

// StructureType :
// Enumerates the buildable structures a player or bot can place
// on an owned planet. Unlike the building/technology tree this
// server's teacher implements, the territorial conquest game
// has only a handful of structure kinds, each with a narrow,
// mechanically relevant effect (spec §3, §4.3, §4.5).
type StructureType string

// Defines the possible structure types.
const (
	TradeStation    StructureType = "trade_station"
	MiningStation   StructureType = "mining_station"
	ColonyStation   StructureType = "colony_station"
	DefensePlatform StructureType = "defense_platform"
	MissileBattery  StructureType = "missile_battery"
	PointDefense    StructureType = "point_defense"
)

// ValidStructureTypes lists every accepted value for
// `Structure.Type`, mirroring the check constraint of spec §6.
var ValidStructureTypes = map[StructureType]bool{
	TradeStation:    true,
	MiningStation:   true,
	ColonyStation:   true,
	DefensePlatform: true,
	MissileBattery:  true,
	PointDefense:    true,
}

// MiningStationCost is the credit cost of a mining station, used
// by the bot planner's build priority (spec §4.5).
const MiningStationCost = 50000

// Structure :
// Defines a single structure built on a planet. Inactive
// structures (`IsActive == false`) are ignored by every phase
// of the tick processor.
//
// The `ID` uniquely identifies the structure.
//
// The `GameID` is the owning game.
//
// The `SystemID` is the planet the structure is built on.
//
// The `OwnerID` is the player who built it.
//
// The `Type` classifies the structure, see `StructureType`.
//
// The `Level` only has meaning for upgradable structures
// (currently only `ColonyStation`, which raises the garrison
// cap by `TroopsPerColonyLevel` per level); must be positive
// per spec §6.
//
// The `Health` is a percentage in [0, 100]; at 0 the structure
// is effectively destroyed but the row is kept (append/soft
// state semantics matching the rest of this store).
//
// The `IsActive` gates whether this structure is considered by
// any tick phase.
type Structure struct {
	ID       string        `json:"id"`
	GameID   string        `json:"gameId"`
	SystemID string        `json:"systemId"`
	OwnerID  string        `json:"ownerId"`
	Type     StructureType `json:"structureType"`
	Level    int           `json:"level"`
	Health   float64       `json:"health"`
	IsActive bool          `json:"isActive"`
}

// ErrInvalidStructureType : Indicates that a structure was
// built (or loaded) with a type outside of
// `ValidStructureTypes`.
var ErrInvalidStructureType = fmt.Errorf("invalid structure type")

// ErrInvalidStructureLevel : Indicates that a structure's level
// is not strictly positive, violating the check constraint of
// spec §6.
var ErrInvalidStructureLevel = fmt.Errorf("invalid structure level")

// Valid :
// Determines whether this structure's type, level and health
// satisfy the check constraints of spec §6.
func (s Structure) Valid() error {
	if !ValidStructureTypes[s.Type] {
		return ErrInvalidStructureType
	}
	if s.Level <= 0 {
		return ErrInvalidStructureLevel
	}
	if s.Health < 0 || s.Health > 100 {
		return fmt.Errorf("invalid structure health %v", s.Health)
	}

	return nil
}

// Active :
// Returns `true` if this structure should be considered by the
// tick processor, i.e. the value of its `IsActive` flag.
func (s Structure) Active() bool {
	return s.IsActive
}
