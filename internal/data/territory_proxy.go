package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// TerritoryProxy :
// Intended as a wrapper to access the append-only territory
// sectors painted by the expansion phase of the tick processor
// (spec §4.3 Phase 4) and reassigned by the capture side effects
// of the combat phase.
type TerritoryProxy struct {
	commonProxy
}

// NewTerritoryProxy :
// Create a new proxy allowing to serve the territory sectors
// defined in the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to territory sectors.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewTerritoryProxy(dbase db.Proxy, log logger.Logger) TerritoryProxy {
	return TerritoryProxy{newCommonProxy(dbase, log)}
}

// Sectors :
// Return a list of territory sectors registered so far matching
// the input filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the sectors.
//
// Returns the list of sectors matching the filters along with
// any error.
func (p TerritoryProxy) Sectors(filters []db.Filter) ([]model.TerritorySector, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"game_id",
			"pos_x",
			"pos_y",
			"pos_z",
			"owner_id",
			"controlled_by_planet_id",
			"captured_at",
			"expansion_tier",
			"expansion_wave",
			"distance_from_planet",
		},
		Table:   "territory_sectors",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query territory sectors (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query territory sectors (err: %v)", res.Err)
	}

	sectors := make([]model.TerritorySector, 0)

	for res.Next() {
		var s model.TerritorySector
		var ownerID *string

		err := res.Scan(
			&s.ID,
			&s.GameID,
			&s.Pos.X,
			&s.Pos.Y,
			&s.Pos.Z,
			&ownerID,
			&s.ControlledByPlanetID,
			&s.CapturedAt,
			&s.ExpansionTier,
			&s.ExpansionWave,
			&s.DistanceFromPlanet,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for territory sector (err: %v)", err))
			continue
		}

		if ownerID != nil {
			s.OwnerID = *ownerID
		}

		sectors = append(sectors, s)
	}

	return sectors, nil
}

// ForGame :
// Convenience wrapper fetching every sector of a game.
//
// The `gameID` identifies the game whose sectors should be
// fetched.
//
// Returns the sectors along with any error.
func (p TerritoryProxy) ForGame(gameID string) ([]model.TerritorySector, error) {
	return p.Sectors([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
	})
}

// ForPlanet :
// Convenience wrapper fetching the sectors currently controlled
// by a given planet, used by the expansion phase to evaluate the
// radius budget and the elimination/victory phases to evaluate
// territory percentage.
//
// The `planetID` identifies the controlling planet.
//
// Returns the sectors along with any error.
func (p TerritoryProxy) ForPlanet(planetID string) ([]model.TerritorySector, error) {
	return p.Sectors([]db.Filter{
		{Key: "controlled_by_planet_id", Values: []interface{}{planetID}},
	})
}

// CreateSector :
// Used to request the insertion of a new territory sector
// through the `create_territory_sector` stored procedure, as
// performed by the expansion phase for each sector of a wave.
//
// The `s` defines the sector to create.
//
// Returns any error occurred while performing the insertion.
func (p TerritoryProxy) CreateSector(s model.TerritorySector) error {
	return p.dbase.InsertToDB(db.InsertReq{
		Script: "create_territory_sector",
		Args:   []interface{}{s},
	})
}

// ReassignForPlanet :
// Reassigns every sector controlled by a planet to a new owner,
// used to keep invariant 6 of spec §3 (a sector's `owner_id`
// tracks its controlling planet's owner within one tick) when a
// planet is captured during the combat phase.
//
// The `planetID` identifies the controlling planet whose sectors
// should be reassigned.
//
// The `ownerID` is the new owner to stamp on every sector.
//
// Returns any error occurring during the update.
func (p TerritoryProxy) ReassignForPlanet(planetID string, ownerID string) error {
	if !model.ValidUUID(planetID) {
		return model.ErrInvalidPlanetID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "reassign_territory_for_planet",
		Args:       []interface{}{planetID, ownerID},
		SkipReturn: true,
	})
}
