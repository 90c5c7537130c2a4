package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// PlanetProxy :
// Intended as a wrapper to access properties of planets and
// persist the ownership/troop mutations performed by the growth
// and combat phases of the tick processor.
type PlanetProxy struct {
	commonProxy
}

// NewPlanetProxy :
// Create a new proxy allowing to serve the planets defined in
// the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to planets.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewPlanetProxy(dbase db.Proxy, log logger.Logger) PlanetProxy {
	return PlanetProxy{newCommonProxy(dbase, log)}
}

// Planets :
// Return a list of planets registered so far matching the input
// filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the planets.
//
// Returns the list of planets matching the filters along with
// any error.
func (p PlanetProxy) Planets(filters []db.Filter) ([]model.Planet, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"game_id",
			"name",
			"pos_x",
			"pos_y",
			"pos_z",
			"owner_id",
			"troop_count",
			"energy_generation",
			"has_minerals",
			"in_nebula",
		},
		Table:   "planets",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query planets (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query planets (err: %v)", res.Err)
	}

	planets := make([]model.Planet, 0)

	for res.Next() {
		var pl model.Planet
		var ownerID *string

		err := res.Scan(
			&pl.ID,
			&pl.GameID,
			&pl.Name,
			&pl.Pos.X,
			&pl.Pos.Y,
			&pl.Pos.Z,
			&ownerID,
			&pl.TroopCount,
			&pl.EnergyGeneration,
			&pl.HasMinerals,
			&pl.InNebula,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for planet (err: %v)", err))
			continue
		}

		if ownerID != nil {
			pl.OwnerID = *ownerID
		}

		planets = append(planets, pl)
	}

	return planets, nil
}

// Planet :
// Convenience wrapper to fetch a single planet by its id.
//
// The `id` defines the identifier of the planet to fetch.
//
// Returns the planet matching this id along with any error.
func (p PlanetProxy) Planet(id string) (model.Planet, error) {
	planets, err := p.Planets([]db.Filter{
		{Key: "id", Values: []interface{}{id}},
	})

	if err != nil {
		return model.Planet{}, err
	}
	if len(planets) == 0 {
		return model.Planet{}, fmt.Errorf("no planet found with id \"%s\"", id)
	}

	return planets[0], nil
}

// ForGame :
// Convenience wrapper fetching every planet of a game, as needed
// by most phases of the tick processor which operate on the
// whole board at once.
//
// The `gameID` identifies the game whose planets should be
// fetched.
//
// Returns the planets along with any error.
func (p PlanetProxy) ForGame(gameID string) ([]model.Planet, error) {
	return p.Planets([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
	})
}

// OwnedBy :
// Convenience wrapper fetching the planets currently owned by a
// given player within a game, used by the elimination and
// victory phases to count the board share of each participant.
//
// The `gameID` identifies the game to restrict the search to.
//
// The `ownerID` identifies the owning player.
//
// Returns the planets along with any error.
func (p PlanetProxy) OwnedBy(gameID string, ownerID string) ([]model.Planet, error) {
	return p.Planets([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
		{Key: "owner_id", Values: []interface{}{ownerID}},
	})
}

// CreatePlanet :
// Used to request the insertion of a new planet through the
// `create_planet` stored procedure, as issued by the galaxy
// generator when bootstrapping a game's board.
//
// The `pl` defines the planet to create.
//
// Returns any error occurred while performing the insertion.
func (p PlanetProxy) CreatePlanet(pl model.Planet) error {
	return p.dbase.InsertToDB(db.InsertReq{
		Script: "create_planet",
		Args:   []interface{}{pl},
	})
}

// UpdateOwnershipAndTroops :
// Persists a change of ownership and/or troop count for a
// planet, as performed by the combat resolution phase (spec
// §4.3 Phase 3) and the growth phase (spec §4.3 Phase 2). The
// write is serialized per planet so that a concurrent capture
// and a concurrent growth tick can never interleave on the same
// row (spec §5).
//
// The `planetID` identifies the planet to update.
//
// The `ownerID` is the new owner, empty for a planet that just
// reverted to neutral.
//
// The `troopCount` is the new garrison size.
//
// Returns any error occurring during the update.
func (p PlanetProxy) UpdateOwnershipAndTroops(planetID string, ownerID string, troopCount float64) error {
	if !model.ValidUUID(planetID) {
		return model.ErrInvalidPlanetID
	}

	return p.performWithLock(planetID, func() error {
		return p.dbase.InsertToDB(db.InsertReq{
			Script:     "update_planet_ownership",
			Args:       []interface{}{planetID, ownerID, troopCount},
			SkipReturn: true,
		})
	})
}
