package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// StructureProxy :
// Intended as a wrapper to access properties of structures built
// on planets, consumed by the growth phase (colony stations
// raise the garrison cap) and the bot planner's build priority
// (spec §4.5).
type StructureProxy struct {
	commonProxy
}

// NewStructureProxy :
// Create a new proxy allowing to serve the structures defined
// in the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to structures.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewStructureProxy(dbase db.Proxy, log logger.Logger) StructureProxy {
	return StructureProxy{newCommonProxy(dbase, log)}
}

// Structures :
// Return a list of structures registered so far matching the
// input filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the
// structures.
//
// Returns the list of structures matching the filters along
// with any error.
func (p StructureProxy) Structures(filters []db.Filter) ([]model.Structure, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"game_id",
			"system_id",
			"owner_id",
			"structure_type",
			"level",
			"health",
			"is_active",
		},
		Table:   "structures",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query structures (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query structures (err: %v)", res.Err)
	}

	structures := make([]model.Structure, 0)

	for res.Next() {
		var s model.Structure

		err := res.Scan(
			&s.ID,
			&s.GameID,
			&s.SystemID,
			&s.OwnerID,
			&s.Type,
			&s.Level,
			&s.Health,
			&s.IsActive,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for structure (err: %v)", err))
			continue
		}

		structures = append(structures, s)
	}

	return structures, nil
}

// ForPlanet :
// Convenience wrapper fetching the active structures built on a
// given planet, used by the growth phase to compute the
// effective garrison cap.
//
// The `planetID` identifies the planet whose structures should
// be fetched.
//
// Returns the structures along with any error.
func (p StructureProxy) ForPlanet(planetID string) ([]model.Structure, error) {
	return p.Structures([]db.Filter{
		{Key: "system_id", Values: []interface{}{planetID}},
		{Key: "is_active", Values: []interface{}{true}},
	})
}

// ColonyStationLevels :
// Sums the levels of every active colony station built on a
// planet, the input expected by `model.EffectiveMaxTroops`.
//
// The `planetID` identifies the planet to inspect.
//
// Returns the summed level along with any error.
func (p StructureProxy) ColonyStationLevels(planetID string) (int, error) {
	structures, err := p.ForPlanet(planetID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, s := range structures {
		if s.Type == model.ColonyStation {
			total += s.Level
		}
	}

	return total, nil
}

// OwnedBy :
// Convenience wrapper fetching the structures owned by a given
// player within a game, used by the finalizer to compute the
// `StructuresBuilt` stat (spec §4.6).
//
// The `gameID` identifies the game to restrict the search to.
//
// The `ownerID` identifies the owning player.
//
// Returns the structures along with any error.
func (p StructureProxy) OwnedBy(gameID string, ownerID string) ([]model.Structure, error) {
	return p.Structures([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
		{Key: "owner_id", Values: []interface{}{ownerID}},
	})
}

// CreateStructure :
// Used to request the insertion of a new structure through the
// `create_structure` stored procedure, as issued by the bot
// planner's build decisions (spec §4.5).
//
// The `s` defines the structure to create.
//
// Returns any error occurred while performing the insertion.
func (p StructureProxy) CreateStructure(s model.Structure) error {
	if err := s.Valid(); err != nil {
		return err
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script: "create_structure",
		Args:   []interface{}{s},
	})
}
