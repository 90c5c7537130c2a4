package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// AttackProxy :
// Intended as a wrapper to access properties of in-flight
// attacks and persist the resolution performed by the combat
// phase of the tick processor (spec §4.3 Phase 3).
type AttackProxy struct {
	commonProxy
}

// NewAttackProxy :
// Create a new proxy allowing to serve the attacks defined in
// the DB.
//
// The `dbase` represents the main DB proxy to use to fetch data
// related to attacks.
//
// The `log` will be used to notify information about the
// activity of this proxy.
//
// Returns the created proxy.
func NewAttackProxy(dbase db.Proxy, log logger.Logger) AttackProxy {
	return AttackProxy{newCommonProxy(dbase, log)}
}

// Attacks :
// Return a list of attacks registered so far matching the input
// filters.
//
// The `filters` define some filtering properties that can be
// applied to the SQL query to only select part of the attacks.
//
// Returns the list of attacks matching the filters along with
// any error.
func (p AttackProxy) Attacks(filters []db.Filter) ([]model.Attack, error) {
	query := db.QueryDesc{
		Props: []string{
			"id",
			"game_id",
			"attacker_id",
			"source_planet_id",
			"target_planet_id",
			"troops",
			"arrival_at",
			"status",
		},
		Table:   "attacks",
		Filters: filters,
	}

	res, err := p.dbase.FetchFromDB(query)
	defer res.Close()

	if err != nil {
		return nil, fmt.Errorf("could not query attacks (err: %v)", err)
	}
	if res.Err != nil {
		return nil, fmt.Errorf("could not query attacks (err: %v)", res.Err)
	}

	attacks := make([]model.Attack, 0)

	for res.Next() {
		var a model.Attack

		err := res.Scan(
			&a.ID,
			&a.GameID,
			&a.AttackerID,
			&a.SourcePlanetID,
			&a.TargetPlanetID,
			&a.Troops,
			&a.ArrivalAt,
			&a.Status,
		)

		if err != nil {
			p.log.Trace(logger.Error, "data", fmt.Sprintf("could not retrieve info for attack (err: %v)", err))
			continue
		}

		attacks = append(attacks, a)
	}

	return attacks, nil
}

// PendingArrivals :
// Fetches every `in_transit` attack of the game, whatever its
// `arrival_at`. The caller keeps the ones that have arrived and
// orders them the way the combat phase requires (spec §4.3:
// `arrival_at` ascending, then `id` ascending, via
// `model.AttackOrder`).
//
// The `gameID` identifies the game to restrict the search to.
//
// Returns the attacks along with any error.
func (p AttackProxy) PendingArrivals(gameID string) ([]model.Attack, error) {
	return p.Attacks([]db.Filter{
		{Key: "game_id", Values: []interface{}{gameID}},
		{Key: "status", Values: []interface{}{model.InTransit}},
	})
}

// CreateAttack :
// Used to request the insertion of a new attack through the
// `create_attack` stored procedure.
//
// The `a` defines the attack to create.
//
// Returns any error occurred while performing the insertion.
func (p AttackProxy) CreateAttack(a model.Attack) error {
	return p.dbase.InsertToDB(db.InsertReq{
		Script: "create_attack",
		Args:   []interface{}{a},
	})
}

// Resolve :
// Persists the resolution of an attack: its terminal status
// (`retreating` or `arrived`) following the combat resolution
// of spec §4.3 Phase 3. Attacks are append-only once resolved:
// this is intended to be called exactly once per attack.
//
// The `attackID` identifies the attack to resolve.
//
// The `status` is the terminal status reached.
//
// Returns any error occurring during the update.
func (p AttackProxy) Resolve(attackID string, status model.AttackStatus) error {
	if !model.ValidUUID(attackID) {
		return model.ErrInvalidAttackID
	}

	return p.dbase.InsertToDB(db.InsertReq{
		Script:     "resolve_attack",
		Args:       []interface{}{attackID, status},
		SkipReturn: true,
	})
}
