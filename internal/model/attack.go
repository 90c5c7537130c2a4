package model

import (
	"fmt"
	"time"
)

// AttackStatus :
// Describes the lifecycle of an in-flight attack. An attack is
// created by a send-troops command in state `InTransit`; the
// tick processor resolves it exactly once it arrives, taking it
// to `Retreating` or `Arrived` (spec §3, §5).
type AttackStatus string

// Defines the possible statuses for an attack.
const (
	InTransit  AttackStatus = "in_transit"
	Retreating AttackStatus = "retreating"
	Arrived    AttackStatus = "arrived"
)

// Attack :
// Defines an in-flight troop movement between two planets
// owned (at launch time) by `AttackerID`. Attacks are resolved
// by the combat phase of the tick processor (spec §4.3 Phase 3)
// once `ArrivalAt` has passed.
//
// The `ID` uniquely identifies the attack.
//
// The `GameID` is the owning game.
//
// The `AttackerID` is the player who launched the attack.
//
// The `SourcePlanetID` and `TargetPlanetID` identify the two
// planets involved.
//
// The `Troops` is the garrison committed to this attack. It is
// decremented from the source planet at launch time (by the
// bot planner for bot attacks) and is never renegotiated.
//
// The `ArrivalAt` is the instant the tick processor is allowed
// to resolve this attack; arrivals are processed in a stable
// order (`arrival_at` ascending, then `id` ascending) so that
// same-tick captures chain deterministically (spec §4.3).
//
// The `Status` tracks the resolution lifecycle.
type Attack struct {
	ID             string       `json:"id"`
	GameID         string       `json:"gameId"`
	AttackerID     string       `json:"attackerId"`
	SourcePlanetID string       `json:"sourcePlanetId"`
	TargetPlanetID string       `json:"targetPlanetId"`
	Troops         float64      `json:"troops"`
	ArrivalAt      time.Time    `json:"arrivalAt"`
	Status         AttackStatus `json:"status"`
}

// ErrInvalidAttackID : Indicates that an attack identifier was
// not a valid UUID.
var ErrInvalidAttackID = fmt.Errorf("invalid attack identifier")

// HasArrived :
// Determines whether this attack is due for resolution at the
// given instant: it must still be `InTransit` and its
// `ArrivalAt` must not be in the future.
//
// The `now` defines the instant to test against.
func (a Attack) HasArrived(now time.Time) bool {
	return a.Status == InTransit && !a.ArrivalAt.After(now)
}

// RetreatRatio is the troop ratio below which an attack
// automatically retreats rather than engaging (spec §4.3 step
// 3): `attack.troops < defender.troops · RetreatRatio`.
const RetreatRatio = 0.3

// RetreatReturnRatio is the fraction of the retreating troops
// that makes it back to the source planet (spec §4.3 step 3).
const RetreatReturnRatio = 0.8

// ShouldRetreat :
// Implements the retreat check of spec §4.3 step 3: an attack
// retreats instead of engaging when it is too weak relative to
// the defending garrison.
//
// The `defenderTroops` defines the troop count of the planet
// being attacked.
func (a Attack) ShouldRetreat(defenderTroops float64) bool {
	return a.Troops < defenderTroops*RetreatRatio
}

// AttackOrder :
// Implements the stable processing order required by spec §4.3:
// `arrival_at` ascending, then `id` ascending. Intended to be
// used as a `sort.Slice` less-function.
func AttackOrder(attacks []Attack) func(i, j int) bool {
	return func(i, j int) bool {
		if !attacks[i].ArrivalAt.Equal(attacks[j].ArrivalAt) {
			return attacks[i].ArrivalAt.Before(attacks[j].ArrivalAt)
		}
		return attacks[i].ID < attacks[j].ID
	}
}
