package model

import (
	"fmt"
	"time"
)

// BotDifficulty :
// Describes how aggressively a bot-controlled player plays,
// see spec §4.5. Each difficulty scales offensive and build
// probabilities by a fixed multiplier.
type BotDifficulty string

// Defines the possible bot difficulties and their epsilon
// multiplier applied to every probability/strength roll of
// the bot planner.
const (
	Easy   BotDifficulty = "easy"
	Normal BotDifficulty = "normal"
	Hard   BotDifficulty = "hard"
)

// Epsilon :
// Returns the scaling factor associated with this difficulty.
// Unknown difficulties default to `Normal`'s `0.75`.
func (d BotDifficulty) Epsilon() float64 {
	switch d {
	case Easy:
		return 0.5
	case Hard:
		return 1.0
	default:
		return 0.75
	}
}

// Resource clamps, see spec §3 invariant 2.
const (
	MaxCredits        = 1_000_000
	MaxEnergy         = 100_000
	MaxMinerals       = 100_000
	MaxResearchPoints = 1_000
)

// Player :
// Defines a player shared across games. Resources are mutated
// by the resource-generation phase of the tick processor and
// are always clamped to their respective maxima.
//
// The `ID` uniquely identifies the player.
//
// The `Username` is a display name, irrelevant to authoritative
// logic but kept for completeness of the persisted row.
//
// The `Credits`, `Energy`, `Minerals` and `ResearchPoints` are
// the player's stockpiled resources.
//
// The `IsBot` marks whether this player is driven by the bot
// planner (spec §4.5) rather than by a human client.
//
// The `BotDifficulty` only applies when `IsBot` is true.
type Player struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Credits        int           `json:"credits"`
	Energy         int           `json:"energy"`
	Minerals       int           `json:"minerals"`
	ResearchPoints int           `json:"researchPoints"`
	IsBot          bool          `json:"isBot"`
	BotDifficulty  BotDifficulty `json:"botDifficulty,omitempty"`
}

// ClampResources :
// Re-establishes invariant 2 of spec §3: every resource stays
// within [0, max]. Called after every mutation of a player's
// resources so that repeated application within a tick boundary
// stays safe (see spec §5).
func (p *Player) ClampResources() {
	p.Credits = clampInt(p.Credits, 0, MaxCredits)
	p.Energy = clampInt(p.Energy, 0, MaxEnergy)
	p.Minerals = clampInt(p.Minerals, 0, MaxMinerals)
	p.ResearchPoints = clampInt(p.ResearchPoints, 0, MaxResearchPoints)
}

// ErrInvalidPlayerID : Indicates that a player identifier was
// not a valid UUID.
var ErrInvalidPlayerID = fmt.Errorf("invalid player identifier")

// NewPlayer :
// Creates a new player with zeroed resources.
//
// Returns the created player along with any validation error.
func NewPlayer(id string, username string) (Player, error) {
	if !ValidUUID(id) {
		return Player{}, ErrInvalidPlayerID
	}

	return Player{
		ID:       id,
		Username: username,
	}, nil
}

// GamePlayer :
// Defines the row linking a `Player` to a `Game` they are
// participating in. Most of the per-game bookkeeping (presence,
// elimination, placement) lives here rather than on the shared
// `Player` record.
//
// The `GameID` and `PlayerID` together form the unique key.
//
// The `EmpireColor` is a cosmetic identifier used by the client
// renderer, carried here because it is assigned once and must
// remain stable for the game's duration.
//
// The `PlacementOrder` determines seating order; the host is
// always the participant with the lowest `PlacementOrder`
// (spec §3, §4.4).
//
// The `IsReady` tracks the lobby ready-check, which this repo
// does not implement the flow for (spec §1 Non-goals) but whose
// column still exists because `GamePlayer` rows are shared with
// the waiting-room UI.
//
// The `IsAlive` and `IsEliminated` track in-game survival; an
// eliminated player is never alive.
//
// The `EliminatedAt` records when elimination happened.
//
// The `IsActive` and `LastSeen` implement the presence model
// consumed by §4.4.
//
// The `FinalPlacement` and `FinalTerritoryPercentage` are set
// once by the finalizer (§4.6).
type GamePlayer struct {
	GameID                   string     `json:"gameId"`
	PlayerID                 string     `json:"playerId"`
	EmpireColor              string     `json:"empireColor"`
	PlacementOrder           int        `json:"placementOrder"`
	IsReady                  bool       `json:"isReady"`
	IsAlive                  bool       `json:"isAlive"`
	IsEliminated             bool       `json:"isEliminated"`
	EliminatedAt             *time.Time `json:"eliminatedAt,omitempty"`
	IsActive                 bool       `json:"isActive"`
	LastSeen                 time.Time  `json:"lastSeen"`
	FinalPlacement           *int       `json:"finalPlacement,omitempty"`
	FinalTerritoryPercentage *float64   `json:"finalTerritoryPercentage,omitempty"`
}

// ActiveWindow is the duration within which a participant with
// `IsActive` set counts as present, see spec §4.4.
const ActiveWindow = 60 * time.Second

// AbandonmentWindow is the duration of universal inactivity
// after which a game is marked abandoned, see spec §4.4.
const AbandonmentWindow = 5 * time.Minute

// EliminationGracePeriod is the time after `StartedAt` before
// the elimination phase (§4.5) is allowed to act.
const EliminationGracePeriod = 30 * time.Second

// IsPresent :
// Determines whether this participant currently counts as
// active per the `active_window` rule of spec §4.4.
//
// The `now` defines the instant to evaluate presence against.
func (gp GamePlayer) IsPresent(now time.Time) bool {
	return gp.IsActive && !gp.LastSeen.Before(now.Add(-ActiveWindow))
}

// Eliminate :
// Marks this participant as eliminated at the given instant.
func (gp *GamePlayer) Eliminate(now time.Time) {
	gp.IsEliminated = true
	gp.IsAlive = false
	t := now
	gp.EliminatedAt = &t
}
