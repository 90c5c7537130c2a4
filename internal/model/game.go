package model

import (
	"fmt"
	"time"
)

// Status :
// Describes the lifecycle state of a game. A game starts as
// `Waiting` while players ready up, is moved to `Active` by
// the host, and is moved to `Completed` by the tick processor
// either through a victory or through abandonment. `Completed`
// is a sink: a `Completed` game never leaves that status.
type Status string

// Defines the possible statuses for a game.
const (
	Waiting   Status = "waiting"
	Active    Status = "active"
	Completed Status = "completed"
)

// VictoryType :
// Describes how a game was won (or terminated).
type VictoryType string

// Defines the possible victory types for a game.
const (
	PlanetControl   VictoryType = "planet_control"
	TerritoryControl VictoryType = "territory_control"
	Abandoned       VictoryType = "abandoned"
)

// DefaultVictoryCondition is the percentage of planets or
// territory a player must control to qualify for victory
// absent any other configuration.
const DefaultVictoryCondition = 80

// DefaultTickRateMs is the default interval between two
// ticks for a game, in milliseconds.
const DefaultTickRateMs = 100

// MinTickRateMs and MaxTickRateMs bound the valid range for
// `TickRateMs` per spec §6 (`tick_rate ∈ [50,1000]`).
const (
	MinTickRateMs = 50
	MaxTickRateMs = 1000
)

// MinVictoryCondition and MaxVictoryCondition bound the valid
// range for `VictoryCondition` per spec §6.
const (
	MinVictoryCondition = 30
	MaxVictoryCondition = 100
)

// Game :
// Defines a single match of the territorial conquest game. A
// game owns a set of planets, attacks, territory sectors,
// structures, combat logs, a tick counter and final stats; all
// of those are created and destroyed together with the game.
//
// The `ID` uniquely identifies the game.
//
// The `Status` defines the current lifecycle state, see the
// `Status` type above.
//
// The `MapSeed` seeds the deterministic generation of the
// game's planets and their initial positions.
//
// The `CreatedAt` timestamps the creation of the game row.
//
// The `StartedAt` is set when the host moves the game from
// `Waiting` to `Active`. It is `nil` while the game is waiting.
//
// The `EndedAt` is set by the finalizer (or the abandonment
// watcher) when the game transitions to `Completed`.
//
// The `WinnerID` is the identifier of the winning player, set
// only when `VictoryType` is `PlanetControl` or
// `TerritoryControl`. It stays empty for an abandoned game.
//
// The `VictoryType` records how the game ended.
//
// The `VictoryCondition` is the percentage (30-100) of planets
// or territory that triggers a victory qualification. Defaults
// to `DefaultVictoryCondition`.
//
// The `TickRateMs` is the interval in milliseconds the tick
// driver should use to invoke the tick endpoint for this game.
// Defaults to `DefaultTickRateMs` and must stay within
// [`MinTickRateMs`, `MaxTickRateMs`].
//
// The `MaxPlayers` bounds the number of participants.
//
// The `GameDurationSeconds` is computed once the game ends; it
// is `nil` while the game is still running.
type Game struct {
	ID                  string      `json:"id"`
	Status              Status      `json:"status"`
	MapSeed             int64       `json:"mapSeed"`
	CreatedAt           time.Time   `json:"createdAt"`
	StartedAt           *time.Time  `json:"startedAt,omitempty"`
	EndedAt             *time.Time  `json:"endedAt,omitempty"`
	WinnerID            string      `json:"winnerId,omitempty"`
	VictoryType         VictoryType `json:"victoryType,omitempty"`
	VictoryCondition    int         `json:"victoryCondition"`
	TickRateMs          int         `json:"tickRateMs"`
	MaxPlayers          int         `json:"maxPlayers"`
	GameDurationSeconds *int        `json:"gameDurationSeconds,omitempty"`
}

// ErrInvalidGameID : Indicates that a game identifier was not
// a valid UUID.
var ErrInvalidGameID = fmt.Errorf("invalid game identifier")

// ErrInvalidVictoryCondition : Indicates that the requested
// victory condition is outside of [MinVictoryCondition,
// MaxVictoryCondition].
var ErrInvalidVictoryCondition = fmt.Errorf("invalid victory condition")

// ErrInvalidTickRate : Indicates that the requested tick rate
// is outside of [MinTickRateMs, MaxTickRateMs].
var ErrInvalidTickRate = fmt.Errorf("invalid tick rate")

// NewGame :
// Creates a new game in the `Waiting` state with the default
// victory condition and tick rate.
//
// The `id` defines the identifier to assign to the game.
//
// Returns the created game along with any validation error.
func NewGame(id string) (Game, error) {
	if !ValidUUID(id) {
		return Game{}, ErrInvalidGameID
	}

	return Game{
		ID:               id,
		Status:           Waiting,
		VictoryCondition: DefaultVictoryCondition,
		TickRateMs:       DefaultTickRateMs,
		MaxPlayers:       8,
	}, nil
}

// Valid :
// Determines whether the game's configurable properties are
// within their accepted bounds.
//
// Returns any validation error, or `nil` if the game is valid.
func (g Game) Valid() error {
	if !ValidUUID(g.ID) {
		return ErrInvalidGameID
	}
	if g.VictoryCondition < MinVictoryCondition || g.VictoryCondition > MaxVictoryCondition {
		return ErrInvalidVictoryCondition
	}
	if g.TickRateMs < MinTickRateMs || g.TickRateMs > MaxTickRateMs {
		return ErrInvalidTickRate
	}

	return nil
}

// IsTerminal :
// Used to determine whether the game has reached a sink state
// from which the tick processor must never modify its planets,
// attacks, sectors, structures or stats again (invariant 4 of
// spec §3).
//
// Returns `true` if the game is `Completed`.
func (g Game) IsTerminal() bool {
	return g.Status == Completed
}
