package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotDifficulty_Epsilon(t *testing.T) {
	assert.Equal(t, 0.5, Easy.Epsilon())
	assert.Equal(t, 0.75, Normal.Epsilon())
	assert.Equal(t, 1.0, Hard.Epsilon())
	assert.Equal(t, 0.75, BotDifficulty("unknown").Epsilon())
}

func TestPlayer_ClampResources(t *testing.T) {
	p := Player{
		Credits:        MaxCredits + 500,
		Energy:         -10,
		Minerals:       MaxMinerals * 2,
		ResearchPoints: -1,
	}

	p.ClampResources()

	assert.Equal(t, MaxCredits, p.Credits)
	assert.Equal(t, 0, p.Energy)
	assert.Equal(t, MaxMinerals, p.Minerals)
	assert.Equal(t, 0, p.ResearchPoints)
}

func TestNewPlayer_InvalidID(t *testing.T) {
	_, err := NewPlayer("not-a-uuid", "someone")

	assert.Equal(t, ErrInvalidPlayerID, err)
}

func TestGamePlayer_IsPresent(t *testing.T) {
	now := time.Now()

	gp := GamePlayer{IsActive: true, LastSeen: now}
	assert.True(t, gp.IsPresent(now))

	gp.LastSeen = now.Add(-2 * ActiveWindow)
	assert.False(t, gp.IsPresent(now))

	gp.LastSeen = now
	gp.IsActive = false
	assert.False(t, gp.IsPresent(now))
}

func TestGamePlayer_Eliminate(t *testing.T) {
	gp := GamePlayer{GameID: uuid.New().String(), PlayerID: uuid.New().String(), IsAlive: true}
	now := time.Now()

	gp.Eliminate(now)

	assert.True(t, gp.IsEliminated)
	assert.False(t, gp.IsAlive)
	require.NotNil(t, gp.EliminatedAt)
	assert.True(t, gp.EliminatedAt.Equal(now))
}
