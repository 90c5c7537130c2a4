package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame_Defaults(t *testing.T) {
	id := uuid.New().String()

	g, err := NewGame(id)
	require.NoError(t, err)

	assert.Equal(t, Waiting, g.Status)
	assert.Equal(t, DefaultVictoryCondition, g.VictoryCondition)
	assert.Equal(t, DefaultTickRateMs, g.TickRateMs)
}

func TestNewGame_InvalidID(t *testing.T) {
	_, err := NewGame("not-a-uuid")

	assert.Equal(t, ErrInvalidGameID, err)
}

func TestGame_Valid(t *testing.T) {
	g, err := NewGame(uuid.New().String())
	require.NoError(t, err)

	assert.NoError(t, g.Valid())

	g.VictoryCondition = MinVictoryCondition - 1
	assert.Equal(t, ErrInvalidVictoryCondition, g.Valid())

	g.VictoryCondition = DefaultVictoryCondition
	g.TickRateMs = MaxTickRateMs + 1
	assert.Equal(t, ErrInvalidTickRate, g.Valid())
}

func TestGame_IsTerminal(t *testing.T) {
	g, err := NewGame(uuid.New().String())
	require.NoError(t, err)

	assert.False(t, g.IsTerminal())

	g.Status = Completed
	assert.True(t, g.IsTerminal())
}
