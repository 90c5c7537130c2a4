package tick

import (
	"testing"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCountWithin(t *testing.T) {
	sectors := []model.TerritorySector{
		{Pos: model.NewPosition(0, 0, 0)},
		{Pos: model.NewPosition(5, 0, 0)},
		{Pos: model.NewPosition(50, 0, 0)},
	}

	assert.Equal(t, 2, countWithin(sectors, model.NewPosition(0, 0, 0), 10))
}

func TestWithinCollisionRadius_ExistingSector(t *testing.T) {
	sectors := []model.TerritorySector{{Pos: model.NewPosition(0, 0, 0)}}

	assert.True(t, withinCollisionRadius(sectors, nil, model.NewPosition(1, 0, 0)))
	assert.False(t, withinCollisionRadius(sectors, nil, model.NewPosition(100, 0, 0)))
}

func TestWithinCollisionRadius_QueuedCandidate(t *testing.T) {
	queued := []model.Position{model.NewPosition(0, 0, 0)}

	assert.True(t, withinCollisionRadius(nil, queued, model.NewPosition(1, 0, 0)))
	assert.False(t, withinCollisionRadius(nil, queued, model.NewPosition(100, 0, 0)))
}
