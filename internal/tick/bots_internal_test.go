package tick

import (
	"testing"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStagger_StableForSameID(t *testing.T) {
	id := uuid.New().String()

	assert.Equal(t, stagger(id), stagger(id))
}

func TestStagger_Bounded(t *testing.T) {
	for i := 0; i < 50; i++ {
		v := stagger(uuid.New().String())
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestNearestPlanet_Empty(t *testing.T) {
	assert.Nil(t, nearestPlanet(nil, model.NewPosition(0, 0, 0)))
}

func TestNearestPlanet_PicksClosest(t *testing.T) {
	far := model.Planet{ID: "far", Pos: model.NewPosition(100, 0, 0)}
	near := model.Planet{ID: "near", Pos: model.NewPosition(1, 0, 0)}

	got := nearestPlanet([]model.Planet{far, near}, model.NewPosition(0, 0, 0))

	assert.Equal(t, "near", got.ID)
}

func TestResourceValue(t *testing.T) {
	assert.Equal(t, 0, resourceValue(model.Planet{}))
	assert.Equal(t, 1, resourceValue(model.Planet{HasMinerals: true}))
	assert.Equal(t, -1, resourceValue(model.Planet{InNebula: true}))
	assert.Equal(t, 0, resourceValue(model.Planet{HasMinerals: true, InNebula: true}))
}
