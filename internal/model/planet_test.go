package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanet_Owned(t *testing.T) {
	p := Planet{}
	assert.False(t, p.Owned())

	p.OwnerID = "someone"
	assert.True(t, p.Owned())
}

func TestPlanet_Terrain(t *testing.T) {
	assert.Equal(t, TerrainSpace, Planet{}.Terrain())
	assert.Equal(t, TerrainAsteroid, Planet{HasMinerals: true}.Terrain())
	assert.Equal(t, TerrainNebula, Planet{InNebula: true}.Terrain())
	assert.Equal(t, TerrainNebula, Planet{HasMinerals: true, InNebula: true}.Terrain())
}

func TestEffectiveMaxTroops(t *testing.T) {
	assert.Equal(t, float64(BaseMaxTroops), EffectiveMaxTroops(0))
	assert.Equal(t, float64(BaseMaxTroops+300), EffectiveMaxTroops(3))
}

func TestGrowthAt_Saturation(t *testing.T) {
	assert.Equal(t, 0.0, GrowthAt(500, 500))
	assert.Equal(t, 0.0, GrowthAt(600, 500))
	assert.Greater(t, GrowthAt(0, 500), 0.0)
}

func TestPlanet_ApplyGrowth_ClampsToCap(t *testing.T) {
	p := Planet{TroopCount: 499}

	p.ApplyGrowth(500)

	assert.LessOrEqual(t, p.TroopCount, 500.0)
}

func TestPlanet_ApplyGrowth_NoOpAtCap(t *testing.T) {
	p := Planet{TroopCount: 500}

	p.ApplyGrowth(500)

	assert.Equal(t, 500.0, p.TroopCount)
}
