package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpansionTier_ParamsFor(t *testing.T) {
	assert.Equal(t, TierParams{Radius: 20, SectorsPerWave: 8}, TierOne.ParamsFor())
	assert.Equal(t, TierParams{Radius: 35, SectorsPerWave: 16}, TierTwo.ParamsFor())
	assert.Equal(t, TierParams{Radius: 50, SectorsPerWave: 24}, TierThree.ParamsFor())
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierOne, TierFor(0))
	assert.Equal(t, TierOne, TierFor(50))
	assert.Equal(t, TierTwo, TierFor(51))
	assert.Equal(t, TierTwo, TierFor(150))
	assert.Equal(t, TierThree, TierFor(151))
}

func TestRadiusBudgetExceeded(t *testing.T) {
	assert.False(t, RadiusBudgetExceeded(0))
	assert.True(t, RadiusBudgetExceeded(500))
}
