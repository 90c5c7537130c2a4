package tick

import (
	"testing"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEnergyEfficiency_PeaksAtConfiguredRatio(t *testing.T) {
	peak := energyEfficiencyPeak * model.MaxEnergy

	assert.InDelta(t, 1.0, energyEfficiency(peak), 0.001)
}

func TestEnergyEfficiency_Bounds(t *testing.T) {
	assert.InDelta(t, 0.5, energyEfficiency(0), 0.001)
	assert.InDelta(t, 0.5, energyEfficiency(model.MaxEnergy), 0.001)
}

func TestEnergyEfficiency_NeverBelowZeroOrAboveOne(t *testing.T) {
	for _, e := range []float64{-1000, 0, 10000, model.MaxEnergy, model.MaxEnergy * 2} {
		v := energyEfficiency(e)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
