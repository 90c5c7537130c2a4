package galaxy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickDistinctSlots_NoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	picked := pickDistinctSlots(rng, 20, 7)

	assert.Len(t, picked, 7)

	seen := make(map[int]bool)
	for _, s := range picked {
		assert.False(t, seen[s], "slot %d picked twice", s)
		seen[s] = true
	}
}

func TestPickDistinctSlots_Deterministic(t *testing.T) {
	a := pickDistinctSlots(rand.New(rand.NewSource(7)), 30, 10)
	b := pickDistinctSlots(rand.New(rand.NewSource(7)), 30, 10)

	assert.Equal(t, a, b)
}

func TestSlotToCoordinate_WithinGridBounds(t *testing.T) {
	half := float64(GridSize-1) / 2.0 * CellSpacing

	for slot := 0; slot < GridSize*GridSize*GridSize; slot++ {
		x, y, z := slotToCoordinate(slot)

		assert.InDelta(t, 0.0, x, half+0.001)
		assert.InDelta(t, 0.0, y, half+0.001)
		assert.InDelta(t, 0.0, z, half+0.001)
	}
}

func TestSlotToCoordinate_Spacing(t *testing.T) {
	x0, y0, z0 := slotToCoordinate(0)
	x1, y1, z1 := slotToCoordinate(1)

	assert.InDelta(t, CellSpacing, x1-x0, 0.001)
	assert.Equal(t, y0, y1)
	assert.Equal(t, z0, z1)
}

func TestJitter_BoundedByCellSpacing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		j := jitter(rng)
		assert.LessOrEqual(t, j, CellSpacing*0.15)
		assert.GreaterOrEqual(t, j, -CellSpacing*0.15)
	}
}
