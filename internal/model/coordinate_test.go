package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Distance(t *testing.T) {
	a := NewPosition(0, 0, 0)
	b := NewPosition(3, 4, 0)

	assert.Equal(t, 5.0, a.Distance(b))
}

func TestPosition_Distance_Symmetric(t *testing.T) {
	a := NewPosition(1, 2, 3)
	b := NewPosition(-4, 5, 6)

	assert.Equal(t, a.Distance(b), b.Distance(a))
}

func TestPosition_WithinAABB(t *testing.T) {
	a := NewPosition(0, 0, 0)

	assert.True(t, a.WithinAABB(NewPosition(5, 5, 5), 10))
	assert.False(t, a.WithinAABB(NewPosition(20, 0, 0), 10))
}

func TestPosition_DominantAxis(t *testing.T) {
	a := NewPosition(0, 0, 0)

	assert.Equal(t, AxisPosX, a.DominantAxis(NewPosition(10, 1, 1)))
	assert.Equal(t, AxisNegX, a.DominantAxis(NewPosition(-10, 1, 1)))
	assert.Equal(t, AxisPosY, a.DominantAxis(NewPosition(1, 10, 1)))
	assert.Equal(t, AxisNegZ, a.DominantAxis(NewPosition(1, 1, -10)))
}

func TestPosition_String(t *testing.T) {
	p := NewPosition(1, 2, 3)

	assert.Equal(t, "[x: 1.00, y: 2.00, z: 3.00]", p.String())
}
