package tick

import (
	"testing"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAngleAtVertex_Perpendicular(t *testing.T) {
	vertex := model.NewPosition(0, 0, 0)
	a := model.NewPosition(10, 0, 0)
	b := model.NewPosition(0, 10, 0)

	assert.InDelta(t, 90.0, angleAtVertex(vertex, a, b), 0.001)
}

func TestAngleAtVertex_SameDirection(t *testing.T) {
	vertex := model.NewPosition(0, 0, 0)
	a := model.NewPosition(10, 0, 0)
	b := model.NewPosition(20, 0, 0)

	assert.InDelta(t, 0.0, angleAtVertex(vertex, a, b), 0.001)
}

func TestAngleAtVertex_Opposite(t *testing.T) {
	vertex := model.NewPosition(0, 0, 0)
	a := model.NewPosition(10, 0, 0)
	b := model.NewPosition(-10, 0, 0)

	assert.InDelta(t, 180.0, angleAtVertex(vertex, a, b), 0.001)
}

func TestAngleAtVertex_ZeroLengthVector(t *testing.T) {
	vertex := model.NewPosition(0, 0, 0)

	assert.Equal(t, 0.0, angleAtVertex(vertex, vertex, model.NewPosition(1, 0, 0)))
}
