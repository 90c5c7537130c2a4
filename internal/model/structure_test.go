package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validStructure() Structure {
	return Structure{Type: ColonyStation, Level: 1, Health: 100}
}

func TestStructure_Valid(t *testing.T) {
	assert.NoError(t, validStructure().Valid())

	s := validStructure()
	s.Type = "not_a_type"
	assert.Equal(t, ErrInvalidStructureType, s.Valid())

	s = validStructure()
	s.Level = 0
	assert.Equal(t, ErrInvalidStructureLevel, s.Valid())

	s = validStructure()
	s.Health = 150
	assert.Error(t, s.Valid())
}

func TestStructure_Active(t *testing.T) {
	s := validStructure()
	assert.False(t, s.Active())

	s.IsActive = true
	assert.True(t, s.Active())
}
