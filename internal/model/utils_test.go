package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidUUID(t *testing.T) {
	assert.True(t, ValidUUID(uuid.New().String()))
	assert.False(t, ValidUUID("not-a-uuid"))
	assert.False(t, ValidUUID(""))
}
