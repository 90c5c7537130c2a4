package model

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttack_HasArrived(t *testing.T) {
	now := time.Now()

	a := Attack{Status: InTransit, ArrivalAt: now.Add(-time.Second)}
	assert.True(t, a.HasArrived(now))

	a.ArrivalAt = now.Add(time.Second)
	assert.False(t, a.HasArrived(now))

	a.ArrivalAt = now.Add(-time.Second)
	a.Status = Arrived
	assert.False(t, a.HasArrived(now))
}

func TestAttack_ShouldRetreat(t *testing.T) {
	a := Attack{Troops: 29}
	assert.True(t, a.ShouldRetreat(100))

	a.Troops = 31
	assert.False(t, a.ShouldRetreat(100))
}

func TestAttackOrder(t *testing.T) {
	now := time.Now()

	attacks := []Attack{
		{ID: "b", ArrivalAt: now},
		{ID: "a", ArrivalAt: now},
		{ID: "c", ArrivalAt: now.Add(-time.Minute)},
	}

	sort.Slice(attacks, AttackOrder(attacks))

	assert.Equal(t, []string{"c", "a", "b"}, []string{attacks[0].ID, attacks[1].ID, attacks[2].ID})
}
