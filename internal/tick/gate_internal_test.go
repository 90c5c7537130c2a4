package tick

import (
	"testing"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAllParticipantsInactive_AllStale(t *testing.T) {
	now := time.Now()
	participants := []model.GamePlayer{
		{PlayerID: "a", LastSeen: now.Add(-10 * time.Minute)},
		{PlayerID: "b", LastSeen: now.Add(-6 * time.Minute)},
	}

	assert.True(t, allParticipantsInactive(participants, now))
}

func TestAllParticipantsInactive_OneRecent(t *testing.T) {
	now := time.Now()
	participants := []model.GamePlayer{
		{PlayerID: "a", LastSeen: now.Add(-10 * time.Minute)},
		{PlayerID: "b", LastSeen: now.Add(-1 * time.Minute)},
	}

	assert.False(t, allParticipantsInactive(participants, now))
}

func TestComputeHostPromotion_HostPresentIsNoOp(t *testing.T) {
	now := time.Now()
	participants := []model.GamePlayer{
		{PlayerID: "host", PlacementOrder: 1, IsActive: true, LastSeen: now},
		{PlayerID: "other", PlacementOrder: 2, IsActive: false, LastSeen: now.Add(-10 * time.Minute)},
	}

	assert.Nil(t, computeHostPromotion(participants, now))
}

func TestComputeHostPromotion_NobodyPresentIsNoOp(t *testing.T) {
	now := time.Now()
	participants := []model.GamePlayer{
		{PlayerID: "host", PlacementOrder: 1, IsActive: false, LastSeen: now.Add(-10 * time.Minute)},
		{PlayerID: "other", PlacementOrder: 2, IsActive: false, LastSeen: now.Add(-10 * time.Minute)},
	}

	assert.Nil(t, computeHostPromotion(participants, now))
}

func TestComputeHostPromotion_PromotesNextPresentParticipant(t *testing.T) {
	now := time.Now()
	participants := []model.GamePlayer{
		{PlayerID: "host", PlacementOrder: 1, IsActive: false, LastSeen: now.Add(-10 * time.Minute)},
		{PlayerID: "absent", PlacementOrder: 2, IsActive: false, LastSeen: now.Add(-10 * time.Minute)},
		{PlayerID: "present", PlacementOrder: 3, IsActive: true, LastSeen: now},
	}

	reordered := computeHostPromotion(participants, now)

	assert.NotNil(t, reordered)

	ids := make([]string, len(reordered))
	for i, gp := range reordered {
		ids[i] = gp.PlayerID
	}
	assert.Equal(t, []string{"present", "host", "absent"}, ids, "the promoted host leads, the rest keep their relative order")
}

func TestComputeHostPromotion_EmptyParticipants(t *testing.T) {
	assert.Nil(t, computeHostPromotion(nil, time.Now()))
}
