package tick

import (
	"testing"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEliminationGraceElapsed_NotStarted(t *testing.T) {
	game := model.Game{StartedAt: nil}

	assert.False(t, eliminationGraceElapsed(game, time.Now()))
}

func TestEliminationGraceElapsed_WithinGracePeriod(t *testing.T) {
	startedAt := time.Now().Add(-10 * time.Second)
	game := model.Game{StartedAt: &startedAt}

	assert.False(t, eliminationGraceElapsed(game, time.Now()))
}

func TestEliminationGraceElapsed_PastGracePeriod(t *testing.T) {
	startedAt := time.Now().Add(-model.EliminationGracePeriod - time.Second)
	game := model.Game{StartedAt: &startedAt}

	assert.True(t, eliminationGraceElapsed(game, time.Now()))
}

func TestEliminationGraceElapsed_ExactlyAtBoundary(t *testing.T) {
	now := time.Now()
	startedAt := now.Add(-model.EliminationGracePeriod)
	game := model.Game{StartedAt: &startedAt}

	assert.False(t, eliminationGraceElapsed(game, now), "grace period boundary is exclusive (<=), not yet elapsed")
}
