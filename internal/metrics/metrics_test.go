package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTick_Success(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTick("game-1", 10*time.Millisecond, 3, 2, false, nil)

	assert.Equal(t, 1, int(testutil.ToFloat64(m.ticksProcessed.WithLabelValues("game-1"))))
	assert.Equal(t, 3, int(testutil.ToFloat64(m.attacksResolved.WithLabelValues("game-1"))))
	assert.Equal(t, 2, int(testutil.ToFloat64(m.sectorsCreated.WithLabelValues("game-1"))))
	assert.Equal(t, 0, int(testutil.ToFloat64(m.tickFailures.WithLabelValues("game-1"))))
}

func TestObserveTick_Failure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTick("game-1", time.Millisecond, 0, 0, false, fmt.Errorf("boom"))

	assert.Equal(t, 1, int(testutil.ToFloat64(m.tickFailures.WithLabelValues("game-1"))))
	assert.Equal(t, 0, int(testutil.ToFloat64(m.attacksResolved.WithLabelValues("game-1"))))
}

func TestObserveTick_GameCompleted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTick("game-1", time.Millisecond, 0, 0, true, nil)

	assert.Equal(t, 1, int(testutil.ToFloat64(m.gamesCompleted)))
}

func TestSetActiveGames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SetActiveGames(7)

	assert.Equal(t, 7, int(testutil.ToFloat64(m.activeGamesGauge)))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveTick("game-1", time.Millisecond, 1, 1, true, fmt.Errorf("boom"))
		m.SetActiveGames(3)
	})
}
