package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus instruments the tick driver
// reports against. Grounded on the worker-pool instrumentation
// idiom found in the pack (promauto-registered counters/histograms
// wrapped in a struct rather than left as package globals, so a
// test can build its own `Metrics` against a private registry).
type Metrics struct {
	ticksProcessed   *prometheus.CounterVec
	tickFailures     *prometheus.CounterVec
	tickDuration     *prometheus.HistogramVec
	attacksResolved  *prometheus.CounterVec
	sectorsCreated   *prometheus.CounterVec
	gamesCompleted   prometheus.Counter
	activeGamesGauge prometheus.Gauge
}

// New :
// Registers and returns the set of metrics the driver updates on
// every tick. Registering against the default registerer mirrors
// the pack's `promauto` usage; a dedicated `prometheus.Registry`
// can be passed in tests to avoid collisions between runs.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ticksProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stellar_ticks_processed_total",
			Help: "Total number of tick cycles processed per game.",
		}, []string{"game_id"}),

		tickFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stellar_tick_failures_total",
			Help: "Total number of tick cycles that returned an error per game.",
		}, []string{"game_id"}),

		tickDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stellar_tick_duration_seconds",
			Help:    "Duration of a full tick cycle, all phases included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"game_id"}),

		attacksResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stellar_attacks_resolved_total",
			Help: "Total number of attacks resolved per game.",
		}, []string{"game_id"}),

		sectorsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stellar_sectors_created_total",
			Help: "Total number of territory sectors created per game.",
		}, []string{"game_id"}),

		gamesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "stellar_games_completed_total",
			Help: "Total number of games that reached a victory condition.",
		}),

		activeGamesGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stellar_active_games",
			Help: "Number of games currently being driven by a tick worker.",
		}),
	}
}

// ObserveTick records the outcome of one tick cycle for a game.
func (m *Metrics) ObserveTick(gameID string, duration time.Duration, attacksResolved int, sectorsCreated int, gameCompleted bool, err error) {
	if m == nil {
		return
	}

	m.ticksProcessed.WithLabelValues(gameID).Inc()
	m.tickDuration.WithLabelValues(gameID).Observe(duration.Seconds())

	if err != nil {
		m.tickFailures.WithLabelValues(gameID).Inc()
		return
	}

	if attacksResolved > 0 {
		m.attacksResolved.WithLabelValues(gameID).Add(float64(attacksResolved))
	}
	if sectorsCreated > 0 {
		m.sectorsCreated.WithLabelValues(gameID).Add(float64(sectorsCreated))
	}
	if gameCompleted {
		m.gamesCompleted.Inc()
	}
}

// SetActiveGames reports the current size of the driver's worker
// pool, updated by the supervisor on every reconciliation pass.
func (m *Metrics) SetActiveGames(count int) {
	if m == nil {
		return
	}

	m.activeGamesGauge.Set(float64(count))
}
