package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/data"
	"github.com/Dorschm/stellar-sub001/internal/metrics"
	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/internal/tick"
	"github.com/Dorschm/stellar-sub001/pkg/background"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
	"golang.org/x/time/rate"
)

// SupervisorInterval is how often the driver scans for games
// whose activity changed and reconciles its worker pool, grounded
// on the teacher's background-process idiom (pkg/background).
const SupervisorInterval = 2 * time.Second

// DefaultGlobalTickRate bounds the total ticks per second the
// driver is allowed to issue across every game it drives,
// protecting the database from an unbounded number of
// concurrently-driven games (spec §4.2).
const DefaultGlobalTickRate = 200

// Driver :
// Schedules one fixed-interval worker per active game, invoking
// the tick processor at the game's configured `TickRateMs` (spec
// §4.2). Adapted from the teacher's single `background.Process`
// pattern, generalized here to a supervisor process that manages
// a dynamic pool of per-game worker processes.
//
// The `games` proxy is polled by the supervisor to discover which
// games are currently active.
//
// The `processor` runs the actual tick phases for a game.
//
// The `limiter` caps the aggregate rate of tick invocations
// across every driven game.
//
// The `log` notifies information and errors.
type Driver struct {
	games     data.GameProxy
	processor tick.Processor
	limiter   *rate.Limiter
	log       logger.Logger
	metrics   *metrics.Metrics

	supervisor *background.Process

	lock    sync.Mutex
	workers map[string]*background.Process
}

// New :
// Creates a new tick driver wrapping the provided game proxy and
// processor. A nil `m` disables metrics reporting.
//
// Returns the created driver.
func New(games data.GameProxy, processor tick.Processor, log logger.Logger, m *metrics.Metrics) *Driver {
	return &Driver{
		games:     games,
		processor: processor,
		limiter:   rate.NewLimiter(rate.Limit(DefaultGlobalTickRate), DefaultGlobalTickRate),
		log:       log,
		metrics:   m,
		workers:   make(map[string]*background.Process),
	}
}

// Start :
// Starts the supervisor process, which in turn starts and stops
// per-game workers as games become active or leave that state.
//
// Returns any error starting the supervisor.
func (d *Driver) Start() error {
	d.supervisor = background.NewProcess(SupervisorInterval, d.log).
		WithModule("driver").
		WithOperation(d.reconcile)

	return d.supervisor.Start()
}

// Stop :
// Stops the supervisor and every per-game worker it started.
func (d *Driver) Stop() {
	if d.supervisor != nil {
		d.supervisor.Stop()
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	for gameID, worker := range d.workers {
		worker.Stop()
		delete(d.workers, gameID)
	}
}

// reconcile :
// Implements the supervisor's periodic scan: starts a worker for
// every active game not yet driven, and stops the worker of every
// game that is no longer active.
//
// Returns whether the scan succeeded along with any error.
func (d *Driver) reconcile() (bool, error) {
	active, err := d.games.Games([]db.Filter{
		{Key: "status", Values: []interface{}{model.Active}},
	})
	if err != nil {
		return false, fmt.Errorf("could not list active games (err: %v)", err)
	}

	seen := make(map[string]bool, len(active))

	d.lock.Lock()
	defer d.lock.Unlock()

	for _, game := range active {
		seen[game.ID] = true

		if _, tracked := d.workers[game.ID]; tracked {
			continue
		}

		worker := d.newWorker(game)
		if err := worker.Start(); err != nil {
			d.log.Trace(logger.Error, "driver", fmt.Sprintf("could not start worker for game \"%s\" (err: %v)", game.ID, err))
			continue
		}

		d.workers[game.ID] = worker
		d.log.Trace(logger.Info, "driver", fmt.Sprintf("now driving game \"%s\" at %dms", game.ID, game.TickRateMs))
	}

	for gameID, worker := range d.workers {
		if seen[gameID] {
			continue
		}

		worker.Stop()
		delete(d.workers, gameID)
		d.log.Trace(logger.Info, "driver", fmt.Sprintf("stopped driving game \"%s\"", gameID))
	}

	d.metrics.SetActiveGames(len(d.workers))

	return true, nil
}

// newWorker :
// Builds the per-game background process that invokes the tick
// processor at the game's configured interval, throttled by the
// driver's shared rate limiter.
func (d *Driver) newWorker(game model.Game) *background.Process {
	gameID := game.ID

	return background.NewProcess(time.Duration(game.TickRateMs)*time.Millisecond, d.log).
		WithModule(fmt.Sprintf("driver/%s", gameID)).
		WithOperation(func() (bool, error) {
			if err := d.limiter.Wait(context.Background()); err != nil {
				return false, err
			}

			// A game that just completed is left running until the
			// next supervisor scan notices its status changed and
			// stops this worker from outside its own goroutine;
			// `Process` is a cheap no-op once the game is terminal.
			start := time.Now()
			result, err := d.processor.Process(gameID)
			elapsed := time.Since(start)

			attacksResolved, sectorsCreated := 0, 0
			if result.Stats != nil {
				attacksResolved = result.Stats.AttacksProcessed
				sectorsCreated = result.Stats.SectorsCreated
			}
			d.metrics.ObserveTick(gameID, elapsed, attacksResolved, sectorsCreated, result.GameComplete, err)

			if err != nil {
				return false, fmt.Errorf("tick failed for game \"%s\" (err: %v)", gameID, err)
			}

			return true, nil
		})
}
