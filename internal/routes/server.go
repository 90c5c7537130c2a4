package routes

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/Dorschm/stellar-sub001/internal/data"
	"github.com/Dorschm/stellar-sub001/internal/driver"
	"github.com/Dorschm/stellar-sub001/internal/metrics"
	"github.com/Dorschm/stellar-sub001/internal/tick"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/dispatcher"
	"github.com/Dorschm/stellar-sub001/pkg/logger"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
)

// Server :
// Defines a server that exposes the two small HTTP endpoints
// described in spec §6 (tick, mark-inactive) while the bulk of
// the simulation runs unattended in the background through the
// `driver`. Adapted from the teacher's `Server`, which bundled a
// router, DB proxies and a single background process together;
// here the router fronts a continuously-running tick driver
// instead of serving a full CRUD API.
//
// The `port` determines which port the server listens on.
//
// The `router` performs the routing and dispatch of incoming
// requests.
//
// The `games` and `gamePlayers` proxies back the two endpoints
// this server exposes directly.
//
// The `processor` runs the tick phases on demand.
//
// The `driver` autonomously ticks every active game; it is
// started and stopped alongside the HTTP server.
//
// The `log` notifies connections, errors and lifecycle events.
type Server struct {
	port   int
	router *dispatcher.Router

	games       data.GameProxy
	gamePlayers data.GamePlayerProxy
	processor   tick.Processor

	driver *driver.Driver
	log    logger.Logger
}

// ErrUnexpectedServeError : Indicates that an error occurred
// while serving the root endpoint.
var ErrUnexpectedServeError = fmt.Errorf("unexpected error occurred while serving http requests")

// ErrServerShutdownError : Indicates that an error occurred
// while shutting down the server.
var ErrServerShutdownError = fmt.Errorf("unexpected error occurred while shutting down the server")

// NewServer :
// Creates a new server wiring the proxies needed by the tick
// endpoints and a driver that ticks every active game in the
// background.
//
// The `port` defines the port to listen to by the server.
//
// The `proxy` is the database proxy every data proxy is built
// from.
//
// The `reg` is the Prometheus registerer the driver's metrics
// are registered against.
//
// The `log` is used to notify from various processes in the
// server and keep track of the activity.
func NewServer(port int, proxy db.Proxy, reg prometheus.Registerer, log logger.Logger) Server {
	games := data.NewGameProxy(proxy, log)
	planets := data.NewPlanetProxy(proxy, log)
	attacks := data.NewAttackProxy(proxy, log)
	territory := data.NewTerritoryProxy(proxy, log)
	structures := data.NewStructureProxy(proxy, log)
	combatLogs := data.NewCombatLogProxy(proxy, log)
	stats := data.NewStatsProxy(proxy, log)
	players := data.NewPlayerProxy(proxy, log)
	gamePlayers := data.NewGamePlayerProxy(proxy, log)

	processor := tick.NewProcessor(games, planets, attacks, territory, structures, combatLogs, stats, players, gamePlayers, log)

	m := metrics.New(reg)
	drv := driver.New(games, processor, log, m)

	return Server{
		port:   port,
		router: nil,

		games:       games,
		gamePlayers: gamePlayers,
		processor:   processor,

		driver: drv,
		log:    log,
	}
}

// Serve :
// Starts listening on the port associated to this server and
// starts the tick driver. Blocks until a SIGINT is received, at
// which point both are shut down gracefully.
//
// Returns any error occurred during the serve operation.
func (s *Server) Serve() error {
	if s.router != nil {
		panic(fmt.Errorf("cannot start serving, process already running"))
	}

	s.router = dispatcher.NewRouter(s.log)

	s.routes()

	aMethods := handlers.AllowedMethods([]string{"POST", "OPTIONS"})
	aOrigins := handlers.AllowedOrigins([]string{"*"})
	aHeaders := handlers.AllowedHeaders([]string{"Content-Type", "Authorization"})
	corsRouter := handlers.CORS(aHeaders, aOrigins, aMethods)(s.router)

	server := &http.Server{
		Addr:    ":" + strconv.FormatInt(int64(s.port), 10),
		Handler: corsRouter,
	}

	if err := s.driver.Start(); err != nil {
		return fmt.Errorf("could not start tick driver (err: %v)", err)
	}

	var serveErr error
	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer func() {
			if err := recover(); err != nil {
				s.log.Trace(logger.Fatal, "server", fmt.Sprintf("caught unexpected error while serving requests (err: %v)", err))

				serveErr = ErrUnexpectedServeError
			}

			wg.Done()

			s.log.Trace(logger.Notice, "server", "server has stopped")
		}()

		s.log.Trace(logger.Notice, "server", "server has started")

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop

	s.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		s.log.Trace(logger.Error, "server", fmt.Sprintf("caught unexpected error while shutting down server (err: %v)", err))

		return ErrServerShutdownError
	}

	wg.Wait()

	return serveErr
}

// shutdown :
// Requests the server and the tick driver to gracefully stop.
func (s *Server) shutdown() {
	s.driver.Stop()
}
