package main

import (
	"flag"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Dorschm/stellar-sub001/internal/routes"
	"github.com/Dorschm/stellar-sub001/pkg/arguments"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// usage :
// Displays the usage of the server. Typically requires a
// configuration file to be able to fetch the configuration
// variables to use during the execution of the server.
func usage() {
	fmt.Println("Usage:")
	fmt.Println("./tickserver -config=[file] for configuration file to use (development/production)")
}

// main :
// Starts the tick driver and the HTTP server exposing the tick
// and mark-inactive endpoints.
func main() {
	help := flag.Bool("h", false, "Print usage")
	conf := flag.String("config", "", "Configuration file to customize app behavior (development/production)")
	metricsPort := flag.Int("metrics-port", 9090, "Port to serve Prometheus metrics on")

	flag.Parse()

	if *help {
		usage()
	}

	trueConf := ""
	if conf != nil {
		trueConf = *conf
	}
	metadata := arguments.Parse(trueConf)

	log := logger.NewStdLogger(metadata.InstanceID, metadata.PublicIPv4)

	defer func() {
		err := recover()
		if err != nil {
			stack := string(debug.Stack())
			log.Trace(logger.Fatal, "main", fmt.Sprintf("app crashed after error: %v (stack: %s)", err, stack))
		}

		log.Release()
	}()

	DB := db.NewPool(log)
	proxy := db.NewProxy(DB)

	reg := prometheus.NewRegistry()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		addr := fmt.Sprintf(":%d", *metricsPort)
		log.Trace(logger.Notice, "main", fmt.Sprintf("serving metrics on %s", addr))

		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Trace(logger.Error, "main", fmt.Sprintf("metrics server failed (err: %v)", err))
		}
	}()

	server := routes.NewServer(metadata.Port, proxy, reg, log)

	err := server.Serve()
	if err != nil {
		panic(fmt.Errorf("unexpected error while listening to port %d (err: %v)", metadata.Port, err))
	}
}
