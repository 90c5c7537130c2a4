package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime/debug"

	"github.com/Dorschm/stellar-sub001/internal/data"
	"github.com/Dorschm/stellar-sub001/internal/galaxy"
	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/arguments"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"

	"github.com/google/uuid"
)

// usage :
// Displays the usage of this tool. It is meant to be run once
// by whichever external collaborator owns the lobby/matchmaking
// flow (out of scope here, see spec §1) right after a game row
// would otherwise be created with an empty board.
func usage() {
	fmt.Println("Usage:")
	fmt.Println("./creategame -config=[file] -planets=[count] -victory=[percent] -tick-rate=[ms] -max-players=[count]")
}

// main :
// Creates a new game in the `waiting` state and lays out its
// initial board of planets through the galaxy generator, so
// that the `systems` table is populated the moment the game
// exists (spec §1: "[galaxy generation] specified only via the
// table it must populate").
func main() {
	help := flag.Bool("h", false, "Print usage")
	conf := flag.String("config", "", "Configuration file to customize app behavior (development/production)")
	planetCount := flag.Int("planets", galaxy.DefaultPlanetCount, "Number of planets to generate for the new game")
	victoryCondition := flag.Int("victory", model.DefaultVictoryCondition, "Victory condition percentage")
	tickRateMs := flag.Int("tick-rate", model.DefaultTickRateMs, "Tick rate in milliseconds")
	maxPlayers := flag.Int("max-players", 8, "Maximum number of participants")

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

	games := data.NewGameProxy(proxy, log)
	planets := data.NewPlanetProxy(proxy, log)

	id := uuid.New().String()

	g, err := model.NewGame(id)
	if err != nil {
		panic(fmt.Errorf("could not build new game (err: %v)", err))
	}

	g.VictoryCondition = *victoryCondition
	g.TickRateMs = *tickRateMs
	g.MaxPlayers = *maxPlayers
	g.MapSeed = rand.Int63()

	if err := games.CreateGame(g); err != nil {
		panic(fmt.Errorf("could not create game (err: %v)", err))
	}

	generator := galaxy.NewGenerator(planets, log)

	created, err := generator.Generate(g.ID, int64(g.MapSeed), *planetCount)
	if err != nil {
		panic(fmt.Errorf("could not generate board for game \"%s\" (err: %v)", g.ID, err))
	}

	log.Trace(logger.Notice, "main", fmt.Sprintf("created game \"%s\" with %d planets (seed %d)", g.ID, len(created), g.MapSeed))
}
