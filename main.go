package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"mcts/experiments"
	"mcts/game"
	"mcts/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	sims := flag.Int("sims", 0, "Search iterations for the first move (required)")
	levels := flag.Int("levels", game.NumTurns, "Number of moves to play")
	seed := flag.Uint64("seed", 0, "Random seed; 0 seeds from the clock")
	debug := flag.Bool("debug", false, "Enable debug logging")
	experiment := flag.Bool("experiment", false, "Run the budget experiment instead of a single game")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	if *experiment {
		experiments.RunBudgetExperiment(*seed)
		return
	}

	if *sims <= 0 {
		fmt.Fprintln(os.Stderr, "-sims must be a positive iteration count")
		flag.Usage()
		os.Exit(2)
	}
	if *levels < 0 || *levels > game.NumTurns {
		fmt.Fprintf(os.Stderr, "-levels must be between 0 and %d\n", game.NumTurns)
		os.Exit(2)
	}

	play(*sims, *levels, *seed)
}

// play runs one game: search at the current root, report its children,
// advance the root to the chosen child, and repeat with a shrinking
// budget per level.
func play(sims, levels int, seed uint64) {
	rng := rand.New(rand.NewSource(seed))
	u := searcher.NewUCT(searcher.WithRand(rng), searcher.WithMetrics())
	node := searcher.NewNode(game.NewGameState())

	for level := 0; level < levels; level++ {
		budget := sims / (level + 1)
		if budget < 1 {
			budget = 1 // Search requires a positive budget
		}
		best := u.Search(budget, node)
		metric := u.Metric()
		log.Debug().Msgf("level %d: %d iterations in %s",
			level, metric.Iterations, metric.Duration)

		fmt.Printf("level %d\n", level)
		fmt.Printf("num children: %d\n", len(node.Children()))
		for i, child := range node.Children() {
			fmt.Printf("%d %v\n", i, child)
		}
		fmt.Printf("best child: %v\n", best.State())
		fmt.Printf("--------------------------------\n")

		best.Detach()
		node = best
	}
}
