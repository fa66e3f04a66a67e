package experiments

import (
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

const NumGames = 30 // Per config

var budgetConfigs = []metrics.RunConfig{
	{ID: 1, Sims: 100, Levels: game.NumTurns, Games: NumGames},
	{ID: 2, Sims: 1000, Levels: game.NumTurns, Games: NumGames},
	{ID: 3, Sims: 10000, Levels: game.NumTurns, Games: NumGames},
	{ID: 4, Sims: 50000, Levels: game.NumTurns, Games: NumGames},
}

// RunBudgetExperiment plays repeated full games at increasing iteration
// budgets and records how close each game finishes to the goal.
func RunBudgetExperiment(seed uint64) {
	writer, err := metrics.NewWriter("budget")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	err = writer.WriteRunConfigs(budgetConfigs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write run configs")
	}

	var gameRecords []metrics.GameRecord
	var levelRecords []metrics.LevelRecord

	for _, config := range budgetConfigs {
		log.Info().Msgf("config %d: %d sims, %d games starting...",
			config.ID, config.Sims, config.Games)

		distances := make([]float64, 0, config.Games)
		rewards := make([]float64, 0, config.Games)
		for i := 0; i < config.Games; i++ {
			// One seed per game so runs are reproducible per config
			rng := rand.New(rand.NewSource(seed + uint64(i)))
			final, levels := playGame(config, rng)

			distance := final.Value - game.Goal
			if distance < 0 {
				distance = -distance
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				Config:   config.ID,
				Game:     i,
				Value:    final.Value,
				Distance: distance,
				Reward:   final.Reward(),
			})
			for _, level := range levels {
				level.Config = config.ID
				level.Game = i
				levelRecords = append(levelRecords, level)
			}
			distances = append(distances, float64(distance))
			rewards = append(rewards, final.Reward())
		}

		log.Info().Msgf("config %d: mean distance %.2f (stddev %.2f), mean reward %.4f",
			config.ID, stat.Mean(distances, nil), stat.StdDev(distances, nil),
			stat.Mean(rewards, nil))
	}

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write game records")
	}
	err = writer.WriteLevelRecords(levelRecords)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write level records")
	}
	log.Info().Msg("finished budget experiment")
}

// playGame runs the driving loop: search at the current root, advance the
// root to the returned best child, shrink the budget, repeat per level.
func playGame(config metrics.RunConfig, rng *rand.Rand) (game.GameState, []metrics.LevelRecord) {
	u := searcher.NewUCT(searcher.WithRand(rng), searcher.WithMetrics())
	node := searcher.NewNode(game.NewGameState())

	records := make([]metrics.LevelRecord, 0, config.Levels)
	for level := 0; level < config.Levels; level++ {
		best := u.Search(config.Sims/(level+1), node)
		records = append(records, metrics.LevelRecord{
			Level:        level,
			Children:     len(node.Children()),
			SearchMetric: u.Metric(),
		})
		best.Detach()
		node = best
	}
	return node.State().(game.GameState), records
}
