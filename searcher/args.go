package searcher

import "math"

// Hyperparameters for MCTS

// Scalar weighs the exploration term in UCB1 during tree descent. Larger
// values increase exploration, smaller values increase exploitation.
const Scalar = 1 / (2 * math.Sqrt2)

// Search progress is logged every logInterval iterations.
const logInterval = 10000
