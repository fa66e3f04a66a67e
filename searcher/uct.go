package searcher

import (
	"fmt"
	"math"
	"time"

	"mcts/experiments/metrics"
	"mcts/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(u *UCT)

// UCT runs Monte Carlo tree search with UCB1 as the tree-descent rule. All
// phases execute sequentially on the caller's goroutine; the only shared
// state is the tree passed to Search.
type UCT struct {
	rng        *rand.Rand
	numMoves   NumMovesFunc
	maxRetries int
	metrics    metrics.Collector
}

// WithRand supplies the random source driving every phase. Searches are
// deterministic given a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(u *UCT) {
		if rng != nil {
			u.rng = rng
		}
	}
}

// WithNumMoves supplies a per-node branching factor, overriding the fixed
// one each state reports.
func WithNumMoves(numMoves NumMovesFunc) Option {
	return func(u *UCT) {
		if numMoves != nil {
			u.numMoves = numMoves
		}
	}
}

// WithExpansionRetries caps the resampling loop in expansion, for states
// whose successor functions cannot guarantee eventual novel-or-terminal
// production. Zero (the default) means no cap.
func WithExpansionRetries(retries int) Option {
	return func(u *UCT) {
		if retries > 0 {
			u.maxRetries = retries
		}
	}
}

func WithMetrics() Option {
	return func(u *UCT) {
		u.metrics = metrics.NewCollector()
	}
}

func NewUCT(options ...Option) *UCT {
	u := &UCT{ // Default values
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(u)
	}
	return u
}

// Search grows the tree rooted at root for the given number of iterations
// and returns the best immediate child of root under pure exploitation
// (exploration weight zero, ties broken at random). The tree is mutated in
// place. Panics if iterations is not positive, or if root still has no
// children afterwards.
func (u *UCT) Search(iterations int, root *Node) *Node {
	if iterations <= 0 {
		panic("search iterations must be positive")
	}

	u.metrics.Start(iterations)
	for i := 0; i < iterations; i++ {
		front := u.treePolicy(root)      // Selection, expansion
		reward := u.rollout(front.state) // Simulation
		backup(front, reward)            // Backpropagation
		u.metrics.AddIteration()

		if (i+1)%logInterval == 0 {
			log.Info().Msgf("iteration %d: %v", i+1, root)
		}
	}
	return u.BestChild(root, 0)
}

// Metric reports the counters of the last Search call. Zero values unless
// the searcher was built WithMetrics.
func (u *UCT) Metric() metrics.SearchMetric {
	return u.metrics.Complete()
}

// treePolicy descends from root until it expands a new child or reaches a
// terminal node. A coin flip lets descent win over expansion half the time
// even on a partially expanded node, trading completeness of expansion for
// search depth in games with large branching factors.
func (u *UCT) treePolicy(node *Node) *Node {
	for !node.state.Terminal() {
		if len(node.children) == 0 {
			return u.expand(node)
		}
		if u.rng.Float64() < 0.5 {
			node = u.BestChild(node, Scalar)
		} else if !node.fullyExpanded(u.numMoves) {
			return u.expand(node)
		} else {
			node = u.BestChild(node, Scalar)
		}
	}
	return node
}

// expand samples successors of node until one is novel among its children
// or terminal, then adds it as a new child and returns it. Terminal
// successors are accepted even when an equal child exists, so expansion
// stays possible when the space of distinct successors is smaller than the
// branching factor. Termination relies on the successor function making
// novel-or-terminal production likely; WithExpansionRetries bounds the
// loop otherwise.
func (u *UCT) expand(node *Node) *Node {
	state := node.state.NextState(u.rng)
	for retries := 0; node.hasChild(state) && !state.Terminal(); retries++ {
		if u.maxRetries > 0 && retries >= u.maxRetries {
			panic(fmt.Sprintf(
				"expansion exhausted: no novel successor after %d retries", u.maxRetries))
		}
		state = node.state.NextState(u.rng)
	}
	u.metrics.AddExpansion()
	return node.addChild(state)
}

// rollout plays uniformly random moves from state to the end of the game
// and returns the terminal reward. The tree is never touched.
func (u *UCT) rollout(state game.State) float64 {
	for !state.Terminal() {
		state = state.NextState(u.rng)
	}
	u.metrics.AddPlayout()
	return state.Reward()
}

// backup propagates one simulation result from node up to the root,
// adding a visit and the reward to every node on the path.
func backup(node *Node, reward float64) {
	for node != nil {
		node.update(reward)
		node = node.parent
	}
}

// BestChild scores node's children by UCB1 with the given exploration
// scalar and returns the arg-max, breaking exact ties uniformly at random.
// The parent's own visit count feeds the logarithm, normalizing the
// exploration term per subtree. Panics on a childless node.
func (u *UCT) BestChild(node *Node, scalar float64) *Node {
	if len(node.children) == 0 {
		panic("best child: node has no children")
	}

	bestScore := 0.0
	var best []*Node
	for _, child := range node.children {
		if child.visits == 0 {
			panic("best child: child has 0 visits")
		}
		exploit := child.rewards / float64(child.visits)
		explore := math.Sqrt(2 * math.Log(float64(node.visits)) / float64(child.visits))
		score := exploit + scalar*explore
		if score == bestScore {
			best = append(best, child)
		}
		if score > bestScore {
			best = []*Node{child}
			bestScore = score
		}
	}
	return best[u.rng.Intn(len(best))]
}
