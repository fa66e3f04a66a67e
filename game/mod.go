package game

import "golang.org/x/exp/rand"

// StateHash identifies a state by its move history. Two states hash equal
// iff they were reached by the same move sequence.
type StateHash uint64

// State should be immutable - operations on State always return a new copy.
type State interface {
	// NextState returns the state reached by one random legal move. Must
	// only be called when Terminal() is false.
	NextState(rng *rand.Rand) State
	// Terminal reports whether no moves remain.
	Terminal() bool
	// Reward scores a terminal state in [0,1].
	Reward() float64
	// NumMoves is the branching factor: the number of distinct moves
	// available from this state.
	NumMoves() int
	Hash() StateHash
}
