package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"golang.org/x/exp/rand"
)

const (
	// NumTurns is the total number of turns in a game.
	NumTurns = 10
	// Goal is the target for the accumulated value.
	Goal = 0
	// MaxValue bounds the distance from Goal over any legal game, used to
	// normalize rewards into [0,1].
	MaxValue = 5.0 * (NumTurns - 1) * NumTurns / 2
)

// BaseMoves are the move choices before scaling by the current turn.
var BaseMoves = []int{2, -2, 3, -3}

// GameState is one position in the accumulation game. At a state with t
// turns remaining the legal moves are BaseMoves scaled by t; the chosen
// move is added to Value. The goal is to end the game with Value as close
// to Goal as possible. Moves do not commute and early mistakes are more
// costly, which makes the game a useful search benchmark despite its size.
type GameState struct {
	Value int   // Accumulated value
	Moves []int // Scaled moves taken so far
	Turn  int   // Turns remaining
}

// NewGameState returns the starting position with the full turn count.
func NewGameState() GameState {
	return GameState{Turn: NumTurns}
}

// NextState plays one random legal move and returns the resulting state.
// The receiver is not modified.
func (gs GameState) NextState(rng *rand.Rand) State {
	move := BaseMoves[rng.Intn(len(BaseMoves))] * gs.Turn

	moves := make([]int, len(gs.Moves), len(gs.Moves)+1)
	copy(moves, gs.Moves)

	return GameState{
		Value: gs.Value + move,
		Moves: append(moves, move),
		Turn:  gs.Turn - 1,
	}
}

// Terminal reports whether the game is over.
func (gs GameState) Terminal() bool {
	return gs.Turn == 0
}

// Reward measures how close the accumulated value got to the goal,
// normalized to [0,1]. Only meaningful on a terminal state.
func (gs GameState) Reward() float64 {
	return 1.0 - math.Abs(float64(gs.Value-Goal))/MaxValue
}

// NumMoves is the branching factor, constant across turns.
func (gs GameState) NumMoves() int {
	return len(BaseMoves)
}

// Hash digests the move sequence. Value and Turn are deterministic
// functions of the moves, so they are excluded without loosening the
// "equal iff same move sequence" semantics.
func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()
	for _, move := range gs.Moves {
		binary.Write(hasher, binary.LittleEndian, int64(move))
	}
	return StateHash(hasher.Sum64())
}

func (gs GameState) String() string {
	return fmt.Sprintf("value: %d; moves: %v", gs.Value, gs.Moves)
}
