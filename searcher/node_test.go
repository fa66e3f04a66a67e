package searcher

import (
	"testing"

	"mcts/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// mockState scripts its successors so tests control what expansion and
// rollout see. States compare equal iff their ids match.
type mockState struct {
	id         uint64
	terminal   bool
	reward     float64
	numMoves   int
	successors *script
}

type script struct {
	states []game.State
	calls  int
}

func (m mockState) NextState(rng *rand.Rand) game.State {
	next := m.successors.states[m.successors.calls%len(m.successors.states)]
	m.successors.calls++
	return next
}

func (m mockState) Terminal() bool       { return m.terminal }
func (m mockState) Reward() float64      { return m.reward }
func (m mockState) NumMoves() int        { return m.numMoves }
func (m mockState) Hash() game.StateHash { return game.StateHash(m.id) }

func TestNewNode(t *testing.T) {
	t.Run("starting stats", func(t *testing.T) {
		state := mockState{id: 7}

		node := NewNode(state)

		require.Equal(t, 1, node.visits,
			"Visits should start at 1, before any backup reaches the node")
		require.Equal(t, 0.0, node.rewards, "Rewards should start at 0")
		require.Empty(t, node.children, "Should start without children")
		require.Nil(t, node.parent, "Should start without a parent")
		require.Equal(t, state, node.State(), "Should wrap the given state")
	})
}

func TestNodeAddChild(t *testing.T) {
	t.Run("adding a child", func(t *testing.T) {
		node := NewNode(mockState{id: 0})
		childState := mockState{id: 1}

		child := node.addChild(childState)

		require.Equal(t, []*Node{child}, node.children, "Should own the new child")
		require.Equal(t, node, child.parent, "Child should point back at the node")
		require.Equal(t, childState, child.State(), "Child should wrap the successor state")
	})

	t.Run("children keep insertion order", func(t *testing.T) {
		node := NewNode(mockState{id: 0})

		first := node.addChild(mockState{id: 1})
		second := node.addChild(mockState{id: 2})

		require.Equal(t, []*Node{first, second}, node.children)
	})
}

func TestNodeUpdate(t *testing.T) {
	t.Run("first backup counts a second visit", func(t *testing.T) {
		node := NewNode(mockState{})

		node.update(0.5)

		require.Equal(t, 2, node.visits,
			"Construction plus the first backup should count two visits")
		require.Equal(t, 0.5, node.rewards, "Should accumulate the reward")
	})
}

func TestNodeFullyExpanded(t *testing.T) {
	t.Run("using the state's branching factor", func(t *testing.T) {
		node := NewNode(mockState{numMoves: 2})
		require.False(t, node.fullyExpanded(nil), "Should not be fully expanded without children")

		node.addChild(mockState{id: 1})
		require.False(t, node.fullyExpanded(nil), "Should not be fully expanded below the branching factor")

		node.addChild(mockState{id: 2})
		require.True(t, node.fullyExpanded(nil), "Should be fully expanded at the branching factor")
	})

	t.Run("using an override function", func(t *testing.T) {
		node := NewNode(mockState{numMoves: 4})
		node.addChild(mockState{id: 1})

		override := func(n *Node) int { return 1 }

		require.True(t, node.fullyExpanded(override),
			"Override should replace the state's branching factor")
		require.False(t, node.fullyExpanded(nil),
			"Without the override the state's branching factor should apply")
	})
}

func TestNodeHasChild(t *testing.T) {
	t.Run("matching by state hash", func(t *testing.T) {
		node := NewNode(mockState{id: 0})
		node.addChild(mockState{id: 1})

		require.True(t, node.hasChild(mockState{id: 1}),
			"Should find a child with an equal move sequence")
		require.False(t, node.hasChild(mockState{id: 2}),
			"Should not find a child with a different move sequence")
	})
}

func TestNodeDetach(t *testing.T) {
	t.Run("promoting a child to root", func(t *testing.T) {
		node := NewNode(mockState{id: 0})
		child := node.addChild(mockState{id: 1})

		child.Detach()

		require.Nil(t, child.parent, "Should drop the parent back-reference")
		require.Equal(t, []*Node{child}, node.children,
			"Detaching should not alter the old parent's children")
	})
}
