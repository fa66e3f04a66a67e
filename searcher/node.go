package searcher

import (
	"fmt"

	"mcts/game"
)

// NumMovesFunc overrides the fixed branching factor reported by a node's
// state, for games where the number of legal moves varies by position.
type NumMovesFunc func(node *Node) int

// Node is one vertex of the search tree. A node owns its children; the
// parent pointer is a non-owning back-reference used only for upward
// traversal during backup.
type Node struct {
	parent   *Node
	state    game.State
	children []*Node
	rewards  float64
	visits   int
}

// NewNode wraps a state in a childless node. The visit count starts at 1
// rather than 0: backup increments it again the first time it reaches the
// node, so a node's first sample is counted twice. Kept as observed in the
// reference behavior since changing it shifts UCB1's denominators.
func NewNode(state game.State) *Node {
	return &Node{
		state:   state,
		rewards: 0,
		visits:  1,
	}
}

func (n *Node) addChild(state game.State) *Node {
	child := NewNode(state)
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// update records one propagated simulation result.
func (n *Node) update(reward float64) {
	n.visits++
	n.rewards += reward
}

// fullyExpanded reports whether the node has a child for every distinct
// successor. numMoves overrides the state's branching factor when non-nil.
func (n *Node) fullyExpanded(numMoves NumMovesFunc) bool {
	max := n.state.NumMoves()
	if numMoves != nil {
		max = numMoves(n)
	}
	return len(n.children) == max
}

// hasChild reports whether a child already wraps an equal state. States
// are equal iff they hash equal, i.e. share the same move sequence.
func (n *Node) hasChild(state game.State) bool {
	hash := state.Hash()
	for _, child := range n.children {
		if child.state.Hash() == hash {
			return true
		}
	}
	return false
}

// Detach severs the node from its parent, making it a root. Callers that
// advance the search to a chosen child must detach it so later backups
// stop there instead of climbing into the discarded tree.
func (n *Node) Detach() {
	n.parent = nil
}

func (n *Node) State() game.State {
	return n.state
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Visits() int {
	return n.visits
}

func (n *Node) Rewards() float64 {
	return n.rewards
}

func (n *Node) String() string {
	return fmt.Sprintf("node; children: %d; visits: %d; reward: %f",
		len(n.children), n.visits, n.rewards)
}
