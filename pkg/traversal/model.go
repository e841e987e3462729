package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
)

// TraversalModel accumulates the state of a search label as it moves through the graph.
// Implementations are stateless w.r.t. the search: every state they work on is passed in and
// every returned state is a fresh vector, so labels never alias each other.
type TraversalModel interface {
	// StateVariableNames lists the variables of InitialState in index order.
	StateVariableNames() []string
	InitialState() TraversalState
	GetStateVariable(name string, state TraversalState) (StateVar, error)

	// TraverseEdge returns the state after moving from src along edge to dst.
	TraverseEdge(src da.Vertex, edge da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error)

	// AccessEdge returns the state after the transition v1 -e1-> v2 -e2-> v3, or false when the
	// transition does not change the state.
	AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
		state TraversalState) (TraversalState, bool, error)

	// EstimateTraversal returns an optimistic state for reaching dst from src. It must never
	// overestimate any variable.
	EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error)

	SerializeState(state TraversalState) *document.Document
	SerializeStateInfo(state TraversalState) *document.Document
}

// AccessCostModel is implemented by models whose transitions carry a cost of their own,
// such as turn penalties.
type AccessCostModel interface {
	AccessCost(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
		state TraversalState) (AccessResult, error)
}
