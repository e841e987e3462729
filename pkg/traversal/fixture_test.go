package traversal

import (
	"testing"

	"github.com/lintang-b-s/compassx/pkg"
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/guidance"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/stretchr/testify/require"
)

/*
testGraph. a staircase near the equator, 0.01 degree per step:

	            2 ---e2--> 3
	            ^
	            e1
	            |
	0 ---e0---> 1

0->1->2 is a left turn, 1->2->3 a right turn.
*/
func testGraph(t *testing.T) *da.MemoryGraph {
	t.Helper()
	vertices := []da.Vertex{
		da.NewVertex(0, 0, 0),
		da.NewVertex(0, 0.01, 1),
		da.NewVertex(0.01, 0.01, 2),
		da.NewVertex(0.01, 0.02, 3),
	}
	edges := []da.Edge{
		da.NewEdge(0, 0, 1, 1200, 0, pkg.RESIDENTIAL),
		da.NewEdge(1, 1, 2, 1250, 0.02, pkg.PRIMARY),
		da.NewEdge(2, 2, 3, 1300, -0.01, pkg.TRACK),
	}
	g, err := da.NewMemoryGraph(vertices, edges)
	require.NoError(t, err)
	return g
}

func testSpeedTable(t *testing.T) *SpeedTable {
	t.Helper()
	st, err := NewSpeedTable(map[string]float64{
		"residential": 50,
		"primary":     75,
	}, unit.KilometersPerHour)
	require.NoError(t, err)
	return st
}

func testTurnDelays(t *testing.T) *TurnDelayTraversalModel {
	t.Helper()
	m, err := NewTurnDelayTraversalModel(map[guidance.Turn]float64{
		guidance.LEFT:   30,
		guidance.RIGHT:  10,
		guidance.U_TURN: 120,
	}, unit.Seconds)
	require.NoError(t, err)
	return m
}

func vertex(t *testing.T, g da.Graph, id da.Index) da.Vertex {
	t.Helper()
	v, err := g.GetVertex(id)
	require.NoError(t, err)
	return v
}

func edge(t *testing.T, g da.Graph, id da.Index) da.Edge {
	t.Helper()
	e, err := g.GetEdge(id)
	require.NoError(t, err)
	return e
}

// fixedModel declares names but starts from an arbitrary state, for exercising composite checks.
type fixedModel struct {
	names   []string
	initial TraversalState
	delta   StateVar
}

func (m *fixedModel) StateVariableNames() []string { return m.names }
func (m *fixedModel) InitialState() TraversalState { return m.initial.Clone() }

func (m *fixedModel) GetStateVariable(name string, state TraversalState) (StateVar, error) {
	for i, n := range m.names {
		if n == name {
			return state[i], nil
		}
	}
	return 0, nil
}

func (m *fixedModel) TraverseEdge(src da.Vertex, e da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error) {
	next := state.Clone()
	for i := range next {
		next[i] += m.delta
	}
	return next, nil
}

func (m *fixedModel) AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (TraversalState, bool, error) {
	return nil, false, nil
}

func (m *fixedModel) EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error) {
	return state.Clone(), nil
}

func (m *fixedModel) SerializeState(state TraversalState) *document.Document {
	return document.New()
}

func (m *fixedModel) SerializeStateInfo(state TraversalState) *document.Document {
	return document.New()
}

// tollModel charges a flat cost on every transition without touching its state.
type tollModel struct {
	fixedModel
	toll Cost
}

func (m *tollModel) AccessCost(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (AccessResult, error) {
	return AccessResult{Cost: m.toll}, nil
}
