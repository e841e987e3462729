package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/guidance"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

const TurnDelayVariable = "turn_delay"

// TurnDelayTraversalModel accumulates the time lost at intersections. Each edge-to-edge
// transition is classified into a guidance.Turn and charged the delay configured for it.
type TurnDelayTraversalModel struct {
	singleVariable
	delays   map[guidance.Turn]float64
	timeUnit unit.TimeUnit
}

// NewTurnDelayTraversalModel. delays are in timeUnit; turns missing from delays cost nothing.
func NewTurnDelayTraversalModel(delays map[guidance.Turn]float64, timeUnit unit.TimeUnit) (*TurnDelayTraversalModel, error) {
	if _, err := unit.ParseTimeUnit(string(timeUnit)); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid turn delay time unit")
	}
	m := &TurnDelayTraversalModel{
		singleVariable: singleVariable{name: TurnDelayVariable},
		delays:         make(map[guidance.Turn]float64, len(delays)),
		timeUnit:       timeUnit,
	}
	for turn, delay := range delays {
		if !util.IsFinite(delay) || delay < 0 {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "delay for %s must be non-negative, got %v", turn, delay)
		}
		m.delays[turn] = delay
	}
	return m, nil
}

func (m *TurnDelayTraversalModel) TraverseEdge(src da.Vertex, edge da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error) {
	return m.copyState(state)
}

func (m *TurnDelayTraversalModel) AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (TraversalState, bool, error) {
	if err := m.checkState(state); err != nil {
		return nil, false, err
	}
	delay, err := m.delay(v1, v2, v3)
	if err != nil {
		return nil, false, err
	}
	if delay == 0 {
		return nil, false, nil
	}
	next, err := m.add(state, delay)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// AccessCost charges the delay through the turn_delay dimension only. The result carries no
// cost of its own, so a path ranked by turn_delay or by any other variable counts it once.
func (m *TurnDelayTraversalModel) AccessCost(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (AccessResult, error) {
	next, updated, err := m.AccessEdge(v1, e1, v2, e2, v3, state)
	if err != nil {
		return AccessResult{}, err
	}
	if !updated {
		return NoCost(), nil
	}
	return AccessResult{Cost: ZeroCost, UpdatedState: next}, nil
}

func (m *TurnDelayTraversalModel) delay(v1, v2, v3 da.Vertex) (float64, error) {
	angle := guidance.TurnAngle(v1.GetCoordinate(), v2.GetCoordinate(), v3.GetCoordinate())
	turn, err := guidance.ClassifyTurn(angle)
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrInternal, "cannot classify transition %d -> %d -> %d",
			v1.GetID(), v2.GetID(), v3.GetID())
	}
	return m.delays[turn], nil
}

// EstimateTraversal adds nothing since a route may need no turns at all.
func (m *TurnDelayTraversalModel) EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error) {
	return m.copyState(state)
}

func (m *TurnDelayTraversalModel) SerializeState(state TraversalState) *document.Document {
	return m.serialize(state)
}

func (m *TurnDelayTraversalModel) SerializeStateInfo(state TraversalState) *document.Document {
	return document.FromPairs("time_unit", m.timeUnit.String())
}
