package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/unit"
)

const TimeVariable = "time"

// TimeTraversalModel accumulates free-flow travel time using the road class speed of each edge.
type TimeTraversalModel struct {
	singleVariable
	speeds   *SpeedTable
	timeUnit unit.TimeUnit
}

func NewTimeTraversalModel(speeds *SpeedTable, timeUnit unit.TimeUnit) *TimeTraversalModel {
	return &TimeTraversalModel{
		singleVariable: singleVariable{name: TimeVariable},
		speeds:         speeds,
		timeUnit:       timeUnit,
	}
}

func (m *TimeTraversalModel) TraverseEdge(src da.Vertex, edge da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error) {
	speed, speedUnit := m.speeds.Speed(edge.GetHighwayType())
	dist, err := unit.BaseDistanceUnit.Convert(edge.GetLength(), speedUnit.DistanceUnit())
	if err != nil {
		return nil, err
	}
	t, err := m.travelTime(dist, speed, speedUnit)
	if err != nil {
		return nil, err
	}
	return m.add(state, t)
}

func (m *TimeTraversalModel) AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (TraversalState, bool, error) {
	return nil, false, nil
}

// EstimateTraversal. great-circle distance at the fastest speed of the table.
func (m *TimeTraversalModel) EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error) {
	speed, speedUnit := m.speeds.MaxSpeed()
	dist, err := geo.CoordDistance(src.GetCoordinate(), dst.GetCoordinate(), speedUnit.DistanceUnit())
	if err != nil {
		return nil, err
	}
	t, err := m.travelTime(dist, speed, speedUnit)
	if err != nil {
		return nil, err
	}
	return m.add(state, t)
}

// travelTime. dist is in the distance unit of speedUnit.
func (m *TimeTraversalModel) travelTime(dist, speed float64, speedUnit unit.SpeedUnit) (float64, error) {
	return speedUnit.TimeUnit().Convert(dist/speed, m.timeUnit)
}

func (m *TimeTraversalModel) SerializeState(state TraversalState) *document.Document {
	return m.serialize(state)
}

func (m *TimeTraversalModel) SerializeStateInfo(state TraversalState) *document.Document {
	return document.FromPairs("time_unit", m.timeUnit.String())
}
