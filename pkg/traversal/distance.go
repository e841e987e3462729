package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/unit"
)

const DistanceVariable = "distance"

// DistanceTraversalModel accumulates travelled distance in distanceUnit.
type DistanceTraversalModel struct {
	singleVariable
	distanceUnit unit.DistanceUnit
}

func NewDistanceTraversalModel(distanceUnit unit.DistanceUnit) *DistanceTraversalModel {
	return &DistanceTraversalModel{
		singleVariable: singleVariable{name: DistanceVariable},
		distanceUnit:   distanceUnit,
	}
}

func (m *DistanceTraversalModel) TraverseEdge(src da.Vertex, edge da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error) {
	dist, err := unit.BaseDistanceUnit.Convert(edge.GetLength(), m.distanceUnit)
	if err != nil {
		return nil, err
	}
	return m.add(state, dist)
}

func (m *DistanceTraversalModel) AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (TraversalState, bool, error) {
	return nil, false, nil
}

func (m *DistanceTraversalModel) EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error) {
	dist, err := geo.CoordDistance(src.GetCoordinate(), dst.GetCoordinate(), m.distanceUnit)
	if err != nil {
		return nil, err
	}
	return m.add(state, dist)
}

func (m *DistanceTraversalModel) SerializeState(state TraversalState) *document.Document {
	return m.serialize(state)
}

func (m *DistanceTraversalModel) SerializeStateInfo(state TraversalState) *document.Document {
	return document.FromPairs("distance_unit", m.distanceUnit.String())
}
