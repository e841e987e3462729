package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/prediction"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

const EnergyVariable = "energy"

// EnergyTraversalModel accumulates the energy spent on each edge as predicted rate x distance.
// The rate comes from a prediction.Model fed with the road class speed and the edge grade.
type EnergyTraversalModel struct {
	singleVariable
	predictor      prediction.Model
	speeds         *SpeedTable
	energyRateUnit unit.EnergyRateUnit
}

func NewEnergyTraversalModel(predictor prediction.Model, speeds *SpeedTable,
	energyRateUnit unit.EnergyRateUnit) (*EnergyTraversalModel, error) {
	if predictor == nil {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "energy model requires a prediction model")
	}
	if _, err := unit.ParseEnergyRateUnit(string(energyRateUnit)); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid energy rate unit")
	}
	return &EnergyTraversalModel{
		singleVariable: singleVariable{name: EnergyVariable},
		predictor:      predictor,
		speeds:         speeds,
		energyRateUnit: energyRateUnit,
	}, nil
}

func (m *EnergyTraversalModel) TraverseEdge(src da.Vertex, edge da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error) {
	if err := m.checkState(state); err != nil {
		return nil, err
	}

	speed, speedUnit := m.speeds.Speed(edge.GetHighwayType())
	rate, rateUnit, err := m.predictor.Predict(speed, speedUnit, edge.GetGrade())
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrPrediction, "energy prediction failed on edge %d", edge.GetEdgeId())
	}
	if rateUnit != m.energyRateUnit {
		return nil, util.WrapErrorf(nil, util.ErrNumeric, "prediction returned %s, expected %s", rateUnit, m.energyRateUnit)
	}

	// regeneration is not credited, energy never decreases along a path
	rate = max(rate, 0)

	dist, err := unit.BaseDistanceUnit.Convert(edge.GetLength(), rateUnit.DistanceUnit())
	if err != nil {
		return nil, err
	}
	return m.add(state, rate*dist)
}

func (m *EnergyTraversalModel) AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (TraversalState, bool, error) {
	return nil, false, nil
}

// EstimateTraversal adds nothing. TraverseEdge clamps rates at zero, so zero is a lower bound.
func (m *EnergyTraversalModel) EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error) {
	return m.copyState(state)
}

func (m *EnergyTraversalModel) SerializeState(state TraversalState) *document.Document {
	return m.serialize(state)
}

func (m *EnergyTraversalModel) SerializeStateInfo(state TraversalState) *document.Document {
	return document.FromPairs(
		"energy_unit", m.energyRateUnit.EnergyUnit().String(),
		"energy_rate_unit", m.energyRateUnit.String(),
	)
}
