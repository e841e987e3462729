package traversal

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	rate     float64
	rateUnit unit.EnergyRateUnit
	err      error

	gotSpeed     float64
	gotSpeedUnit unit.SpeedUnit
	gotGrade     float64
}

func (p *fakePredictor) Predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error) {
	p.gotSpeed, p.gotSpeedUnit, p.gotGrade = speed, speedUnit, grade
	if p.err != nil {
		return 0, "", p.err
	}
	return p.rate, p.rateUnit, nil
}

func TestEnergyTraversalModel(t *testing.T) {
	g := testGraph(t)
	v1, v2 := vertex(t, g, 1), vertex(t, g, 2)
	e1 := edge(t, g, 1)

	p := &fakePredictor{rate: 0.2, rateUnit: unit.KilowattHoursPerKilometer}
	m, err := NewEnergyTraversalModel(p, testSpeedTable(t), unit.KilowattHoursPerKilometer)
	require.NoError(t, err)

	next, err := m.TraverseEdge(v1, e1, v2, m.InitialState())
	require.NoError(t, err)
	require.InDelta(t, 0.2*1.25, float64(next[0]), 1e-12)
	require.Equal(t, 75.0, p.gotSpeed)
	require.Equal(t, unit.KilometersPerHour, p.gotSpeedUnit)
	require.Equal(t, 0.02, p.gotGrade)

	est, err := m.EstimateTraversal(v1, v2, next)
	require.NoError(t, err)
	require.Equal(t, next, est)

	info := m.SerializeStateInfo(next)
	energyUnit, _ := info.Get("energy_unit")
	require.Equal(t, "kilowatt_hours", energyUnit)
}

func TestEnergyTraversalModelClampsNegativeRates(t *testing.T) {
	g := testGraph(t)
	v2, v3 := vertex(t, g, 2), vertex(t, g, 3)
	downhill := edge(t, g, 2)

	testCases := []struct {
		name string
		rate float64
		want float64
	}{
		{name: "regeneration", rate: -0.05, want: 0},
		{name: "zero", rate: 0, want: 0},
		{name: "positive", rate: 0.1, want: 0.1 * 1.3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePredictor{rate: tc.rate, rateUnit: unit.KilowattHoursPerKilometer}
			m, err := NewEnergyTraversalModel(p, testSpeedTable(t), unit.KilowattHoursPerKilometer)
			require.NoError(t, err)

			start := TraversalState{2}
			next, err := m.TraverseEdge(v2, downhill, v3, start)
			require.NoError(t, err)
			require.InDelta(t, 2+tc.want, float64(next[0]), 1e-12)
			require.GreaterOrEqual(t, float64(next[0]), float64(start[0]))

			est, err := m.EstimateTraversal(v2, v3, start)
			require.NoError(t, err)
			require.LessOrEqual(t, float64(est[0]), float64(next[0]))
		})
	}
}

func TestEnergyTraversalModelErrors(t *testing.T) {
	g := testGraph(t)
	v1, v2 := vertex(t, g, 1), vertex(t, g, 2)
	e1 := edge(t, g, 1)

	testCases := []struct {
		name      string
		predictor *fakePredictor
		wantErr   error
	}{
		{
			name:      "prediction failure",
			predictor: &fakePredictor{err: util.WrapErrorf(nil, util.ErrPrediction, "backend down")},
			wantErr:   util.ErrPrediction,
		},
		{
			name:      "rate unit mismatch",
			predictor: &fakePredictor{rate: 0.01, rateUnit: unit.GallonsDieselPerMile},
			wantErr:   util.ErrNumeric,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewEnergyTraversalModel(tc.predictor, testSpeedTable(t), unit.KilowattHoursPerKilometer)
			require.NoError(t, err)
			_, err = m.TraverseEdge(v1, e1, v2, m.InitialState())
			require.True(t, errors.Is(err, tc.wantErr))
		})
	}

	_, err := NewEnergyTraversalModel(nil, testSpeedTable(t), unit.KilowattHoursPerKilometer)
	require.True(t, errors.Is(err, util.ErrBuild))
}

func TestCompositePropagatesPredictionError(t *testing.T) {
	g := testGraph(t)
	p := &fakePredictor{err: util.WrapErrorf(nil, util.ErrPrediction, "backend down")}
	energy, err := NewEnergyTraversalModel(p, testSpeedTable(t), unit.KilowattHoursPerKilometer)
	require.NoError(t, err)
	m, err := NewCompositeTraversalModel(
		Component{Key: "distance", Model: NewDistanceTraversalModel(unit.Meters)},
		Component{Key: "energy", Model: energy},
	)
	require.NoError(t, err)

	_, err = m.TraverseEdge(vertex(t, g, 0), edge(t, g, 0), vertex(t, g, 1), m.InitialState())
	require.True(t, errors.Is(err, util.ErrPrediction))
}
