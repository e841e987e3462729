package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/compassx/pkg"
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/prediction"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testGraph(t *testing.T) *da.MemoryGraph {
	t.Helper()
	g, err := da.NewMemoryGraph([]da.Vertex{
		da.NewVertex(0, 0, 0),
		da.NewVertex(0, 0.01, 1),
		da.NewVertex(0.01, 0.01, 2),
	}, []da.Edge{
		da.NewEdge(0, 0, 1, 1200, 0, pkg.RESIDENTIAL),
		da.NewEdge(1, 1, 2, 1250, 0.02, pkg.PRIMARY),
	})
	require.NoError(t, err)
	return g
}

// energyModelPath is a LightGBM model with a single constant tree predicting 0.25.
func energyModelPath(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", "energy_constant.txt"))
	require.NoError(t, err)
	return path
}

func loadConfig(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(yaml)))
	return LoadConfig(v)
}

func fullConfigYAML(modelPath string) string {
	return fmt.Sprintf(`
cost_variable: time
traversal:
  distance_unit: kilometers
  time_unit: seconds
  speed_unit: kilometers_per_hour
  speeds:
    residential: 50
    primary: 75
energy:
  model_type: smartcore
  model_path: %s
  speed_unit: kilometers_per_hour
  grade_unit: percent
  energy_rate_unit: kilowatt_hours_per_kilometer
  cache_size: 128
turn_delay:
  time_unit: seconds
  delays:
    left: 30
    right: 10
vertex_snap:
  tolerance_km: 0.5
server:
  port: 8080
  timeout: 5s
`, modelPath)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(t, fullConfigYAML("/tmp/model.txt"))
	require.NoError(t, err)
	require.Equal(t, "time", cfg.CostVariable)
	require.Equal(t, unit.Kilometers, cfg.Traversal.DistanceUnit)
	require.Equal(t, 75.0, cfg.Traversal.Speeds["primary"])
	require.NotNil(t, cfg.Energy)
	require.Equal(t, prediction.TreeEnsemble, cfg.Energy.ModelType)
	require.Equal(t, unit.KilowattHoursPerKilometer, cfg.Energy.EnergyRateUnit)
	require.Equal(t, 30.0, cfg.TurnDelay.Delays["left"])
	require.Equal(t, 0.5, cfg.VertexSnap.ToleranceKm)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.Timeout)
	require.Equal(t, pkg.DEFAULT_GRID_SEARCH_FIELD, cfg.GridSearch.Field)
	require.Equal(t, 4, cfg.Workers)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(t, "{}")
	require.NoError(t, err)
	require.Equal(t, pkg.DEFAULT_COST_VARIABLE, cfg.CostVariable)
	require.Equal(t, unit.Meters, cfg.Traversal.DistanceUnit)
	require.Nil(t, cfg.Energy)
	require.Nil(t, cfg.TurnDelay)
	require.Equal(t, 6060, cfg.Server.Port)
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "unknown unit", yaml: "traversal:\n  distance_unit: furlongs\n"},
		{name: "unknown model type", yaml: "energy:\n  model_type: xgboost\n"},
		{name: "negative speed", yaml: "traversal:\n  speeds:\n    primary: -5\n"},
		{name: "port out of range", yaml: "server:\n  port: 70000\n"},
		{name: "energy without path", yaml: "energy:\n  model_type: onnx\n  speed_unit: miles_per_hour\n  grade_unit: decimal\n  energy_rate_unit: gallons_gasoline_per_mile\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(t, tc.yaml)
			require.Error(t, err)
			require.True(t, errors.Is(err, util.ErrBadParamInput))
		})
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := loadConfig(t, fullConfigYAML(energyModelPath(t)))
	require.NoError(t, err)
	e, err := NewEngine(cfg, testGraph(t), zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, []string{"distance", "time", "energy", "turn_delay"}, e.Model().StateVariableNames())

	info, err := document.Marshal(e.StateInfo())
	require.NoError(t, err)
	require.Contains(t, string(info), `"state_variables":["distance","time","energy","turn_delay"]`)

	rate, rateUnit, err := e.PredictEnergyRate(40, unit.KilometersPerHour, 0.01)
	require.NoError(t, err)
	require.Equal(t, 0.25, rate)
	require.Equal(t, unit.KilowattHoursPerKilometer, rateUnit)
}

func TestNewEngineErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "cost variable without model", yaml: "cost_variable: energy\n"},
		{name: "unknown turn", yaml: "turn_delay:\n  time_unit: seconds\n  delays:\n    barrel_roll: 3\n"},
		{name: "missing model file", yaml: "energy:\n  model_type: onnx\n  model_path: /nonexistent/model.txt\n  speed_unit: miles_per_hour\n  grade_unit: decimal\n  energy_rate_unit: gallons_gasoline_per_mile\n"},
		{name: "unknown road class", yaml: "traversal:\n  speeds:\n    autobahn: 130\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := loadConfig(t, tc.yaml)
			require.NoError(t, err)
			_, err = NewEngine(cfg, testGraph(t), zap.NewNop())
			require.Error(t, err)
			require.True(t, errors.Is(err, util.ErrBuild))
		})
	}
}

func TestRunQuery(t *testing.T) {
	e := newTestEngine(t)

	query, err := document.Parse([]byte(`{"name":"sweep","origin_x":0,"origin_y":0,"grid_search":{"path":[[0,1,2],[0,1]],"cost_variable":["time","distance"]}}`))
	require.NoError(t, err)

	results, err := e.RunQuery(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// first dimension (path) varies fastest
	wantCosts := []float64{
		(1.2/50 + 1.25/75) * 3600,
		1.2 / 50 * 3600,
		2.45,
		1.2,
	}
	for i, res := range results {
		cost, ok := res.Get("cost")
		require.Truef(t, ok, "result %d has no cost", i)
		require.InDeltaf(t, wantCosts[i], cost, 1e-9, "result %d", i)

		name, _ := res.Get("name")
		require.Equal(t, "sweep", name)
	}

	summary, _, err := document.GetObject(results[0], "traversal_summary")
	require.NoError(t, err)
	energy, _, err := document.GetObject(summary, "energy")
	require.NoError(t, err)
	kwh, _ := energy.Get("energy")
	require.InDelta(t, 0.25*2.45, kwh, 1e-12)

	// the left turn is recorded once, in the turn_delay dimension
	turns, _, err := document.GetObject(summary, "turn_delay")
	require.NoError(t, err)
	delay, _ := turns.Get("turn_delay")
	require.InDelta(t, 30.0, delay, 1e-12)
	accessCost, _ := results[0].Get("access_cost")
	require.Equal(t, 0.0, accessCost)
}

func TestRunQuerySnapsWithoutPath(t *testing.T) {
	e := newTestEngine(t)

	query, err := document.Parse([]byte(`{"origin_x":0.0001,"origin_y":0.0,"destination_x":0.0101,"destination_y":0.0099}`))
	require.NoError(t, err)

	results, err := e.RunQuery(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, results, 1)

	origin, _ := results[0].Get("origin_vertex")
	destination, _ := results[0].Get("destination_vertex")
	require.Equal(t, int64(0), origin)
	require.Equal(t, int64(2), destination)
	_, hasCost := results[0].Get("cost")
	require.False(t, hasCost)
}

func TestRunQueryErrors(t *testing.T) {
	e := newTestEngine(t)

	testCases := []struct {
		name  string
		input string
	}{
		{name: "unknown cost variable", input: `{"origin_x":0,"origin_y":0,"path":[0,1],"cost_variable":"fuel"}`},
		{name: "path is not a list", input: `{"origin_x":0,"origin_y":0,"path":"0-1"}`},
		{name: "negative vertex", input: `{"origin_x":0,"origin_y":0,"path":[0,-1]}`},
		{name: "no edge", input: `{"origin_x":0,"origin_y":0,"path":[2,0]}`},
		{name: "grid search control is a list", input: `{"grid_search":[1]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := document.Parse([]byte(tc.input))
			require.NoError(t, err)
			_, err = e.RunQuery(context.Background(), query)
			require.Error(t, err)
			require.True(t, errors.Is(err, util.ErrBadParamInput))
		})
	}
}

func TestPredictEnergyRateWithoutModel(t *testing.T) {
	cfg, err := loadConfig(t, "{}")
	require.NoError(t, err)
	e, err := NewEngine(cfg, testGraph(t), zap.NewNop())
	require.NoError(t, err)

	_, _, err = e.PredictEnergyRate(10, unit.MilesPerHour, 0)
	require.True(t, errors.Is(err, util.ErrNotFound))

	out, res, err := e.EvaluatePath([]da.Index{0, 1, 2}, "")
	require.NoError(t, err)
	require.InDelta(t, 2450, float64(res.Cost), 1e-9)
	_, hasGeometry := out.Get("geometry")
	require.True(t, hasGeometry)
}
