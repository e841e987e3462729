package engine

import (
	"context"

	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/concurrent"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/guidance"
	"github.com/lintang-b-s/compassx/pkg/plugin/input"
	"github.com/lintang-b-s/compassx/pkg/plugin/input/gridsearch"
	"github.com/lintang-b-s/compassx/pkg/plugin/input/vertexrtree"
	"github.com/lintang-b-s/compassx/pkg/plugin/output"
	"github.com/lintang-b-s/compassx/pkg/plugin/output/summary"
	"github.com/lintang-b-s/compassx/pkg/prediction"
	"github.com/lintang-b-s/compassx/pkg/traversal"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
	"go.uber.org/zap"
)

const (
	PathField         = "path"
	CostVariableField = "cost_variable"
)

// Engine owns the composed traversal model and the query plugins. Everything it holds is
// read-only after NewEngine, so one Engine serves concurrent queries.
type Engine struct {
	cfg           *Config
	graph         da.Graph
	model         *traversal.CompositeTraversalModel
	predictor     prediction.Model
	inputPlugins  []input.Plugin
	outputPlugins []output.Plugin
	log           *zap.Logger
}

func NewEngine(cfg *Config, graph da.Graph, log *zap.Logger) (*Engine, error) {
	log.Info("Building traversal model...")

	speeds, err := traversal.NewSpeedTable(cfg.Traversal.Speeds, cfg.Traversal.SpeedUnit)
	if err != nil {
		return nil, err
	}

	components := []traversal.Component{
		{Key: traversal.DistanceVariable, Model: traversal.NewDistanceTraversalModel(cfg.Traversal.DistanceUnit)},
		{Key: traversal.TimeVariable, Model: traversal.NewTimeTraversalModel(speeds, cfg.Traversal.TimeUnit)},
	}

	var predictor prediction.Model
	if ec := cfg.Energy; ec != nil {
		log.Info("Loading energy prediction model", zap.String("type", ec.ModelType.String()),
			zap.String("path", ec.ModelPath))
		predictor, err = ec.ModelType.Build(ec.ModelPath, ec.SpeedUnit, ec.GradeUnit, ec.EnergyRateUnit)
		if err != nil {
			return nil, err
		}
		if ec.CacheSize > 0 {
			predictor, err = prediction.NewCachedModel(predictor, ec.CacheSize)
			if err != nil {
				return nil, err
			}
		}
		energy, err := traversal.NewEnergyTraversalModel(predictor, speeds, ec.EnergyRateUnit)
		if err != nil {
			return nil, err
		}
		components = append(components, traversal.Component{Key: traversal.EnergyVariable, Model: energy})
	}

	if tc := cfg.TurnDelay; tc != nil {
		delays := make(map[guidance.Turn]float64, len(tc.Delays))
		for name, delay := range tc.Delays {
			turn, err := guidance.ParseTurn(name)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrBuild, "invalid turn delay configuration")
			}
			delays[turn] = delay
		}
		turnDelay, err := traversal.NewTurnDelayTraversalModel(delays, tc.TimeUnit)
		if err != nil {
			return nil, err
		}
		components = append(components, traversal.Component{Key: traversal.TurnDelayVariable, Model: turnDelay})
	}

	model, err := traversal.NewCompositeTraversalModel(components...)
	if err != nil {
		return nil, err
	}
	if _, err := model.GetStateVariable(cfg.CostVariable, model.InitialState()); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "cost variable %q is not a state variable", cfg.CostVariable)
	}

	inputPlugins := []input.Plugin{gridsearch.NewPlugin(cfg.GridSearch.Field)}
	if vs := cfg.VertexSnap; vs != nil {
		snap, err := vertexrtree.NewPlugin(graph, vs.ToleranceKm, log)
		if err != nil {
			return nil, err
		}
		inputPlugins = append(inputPlugins, snap)
	}

	log.Info("Traversal model built", zap.Strings("state", model.StateVariableNames()),
		zap.String("cost_variable", cfg.CostVariable))

	return &Engine{
		cfg:           cfg,
		graph:         graph,
		model:         model,
		predictor:     predictor,
		inputPlugins:  inputPlugins,
		outputPlugins: []output.Plugin{summary.NewPlugin(model)},
		log:           log,
	}, nil
}

func (e *Engine) Model() traversal.TraversalModel {
	return e.model
}

func (e *Engine) Graph() da.Graph {
	return e.graph
}

// ExpandQuery runs the input plugins over query.
func (e *Engine) ExpandQuery(query *document.Document) ([]*document.Document, error) {
	return input.Run(e.inputPlugins, query)
}

// RunQuery expands query and evaluates every expanded query that carries a path, in parallel.
// Queries without a path are returned expanded but otherwise untouched.
func (e *Engine) RunQuery(ctx context.Context, query *document.Document) ([]*document.Document, error) {
	queries, err := e.ExpandQuery(query)
	if err != nil {
		return nil, err
	}
	return concurrent.Map(ctx, e.cfg.Workers, queries, e.evaluateQuery)
}

func (e *Engine) evaluateQuery(ctx context.Context, query *document.Document) (*document.Document, error) {
	v, ok := query.Get(PathField)
	if !ok {
		return query, nil
	}
	ids, err := parsePath(v)
	if err != nil {
		return nil, err
	}

	costVariable := e.cfg.CostVariable
	if cv, ok := query.Get(CostVariableField); ok {
		s, isStr := cv.(string)
		if !isStr {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%s must be a string, got %v", CostVariableField, cv)
		}
		costVariable = s
	}

	out := document.Clone(query)
	if _, err := e.evaluate(out, ids, costVariable); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluatePath scores the path through ids and returns the summary document.
func (e *Engine) EvaluatePath(ids []da.Index, costVariable string) (*document.Document, *traversal.PathResult, error) {
	if costVariable == "" {
		costVariable = e.cfg.CostVariable
	}
	out := document.New()
	res, err := e.evaluate(out, ids, costVariable)
	if err != nil {
		return nil, nil, err
	}
	return out, res, nil
}

func (e *Engine) evaluate(out *document.Document, ids []da.Index, costVariable string) (*traversal.PathResult, error) {
	if _, err := e.model.GetStateVariable(costVariable, e.model.InitialState()); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "unknown cost variable %q", costVariable)
	}
	res, err := traversal.EvaluatePath(e.model, e.graph, ids, costVariable)
	if err != nil {
		return nil, err
	}
	if err := output.Run(e.outputPlugins, out, res); err != nil {
		return nil, err
	}
	return res, nil
}

// PredictEnergyRate queries the configured energy model directly. grade is decimal.
func (e *Engine) PredictEnergyRate(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error) {
	if e.predictor == nil {
		return 0, "", util.WrapErrorf(nil, util.ErrNotFound, "no energy model configured")
	}
	return e.predictor.Predict(speed, speedUnit, grade)
}

// StateInfo describes the state vector: variable names in index order and per-component units.
func (e *Engine) StateInfo() *document.Document {
	names := e.model.StateVariableNames()
	vars := make([]any, len(names))
	for i, n := range names {
		vars[i] = n
	}
	return document.FromPairs(
		"state_variables", vars,
		"cost_variable", e.cfg.CostVariable,
		"units", e.model.SerializeStateInfo(e.model.InitialState()),
	)
}

func parsePath(v any) ([]da.Index, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%s must be a list of vertex ids, got %v", PathField, v)
	}
	ids := make([]da.Index, len(list))
	for i, el := range list {
		n, ok := el.(int64)
		if !ok || n < 0 || n > int64(^uint32(0)) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%s[%d] is not a vertex id: %v", PathField, i, el)
		}
		ids[i] = da.Index(n)
	}
	return ids, nil
}
