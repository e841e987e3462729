package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// PathResult is the state and cost accumulated along a fixed vertex sequence.
type PathResult struct {
	State      TraversalState
	Vertices   []da.Vertex
	Edges      []da.Edge
	AccessCost Cost
	Cost       Cost
}

// EvaluatePath folds model over the path through vertexIDs: TraverseEdge on every edge and an
// access transition at every interior vertex. Cost is the costVariable projection of the final
// state plus the access costs charged on the way.
func EvaluatePath(model TraversalModel, graph da.Graph, vertexIDs []da.Index, costVariable string) (*PathResult, error) {
	if len(vertexIDs) < 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "path needs at least 2 vertices, got %d", len(vertexIDs))
	}

	res := &PathResult{
		Vertices:   make([]da.Vertex, len(vertexIDs)),
		Edges:      make([]da.Edge, len(vertexIDs)-1),
		AccessCost: ZeroCost,
	}
	for i, id := range vertexIDs {
		v, err := graph.GetVertex(id)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "path vertex %d", i)
		}
		res.Vertices[i] = v
		if i > 0 {
			e, err := graph.EdgeBetween(vertexIDs[i-1], id)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput, "path edge %d", i-1)
			}
			res.Edges[i-1] = e
		}
	}

	acm, hasAccessCost := model.(AccessCostModel)
	state := model.InitialState()
	for i, e := range res.Edges {
		if i > 0 {
			v1, v2, v3 := res.Vertices[i-1], res.Vertices[i], res.Vertices[i+1]
			if hasAccessCost {
				r, err := acm.AccessCost(v1, res.Edges[i-1], v2, e, v3, state)
				if err != nil {
					return nil, err
				}
				res.AccessCost = res.AccessCost.Add(r.Cost)
				if r.HasUpdatedState() {
					state = r.UpdatedState
				}
			} else {
				next, updated, err := model.AccessEdge(v1, res.Edges[i-1], v2, e, v3, state)
				if err != nil {
					return nil, err
				}
				if updated {
					state = next
				}
			}
		}

		next, err := model.TraverseEdge(res.Vertices[i], e, res.Vertices[i+1], state)
		if err != nil {
			return nil, err
		}
		state = next
	}

	projected, err := model.GetStateVariable(costVariable, state)
	if err != nil {
		return nil, err
	}
	cost, err := NewCost(float64(projected))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNumeric, "cost variable %q", costVariable)
	}

	res.State = state
	res.Cost = cost.Add(res.AccessCost)
	return res, nil
}
