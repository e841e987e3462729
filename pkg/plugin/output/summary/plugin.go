package summary

import (
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/traversal"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/twpayne/go-polyline"
)

const (
	TraversalSummary = "traversal_summary"
	TraversalInfo    = "traversal_info"
	Cost             = "cost"
	AccessCost       = "access_cost"
	Geometry         = "geometry"
	EdgeIds          = "edge_ids"
)

// Plugin writes the final traversal state, its units, the path cost and the encoded path geometry.
type Plugin struct {
	model traversal.TraversalModel
}

func NewPlugin(model traversal.TraversalModel) *Plugin {
	return &Plugin{model: model}
}

func (p *Plugin) Name() string {
	return "traversal_summary"
}

func (p *Plugin) Process(out *document.Document, result *traversal.PathResult) error {
	if result == nil {
		return util.WrapErrorf(nil, util.ErrInternal, "traversal summary needs a path result")
	}
	out.Set(TraversalSummary, p.model.SerializeState(result.State))
	out.Set(TraversalInfo, p.model.SerializeStateInfo(result.State))
	out.Set(Cost, float64(result.Cost))
	out.Set(AccessCost, float64(result.AccessCost))

	edgeIds := make([]any, len(result.Edges))
	for i, e := range result.Edges {
		edgeIds[i] = int64(e.GetEdgeId())
	}
	out.Set(EdgeIds, edgeIds)

	coords := make([][]float64, len(result.Vertices))
	for i, v := range result.Vertices {
		coords[i] = []float64{v.GetLat(), v.GetLon()}
	}
	out.Set(Geometry, string(polyline.EncodeCoords(coords)))
	return nil
}
