package vertexrtree

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/spatialindex"
	"github.com/lintang-b-s/compassx/pkg/util"
	"go.uber.org/zap"
)

const (
	OriginX           = "origin_x"
	OriginY           = "origin_y"
	DestinationX      = "destination_x"
	DestinationY      = "destination_y"
	OriginVertex      = "origin_vertex"
	DestinationVertex = "destination_vertex"
)

// Plugin snaps the origin and destination coordinates of a query (x = lon, y = lat) to the
// nearest graph vertex.
type Plugin struct {
	index     *spatialindex.Rtree
	tolerance float64 // km
}

// NewPlugin indexes every vertex of graph. tolerance is the snapping radius in km.
func NewPlugin(graph da.Graph, tolerance float64, log *zap.Logger) (*Plugin, error) {
	if !util.IsFinite(tolerance) || tolerance <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "vertex snapping tolerance must be positive, got %v", tolerance)
	}
	rt := spatialindex.NewRtree()
	rt.Build(graph, log)
	return &Plugin{index: rt, tolerance: tolerance}, nil
}

func (p *Plugin) Name() string {
	return "vertex_rtree"
}

func (p *Plugin) Process(query *document.Document) ([]*document.Document, error) {
	out := document.Clone(query)

	found, err := p.snap(out, OriginX, OriginY, OriginVertex, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "query is missing %s and %s", OriginX, OriginY)
	}
	if _, err := p.snap(out, DestinationX, DestinationY, DestinationVertex, false); err != nil {
		return nil, err
	}
	return []*document.Document{out}, nil
}

// snap writes the vertex nearest to (xKey, yKey) under vertexKey. It reports false when the
// coordinate is absent and not required.
func (p *Plugin) snap(query *document.Document, xKey, yKey, vertexKey string, required bool) (bool, error) {
	x, hasX, err := document.GetFloat(query, xKey)
	if err != nil {
		return false, err
	}
	y, hasY, err := document.GetFloat(query, yKey)
	if err != nil {
		return false, err
	}
	if !hasX && !hasY {
		return false, nil
	}
	if hasX != hasY {
		return false, util.WrapErrorf(nil, util.ErrBadParamInput, "%s and %s must be given together", xKey, yKey)
	}
	if y < -90 || y > 90 || x < -180 || x > 180 {
		return false, util.WrapErrorf(nil, util.ErrBadParamInput, "coordinate (%v, %v) is outside the valid lon/lat range", x, y)
	}

	id, _, ok := p.index.Nearest(y, x, p.tolerance)
	if !ok {
		return false, util.WrapErrorf(nil, util.ErrBadParamInput, "no vertex within %v km of (%v, %v)", p.tolerance, x, y)
	}
	query.Set(vertexKey, int64(id))
	return true, nil
}
