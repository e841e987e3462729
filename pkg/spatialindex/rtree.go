package spatialindex

import (
	"math"

	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes graph vertices by coordinate. It is read-only after Build.
type Rtree struct {
	tr *rtree.RTreeG[da.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. insert every vertex of graph as a point leaf.
func (rt *Rtree) Build(graph da.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	graph.ForVertices(func(v da.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// searchBox visits every vertex in the box around (qLat, qLon) that covers a circle of radius km.
// A box crossing the antimeridian is searched as two boxes, one on each side.
func (rt *Rtree) searchBox(qLat, qLon, radius float64, iter func(min, max [2]float64, id da.Index) bool) {
	// corners of the box at 225 and 45 degrees, far enough that the box covers the whole circle
	diagonal := radius * math.Sqrt2
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, diagonal)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, diagonal)

	if lowerLon <= upperLon {
		rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, iter)
		return
	}
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{180, upperLat}, iter)
	rt.tr.Search([2]float64{-180, lowerLat}, [2]float64{upperLon, upperLat}, iter)
}

// SearchWithinRadius returns all vertices within radius (in km) of (qLat, qLon), unordered.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []da.Index {
	q := geo.NewCoordinate(qLat, qLon)
	results := make([]da.Index, 0, 10)
	rt.searchBox(qLat, qLon, radius,
		func(min, max [2]float64, id da.Index) bool {
			d, err := geo.CoordDistance(q, geo.NewCoordinate(min[1], min[0]), unit.Kilometers)
			if err == nil && d <= radius {
				results = append(results, id)
			}
			return true
		})
	return results
}

// Nearest returns the vertex closest to (qLat, qLon) within radius km and its distance in meters.
func (rt *Rtree) Nearest(qLat, qLon, radius float64) (da.Index, float64, bool) {
	q := geo.NewCoordinate(qLat, qLon)
	var (
		best     da.Index
		bestDist = math.Inf(1)
		found    bool
	)
	rt.searchBox(qLat, qLon, radius,
		func(min, max [2]float64, id da.Index) bool {
			d, err := geo.CoordDistance(q, geo.NewCoordinate(min[1], min[0]), unit.Meters)
			if err != nil || d > radius*1000 {
				return true
			}
			if d < bestDist || (d == bestDist && id < best) {
				best, bestDist, found = id, d, true
			}
			return true
		})
	return best, bestDist, found
}
