package datastructure

import (
	"github.com/lintang-b-s/compassx/pkg/util"
)

// Graph is the read-only road network the traversal models are evaluated against.
type Graph interface {
	GetVertex(id Index) (Vertex, error)
	GetEdge(id Index) (Edge, error)
	EdgeBetween(u, v Index) (Edge, error)
	NumberOfVertices() int
	NumberOfEdges() int
	ForVertices(handle func(v Vertex))
}

// MemoryGraph stores vertices and edges in id order with a per-vertex adjacency list.
// It is immutable once built and safe for concurrent readers.
type MemoryGraph struct {
	vertices []Vertex
	edges    []Edge
	outEdges [][]Index
}

// NewMemoryGraph. vertices[i] and edges[i] must carry id i.
func NewMemoryGraph(vertices []Vertex, edges []Edge) (*MemoryGraph, error) {
	outEdges := make([][]Index, len(vertices))
	for i, v := range vertices {
		if v.GetID() != Index(i) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "vertex at position %d has id %d", i, v.GetID())
		}
	}
	for i, e := range edges {
		if e.GetEdgeId() != Index(i) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "edge at position %d has id %d", i, e.GetEdgeId())
		}
		if int(e.GetSrc()) >= len(vertices) || int(e.GetDst()) >= len(vertices) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d references unknown vertex (%d,%d)", i, e.GetSrc(), e.GetDst())
		}
		outEdges[e.GetSrc()] = append(outEdges[e.GetSrc()], e.GetEdgeId())
	}

	return &MemoryGraph{
		vertices: vertices,
		edges:    edges,
		outEdges: outEdges,
	}, nil
}

func (g *MemoryGraph) GetVertex(id Index) (Vertex, error) {
	if int(id) >= len(g.vertices) {
		return Vertex{}, util.WrapErrorf(nil, util.ErrNotFound, "vertex %d not found", id)
	}
	return g.vertices[id], nil
}

func (g *MemoryGraph) GetEdge(id Index) (Edge, error) {
	if int(id) >= len(g.edges) {
		return Edge{}, util.WrapErrorf(nil, util.ErrNotFound, "edge %d not found", id)
	}
	return g.edges[id], nil
}

// EdgeBetween returns the shortest edge from u to v.
func (g *MemoryGraph) EdgeBetween(u, v Index) (Edge, error) {
	if int(u) >= len(g.vertices) {
		return Edge{}, util.WrapErrorf(nil, util.ErrNotFound, "vertex %d not found", u)
	}
	found := false
	var best Edge
	for _, eId := range g.outEdges[u] {
		e := g.edges[eId]
		if e.GetDst() == v && (!found || e.GetLength() < best.GetLength()) {
			best = e
			found = true
		}
	}
	if !found {
		return Edge{}, util.WrapErrorf(nil, util.ErrNotFound, "no edge from vertex %d to vertex %d", u, v)
	}
	return best, nil
}

func (g *MemoryGraph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *MemoryGraph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *MemoryGraph) ForVertices(handle func(v Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}
