package datastructure

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(t *testing.T) *MemoryGraph {
	t.Helper()
	vertices := []Vertex{
		NewVertex(-7.7829, 110.3671, 0),
		NewVertex(-7.7926, 110.3658, 1),
		NewVertex(-7.8012, 110.3647, 2),
	}
	edges := []Edge{
		NewEdge(0, 0, 1, 1085.5, 0.01, pkg.PRIMARY),
		NewEdge(1, 1, 2, 960.25, -0.004, pkg.SECONDARY),
		NewEdge(2, 0, 1, 1500, 0, pkg.RESIDENTIAL),
		NewEdge(3, 1, 0, 1085.5, -0.01, pkg.PRIMARY),
	}
	g, err := NewMemoryGraph(vertices, edges)
	require.NoError(t, err)
	return g
}

func TestMemoryGraph(t *testing.T) {
	g := buildTestGraph(t)
	require.Equal(t, 3, g.NumberOfVertices())
	require.Equal(t, 4, g.NumberOfEdges())

	testCases := []struct {
		name     string
		u, v     Index
		wantEdge Index
		wantErr  bool
	}{
		{name: "shortest of parallel edges", u: 0, v: 1, wantEdge: 0},
		{name: "reverse edge", u: 1, v: 0, wantEdge: 3},
		{name: "no edge", u: 2, v: 0, wantErr: true},
		{name: "unknown vertex", u: 9, v: 0, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := g.EdgeBetween(tc.u, tc.v)
			if tc.wantErr {
				require.True(t, errors.Is(err, util.ErrNotFound))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantEdge, e.GetEdgeId())
		})
	}

	count := 0
	g.ForVertices(func(v Vertex) { count++ })
	require.Equal(t, 3, count)

	_, err := g.GetVertex(3)
	require.True(t, errors.Is(err, util.ErrNotFound))
}

func TestNewMemoryGraphValidation(t *testing.T) {
	_, err := NewMemoryGraph([]Vertex{NewVertex(0, 0, 1)}, nil)
	require.True(t, errors.Is(err, util.ErrBadParamInput))

	_, err = NewMemoryGraph([]Vertex{NewVertex(0, 0, 0)}, []Edge{NewEdge(0, 0, 5, 1, 0, pkg.ROAD)})
	require.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestGraphRoundTrip(t *testing.T) {
	g := buildTestGraph(t)
	path := filepath.Join(t.TempDir(), "graph.txt.bz2")
	require.NoError(t, g.WriteGraph(path))

	read, err := ReadGraph(path)
	require.NoError(t, err)
	require.Equal(t, g.NumberOfVertices(), read.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), read.NumberOfEdges())

	for id := 0; id < g.NumberOfEdges(); id++ {
		want, err := g.GetEdge(Index(id))
		require.NoError(t, err)
		got, err := read.GetEdge(Index(id))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	g.ForVertices(func(v Vertex) {
		got, err := read.GetVertex(v.GetID())
		require.NoError(t, err)
		require.Equal(t, v, got)
	})
}
