package input_test

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/compassx/pkg"
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/plugin/input"
	"github.com/lintang-b-s/compassx/pkg/plugin/input/gridsearch"
	"github.com/lintang-b-s/compassx/pkg/plugin/input/vertexrtree"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunChainsPlugins(t *testing.T) {
	g, err := da.NewMemoryGraph([]da.Vertex{
		da.NewVertex(0, 0, 0),
		da.NewVertex(0, 0.01, 1),
	}, []da.Edge{da.NewEdge(0, 0, 1, 1112, 0, pkg.ROAD)})
	require.NoError(t, err)
	snap, err := vertexrtree.NewPlugin(g, 0.5, zap.NewNop())
	require.NoError(t, err)

	plugins := []input.Plugin{gridsearch.NewPlugin(""), snap}

	query, err := document.Parse([]byte(`{"origin_y":0,"grid_search":{"origin_x":[0.0001,0.0099]}}`))
	require.NoError(t, err)

	got, err := input.Run(plugins, query)
	require.NoError(t, err)
	require.Len(t, got, 2)

	v0, _ := got[0].Get(vertexrtree.OriginVertex)
	v1, _ := got[1].Get(vertexrtree.OriginVertex)
	require.Equal(t, int64(0), v0)
	require.Equal(t, int64(1), v1)
}

func TestRunWrapsPluginErrors(t *testing.T) {
	query, err := document.Parse([]byte(`{"grid_search":"nope"}`))
	require.NoError(t, err)

	_, err = input.Run([]input.Plugin{gridsearch.NewPlugin("")}, query)
	require.True(t, errors.Is(err, util.ErrBadParamInput))
	require.Contains(t, err.Error(), "grid_search")
}
