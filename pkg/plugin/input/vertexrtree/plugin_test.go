package vertexrtree

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/compassx/pkg"
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPlugin(t *testing.T) *Plugin {
	t.Helper()
	g, err := da.NewMemoryGraph([]da.Vertex{
		da.NewVertex(-7.7829, 110.3671, 0),
		da.NewVertex(-7.7926, 110.3658, 1),
	}, []da.Edge{da.NewEdge(0, 0, 1, 1085, 0, pkg.PRIMARY)})
	require.NoError(t, err)

	p, err := NewPlugin(g, 0.2, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestProcess(t *testing.T) {
	p := newTestPlugin(t)

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "origin only",
			input: `{"origin_x":110.3672,"origin_y":-7.7830}`,
			want:  `{"origin_x":110.3672,"origin_y":-7.783,"origin_vertex":0}`,
		},
		{
			name:  "origin and destination",
			input: `{"origin_x":110.3672,"origin_y":-7.7830,"destination_x":110.3657,"destination_y":-7.7925}`,
			want:  `{"origin_x":110.3672,"origin_y":-7.783,"destination_x":110.3657,"destination_y":-7.7925,"origin_vertex":0,"destination_vertex":1}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := document.Parse([]byte(tc.input))
			require.NoError(t, err)

			got, err := p.Process(query)
			require.NoError(t, err)
			require.Len(t, got, 1)
			b, err := document.Marshal(got[0])
			require.NoError(t, err)
			require.JSONEq(t, tc.want, string(b))

			_, mutated := query.Get(OriginVertex)
			require.False(t, mutated)
		})
	}
}

func TestProcessErrors(t *testing.T) {
	p := newTestPlugin(t)

	testCases := []struct {
		name  string
		input string
	}{
		{name: "missing origin", input: `{"destination_x":110.3657,"destination_y":-7.7925}`},
		{name: "half a coordinate", input: `{"origin_x":110.3672}`},
		{name: "not a number", input: `{"origin_x":"east","origin_y":-7.7830}`},
		{name: "too far from the network", input: `{"origin_x":110.5,"origin_y":-7.7830}`},
		{name: "out of range", input: `{"origin_x":200,"origin_y":-7.7830}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := document.Parse([]byte(tc.input))
			require.NoError(t, err)
			_, err = p.Process(query)
			require.True(t, errors.Is(err, util.ErrBadParamInput))
		})
	}
}

func TestNewPluginRejectsTolerance(t *testing.T) {
	g, err := da.NewMemoryGraph(nil, nil)
	require.NoError(t, err)
	_, err = NewPlugin(g, 0, zap.NewNop())
	require.True(t, errors.Is(err, util.ErrBuild))
}
