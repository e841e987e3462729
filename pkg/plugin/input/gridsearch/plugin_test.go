package gridsearch

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/stretchr/testify/require"
)

func marshalAll(t *testing.T, docs []*document.Document) []string {
	t.Helper()
	out := make([]string, len(docs))
	for i, d := range docs {
		b, err := document.Marshal(d)
		require.NoError(t, err)
		out[i] = string(b)
	}
	return out
}

func TestProcess(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "no control field",
			input: `{"abc":123}`,
			want:  []string{`{"abc":123}`},
		},
		{
			name:  "two dimensions, first varies fastest",
			input: `{"abc":123,"grid_search":{"bar":["a","b","c"],"foo":[1.2,3.4]}}`,
			want: []string{
				`{"abc":123,"bar":"a","foo":1.2}`,
				`{"abc":123,"bar":"b","foo":1.2}`,
				`{"abc":123,"bar":"c","foo":1.2}`,
				`{"abc":123,"bar":"a","foo":3.4}`,
				`{"abc":123,"bar":"b","foo":3.4}`,
				`{"abc":123,"bar":"c","foo":3.4}`,
			},
		},
		{
			name:  "object values are copied whole",
			input: `{"abc":123,"grid_search":{"traversal":[{"type":"energy","unit":"kwh"},{"type":"distance"}],"cost":["a","b"]}}`,
			want: []string{
				`{"abc":123,"traversal":{"type":"energy","unit":"kwh"},"cost":"a"}`,
				`{"abc":123,"traversal":{"type":"distance"},"cost":"a"}`,
				`{"abc":123,"traversal":{"type":"energy","unit":"kwh"},"cost":"b"}`,
				`{"abc":123,"traversal":{"type":"distance"},"cost":"b"}`,
			},
		},
		{
			name:  "non-list fields are ignored",
			input: `{"abc":123,"grid_search":{"bar":["a","b"],"ignored":7}}`,
			want: []string{
				`{"abc":123,"bar":"a"}`,
				`{"abc":123,"bar":"b"}`,
			},
		},
		{
			name:  "no list fields yields the query without the control field",
			input: `{"abc":123,"grid_search":{"ignored":"x"}}`,
			want:  []string{`{"abc":123}`},
		},
		{
			name:  "an empty list yields nothing",
			input: `{"abc":123,"grid_search":{"bar":["a","b"],"foo":[]}}`,
			want:  []string{},
		},
		{
			name:  "dimension overrides an existing key in place",
			input: `{"bar":"old","abc":123,"grid_search":{"bar":["a"]}}`,
			want:  []string{`{"bar":"a","abc":123}`},
		},
	}

	p := NewPlugin("")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := document.Parse([]byte(tc.input))
			require.NoError(t, err)

			got, err := p.Process(query)
			require.NoError(t, err)
			require.Equal(t, tc.want, marshalAll(t, got))
		})
	}
}

func TestProcessCardinality(t *testing.T) {
	query, err := document.Parse([]byte(`{"grid_search":{"a":[1,2,3],"b":[1,2],"c":[1,2,3,4],"d":[true]}}`))
	require.NoError(t, err)

	got, err := NewPlugin("grid_search").Process(query)
	require.NoError(t, err)
	require.Len(t, got, 3*2*4*1)

	seen := make(map[string]struct{}, len(got))
	for _, s := range marshalAll(t, got) {
		seen[s] = struct{}{}
	}
	require.Len(t, seen, len(got))
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	query, err := document.Parse([]byte(`{"abc":{"n":1},"grid_search":{"bar":[{"k":1},{"k":2}]}}`))
	require.NoError(t, err)
	before, err := document.Marshal(query)
	require.NoError(t, err)

	got, err := NewPlugin("").Process(query)
	require.NoError(t, err)
	require.Len(t, got, 2)

	abc, _, err := document.GetObject(got[0], "abc")
	require.NoError(t, err)
	abc.Set("n", int64(100))

	after, err := document.Marshal(query)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))

	other, _, err := document.GetObject(got[1], "abc")
	require.NoError(t, err)
	n, _ := other.Get("n")
	require.Equal(t, int64(1), n)
}

func TestProcessCustomField(t *testing.T) {
	query, err := document.Parse([]byte(`{"grid_search":{"a":[1,2]},"sweep":{"b":[1,2,3]}}`))
	require.NoError(t, err)

	got, err := NewPlugin("sweep").Process(query)
	require.NoError(t, err)
	require.Equal(t, []string{
		`{"grid_search":{"a":[1,2]},"b":1}`,
		`{"grid_search":{"a":[1,2]},"b":2}`,
		`{"grid_search":{"a":[1,2]},"b":3}`,
	}, marshalAll(t, got))
}

func TestProcessInvalidControlField(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		value string
	}{
		{name: "list", input: `{"grid_search":[1,2]}`, value: "[1,2]"},
		{name: "string", input: `{"grid_search":"all"}`, value: `"all"`},
		{name: "number", input: `{"grid_search":3}`, value: "3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := document.Parse([]byte(tc.input))
			require.NoError(t, err)

			_, err = NewPlugin("").Process(query)
			require.Error(t, err)
			require.True(t, errors.Is(err, util.ErrBadParamInput))
			require.Contains(t, err.Error(), tc.value)
		})
	}
}
