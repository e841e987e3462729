package gridsearch

import (
	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// Plugin expands the control object of a query into the cartesian product of its list-valued
// fields. Non-list fields of the control object are ignored.
//
//	{"x": 1, "grid_search": {"a": [1, 2], "b": ["p", "q"]}}
//
// becomes {"x":1,"a":1,"b":"p"}, {"x":1,"a":2,"b":"p"}, {"x":1,"a":1,"b":"q"}, {"x":1,"a":2,"b":"q"}.
type Plugin struct {
	field string
}

func NewPlugin(field string) *Plugin {
	if field == "" {
		field = pkg.DEFAULT_GRID_SEARCH_FIELD
	}
	return &Plugin{field: field}
}

func (p *Plugin) Name() string {
	return "grid_search"
}

func (p *Plugin) Field() string {
	return p.field
}

func (p *Plugin) Process(query *document.Document) ([]*document.Document, error) {
	v, ok := query.Get(p.field)
	if !ok {
		return []*document.Document{query}, nil
	}
	control, isObj := v.(*document.Document)
	if !isObj {
		raw, err := document.MarshalValue(v)
		if err != nil {
			raw = []byte("<unprintable>")
		}
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%s must be an object, got %s", p.field, raw)
	}

	var (
		keys   []string
		values [][]any
	)
	for pair := control.Oldest(); pair != nil; pair = pair.Next() {
		list, isList := pair.Value.([]any)
		if !isList {
			continue
		}
		keys = append(keys, pair.Key)
		values = append(values, list)
	}

	base := document.Clone(query)
	base.Delete(p.field)

	radices := make([]int, len(values))
	for i, list := range values {
		radices[i] = len(list)
	}
	odo := newOdometer(radices)
	size := odo.size()
	if size == 0 {
		return []*document.Document{}, nil
	}

	out := make([]*document.Document, 0, size)
	for {
		q := document.Clone(base)
		for i, key := range keys {
			q.Set(key, document.CloneValue(values[i][odo.digits[i]]))
		}
		out = append(out, q)
		if !odo.next() {
			break
		}
	}
	return out, nil
}
