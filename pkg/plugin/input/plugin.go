// Package input holds the plugins that rewrite a query before it is searched.
package input

import (
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// Plugin turns one query into zero or more queries. Process must not mutate its argument.
type Plugin interface {
	Name() string
	Process(query *document.Document) ([]*document.Document, error)
}

// Run feeds query through plugins in order; every output of one plugin is processed by the next.
func Run(plugins []Plugin, query *document.Document) ([]*document.Document, error) {
	queries := []*document.Document{query}
	for _, p := range plugins {
		next := make([]*document.Document, 0, len(queries))
		for _, q := range queries {
			out, err := p.Process(q)
			if err != nil {
				code := util.ErrorCode(err)
				if code == nil {
					code = util.ErrInternal
				}
				return nil, util.WrapErrorf(err, code, "input plugin %s failed", p.Name())
			}
			next = append(next, out...)
		}
		queries = next
	}
	return queries, nil
}
