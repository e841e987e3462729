// Package output holds the plugins that decorate a search result before it is returned.
package output

import (
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/traversal"
)

// Plugin adds fields describing result to out. It must not keep references to out.
type Plugin interface {
	Name() string
	Process(out *document.Document, result *traversal.PathResult) error
}

func Run(plugins []Plugin, out *document.Document, result *traversal.PathResult) error {
	for _, p := range plugins {
		if err := p.Process(out, result); err != nil {
			return err
		}
	}
	return nil
}
