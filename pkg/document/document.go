// Package document is the structured value tree queries and model summaries travel in:
// insertion-ordered objects, arrays and JSON scalars.
package document

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is a JSON object that keeps its keys in declaration order. Values are
// *Document, []any, string, float64, int64, bool or nil.
type Document = orderedmap.OrderedMap[string, any]

func New() *Document {
	return orderedmap.New[string, any]()
}

// FromPairs builds a document from alternating key/value arguments.
func FromPairs(kv ...any) *Document {
	doc := New()
	for i := 0; i+1 < len(kv); i += 2 {
		doc.Set(kv[i].(string), kv[i+1])
	}
	return doc
}

// Keys returns the keys of doc in order.
func Keys(doc *Document) []string {
	keys := make([]string, 0, doc.Len())
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone deep-copies doc so the copy can be mutated without aliasing the source.
func Clone(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	out := New()
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, CloneValue(pair.Value))
	}
	return out
}

func CloneValue(v any) any {
	switch t := v.(type) {
	case *Document:
		return Clone(t)
	case []any:
		arr := make([]any, len(t))
		for i, el := range t {
			arr[i] = CloneValue(el)
		}
		return arr
	default:
		return v
	}
}

func Marshal(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// MarshalValue encodes any document value, nested documents included.
func MarshalValue(v any) ([]byte, error) {
	return json.Marshal(v)
}
