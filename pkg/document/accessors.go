package document

import (
	"github.com/lintang-b-s/compassx/pkg/util"
)

// GetFloat reads a numeric field.
func GetFloat(doc *Document, key string) (float64, bool, error) {
	v, ok := doc.Get(key)
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case int64:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	default:
		return 0, true, util.WrapErrorf(nil, util.ErrBadParamInput, "field %q must be a number, got %v", key, v)
	}
}

// GetObject reads a nested object field.
func GetObject(doc *Document, key string) (*Document, bool, error) {
	v, ok := doc.Get(key)
	if !ok {
		return nil, false, nil
	}
	obj, isObj := v.(*Document)
	if !isObj {
		return nil, true, util.WrapErrorf(nil, util.ErrBadParamInput, "field %q must be an object, got %v", key, v)
	}
	return obj, true, nil
}
