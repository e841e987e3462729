package document

import (
	"github.com/buger/jsonparser"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// Parse decodes a JSON object keeping every nested object in declaration order.
// A top-level value that is not an object is a validation error.
func Parse(data []byte) (*Document, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "malformed json document")
	}
	if dataType != jsonparser.Object {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "expected a json object at the top level, got %s: %s", dataType, string(value))
	}
	return parseObject(value)
}

func parseObject(data []byte) (*Document, error) {
	doc := New()
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		// ObjectEach hands over keys already unescaped.
		k := string(key)
		v, err := parseValue(value, dataType)
		if err != nil {
			return err
		}
		doc.Set(k, v)
		return nil
	})
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "malformed json object")
	}
	return doc, nil
}

func parseArray(data []byte) ([]any, error) {
	arr := make([]any, 0)
	var elemErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if elemErr != nil {
			return
		}
		if err != nil {
			elemErr = err
			return
		}
		v, err := parseValue(value, dataType)
		if err != nil {
			elemErr = err
			return
		}
		arr = append(arr, v)
	})
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "malformed json array")
	}
	if elemErr != nil {
		return nil, util.WrapErrorf(elemErr, util.ErrBadParamInput, "malformed json array element")
	}
	return arr, nil
}

func parseValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		return parseObject(value)
	case jsonparser.Array:
		return parseArray(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		if i, err := jsonparser.ParseInt(value); err == nil {
			return i, nil
		}
		return jsonparser.ParseFloat(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unsupported json value %s", string(value))
	}
}
