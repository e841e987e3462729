package traversal

import (
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// singleVariable carries the bookkeeping shared by models that track one state variable.
type singleVariable struct {
	name string
}

func (s singleVariable) StateVariableNames() []string {
	return []string{s.name}
}

func (s singleVariable) InitialState() TraversalState {
	return TraversalState{0}
}

func (s singleVariable) GetStateVariable(name string, state TraversalState) (StateVar, error) {
	if name != s.name {
		return 0, util.WrapErrorf(nil, util.ErrInternal, "unknown state variable %q, expected %q", name, s.name)
	}
	if err := s.checkState(state); err != nil {
		return 0, err
	}
	return state[0], nil
}

func (s singleVariable) checkState(state TraversalState) error {
	if len(state) != 1 {
		return util.WrapErrorf(nil, util.ErrInternal, "%s state has length %d, expected 1", s.name, len(state))
	}
	return nil
}

// add returns a new state holding state[0] + delta.
func (s singleVariable) add(state TraversalState, delta float64) (TraversalState, error) {
	if err := s.checkState(state); err != nil {
		return nil, err
	}
	if !util.IsFinite(delta) {
		return nil, util.WrapErrorf(nil, util.ErrNumeric, "non-finite %s increment %v", s.name, delta)
	}
	return TraversalState{state[0].Add(StateVar(delta))}, nil
}

func (s singleVariable) copyState(state TraversalState) (TraversalState, error) {
	if err := s.checkState(state); err != nil {
		return nil, err
	}
	return state.Clone(), nil
}

func (s singleVariable) serialize(state TraversalState) *document.Document {
	doc := document.New()
	if len(state) == 1 {
		doc.Set(s.name, float64(state[0]))
	} else {
		doc.Set(s.name, nil)
	}
	return doc
}
