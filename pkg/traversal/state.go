package traversal

import (
	"math"

	"github.com/lintang-b-s/compassx/pkg/util"
)

// StateVar is one accumulated quantity of a search state, e.g. meters travelled.
type StateVar float64

func (s StateVar) Add(o StateVar) StateVar {
	return s + o
}

// TraversalState is the fixed-length vector of state variables carried by a search label.
// Its length and the meaning of every index are fixed by the model that created it.
type TraversalState []StateVar

func (s TraversalState) Clone() TraversalState {
	if s == nil {
		return nil
	}
	out := make(TraversalState, len(s))
	copy(out, s)
	return out
}

// Cost is the scalar a search minimizes. It is never negative.
type Cost float64

const ZeroCost Cost = 0

func NewCost(v float64) (Cost, error) {
	if math.IsNaN(v) || v < 0 {
		return ZeroCost, util.WrapErrorf(nil, util.ErrNumeric, "invalid cost %v", v)
	}
	return Cost(v), nil
}

func (c Cost) Add(o Cost) Cost {
	return c + o
}

// AccessResult is the outcome of an edge-to-edge transition. A nil UpdatedState means the
// transition left the state unchanged.
type AccessResult struct {
	Cost         Cost
	UpdatedState TraversalState
}

func NoCost() AccessResult {
	return AccessResult{Cost: ZeroCost}
}

func (r AccessResult) HasUpdatedState() bool {
	return r.UpdatedState != nil
}
