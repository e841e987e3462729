package traversal

import (
	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// Component is one child of a CompositeTraversalModel. Key namespaces the child's serialized output.
type Component struct {
	Key   string
	Model TraversalModel
}

// CompositeTraversalModel concatenates the states of its components into one vector. Component i
// owns state[offsets[i] : offsets[i]+lengths[i]], fixed at construction.
type CompositeTraversalModel struct {
	components  []Component
	offsets     []int
	lengths     []int
	stateLength int
	names       []string
	owner       map[string]int // state variable name -> component index
}

func NewCompositeTraversalModel(components ...Component) (*CompositeTraversalModel, error) {
	if len(components) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "composite traversal model needs at least one component")
	}

	c := &CompositeTraversalModel{
		components: make([]Component, len(components)),
		offsets:    make([]int, len(components)),
		lengths:    make([]int, len(components)),
		owner:      make(map[string]int),
	}
	keys := make(map[string]struct{}, len(components))

	offset := 0
	for i, comp := range components {
		if comp.Model == nil {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "component %q has no model", comp.Key)
		}
		if comp.Key == "" {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "component %d has an empty key", i)
		}
		if _, ok := keys[comp.Key]; ok {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "duplicate component key %q", comp.Key)
		}
		keys[comp.Key] = struct{}{}

		names := comp.Model.StateVariableNames()
		length := len(comp.Model.InitialState())
		if len(names) != length {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "component %q declares %d state variables but its state has length %d",
				comp.Key, len(names), length)
		}
		for _, name := range names {
			if prev, ok := c.owner[name]; ok {
				return nil, util.WrapErrorf(nil, util.ErrBuild, "state variable %q of component %q already declared by %q",
					name, comp.Key, components[prev].Key)
			}
			c.owner[name] = i
			c.names = append(c.names, name)
		}

		c.components[i] = comp
		c.offsets[i] = offset
		c.lengths[i] = length
		offset += length
	}
	c.stateLength = offset
	return c, nil
}

func (c *CompositeTraversalModel) StateVariableNames() []string {
	return append([]string(nil), c.names...)
}

func (c *CompositeTraversalModel) InitialState() TraversalState {
	state := make(TraversalState, 0, c.stateLength)
	for _, comp := range c.components {
		state = append(state, comp.Model.InitialState()...)
	}
	return state
}

func (c *CompositeTraversalModel) GetStateVariable(name string, state TraversalState) (StateVar, error) {
	i, ok := c.owner[name]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrInternal, "unknown state variable %q", name)
	}
	if err := c.checkState(state); err != nil {
		return 0, err
	}
	return c.components[i].Model.GetStateVariable(name, c.slice(state, i))
}

func (c *CompositeTraversalModel) TraverseEdge(src da.Vertex, edge da.Edge, dst da.Vertex, state TraversalState) (TraversalState, error) {
	if err := c.checkState(state); err != nil {
		return nil, err
	}
	next := make(TraversalState, c.stateLength)
	for i, comp := range c.components {
		sub, err := comp.Model.TraverseEdge(src, edge, dst, c.slice(state, i))
		if err != nil {
			return nil, c.wrapErr(i, "traverse edge", err)
		}
		if err := c.place(next, i, sub); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// AccessEdge reports no update only when no component updated its slice.
func (c *CompositeTraversalModel) AccessEdge(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (TraversalState, bool, error) {
	if err := c.checkState(state); err != nil {
		return nil, false, err
	}
	var next TraversalState
	for i, comp := range c.components {
		sub, updated, err := comp.Model.AccessEdge(v1, e1, v2, e2, v3, c.slice(state, i))
		if err != nil {
			return nil, false, c.wrapErr(i, "access edge", err)
		}
		if !updated {
			continue
		}
		if next == nil {
			next = state.Clone()
		}
		if err := c.place(next, i, sub); err != nil {
			return nil, false, err
		}
	}
	return next, next != nil, nil
}

// AccessCost sums the access costs of components implementing AccessCostModel. The others
// contribute their AccessEdge update at no cost.
func (c *CompositeTraversalModel) AccessCost(v1 da.Vertex, e1 da.Edge, v2 da.Vertex, e2 da.Edge, v3 da.Vertex,
	state TraversalState) (AccessResult, error) {
	if err := c.checkState(state); err != nil {
		return AccessResult{}, err
	}
	result := NoCost()
	for i, comp := range c.components {
		var (
			sub     TraversalState
			updated bool
			err     error
		)
		if acm, ok := comp.Model.(AccessCostModel); ok {
			var r AccessResult
			r, err = acm.AccessCost(v1, e1, v2, e2, v3, c.slice(state, i))
			result.Cost = result.Cost.Add(r.Cost)
			sub, updated = r.UpdatedState, r.HasUpdatedState()
		} else {
			sub, updated, err = comp.Model.AccessEdge(v1, e1, v2, e2, v3, c.slice(state, i))
		}
		if err != nil {
			return AccessResult{}, c.wrapErr(i, "access cost", err)
		}
		if !updated {
			continue
		}
		if result.UpdatedState == nil {
			result.UpdatedState = state.Clone()
		}
		if err := c.place(result.UpdatedState, i, sub); err != nil {
			return AccessResult{}, err
		}
	}
	return result, nil
}

func (c *CompositeTraversalModel) EstimateTraversal(src, dst da.Vertex, state TraversalState) (TraversalState, error) {
	if err := c.checkState(state); err != nil {
		return nil, err
	}
	next := make(TraversalState, c.stateLength)
	for i, comp := range c.components {
		sub, err := comp.Model.EstimateTraversal(src, dst, c.slice(state, i))
		if err != nil {
			return nil, c.wrapErr(i, "estimate traversal", err)
		}
		if err := c.place(next, i, sub); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// SerializeState nests each component's document under its key. A state of the wrong length
// serializes every component as null.
func (c *CompositeTraversalModel) SerializeState(state TraversalState) *document.Document {
	doc := document.New()
	valid := len(state) == c.stateLength
	for i, comp := range c.components {
		if !valid {
			doc.Set(comp.Key, nil)
			continue
		}
		doc.Set(comp.Key, comp.Model.SerializeState(c.slice(state, i)))
	}
	return doc
}

func (c *CompositeTraversalModel) SerializeStateInfo(state TraversalState) *document.Document {
	doc := document.New()
	valid := len(state) == c.stateLength
	for i, comp := range c.components {
		var sub TraversalState
		if valid {
			sub = c.slice(state, i)
		}
		doc.Set(comp.Key, comp.Model.SerializeStateInfo(sub))
	}
	return doc
}

func (c *CompositeTraversalModel) StateLength() int {
	return c.stateLength
}

// slice returns component i's view of state. The capacity is capped so a child appending to
// its slice cannot write into its neighbour.
func (c *CompositeTraversalModel) slice(state TraversalState, i int) TraversalState {
	lo, hi := c.offsets[i], c.offsets[i]+c.lengths[i]
	return state[lo:hi:hi]
}

func (c *CompositeTraversalModel) place(dst TraversalState, i int, sub TraversalState) error {
	if len(sub) != c.lengths[i] {
		return util.WrapErrorf(nil, util.ErrInternal, "component %q returned state of length %d, expected %d",
			c.components[i].Key, len(sub), c.lengths[i])
	}
	copy(dst[c.offsets[i]:], sub)
	return nil
}

func (c *CompositeTraversalModel) checkState(state TraversalState) error {
	if len(state) != c.stateLength {
		return util.WrapErrorf(nil, util.ErrInternal, "state has length %d, expected %d", len(state), c.stateLength)
	}
	return nil
}

func (c *CompositeTraversalModel) wrapErr(i int, op string, err error) error {
	code := util.ErrorCode(err)
	if code == nil {
		code = util.ErrInternal
	}
	return util.WrapErrorf(err, code, "%s: %s failed", c.components[i].Key, op)
}
