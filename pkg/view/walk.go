package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Step is one edge on the path from a root to a node: either a composite
// branch key or a map key.
type Step struct {
	Branch *Identity // set when descending into a composite
	Key    Key       // set when descending into a map
	Dims   []string  // key dimension names, alongside Key
}

// String renders the step as "Curve.I" or "time=1,x=2".
func (s Step) String() string {
	if s.Branch != nil {
		return s.Branch.String()
	}
	parts := make([]string, len(s.Key))
	for i, v := range s.Key {
		parts[i] = fmt.Sprintf("%s=%v", s.Dims[i], v)
	}
	return strings.Join(parts, ",")
}

// WalkFunc is called for every node visited by Walk with the path leading
// to it. Returning an error stops the walk and Walk returns that error.
type WalkFunc func(path []Step, n Node) error

// Walk visits the tree rooted at root in pre-order: a node before its
// children, children in iteration order.
func Walk(root Node, fn WalkFunc) error {
	return walk(nil, root, fn)
}

func walk(path []Step, n Node, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		return err
	}
	switch n.Kind() {
	case KindMap:
		m := n.(*Map)
		names := m.DimensionNames()
		for _, e := range m.entries {
			step := Step{Key: slices.Clone(e.key), Dims: names}
			if err := walk(append(slices.Clone(path), step), e.node, fn); err != nil {
				return err
			}
		}
	case KindComposite:
		for _, b := range n.(*Composite).branches {
			key := b.Key
			if err := walk(append(slices.Clone(path), Step{Branch: &key}), b.Node, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dimensions returns every dimension appearing in the subtree: the key
// dimensions of its maps and the internal dimensions of its elements, in
// pre-order, each name once.
func Dimensions(root Node) []dim.Dimension {
	var dims []dim.Dimension
	add := func(ds []dim.Dimension) {
		for _, d := range ds {
			if dim.IndexByName(dims, d.Name()) < 0 {
				dims = append(dims, d)
			}
		}
	}
	_ = Walk(root, func(_ []Step, n Node) error {
		switch n.Kind() {
		case KindElement:
			add(n.(*Element).dims)
		case KindMap:
			add(n.(*Map).dims)
		}
		return nil
	})
	return dims
}

// Promote returns n as a map: maps are returned unchanged, any other node
// is wrapped in a new single-entry map keyed by d at key.
func Promote(n Node, d dim.Dimension, key any) (*Map, error) {
	if n == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot promote nil node")
	}
	if m, ok := n.(*Map); ok {
		return m, nil
	}
	m, err := NewMap(n.Identity(), d)
	if err != nil {
		return nil, err
	}
	if err := m.Assign(Key{key}, n); err != nil {
		return nil, err
	}
	return m, nil
}

// SplitAggregates splits a map of overlays into one map per layer. Every
// aggregate entry contributes each branch to the map named by the branch
// key; any other entry except an arranged composite is a single layer
// named by its identity. Layers appear in order of first occurrence and
// keep the source map's key dimensions.
//
// An entry that is an Arrange composite yields ErrCodeSignature.
func SplitAggregates(m *Map) ([]*Map, error) {
	var (
		order  []Identity
		layers = make(map[Identity]*Map)
	)
	add := func(id Identity, k Key, n Node) error {
		layer, ok := layers[id]
		if !ok {
			var err error
			if layer, err = NewMap(id, m.dims...); err != nil {
				return err
			}
			layers[id] = layer
			order = append(order, id)
		}
		return layer.Assign(k, n)
	}

	for _, e := range m.entries {
		c, ok := e.node.(*Composite)
		switch {
		case !ok:
			if err := add(e.node.Identity(), e.key, e.node); err != nil {
				return nil, err
			}
		case c.tag != Aggregate:
			return nil, errors.New(errors.ErrCodeSignature,
				"map %s: entry %v is a %s composite, not an overlay", m.id, e.key, c.tag)
		default:
			for _, b := range c.branches {
				if err := add(b.Key, e.key, b.Node); err != nil {
					return nil, err
				}
			}
		}
	}

	out := make([]*Map, len(order))
	for i, id := range order {
		out[i] = layers[id]
	}
	return out, nil
}
