package view

import (
	"iter"
	"maps"
	"slices"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Map is a homogeneous container: an ordered mapping from key tuples, one
// component per key dimension, to nodes of a single structural class.
//
// Entries are either all elements with the same identity, all maps with
// the same key dimensions, or all composites with the same tag. Iteration
// follows insertion order; lookup is by exact key after each component has
// been normalized by its dimension.
//
// The zero value is not usable - use NewMap. A Map is not safe for
// concurrent use while it is being populated with Assign.
type Map struct {
	id      Identity
	dims    []dim.Dimension
	entries []entry
	index   map[string]int // Key.id() -> position in entries
}

type entry struct {
	key  Key
	node Node
}

// NewMap creates an empty map keyed by dims. An empty group defaults to
// DefaultMapGroup.
//
// NewMap returns ErrCodeKeyArity when dims is empty and ErrCodeSignature
// when two key dimensions share a name.
func NewMap(id Identity, dims ...dim.Dimension) (*Map, error) {
	if len(dims) == 0 {
		return nil, errors.New(errors.ErrCodeKeyArity, "map %s needs at least one key dimension",
			id.withDefault(DefaultMapGroup))
	}
	for i, d := range dims {
		if dim.IndexByName(dims[:i], d.Name()) >= 0 {
			return nil, errors.New(errors.ErrCodeSignature, "map %s: duplicate key dimension %q",
				id.withDefault(DefaultMapGroup), d.Name())
		}
	}
	return &Map{
		id:    id.withDefault(DefaultMapGroup),
		dims:  slices.Clone(dims),
		index: make(map[string]int),
	}, nil
}

// MustMap is like NewMap but panics on error.
func MustMap(id Identity, dims ...dim.Dimension) *Map {
	m, err := NewMap(id, dims...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Map) Kind() Kind         { return KindMap }
func (m *Map) Identity() Identity { return m.id }
func (m *Map) sealed()            {}

// Relabel returns a shallow copy with the identity fields overridden; empty
// arguments keep the current values.
func (m *Map) Relabel(group, label string) *Map {
	c := m.Clone()
	if group != "" {
		c.id.Group = group
	}
	if label != "" {
		c.id.Label = label
	}
	return c
}

// Dims returns a copy of the key dimensions.
func (m *Map) Dims() []dim.Dimension { return slices.Clone(m.dims) }

// DimensionNames returns the key dimension names in order.
func (m *Map) DimensionNames() []string { return dim.Names(m.dims) }

// DimensionLabels returns the axis label of every key dimension.
func (m *Map) DimensionLabels() []string {
	labels := make([]string, len(m.dims))
	for i, d := range m.dims {
		labels[i] = d.Label()
	}
	return labels
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Class returns the structural class shared by all entries, or "" for an
// empty map. Two maps holding the same kind of thing report the same class.
func (m *Map) Class() string {
	if len(m.entries) == 0 {
		return ""
	}
	return class(m.entries[0].node)
}

// Keys returns copies of all keys in insertion order.
func (m *Map) Keys() []Key {
	keys := make([]Key, len(m.entries))
	for i, e := range m.entries {
		keys[i] = slices.Clone(e.key)
	}
	return keys
}

// Items iterates over entries in insertion order.
func (m *Map) Items() iter.Seq2[Key, Node] {
	return func(yield func(Key, Node) bool) {
		for _, e := range m.entries {
			if !yield(slices.Clone(e.key), e.node) {
				return
			}
		}
	}
}

// Assign inserts node at key, replacing the whole subtree of an existing
// entry. It is the only operation that mutates a Map in place.
//
// Assign fails, leaving the map unchanged, with:
//   - ErrCodeInvalidInput if node is nil
//   - ErrCodeKeyArity if len(key) differs from the number of key dimensions
//   - ErrCodeDomain if a component is rejected by its dimension
//   - ErrCodeSignature if node's class differs from the other entries', or
//     if node is a map re-using one of this map's key dimensions
func (m *Map) Assign(key Key, node Node) error {
	if node == nil {
		return errors.New(errors.ErrCodeInvalidInput, "map %s: cannot assign nil node", m.id)
	}
	k, err := m.normalize(key)
	if err != nil {
		return err
	}
	if err := m.checkSignature(k, node); err != nil {
		return err
	}
	m.put(k, node)
	return nil
}

// Lookup returns the node stored at key. It fails with ErrCodeKeyArity or
// ErrCodeDomain for malformed keys and ErrCodeNoSuchKey when absent.
func (m *Map) Lookup(key Key) (Node, error) {
	k, err := m.normalize(key)
	if err != nil {
		return nil, err
	}
	i, ok := m.index[k.id()]
	if !ok {
		return nil, errors.New(errors.ErrCodeNoSuchKey, "map %s has no entry %v", m.id, k)
	}
	return m.entries[i].node, nil
}

// First returns the entry with the smallest key by declared domain order.
// Dimensions without a declared domain contribute no order, so a map whose
// key dimensions are all unordered returns its first-inserted entry.
func (m *Map) First() (Key, Node, bool) {
	sorted := m.sorted()
	if len(sorted) == 0 {
		return nil, nil, false
	}
	return slices.Clone(sorted[0].key), sorted[0].node, true
}

// Last returns the entry with the largest key by declared domain order,
// or the last-inserted entry when no key dimension declares an order.
func (m *Map) Last() (Key, Node, bool) {
	sorted := m.sorted()
	if len(sorted) == 0 {
		return nil, nil, false
	}
	e := sorted[len(sorted)-1]
	return slices.Clone(e.key), e.node, true
}

// DimensionValues returns the distinct values taken by the named key
// dimension, in domain order when the dimension declares one and insertion
// order otherwise.
func (m *Map) DimensionValues(name string) ([]any, error) {
	i := dim.IndexByName(m.dims, name)
	if i < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "map %s has no key dimension %q", m.id, name)
	}
	var vals []any
	for _, e := range m.entries {
		v := e.key[i]
		if !slices.ContainsFunc(vals, func(u any) bool { return dim.EqualValues(u, v) }) {
			vals = append(vals, v)
		}
	}
	slices.SortStableFunc(vals, m.dims[i].Compare)
	return vals, nil
}

// Shape returns the number of distinct values along each key dimension.
// For a two-dimensional map this is the (rows, columns) of its grid.
func (m *Map) Shape() []int {
	shape := make([]int, len(m.dims))
	for i, d := range m.dims {
		vals, _ := m.DimensionValues(d.Name())
		shape[i] = len(vals)
	}
	return shape
}

// Clone returns a shallow copy: a new entry table sharing the entry nodes.
func (m *Map) Clone() *Map {
	c := &Map{
		id:      m.id,
		dims:    m.dims,
		entries: slices.Clone(m.entries),
		index:   maps.Clone(m.index),
	}
	return c
}

func (m *Map) normalize(key Key) (Key, error) {
	if len(key) != len(m.dims) {
		return nil, errors.New(errors.ErrCodeKeyArity, "map %s: key %v has %d components, want %d (%v)",
			m.id, key, len(key), len(m.dims), m.DimensionNames())
	}
	k := make(Key, len(key))
	for i, v := range key {
		nv, err := m.dims[i].Normalize(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDomain, err, "map %s: key %v", m.id, key)
		}
		k[i] = nv
	}
	return k, nil
}

func (m *Map) checkSignature(k Key, node Node) error {
	if node.Kind() == KindMap {
		for _, d := range node.(*Map).dims {
			if dim.IndexByName(m.dims, d.Name()) >= 0 {
				return errors.New(errors.ErrCodeSignature,
					"map %s: nested map %s re-uses key dimension %q", m.id, node.Identity(), d.Name())
			}
		}
	}

	// A single entry may be replaced by anything; it is the whole map.
	if len(m.entries) == 0 {
		return nil
	}
	if i, ok := m.index[k.id()]; ok && len(m.entries) == 1 && i == 0 {
		return nil
	}
	if want, got := m.Class(), class(node); want != got {
		return errors.New(errors.ErrCodeSignature, "map %s: cannot store %s among %s at %v",
			m.id, got, want, k)
	}
	return nil
}

// put stores an already normalized and checked entry.
func (m *Map) put(k Key, node Node) {
	id := k.id()
	if i, ok := m.index[id]; ok {
		m.entries[i].node = node
		return
	}
	m.index[id] = len(m.entries)
	m.entries = append(m.entries, entry{key: k, node: node})
}

func (m *Map) sorted() []entry {
	sorted := slices.Clone(m.entries)
	slices.SortStableFunc(sorted, func(a, b entry) int {
		for i, d := range m.dims {
			if c := d.Compare(a.key[i], b.key[i]); c != 0 {
				return c
			}
		}
		return 0
	})
	return sorted
}
