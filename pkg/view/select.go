package view

import (
	"slices"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Select filters the map by the constraints in q that name its key
// dimensions; other names are ignored.
//
// If every key dimension is pinned by Eq and exactly one entry matches,
// Select returns that entry's node itself. Otherwise it returns a new Map
// of the matching entries whose key dimensions exclude the pinned ones. A
// pinned dimension is kept when the matching entries hold different
// components there, such as 1 and 1.0 on an untyped dimension, so no entry
// is ever lost.
//
// Select returns ErrCodeDomain when an Eq value is outside its dimension's
// domain and ErrCodeSelectionEmpty when nothing matches.
func (m *Map) Select(q Query) (Node, error) {
	return m.selectEntries(q, false)
}

// DeepSelect applies q at every level of the tree rooted at root.
//
//   - Maps consume the constraints naming their key dimensions, exactly as
//     Map.Select does, and pass the remainder to every surviving entry.
//     Entries whose subtree comes back empty are dropped.
//   - Composites consume nothing; every branch sees the full remaining
//     query. Branches that come back empty are dropped and the others keep
//     their keys.
//   - Elements are returned unchanged unless their payload implements
//     PayloadSelector and q names one of their internal dimensions.
//
// Names that match no dimension in a subtree are ignored there, and an Eq
// value outside a map's domain simply matches nothing in that map. The
// result is ErrCodeSelectionEmpty only when the whole tree is emptied.
//
// A map keeps its surviving entries even when selection below turns them
// into nodes of different classes (pinning a nested map that holds a Curve
// at one key and an Image at another). Such a map is a read-only result:
// Lookup, Items and Walk work, but Assign enforces the class of its first
// entry.
func DeepSelect(root Node, q Query) (Node, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot select from nil node")
	}
	return deepSelect(root, q)
}

func deepSelect(n Node, q Query) (Node, error) {
	if len(q) == 0 {
		return n, nil
	}
	switch n.Kind() {
	case KindElement:
		return selectElement(n.(*Element), q)
	case KindMap:
		return n.(*Map).selectEntries(q, true)
	case KindComposite:
		return selectComposite(n.(*Composite), q)
	}
	return nil, errors.New(errors.ErrCodeInternal, "unknown node kind %v", n.Kind())
}

func selectElement(e *Element, q Query) (Node, error) {
	sel, ok := e.data.(PayloadSelector)
	if !ok {
		return e, nil
	}
	sub := q.subset(e.dims)
	if len(sub) == 0 {
		return e, nil
	}
	data, err := sel.SelectPayload(sub)
	if err != nil {
		return nil, err
	}
	return e.WithData(data), nil
}

func selectComposite(c *Composite, q Query) (Node, error) {
	kept := make([]Branch, 0, len(c.branches))
	for _, b := range c.branches {
		n, err := deepSelect(b.Node, q)
		if errors.Is(err, errors.ErrCodeSelectionEmpty) {
			continue
		}
		if err != nil {
			return nil, err
		}
		kept = append(kept, Branch{Key: b.Key, Node: n})
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.ErrCodeSelectionEmpty, "%s %s: %s matches no branch", c.tag, c.id, q)
	}
	return c.rebuild(kept), nil
}

func (m *Map) selectEntries(q Query, deep bool) (Node, error) {
	own, rest := q.split(m.dims)

	for i, c := range own {
		v, ok := pinned(c)
		if !ok {
			continue
		}
		if _, err := m.dims[i].Normalize(v); err != nil {
			if deep {
				return nil, errors.Wrap(errors.ErrCodeSelectionEmpty, err, "map %s: %s", m.id, q)
			}
			return nil, err
		}
	}

	var kept []entry
	for _, e := range m.entries {
		if !matches(e.key, own) {
			continue
		}
		if deep && len(rest) > 0 {
			n, err := deepSelect(e.node, rest)
			if errors.Is(err, errors.ErrCodeSelectionEmpty) {
				continue
			}
			if err != nil {
				return nil, err
			}
			e = entry{key: e.key, node: n}
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.ErrCodeSelectionEmpty, "map %s: %s matches no entry", m.id, q)
	}

	var pins []int
	for i := range m.dims {
		c, ok := own[i]
		if !ok {
			continue
		}
		if _, isEq := pinned(c); isEq && shared(kept, i) {
			pins = append(pins, i)
		}
	}
	if len(pins) == len(m.dims) && len(kept) == 1 {
		return kept[0].node, nil
	}
	return m.project(kept, pins), nil
}

// shared reports whether all entries hold the identical component at key
// index i. Eq compares numerically, so on an untyped dimension it can match
// both 1 and 1.0, which are distinct keys.
func shared(entries []entry, i int) bool {
	id := Key{entries[0].key[i]}.id()
	for _, e := range entries[1:] {
		if (Key{e.key[i]}).id() != id {
			return false
		}
	}
	return true
}

func matches(k Key, own map[int]Constraint) bool {
	for i, c := range own {
		if !c.Match(k[i]) {
			return false
		}
	}
	return true
}

// project builds a map of entries with the pinned key dimensions removed.
// If dropping them would make two keys collide, every dimension is kept.
func (m *Map) project(entries []entry, pins []int) *Map {
	if len(pins) == 0 || len(pins) == len(m.dims) {
		return m.rekey(m.dims, entries)
	}

	dims := make([]dim.Dimension, 0, len(m.dims)-len(pins))
	for i, d := range m.dims {
		if !slices.Contains(pins, i) {
			dims = append(dims, d)
		}
	}
	reduced := make([]entry, len(entries))
	seen := make(map[string]bool, len(entries))
	for j, e := range entries {
		k := make(Key, 0, len(dims))
		for i, v := range e.key {
			if !slices.Contains(pins, i) {
				k = append(k, v)
			}
		}
		id := k.id()
		if seen[id] {
			return m.rekey(m.dims, entries)
		}
		seen[id] = true
		reduced[j] = entry{key: k, node: e.node}
	}
	return m.rekey(dims, reduced)
}

// rekey builds a map of m's identity over dims from entries with unique keys.
func (m *Map) rekey(dims []dim.Dimension, entries []entry) *Map {
	out := &Map{id: m.id, dims: dims, index: make(map[string]int, len(entries))}
	for _, e := range entries {
		out.put(e.key, e.node)
	}
	return out
}
