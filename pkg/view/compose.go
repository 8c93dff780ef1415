package view

import (
	"strings"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Compose combines left and right under tag.
//
// Operands that are composites of the same tag contribute their branches
// rather than themselves, so same-tag chains stay one level deep and
// composition is associative:
//
//	Compose(t, Compose(t, a, b), Compose(t, c, d)) ≡ Compose(t, a, Compose(t, b, Compose(t, c, d)))
//
// Anything else, including a composite of the other tag, becomes a single
// branch. Colliding branch identities are suffixed ".I", ".II", ... in
// insertion order.
//
// Under Arrange, a map ending the left branch list and a map starting the
// right one merge (see Merge) when their key dimensions are identical. The
// merge works on the flattened lists, so it holds for every association of
// the same operands; when it leaves a single node, that *Map is returned.
//
// Compose returns ErrCodeInvalidInput for a nil operand or unknown tag, and
// the errors of Merge in the map case.
func Compose(tag Tag, left, right Node) (Node, error) {
	if !tag.valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown composition tag %v", tag)
	}
	if left == nil || right == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot compose nil node")
	}

	nodes, err := join(tag, operands(tag, left), operands(tag, right))
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return newComposite(tag, nodes), nil
}

// join concatenates two branch lists, merging the maps that meet at the
// seam under Arrange.
func join(tag Tag, left, right []Node) ([]Node, error) {
	if tag == Arrange {
		lm, lok := left[len(left)-1].(*Map)
		rm, rok := right[0].(*Map)
		if lok && rok && dim.SameNames(lm.dims, rm.dims) {
			merged, err := Merge(lm, rm)
			if err != nil {
				return nil, err
			}
			nodes := make([]Node, 0, len(left)+len(right)-1)
			nodes = append(nodes, left[:len(left)-1]...)
			nodes = append(nodes, merged)
			return append(nodes, right[1:]...), nil
		}
	}
	return append(left, right...), nil
}

// ComposeAll folds Compose over nodes from the left. It needs at least two
// nodes.
func ComposeAll(tag Tag, nodes ...Node) (Node, error) {
	if len(nodes) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "compose needs at least two nodes, got %d", len(nodes))
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		var err error
		if acc, err = Compose(tag, acc, n); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Overlay aggregates nodes into one composite.
func Overlay(nodes ...Node) (Node, error) { return ComposeAll(Aggregate, nodes...) }

// Layout arranges nodes into one composite.
func Layout(nodes ...Node) (Node, error) { return ComposeAll(Arrange, nodes...) }

// Merge unions two maps with identical key dimensions into a new map.
// On a key present in both, right's node wins. The result keeps left's
// identity and key order, with right's new keys appended.
//
// Merge returns ErrCodeSignature when the key dimensions differ or when the
// entries of the two maps are of different classes.
func Merge(left, right *Map) (*Map, error) {
	if !dim.SameNames(left.dims, right.dims) {
		return nil, errors.New(errors.ErrCodeSignature, "cannot merge map %s %v with map %s %v",
			left.id, left.DimensionNames(), right.id, right.DimensionNames())
	}
	if lc, rc := left.Class(), right.Class(); lc != "" && rc != "" && lc != rc {
		return nil, errors.New(errors.ErrCodeSignature, "cannot merge map of %s with map of %s", lc, rc)
	}
	out := left.Clone()
	for _, e := range right.entries {
		k, err := out.normalize(e.key)
		if err != nil {
			return nil, err
		}
		out.put(k, e.node)
	}
	return out, nil
}

// operands returns the nodes n contributes to a composition under tag.
func operands(tag Tag, n Node) []Node {
	if c, ok := n.(*Composite); ok && c.tag == tag {
		nodes := make([]Node, len(c.branches))
		for i, b := range c.branches {
			nodes[i] = b.Node
		}
		return nodes
	}
	return []Node{n}
}

func newComposite(tag Tag, nodes []Node) *Composite {
	ids := make([]Identity, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Identity()
	}
	keys := disambiguate(ids)
	branches := make([]Branch, len(nodes))
	for i, n := range nodes {
		branches[i] = Branch{Key: keys[i], Node: n}
	}
	return &Composite{
		id:       Identity{Group: tag.defaultGroup()},
		tag:      tag,
		branches: branches,
	}
}

// rebuild assembles the result of selecting inside c. Branches keep their
// keys unless a result is itself a composite of c's tag, in which case the
// whole list is re-spliced and re-keyed.
func (c *Composite) rebuild(branches []Branch) *Composite {
	splice := false
	for _, b := range branches {
		if sub, ok := b.Node.(*Composite); ok && sub.tag == c.tag {
			splice = true
			break
		}
	}
	if !splice {
		return &Composite{id: c.id, tag: c.tag, branches: branches}
	}
	var nodes []Node
	for _, b := range branches {
		nodes = append(nodes, operands(c.tag, b.Node)...)
	}
	out := newComposite(c.tag, nodes)
	out.id = c.id
	return out
}

// disambiguate assigns unique keys: identities occurring once are kept,
// repeated ones get roman numeral suffixes counted per identity in order,
// skipping any candidate already taken by another branch.
func disambiguate(ids []Identity) []Identity {
	counts := make(map[Identity]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	used := make(map[Identity]bool, len(ids))
	for id, n := range counts {
		if n == 1 {
			used[id] = true
		}
	}

	next := make(map[Identity]int)
	keys := make([]Identity, len(ids))
	for i, id := range ids {
		if counts[id] == 1 {
			keys[i] = id
			continue
		}
		for {
			next[id]++
			cand := suffixed(id, roman(next[id]))
			if !used[cand] {
				used[cand] = true
				keys[i] = cand
				break
			}
		}
	}
	return keys
}

func suffixed(id Identity, suffix string) Identity {
	if id.Label == "" {
		return Identity{Group: id.Group, Label: suffix}
	}
	return Identity{Group: id.Group, Label: id.Label + "." + suffix}
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman formats n >= 1 as an upper-case roman numeral.
func roman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
