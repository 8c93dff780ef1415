package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/viewstack/pkg/dim"
)

// identical compares nodes by pointer identity.
var identical = cmp.Comparer(func(a, b Node) bool { return a == b })

var (
	timeDim = dim.MustNew("time", dim.WithType(dim.TypeInt))
	freqDim = dim.MustNew("frequency", dim.WithType(dim.TypeFloat), dim.WithUnit("Hz"))
	xDim    = dim.MustNew("x", dim.WithType(dim.TypeFloat))
)

func curve(label string) *Element {
	return MustElement(Identity{Group: "Curve", Label: label}, []float64{1, 2, 3}, xDim)
}

func image(label string) *Element {
	return MustElement(Identity{Group: "Image", Label: label}, [][]float64{{0, 1}, {1, 0}})
}

// stack builds a time-keyed map with one entry per key.
func stack(t *testing.T, label string, entries map[int]Node, order ...int) *Map {
	t.Helper()
	m := MustMap(Identity{Group: "Stack", Label: label}, timeDim)
	for _, k := range order {
		if err := m.Assign(Key{k}, entries[k]); err != nil {
			t.Fatalf("Assign(%d) error = %v", k, err)
		}
	}
	return m
}

func mustCompose(t *testing.T, tag Tag, l, r Node) Node {
	t.Helper()
	n, err := Compose(tag, l, r)
	if err != nil {
		t.Fatalf("Compose(%v) error = %v", tag, err)
	}
	return n
}

func asComposite(t *testing.T, n Node) *Composite {
	t.Helper()
	c, ok := n.(*Composite)
	if !ok {
		t.Fatalf("got %T, want *Composite", n)
	}
	return c
}

func asMap(t *testing.T, n Node) *Map {
	t.Helper()
	m, ok := n.(*Map)
	if !ok {
		t.Fatalf("got %T, want *Map", n)
	}
	return m
}

func branchNodes(c *Composite) []Node {
	nodes := make([]Node, c.Len())
	for i, b := range c.Branches() {
		nodes[i] = b.Node
	}
	return nodes
}

func keyStrings(c *Composite) []string {
	keys := c.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
