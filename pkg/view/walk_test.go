package view

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

func TestWalk(t *testing.T) {
	m := stack(t, "", map[int]Node{1: curve("a"), 2: curve("a")}, 1, 2)
	root, _ := Layout(m, image("b"))

	var got []string
	err := Walk(root, func(path []Step, n Node) error {
		got = append(got, fmt.Sprintf("%v %s", path, n.Kind()))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"[] composite",
		"[Stack] map",
		"[Stack time=1] element",
		"[Stack time=2] element",
		"[Image.b] element",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk() visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkStops(t *testing.T) {
	root, _ := Overlay(curve("a"), curve("b"), curve("c"))
	stop := fmt.Errorf("stop")
	visits := 0
	err := Walk(root, func(_ []Step, n Node) error {
		visits++
		if n.Identity().Label == "b" {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Errorf("Walk() error = %v, want stop", err)
	}
	if visits != 3 {
		t.Errorf("visits = %d, want 3", visits)
	}
}

func TestDimensions(t *testing.T) {
	m := stack(t, "", map[int]Node{1: curve("a")}, 1)
	other := MustMap(Identity{}, freqDim, timeDim)
	_ = other.Assign(Key{50, 1}, image("x"))
	root, _ := Overlay(m, other)

	var names []string
	for _, d := range Dimensions(root) {
		names = append(names, d.Name())
	}
	if diff := cmp.Diff([]string{"time", "x", "frequency"}, names); diff != "" {
		t.Errorf("Dimensions() mismatch (-want +got):\n%s", diff)
	}
}

func TestPromote(t *testing.T) {
	m := stack(t, "", map[int]Node{1: curve("a")}, 1)
	if got, err := Promote(m, timeDim, 5); err != nil || got != m {
		t.Errorf("Promote(map) = %v, %v; want the map itself", got, err)
	}

	c := curve("a")
	got, err := Promote(c, timeDim, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got.Identity() != c.Identity() || got.Len() != 1 {
		t.Errorf("Promote(element) = %v with %d entries", got.Identity(), got.Len())
	}
	if n, _ := got.Lookup(Key{5}); n != c {
		t.Error("promoted map does not hold the element")
	}

	bounded := dim.MustNew("time", dim.WithBounds(0, 3))
	if _, err := Promote(c, bounded, 9); !errors.Is(err, errors.ErrCodeDomain) {
		t.Errorf("out-of-domain promote error = %v, want DOMAIN_ERROR", err)
	}
	if _, err := Promote(nil, timeDim, 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil promote error = %v, want INVALID_INPUT", err)
	}
}

func TestSplitAggregates(t *testing.T) {
	m := MustMap(Identity{Group: "Frames"}, timeDim)
	for _, k := range []int{1, 2} {
		ov, _ := Overlay(curve("a"), curve("a"), image("b"))
		_ = m.Assign(Key{k}, ov)
	}

	layers, err := SplitAggregates(m)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, l := range layers {
		ids = append(ids, l.Identity().String())
		if diff := cmp.Diff([]Key{{1}, {2}}, l.Keys()); diff != "" {
			t.Errorf("layer %v keys mismatch (-want +got):\n%s", l.Identity(), diff)
		}
	}
	if diff := cmp.Diff([]string{"Curve.a.I", "Curve.a.II", "Image.b"}, ids); diff != "" {
		t.Errorf("layers mismatch (-want +got):\n%s", diff)
	}

	plain := stack(t, "", map[int]Node{1: curve("a"), 2: curve("a")}, 1, 2)
	layers, err = SplitAggregates(plain)
	if err != nil || len(layers) != 1 || layers[0].Identity().String() != "Curve.a" {
		t.Errorf("SplitAggregates(plain) = %v, %v; want one Curve.a layer", layers, err)
	}

	arranged := MustMap(Identity{}, timeDim)
	lay, _ := Layout(curve("a"), image("b"))
	_ = arranged.Assign(Key{1}, lay)
	if _, err := SplitAggregates(arranged); !errors.Is(err, errors.ErrCodeSignature) {
		t.Errorf("arranged entry error = %v, want SIGNATURE_MISMATCH", err)
	}
}
