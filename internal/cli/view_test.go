package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	vio "github.com/matzehuels/viewstack/pkg/io"
	"github.com/matzehuels/viewstack/pkg/view"
)

func sampleTree(t *testing.T) view.Node {
	t.Helper()
	n, err := vio.ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return n
}

func TestTreeView(t *testing.T) {
	out := treeView(sampleTree(t))

	for _, want := range []string{
		"Stack.a",
		"[time] 2 entries",
		"time=1 →",
		"time=2 →",
		"Curve.sine",
		"Text.note (x)",
		"(aggregate) 2 branches",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestDescribe(t *testing.T) {
	e := view.MustElement(view.Identity{Group: "Curve", Label: "fit"}, nil)
	if got := describe(e); got != "Curve.fit" {
		t.Errorf("describe(element) = %q, want Curve.fit", got)
	}
}

func TestDimsTable(t *testing.T) {
	out := dimsTable(sampleTree(t))

	for _, want := range []string{"DIMENSION", "time", "int", "{1, 2, 3}", "x", "float", "[0, 10]", "m"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "time") > strings.Index(out, "float") {
		t.Error("dimensions should be listed in pre-order")
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func press(t *testing.T, m BrowseModel, keys ...tea.KeyMsg) BrowseModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(BrowseModel)
	}
	return m
}

func TestBrowseNavigation(t *testing.T) {
	root := sampleTree(t)
	m := NewBrowseModel(root)

	if got := m.Path(); len(got) != 1 || got[0] != root.Identity().String() {
		t.Fatalf("Path() = %v", got)
	}

	m = press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	if got := m.Current().Identity().String(); got != "Text.note" {
		t.Fatalf("after down+enter at %s, want Text.note", got)
	}
	if !strings.Contains(m.View(), "hello") {
		t.Errorf("element view should show its payload:\n%s", m.View())
	}

	m = press(t, m, key(tea.KeyBackspace), key(tea.KeyUp), key(tea.KeyEnter))
	if got := m.Path(); len(got) != 2 || got[1] != "Stack.a" {
		t.Fatalf("Path() = %v, want [.. Stack.a]", got)
	}
	if v := m.View(); !strings.Contains(v, "time=1") || !strings.Contains(v, "[1/2]") {
		t.Errorf("map view should list its entries:\n%s", v)
	}

	m = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	if v := m.View(); !strings.Contains(v, "[2/2]") {
		t.Errorf("cursor should stop at the last entry:\n%s", v)
	}
}

func TestBrowseUpdateDoesNotMutate(t *testing.T) {
	m := NewBrowseModel(sampleTree(t))
	_ = press(t, m, key(tea.KeyDown))
	if m.top().cursor != 0 {
		t.Errorf("original model cursor = %d, want 0", m.top().cursor)
	}
}

func TestBrowseQuit(t *testing.T) {
	m := NewBrowseModel(sampleTree(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseBackAtRoot(t *testing.T) {
	m := press(t, NewBrowseModel(sampleTree(t)), key(tea.KeyBackspace))
	if len(m.Path()) != 1 {
		t.Errorf("backspace at root should stay at root, path %v", m.Path())
	}
}
