package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/view"
)

var (
	styleElement   = lipgloss.NewStyle().Foreground(colorWhite)
	styleMap       = lipgloss.NewStyle().Foreground(colorCyan)
	styleComposite = lipgloss.NewStyle().Foreground(colorBlue)
	styleEdge      = lipgloss.NewStyle().Foreground(colorGray)
)

// describe returns a one-line summary of n without its children.
func describe(n view.Node) string {
	switch n.Kind() {
	case view.KindElement:
		e := n.(*view.Element)
		s := styleElement.Render(e.Identity().String())
		if dims := e.Dims(); len(dims) > 0 {
			s += " " + StyleDim.Render("("+strings.Join(dim.Names(dims), ", ")+")")
		}
		return s
	case view.KindMap:
		m := n.(*view.Map)
		return styleMap.Render(m.Identity().String()) + " " +
			StyleDim.Render(fmt.Sprintf("[%s] %d entries", strings.Join(m.DimensionLabels(), ", "), m.Len()))
	case view.KindComposite:
		c := n.(*view.Composite)
		return styleComposite.Render(c.Identity().String()) + " " +
			StyleDim.Render(fmt.Sprintf("(%s) %d branches", c.Tag(), c.Len()))
	}
	return "?"
}

// children lists the edges below n with their labels.
func children(n view.Node) []edge {
	var out []edge
	switch n.Kind() {
	case view.KindMap:
		m := n.(*view.Map)
		names := m.DimensionNames()
		for k, child := range m.Items() {
			out = append(out, edge{label: view.Step{Key: k, Dims: names}.String(), node: child})
		}
	case view.KindComposite:
		for _, b := range n.(*view.Composite).Branches() {
			out = append(out, edge{label: b.Key.String(), node: b.Node, branch: true})
		}
	}
	return out
}

type edge struct {
	label  string
	node   view.Node
	branch bool // composite branch rather than map entry
}

// treeView renders the whole tree below root.
func treeView(root view.Node) string {
	t := subtree(describe(root), root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleEdge)
	return t.String()
}

func subtree(label string, n view.Node) *tree.Tree {
	t := tree.Root(label)
	for _, e := range children(n) {
		line := describe(e.node)
		if !e.branch || e.label != e.node.Identity().String() {
			line = styleEdge.Render(e.label+" →") + " " + line
		}
		if e.node.Kind() == view.KindElement {
			t.Child(line)
			continue
		}
		t.Child(subtree(line, e.node))
	}
	return t
}

// dimsTable tabulates the dimensions reachable from root.
func dimsTable(root view.Node) string {
	dims := view.Dimensions(root)
	rows := make([][]string, len(dims))
	for i, d := range dims {
		rows[i] = []string{d.Name(), d.Type().String(), domain(d), d.Unit()}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("DIMENSION", "TYPE", "DOMAIN", "UNIT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// domain summarizes a dimension's admissible values.
func domain(d dim.Dimension) string {
	if vs := d.Values(); vs != nil {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = fmt.Sprint(v)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	if lo, hi, ok := d.Bounds(); ok {
		return fmt.Sprintf("[%v, %v]", lo, hi)
	}
	return "any"
}
