package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/render"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds entry counts, shapes, payload types and internal
	// dimensions to the labels.
	Detailed bool
}

// ToDOT converts the tree rooted at root to Graphviz DOT. Node ids are
// assigned in pre-order ("n0" is the root), so equal trees produce equal
// output. The tree is not modified.
func ToDOT(root view.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root != nil {
		w := &writer{buf: &buf, opts: opts}
		w.node(root)
		if len(w.edges) > 0 {
			buf.WriteString("\n")
			for _, e := range w.edges {
				buf.WriteString(e)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf   *bytes.Buffer
	opts  Options
	next  int
	edges []string
}

// node writes n and its subtree and returns n's DOT id.
func (w *writer) node(n view.Node) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++

	label := n.Identity().String()
	var attrs []string
	switch x := n.(type) {
	case *view.Element:
		if w.opts.Detailed {
			label += "\n" + fmt.Sprintf("%T", x.Data())
			if dims := x.Dims(); len(dims) > 0 {
				label += "\n" + dimLabels(dims)
			}
		}
	case *view.Map:
		label += "\n[" + strings.Join(x.DimensionLabels(), ", ") + "]"
		if w.opts.Detailed {
			label += fmt.Sprintf("\n%d entries, shape %v", x.Len(), x.Shape())
		}
		attrs = append(attrs, "shape=folder", "style=filled", "fillcolor=\"#eef3fb\"")
	case *view.Composite:
		label += "\n(" + x.Tag().String() + ")"
		attrs = append(attrs, "shape=ellipse", "style=filled")
		if x.Tag() == view.Aggregate {
			attrs = append(attrs, "fillcolor=\"#fdf1dc\"")
		} else {
			attrs = append(attrs, "fillcolor=\"#e6f4ea\"")
		}
	}
	attrs = append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
	fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))

	switch x := n.(type) {
	case *view.Map:
		names := x.DimensionNames()
		for k, child := range x.Items() {
			w.edge(id, w.node(child), view.Step{Key: k, Dims: names}.String())
		}
	case *view.Composite:
		for _, b := range x.Branches() {
			w.edge(id, w.node(b.Node), b.Key.String())
		}
	}
	return id
}

func (w *writer) edge(from, to, label string) {
	w.edges = append(w.edges, fmt.Sprintf("  %s -> %s [label=%q];\n", from, to, label))
}

func dimLabels(dims []dim.Dimension) string {
	labels := make([]string, len(dims))
	for i, d := range dims {
		labels[i] = d.Label()
	}
	return "(" + strings.Join(labels, ", ") + ")"
}

// RenderSVG renders DOT to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with one sized by
// its viewBox so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT as PDF via SVG. Requires librsvg.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT as PNG via SVG at the given scale. Requires librsvg.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
