// Package render turns view trees into pictures.
//
// The [nodelink] subpackage draws the structure of a tree (its composites,
// maps and elements) as a Graphviz diagram. This package holds the
// format conversion shared by renderers: [ToPDF] and [ToPNG] convert any
// SVG using the external rsvg-convert tool from librsvg.
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [nodelink]: github.com/matzehuels/viewstack/pkg/render/nodelink
package render
