// Package nodelink draws the structure of a view tree as a node-link
// diagram.
//
// Every node of the tree becomes a box labelled with its identity. Maps list
// their key dimensions and their edges are labelled with entry keys;
// composites are drawn as ellipses named by tag and their edges carry the
// branch keys. The diagram shows structure only; element payloads are never
// plotted.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use [RenderPDF] or [RenderPNG], which require
// librsvg (rsvg-convert).
//
// # Options
//
//   - Detailed: label maps with their entry count and shape, and elements
//     with their payload type and internal dimensions.
//
// # Dependencies
//
// SVG is rendered in-process with [github.com/goccy/go-graphviz].
package nodelink
