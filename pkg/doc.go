// Package pkg provides the libraries behind viewstack, a toolkit for
// composing, querying and rendering dimensioned view trees.
//
// # Overview
//
// A view tree describes a visualization declaratively. Leaves are
// elements (a curve, an image, a text label) carrying payload data and
// optional internal dimensions. Maps hold homogeneous entries addressed by
// key tuples over named dimensions ("time", "channel"). Composites group
// heterogeneous branches under an aggregate (overlay) or arrange (layout)
// tag. The pkg directory is organized as:
//
//  1. [dim] - Dimensions: named axes with types, value sets and bounds
//  2. [view] - The node model, composition and selection
//  3. [io] - JSON and TOML documents
//  4. [query] - Constraint expressions and the cached query runner
//  5. [cache] - Result caches (file, Redis, null) and key derivation
//  6. [render/nodelink] - Graphviz diagrams of a tree
//
// # Data Flow
//
//	JSON/TOML document
//	         ↓
//	    [io] package (decode, validate)
//	         ↓
//	    [view] package (DeepSelect with a [view.Query])
//	         ↓
//	    [render/nodelink] package (DOT, SVG, PDF, PNG)
//
// [query.Runner] ties the stages together and caches selections and
// renders under the content hash of the document.
//
// # Quick Start
//
//	t := dim.MustNew("time", dim.WithType(dim.TypeInt))
//	stack := view.MustMap(view.Identity{Group: "Stack"}, t)
//	_ = stack.Assign(view.Key{1}, view.MustElement(view.Identity{Group: "Curve"}, []float64{1, 2}))
//	_ = stack.Assign(view.Key{2}, view.MustElement(view.Identity{Group: "Curve"}, []float64{3, 4}))
//
//	label := view.MustElement(view.Identity{Group: "Text", Label: "title"}, "Decay")
//	root, _ := view.Overlay(stack, label)
//
//	sel, _ := view.DeepSelect(root, view.Query{"time": view.Eq(2)})
//	dot := nodelink.ToDOT(sel, nodelink.Options{})
//
// # Errors
//
// Every package reports failures as [errors.Error] values carrying a
// [errors.Code], so callers can branch on DOMAIN_ERROR, KEY_ARITY,
// SELECTION_EMPTY and friends with [errors.Is] regardless of wrapping.
//
// [dim]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/dim
// [view]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/view
// [io]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/io
// [query]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/query
// [cache]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/cache
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/render/nodelink
// [view.Query]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/view#Query
// [query.Runner]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/query#Runner
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/errors#Error
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/errors#Code
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/viewstack/pkg/errors#Is
package pkg
