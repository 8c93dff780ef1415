// Package view implements the nested-container model of viewstack: the
// rules by which elements, dimension-keyed maps and labelled composites
// nest, flatten under composition and answer selections.
//
// # Nodes
//
// Every value in a tree is a [Node], a closed union of three kinds:
//
//   - [Element]: an opaque payload with an [Identity] and the internal
//     dimensions describing the payload's own axes
//   - [Map]: a homogeneous container keyed by one value per key dimension,
//     holding entries of a single structural class
//   - [Composite]: a heterogeneous, ordered set of uniquely keyed branches
//     combined under one [Tag] (Aggregate for overlays, Arrange for layouts)
//
// Engines never use open-ended dynamic dispatch; they switch on
// [Node.Kind].
//
// # Composition
//
// [Compose] is the single composition entry point. Composing with the
// same tag splices operands that are already composites of that tag, so
// chains of one operator are always exactly one level deep regardless of
// association order:
//
//	ab, _ := view.Compose(view.Arrange, a, b)
//	cd, _ := view.Compose(view.Arrange, c, d)
//	abcd, _ := view.Compose(view.Arrange, ab, cd) // branches a, b, c, d
//
// Composing across tags never flattens; that is the only way depth grows.
// Branch identities that collide are disambiguated with roman numeral
// suffixes in insertion order ("Curve.I", "Curve.II").
//
// Arranging two maps with the same key dimensions merges them entry-wise
// instead; see [Merge].
//
// # Selection
//
// [Map.Select] filters one map by its own key dimensions. [DeepSelect]
// threads a single [Query] through an arbitrary tree: maps consume the
// constraints naming their key dimensions and pass the rest down,
// composites pass everything to every branch and drop branches that come
// back empty. A map whose key dimensions are all pinned to scalars
// collapses to its sole matching entry.
//
// # Mutability
//
// Trees are persistent values. [Map.Assign] is the only in-place mutator
// and exists for incremental population; every other operation returns a
// new node and shares untouched subtrees. Nothing in this package locks:
// callers populating a map from several goroutines must serialize Assign.
package view
