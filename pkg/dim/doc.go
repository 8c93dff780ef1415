// Package dim describes the named axes of a viewstack tree.
//
// # Overview
//
// A [Dimension] is an immutable descriptor of one axis: a name plus optional
// advisory metadata. Dimensions play two roles:
//
//   - Key dimensions of a [view.Map], whose entries are addressed by one
//     value per key dimension
//   - Internal dimensions of a [view.Element], describing the axes of the
//     element's own payload (x/y of a curve, for instance)
//
// # Identity
//
// Two dimensions are equal iff their names match. The declared type, the
// domain and the unit are metadata: they constrain which values are
// accepted but never take part in equality.
//
// # Domains
//
// A dimension may declare either an ordered finite value set
// ([WithValues]) or a closed interval ([WithBounds]). A declared domain
// rejects values outside it with a DOMAIN_ERROR; without one any value of
// the declared type is accepted. The value set also defines an order,
// exposed through [Dimension.IndexOf] and [Dimension.Compare], which maps use
// to find their first and last entries.
//
// # Types
//
// [WithType] restricts values to one [Type]. Integer values of any width
// are normalized to int for [TypeInt] and to float64 for [TypeFloat]; no
// other conversion happens. Callers that receive untyped numbers (JSON, for
// instance) must convert before calling into this package.
//
// [view.Map]: github.com/matzehuels/viewstack/pkg/view.Map
// [view.Element]: github.com/matzehuels/viewstack/pkg/view.Element
package dim
