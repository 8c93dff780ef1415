// Package query is the command-line front end to view selection.
//
// [Parse] turns expressions such as "time=1", "x=0:5" or "channel=r,g"
// into a [view.Query]. A [Runner] takes an encoded document, decodes it,
// applies the query with [view.DeepSelect] and re-encodes the result,
// caching by document hash and query so repeated invocations skip the work.
//
// # Expression Syntax
//
//	name=value     Eq: the dimension is pinned and disappears from the result
//	name=lo:hi     Between: half-open range [lo, hi); either side may be empty
//	name=a,b,c     In: any of the listed values
//
// Values parse as int, then float, then true/false, and otherwise stay
// strings. Quoting a whole value with "" or '' forces a string and
// protects ':' and ','.
package query
