package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/viewstack/pkg/dim"
)

// Constraint restricts the values of one dimension. The vocabulary is
// closed: scalars (Eq), ranges (Between), value sets (In) and predicates
// (Where).
type Constraint interface {
	// Match reports whether the key component v satisfies the constraint.
	Match(v any) bool
	String() string

	constraint()
}

// Query maps dimension names to constraints.
type Query map[string]Constraint

// String renders the query with names sorted, e.g. "time=1, x=[0, 5)".
func (q Query) String() string {
	parts := make([]string, 0, len(q))
	for _, name := range slices.Sorted(maps.Keys(q)) {
		parts = append(parts, name+"="+q[name].String())
	}
	return strings.Join(parts, ", ")
}

// Names returns the constrained dimension names, sorted.
func (q Query) Names() []string { return slices.Sorted(maps.Keys(q)) }

// split partitions q into constraints on names (keyed by position in
// dims) and the rest.
func (q Query) split(dims []dim.Dimension) (own map[int]Constraint, rest Query) {
	own = make(map[int]Constraint)
	rest = make(Query)
	for name, c := range q {
		if i := dim.IndexByName(dims, name); i >= 0 {
			own[i] = c
		} else {
			rest[name] = c
		}
	}
	return own, rest
}

// subset returns the constraints naming one of dims.
func (q Query) subset(dims []dim.Dimension) Query {
	own, _ := q.split(dims)
	if len(own) == 0 {
		return nil
	}
	sub := make(Query, len(own))
	for i, c := range own {
		sub[dims[i].Name()] = c
	}
	return sub
}

type eqConstraint struct{ v any }

// Eq matches key components equal to v. Numbers compare numerically. A
// map whose key dimensions are all pinned by Eq collapses to its matching
// entry.
func Eq(v any) Constraint { return eqConstraint{v} }

func (c eqConstraint) Match(v any) bool { return dim.EqualValues(c.v, v) }
func (c eqConstraint) String() string   { return fmt.Sprint(c.v) }
func (eqConstraint) constraint()        {}

type rangeConstraint struct{ lo, hi any }

// Between matches the half-open interval [lo, hi). A nil bound is open.
// Components that cannot be ordered against a bound never match.
func Between(lo, hi any) Constraint { return rangeConstraint{lo, hi} }

func (c rangeConstraint) Match(v any) bool {
	if c.lo != nil {
		if cmp, ok := dim.CompareValues(v, c.lo); !ok || cmp < 0 {
			return false
		}
	}
	if c.hi != nil {
		if cmp, ok := dim.CompareValues(v, c.hi); !ok || cmp >= 0 {
			return false
		}
	}
	return true
}

func (c rangeConstraint) String() string {
	lo, hi := "", ""
	if c.lo != nil {
		lo = fmt.Sprint(c.lo)
	}
	if c.hi != nil {
		hi = fmt.Sprint(c.hi)
	}
	return "[" + lo + ", " + hi + ")"
}

func (rangeConstraint) constraint() {}

type setConstraint struct{ vs []any }

// In matches components equal to any of vs.
func In(vs ...any) Constraint { return setConstraint{slices.Clone(vs)} }

func (c setConstraint) Match(v any) bool {
	return slices.ContainsFunc(c.vs, func(u any) bool { return dim.EqualValues(u, v) })
}

func (c setConstraint) String() string {
	parts := make([]string, len(c.vs))
	for i, v := range c.vs {
		parts[i] = fmt.Sprint(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (setConstraint) constraint() {}

type predicateConstraint struct{ fn func(any) bool }

// Where matches components for which fn returns true. A nil fn matches
// nothing.
func Where(fn func(v any) bool) Constraint { return predicateConstraint{fn} }

func (c predicateConstraint) Match(v any) bool { return c.fn != nil && c.fn(v) }
func (predicateConstraint) String() string     { return "<predicate>" }
func (predicateConstraint) constraint()        {}

// pinned reports the scalar value of an Eq constraint.
func pinned(c Constraint) (any, bool) {
	if eq, ok := c.(eqConstraint); ok {
		return eq.v, true
	}
	return nil, false
}
