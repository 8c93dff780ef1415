package dim

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/matzehuels/viewstack/pkg/errors"
)

// Dimension is an immutable descriptor of a named axis.
//
// The zero value has an empty name and is not usable; construct dimensions
// with [New] or [MustNew]. Dimension values are safe to copy and to share
// between goroutines.
type Dimension struct {
	name   string
	typ    Type
	values []any // ordered finite domain, nil if undeclared
	lo, hi any   // closed interval domain, both nil if undeclared
	unit   string
}

// Option configures a Dimension under construction.
type Option func(*Dimension)

// WithType restricts the dimension to values of t.
func WithType(t Type) Option {
	return func(d *Dimension) { d.typ = t }
}

// WithValues declares an ordered finite domain. The order of vs defines the
// order reported by IndexOf and Compare.
func WithValues(vs ...any) Option {
	return func(d *Dimension) { d.values = slices.Clone(vs) }
}

// WithBounds declares the closed interval [lo, hi] as the domain.
func WithBounds(lo, hi any) Option {
	return func(d *Dimension) { d.lo, d.hi = lo, hi }
}

// WithUnit attaches a display unit (e.g. "s" or "Hz").
func WithUnit(unit string) Option {
	return func(d *Dimension) { d.unit = unit }
}

// New constructs a Dimension named name.
//
// New returns ErrCodeInvalidInput for an empty name or when both a value set
// and bounds are declared, and ErrCodeDomain when a declared value or bound
// does not satisfy the declared type, when the value set contains
// duplicates, or when lo > hi.
func New(name string, opts ...Option) (Dimension, error) {
	if strings.TrimSpace(name) == "" {
		return Dimension{}, errors.New(errors.ErrCodeInvalidInput, "dimension name must not be empty")
	}
	d := Dimension{name: name}
	for _, opt := range opts {
		opt(&d)
	}

	if d.values != nil && (d.lo != nil || d.hi != nil) {
		return Dimension{}, errors.New(errors.ErrCodeInvalidInput,
			"dimension %q declares both a value set and bounds", name)
	}
	if (d.lo == nil) != (d.hi == nil) {
		return Dimension{}, errors.New(errors.ErrCodeInvalidInput,
			"dimension %q needs both bounds or neither", name)
	}

	for i, v := range d.values {
		nv, err := d.normalize(v)
		if err != nil {
			return Dimension{}, err
		}
		if slices.ContainsFunc(d.values[:i], func(u any) bool { return EqualValues(u, nv) }) {
			return Dimension{}, errors.New(errors.ErrCodeDomain,
				"dimension %q lists value %v twice", name, v)
		}
		d.values[i] = nv
	}

	if d.lo != nil {
		lo, err := d.normalize(d.lo)
		if err != nil {
			return Dimension{}, err
		}
		hi, err := d.normalize(d.hi)
		if err != nil {
			return Dimension{}, err
		}
		c, ok := CompareValues(lo, hi)
		if !ok {
			return Dimension{}, errors.New(errors.ErrCodeDomain,
				"dimension %q bounds %v and %v are not comparable", name, lo, hi)
		}
		if c > 0 {
			return Dimension{}, errors.New(errors.ErrCodeDomain,
				"dimension %q lower bound %v exceeds upper bound %v", name, lo, hi)
		}
		d.lo, d.hi = lo, hi
	}
	return d, nil
}

// MustNew is like New but panics on error. It is intended for package-level
// declarations and tests.
func MustNew(name string, opts ...Option) Dimension {
	d, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the dimension's name, its sole identity.
func (d Dimension) Name() string { return d.name }

// Type returns the declared value type (TypeAny if undeclared).
func (d Dimension) Type() Type { return d.typ }

// Unit returns the display unit, or "".
func (d Dimension) Unit() string { return d.unit }

// Values returns a copy of the declared value set, or nil.
func (d Dimension) Values() []any { return slices.Clone(d.values) }

// Bounds returns the declared interval and true, or nil, nil, false.
func (d Dimension) Bounds() (lo, hi any, ok bool) {
	return d.lo, d.hi, d.lo != nil
}

// HasDomain reports whether a value set or bounds were declared.
func (d Dimension) HasDomain() bool { return d.values != nil || d.lo != nil }

// Equal reports whether d and o name the same axis.
func (d Dimension) Equal(o Dimension) bool { return d.name == o.name }

// Label returns the axis label: the name, followed by the unit in
// parentheses when one is set.
func (d Dimension) Label() string {
	if d.unit == "" {
		return d.name
	}
	return fmt.Sprintf("%s (%s)", d.name, d.unit)
}

// String implements fmt.Stringer.
func (d Dimension) String() string { return d.name }

// Normalize checks v against the declared type and domain and returns the
// canonical representation used for keys: int for TypeInt, float64 for
// TypeFloat, v itself otherwise. It returns ErrCodeDomain on any mismatch.
func (d Dimension) Normalize(v any) (any, error) {
	nv, err := d.normalize(v)
	if err != nil {
		return nil, err
	}
	if err := d.inDomain(nv); err != nil {
		return nil, err
	}
	return nv, nil
}

// Contains reports whether v is an acceptable value for d.
func (d Dimension) Contains(v any) bool {
	_, err := d.Normalize(v)
	return err == nil
}

// IndexOf returns the position of v in the declared value set.
//
// It fails with ErrCodeDomain when v is outside a declared domain. For
// dimensions without a value set (bounded or unconstrained) an accepted
// value has no position and IndexOf returns -1 with a nil error.
func (d Dimension) IndexOf(v any) (int, error) {
	nv, err := d.Normalize(v)
	if err != nil {
		return -1, err
	}
	if d.values == nil {
		return -1, nil
	}
	return slices.IndexFunc(d.values, func(u any) bool { return EqualValues(u, nv) }), nil
}

// Ordered reports whether the dimension defines an order over its values:
// a declared value set or declared bounds.
func (d Dimension) Ordered() bool { return d.HasDomain() }

// Compare orders a and b by the declared domain: by position in the value
// set, or by natural order for bounded dimensions. Unordered dimensions, and
// values the domain cannot place, compare as equal so that stable sorts keep
// insertion order.
func (d Dimension) Compare(a, b any) int {
	switch {
	case d.values != nil:
		ia, errA := d.IndexOf(a)
		ib, errB := d.IndexOf(b)
		if errA != nil || errB != nil {
			return 0
		}
		return ia - ib
	case d.lo != nil:
		c, _ := CompareValues(a, b)
		return c
	}
	return 0
}

func (d Dimension) normalize(v any) (any, error) {
	if v == nil {
		return nil, errors.New(errors.ErrCodeDomain, "dimension %q: nil value", d.name)
	}
	switch d.typ {
	case TypeInt:
		if i, ok := asInt(v); ok {
			return i, nil
		}
	case TypeFloat:
		if f, ok := asFloat(v); ok {
			return f, nil
		}
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	default:
		if reflect.TypeOf(v).Comparable() {
			return v, nil
		}
		return nil, errors.New(errors.ErrCodeDomain,
			"dimension %q: value of type %T is not comparable", d.name, v)
	}
	return nil, errors.New(errors.ErrCodeDomain,
		"dimension %q: value %v (%T) is not of type %s", d.name, v, v, d.typ)
}

func (d Dimension) inDomain(v any) error {
	switch {
	case d.values != nil:
		if !slices.ContainsFunc(d.values, func(u any) bool { return EqualValues(u, v) }) {
			return errors.New(errors.ErrCodeDomain,
				"dimension %q: value %v not in %v", d.name, v, d.values)
		}
	case d.lo != nil:
		cLo, okLo := CompareValues(v, d.lo)
		cHi, okHi := CompareValues(v, d.hi)
		if !okLo || !okHi || cLo < 0 || cHi > 0 {
			return errors.New(errors.ErrCodeDomain,
				"dimension %q: value %v outside [%v, %v]", d.name, v, d.lo, d.hi)
		}
	}
	return nil
}

// Names returns the names of dims in order.
func Names(dims []Dimension) []string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.name
	}
	return names
}

// IndexByName returns the position of the dimension named name, or -1.
func IndexByName(dims []Dimension, name string) int {
	return slices.IndexFunc(dims, func(d Dimension) bool { return d.name == name })
}

// SameNames reports whether a and b name the same dimensions in the same
// order.
func SameNames(a, b []Dimension) bool {
	return slices.EqualFunc(a, b, Dimension.Equal)
}
