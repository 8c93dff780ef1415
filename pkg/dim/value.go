package dim

import (
	"cmp"
	"reflect"
)

// Type tags the values a dimension accepts.
type Type int

const (
	// TypeAny accepts any comparable value. It is the zero value.
	TypeAny Type = iota
	// TypeInt accepts signed and unsigned integers, stored as int.
	TypeInt
	// TypeFloat accepts integers and floats, stored as float64.
	TypeFloat
	// TypeString accepts strings.
	TypeString
	// TypeBool accepts booleans.
	TypeBool
)

var typeNames = map[Type]string{
	TypeAny:    "any",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeString: "string",
	TypeBool:   "bool",
}

// String returns the lower-case type name used in documents.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType is the inverse of [Type.String]. The empty string parses as
// TypeAny.
func ParseType(s string) (Type, bool) {
	if s == "" {
		return TypeAny, true
	}
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return TypeAny, false
}

// asFloat reports v as a float64 if it is any Go integer or float kind.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(rv.Uint()), true
	}
	return 0, false
}

// CompareValues orders two values of compatible kinds. Numbers compare
// numerically regardless of their Go type, strings lexically and booleans
// with false before true. ok is false when the kinds cannot be ordered
// against each other.
func CompareValues(a, b any) (c int, ok bool) {
	if fa, okA := asFloat(a); okA {
		if fb, okB := asFloat(b); okB {
			return cmp.Compare(fa, fb), true
		}
		return 0, false
	}
	switch av := a.(type) {
	case string:
		if bv, okB := b.(string); okB {
			return cmp.Compare(av, bv), true
		}
	case bool:
		if bv, okB := b.(bool); okB {
			switch {
			case av == bv:
				return 0, true
			case !av:
				return -1, true
			default:
				return 1, true
			}
		}
	}
	return 0, false
}

// EqualValues reports whether a and b denote the same value. Numbers are
// equal when numerically equal; everything else falls back to ==.
func EqualValues(a, b any) bool {
	if c, ok := CompareValues(a, b); ok {
		return c == 0
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
