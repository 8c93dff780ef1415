package io

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Node kinds as written in documents.
const (
	kindElement   = "element"
	kindMap       = "map"
	kindComposite = "composite"
)

type node struct {
	Key      string      `json:"key,omitempty" toml:"key,omitempty"` // branch key inside a composite
	Kind     string      `json:"kind" toml:"kind"`
	Group    string      `json:"group,omitempty" toml:"group,omitempty"`
	Label    string      `json:"label,omitempty" toml:"label,omitempty"`
	Tag      string      `json:"tag,omitempty" toml:"tag,omitempty"`
	Dims     []dimension `json:"dims,omitempty" toml:"dims,omitempty"`
	Data     any         `json:"data,omitempty" toml:"data,omitempty"`
	Entries  []entry     `json:"entries,omitempty" toml:"entries,omitempty"`
	Branches []node      `json:"branches,omitempty" toml:"branches,omitempty"`
}

type entry struct {
	Key  []any `json:"key" toml:"key"`
	Node node  `json:"node" toml:"node"`
}

type dimension struct {
	Name   string `json:"name" toml:"name"`
	Type   string `json:"type,omitempty" toml:"type,omitempty"`
	Values []any  `json:"values,omitempty" toml:"values,omitempty"`
	Min    any    `json:"min,omitempty" toml:"min,omitempty"`
	Max    any    `json:"max,omitempty" toml:"max,omitempty"`
	Unit   string `json:"unit,omitempty" toml:"unit,omitempty"`
}

func (d dimension) decode() (dim.Dimension, error) {
	typ := dim.TypeAny
	if d.Type != "" {
		t, ok := dim.ParseType(strings.ToLower(d.Type))
		if !ok {
			return dim.Dimension{}, errors.New(errors.ErrCodeInvalidFormat,
				"dimension %q: unknown type %q", d.Name, d.Type)
		}
		typ = t
	}

	opts := []dim.Option{dim.WithType(typ), dim.WithUnit(d.Unit)}
	if d.Values != nil {
		vs := make([]any, len(d.Values))
		for i, v := range d.Values {
			vs[i] = convert(v, typ)
		}
		opts = append(opts, dim.WithValues(vs...))
	}
	if d.Min != nil || d.Max != nil {
		opts = append(opts, dim.WithBounds(convert(d.Min, typ), convert(d.Max, typ)))
	}
	return dim.New(d.Name, opts...)
}

func encodeDimension(d dim.Dimension) dimension {
	out := dimension{Name: d.Name(), Unit: d.Unit(), Values: d.Values()}
	if d.Type() != dim.TypeAny {
		out.Type = d.Type().String()
	}
	if lo, hi, ok := d.Bounds(); ok {
		out.Min, out.Max = lo, hi
	}
	return out
}

// convert turns a decoded scalar into the Go value a dimension of type typ
// expects; integral numbers of untyped dimensions become int. Values it
// cannot convert are returned as plain values so that the dimension reports
// the mismatch.
func convert(v any, typ dim.Type) any {
	v = plain(v)
	switch typ {
	case dim.TypeInt, dim.TypeAny:
		if f, ok := v.(float64); ok && integral(f) {
			return int(f)
		}
	case dim.TypeFloat:
		if i, ok := v.(int); ok {
			return float64(i)
		}
	}
	return v
}

func integral(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) < 1<<53
}

// plain replaces decoder-specific numbers (json.Number, TOML int64) with
// int or float64, recursively through arrays and objects.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int64:
		return int(x)
	case float64:
		return x
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plain(e)
		}
		return out
	}
	return v
}
