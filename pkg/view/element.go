package view

import (
	"slices"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Element is the atomic, data-bearing node of a tree.
//
// The payload is opaque to this package. Dims describes the payload's own
// axes, not the axes the element is keyed by in an enclosing Map. Elements
// are immutable; Relabel and friends return copies that share the payload.
type Element struct {
	id   Identity
	data any
	dims []dim.Dimension
}

// PayloadSelector is implemented by payloads that can filter themselves
// along their internal dimensions. DeepSelect hands such a payload the
// constraints naming the element's internal dimensions; payloads that do
// not implement it are never touched by selection.
type PayloadSelector interface {
	SelectPayload(q Query) (any, error)
}

// NewElement creates an element. An empty group defaults to
// DefaultElementGroup. It returns ErrCodeInvalidInput when two internal
// dimensions share a name.
func NewElement(id Identity, data any, dims ...dim.Dimension) (*Element, error) {
	for i, d := range dims {
		if dim.IndexByName(dims[:i], d.Name()) >= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"element %s: duplicate internal dimension %q", id.withDefault(DefaultElementGroup), d.Name())
		}
	}
	return &Element{
		id:   id.withDefault(DefaultElementGroup),
		data: data,
		dims: slices.Clone(dims),
	}, nil
}

// MustElement is like NewElement but panics on error.
func MustElement(id Identity, data any, dims ...dim.Dimension) *Element {
	e, err := NewElement(id, data, dims...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Element) Kind() Kind         { return KindElement }
func (e *Element) Identity() Identity { return e.id }
func (e *Element) sealed()            {}

// Data returns the payload.
func (e *Element) Data() any { return e.data }

// Dims returns a copy of the element's internal dimensions.
func (e *Element) Dims() []dim.Dimension { return slices.Clone(e.dims) }

// Relabel returns a copy with the identity fields overridden. An empty
// argument keeps the current value; use WithLabel to clear a label.
func (e *Element) Relabel(group, label string) *Element {
	c := *e
	if group != "" {
		c.id.Group = group
	}
	if label != "" {
		c.id.Label = label
	}
	return &c
}

// WithLabel returns a copy labelled label, which may be empty.
func (e *Element) WithLabel(label string) *Element {
	c := *e
	c.id.Label = label
	return &c
}

// WithData returns a copy carrying a new payload.
func (e *Element) WithData(data any) *Element {
	c := *e
	c.data = data
	return &c
}
