package io

import (
	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/view"
)

// flatten turns a view node into its document form.
func flatten(n view.Node) (node, error) {
	id := n.Identity()
	out := node{Group: id.Group, Label: id.Label}
	switch n.Kind() {
	case view.KindElement:
		e := n.(*view.Element)
		out.Kind = kindElement
		out.Data = e.Data()
		out.Dims = encodeDims(e.Dims())

	case view.KindMap:
		m := n.(*view.Map)
		out.Kind = kindMap
		out.Dims = encodeDims(m.Dims())
		for k, child := range m.Items() {
			doc, err := flatten(child)
			if err != nil {
				return node{}, err
			}
			out.Entries = append(out.Entries, entry{Key: []any(k), Node: doc})
		}

	case view.KindComposite:
		c := n.(*view.Composite)
		out.Kind = kindComposite
		out.Tag = c.Tag().String()
		for _, b := range c.Branches() {
			doc, err := flatten(b.Node)
			if err != nil {
				return node{}, err
			}
			if b.Key != b.Node.Identity() {
				doc.Key = b.Key.String()
			}
			out.Branches = append(out.Branches, doc)
		}

	default:
		return node{}, errors.New(errors.ErrCodeInternal, "unknown node kind %v", n.Kind())
	}
	return out, nil
}

func encodeDims(ds []dim.Dimension) []dimension {
	if len(ds) == 0 {
		return nil
	}
	out := make([]dimension, len(ds))
	for i, d := range ds {
		out[i] = encodeDimension(d)
	}
	return out
}
