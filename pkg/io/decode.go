package io

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/viewstack/pkg/dim"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/view"
)

// build turns a decoded document node into a view node. path locates the
// node in the document for error messages, e.g. "$.branches[1].entries[0]".
func build(n node, path string) (view.Node, error) {
	id := view.Identity{Group: n.Group, Label: n.Label}
	switch n.Kind {
	case kindElement:
		dims, err := decodeDims(n.Dims, path)
		if err != nil {
			return nil, err
		}
		e, err := view.NewElement(id, plain(n.Data), dims...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return e, nil

	case kindMap:
		dims, err := decodeDims(n.Dims, path)
		if err != nil {
			return nil, err
		}
		m, err := view.NewMap(id, dims...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i, e := range n.Entries {
			at := path + ".entries[" + strconv.Itoa(i) + "]"
			child, err := build(e.Node, at+".node")
			if err != nil {
				return nil, err
			}
			if err := m.Assign(decodeKey(e.Key, dims), child); err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
		}
		return m, nil

	case kindComposite:
		tag, ok := view.ParseTag(strings.ToLower(n.Tag))
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown composite tag %q", path, n.Tag)
		}
		nodes := make([]view.Node, len(n.Branches))
		for i, b := range n.Branches {
			child, err := build(b, path+".branches["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			nodes[i] = child
		}
		c, err := view.NewComposite(tag, nodes...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if c, err = restoreKeys(c, n.Branches); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return c.Relabel(n.Group, n.Label), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown node kind %q", path, n.Kind)
}

func decodeDims(ds []dimension, path string) ([]dim.Dimension, error) {
	dims := make([]dim.Dimension, len(ds))
	for i, d := range ds {
		decoded, err := d.decode()
		if err != nil {
			return nil, fmt.Errorf("%s.dims[%d]: %w", path, i, err)
		}
		dims[i] = decoded
	}
	return dims, nil
}

// decodeKey converts each component by its dimension's declared type.
// Surplus components are kept so Assign reports the arity mismatch.
func decodeKey(raw []any, dims []dim.Dimension) view.Key {
	k := make(view.Key, len(raw))
	for i, v := range raw {
		typ := dim.TypeAny
		if i < len(dims) {
			typ = dims[i].Type()
		}
		k[i] = convert(v, typ)
	}
	return k
}

// restoreKeys applies the branch keys recorded in a document. Keys are only
// recorded where they differ from the branch identity; when splicing changed
// the branch count the computed keys are kept.
func restoreKeys(c *view.Composite, docs []node) (*view.Composite, error) {
	keys := c.Keys()
	if len(keys) != len(docs) {
		return c, nil
	}
	changed := false
	for i, d := range docs {
		if d.Key != "" {
			keys[i] = view.ParseIdentity(d.Key)
			changed = true
		}
	}
	if !changed {
		return c, nil
	}
	return c.WithKeys(keys)
}
