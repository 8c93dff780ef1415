package view

import (
	"fmt"
	"strings"
)

// Kind discriminates the node union.
type Kind int

const (
	// KindElement is a terminal, data-bearing node.
	KindElement Kind = iota
	// KindMap is a homogeneous, dimension-keyed container.
	KindMap
	// KindComposite is a heterogeneous, identity-keyed container.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindMap:
		return "map"
	case KindComposite:
		return "composite"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a vertex of a view tree: an *Element, a *Map or a *Composite.
// The interface is sealed; engines switch on Kind.
type Node interface {
	// Kind reports which member of the union the node is.
	Kind() Kind
	// Identity returns the node's (group, label) tag.
	Identity() Identity

	sealed()
}

// Default groups for nodes constructed without one.
const (
	DefaultElementGroup = "Element"
	DefaultMapGroup     = "Map"
	DefaultOverlayGroup = "Overlay"
	DefaultLayoutGroup  = "Layout"
)

// Identity is the (group, label) pair naming a node. Group is a semantic
// category ("Curve", "Image"), Label an optional name within it.
type Identity struct {
	Group string
	Label string
}

// String renders the identity as a dotted path: "Group" or "Group.Label".
func (id Identity) String() string {
	if id.Label == "" {
		return id.Group
	}
	return id.Group + "." + id.Label
}

// ParseIdentity splits a dotted path at its first dot. Everything after
// the dot, including further dots, is the label, so "Curve.sine.I" parses
// as {Curve, sine.I}.
func ParseIdentity(path string) Identity {
	group, label, _ := strings.Cut(path, ".")
	return Identity{Group: group, Label: label}
}

func (id Identity) withDefault(group string) Identity {
	if id.Group == "" {
		id.Group = group
	}
	return id
}

// Key is a key tuple addressing an entry of a Map, one component per key
// dimension.
type Key []any

// String renders the key as a parenthesized tuple.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// id is the exact-match index key. Components are already normalized by
// their dimensions, so type plus value is an exact identity.
func (k Key) id() string {
	var b strings.Builder
	for i, v := range k {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		fmt.Fprintf(&b, "%T\x00%v", v, v)
	}
	return b.String()
}

// class is the structural class of a node used for map homogeneity:
// elements by identity, maps by key dimensions, composites by tag.
func class(n Node) string {
	switch n.Kind() {
	case KindElement:
		return "element:" + n.Identity().String()
	case KindMap:
		return "map:" + strings.Join(n.(*Map).DimensionNames(), ",")
	case KindComposite:
		return "composite:" + n.(*Composite).tag.String()
	}
	return ""
}
