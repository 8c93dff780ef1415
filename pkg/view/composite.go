package view

import (
	"fmt"
	"slices"

	"github.com/matzehuels/viewstack/pkg/errors"
)

// Tag is the operator a composite was built with.
type Tag int

const (
	// Aggregate combines branches simultaneously over one subject (an
	// overlay).
	Aggregate Tag = iota + 1
	// Arrange juxtaposes otherwise unrelated branches (a layout).
	Arrange
)

func (t Tag) String() string {
	switch t {
	case Aggregate:
		return "aggregate"
	case Arrange:
		return "arrange"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// ParseTag is the inverse of Tag.String.
func ParseTag(s string) (Tag, bool) {
	switch s {
	case "aggregate":
		return Aggregate, true
	case "arrange":
		return Arrange, true
	}
	return 0, false
}

func (t Tag) valid() bool { return t == Aggregate || t == Arrange }

func (t Tag) defaultGroup() string {
	if t == Arrange {
		return DefaultLayoutGroup
	}
	return DefaultOverlayGroup
}

// Branch is one member of a composite: the node and the unique key it is
// addressed by. Key equals the node's identity unless disambiguation
// suffixed it.
type Branch struct {
	Key  Identity
	Node Node
}

// Composite is an ordered collection of uniquely keyed, structurally
// arbitrary branches under one Tag. Composites are built by Compose and
// never change afterwards; a composite's tag is fixed for its lifetime.
type Composite struct {
	id       Identity
	tag      Tag
	branches []Branch
}

func (c *Composite) Kind() Kind         { return KindComposite }
func (c *Composite) Identity() Identity { return c.id }
func (c *Composite) sealed()            {}

// Tag returns the operator the composite was built with.
func (c *Composite) Tag() Tag { return c.tag }

// Len returns the number of branches.
func (c *Composite) Len() int { return len(c.branches) }

// Branches returns a copy of the branch list in order.
func (c *Composite) Branches() []Branch { return slices.Clone(c.branches) }

// Keys returns the branch keys in order.
func (c *Composite) Keys() []Identity {
	keys := make([]Identity, len(c.branches))
	for i, b := range c.branches {
		keys[i] = b.Key
	}
	return keys
}

// Get returns the branch keyed (group, label). It is the only way into a
// composite; there is no positional or key-tuple indexing. Returns
// ErrCodeNoSuchBranch when absent.
func (c *Composite) Get(group, label string) (Node, error) {
	want := Identity{Group: group, Label: label}
	for _, b := range c.branches {
		if b.Key == want {
			return b.Node, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNoSuchBranch, "%s %s has no branch %s (have %v)",
		c.tag, c.id, want, c.Keys())
}

// Branch is Get with a dotted path such as "Curve.I".
func (c *Composite) Branch(path string) (Node, error) {
	id := ParseIdentity(path)
	return c.Get(id.Group, id.Label)
}

// Relabel returns a copy with the identity fields overridden; empty
// arguments keep the current values.
func (c *Composite) Relabel(group, label string) *Composite {
	cp := *c
	if group != "" {
		cp.id.Group = group
	}
	if label != "" {
		cp.id.Label = label
	}
	return &cp
}

// NewComposite builds a composite of tag directly from nodes. Same-tag
// composites among nodes are spliced and colliding identities suffixed as
// in Compose, but maps are never merged, so a decoded tree keeps exactly
// the shape it was encoded with. A single node is allowed.
func NewComposite(tag Tag, nodes ...Node) (*Composite, error) {
	if !tag.valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown composition tag %v", tag)
	}
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "composite needs at least one branch")
	}
	var flat []Node
	for i, n := range nodes {
		if n == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "branch %d is nil", i)
		}
		flat = append(flat, operands(tag, n)...)
	}
	return newComposite(tag, flat), nil
}

// WithKeys returns a copy whose branches are keyed by keys, in order. The
// keys must be unique and one per branch; otherwise it returns
// ErrCodeInvalidInput.
func (c *Composite) WithKeys(keys []Identity) (*Composite, error) {
	if len(keys) != len(c.branches) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s %s: %d keys for %d branches",
			c.tag, c.id, len(keys), len(c.branches))
	}
	seen := make(map[Identity]bool, len(keys))
	branches := make([]Branch, len(keys))
	for i, k := range keys {
		if seen[k] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s %s: duplicate branch key %s", c.tag, c.id, k)
		}
		seen[k] = true
		branches[i] = Branch{Key: k, Node: c.branches[i].Node}
	}
	return &Composite{id: c.id, tag: c.tag, branches: branches}, nil
}
