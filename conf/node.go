package conf

import (
	"github.com/zclconf/go-cty/cty"
)

// Sigil is the reserved key prefix that marks a mapping entry as a registry
// category selector, e.g. "@layers".
const Sigil = "@"

// Kind discriminates the three node variants.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindPromise
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindPromise:
		return "promise"
	default:
		return "invalid"
	}
}

// Node is a single vertex of a configuration tree.
//
// Scalar nodes carry a cty.Value. Mapping and promise nodes carry ordered
// string-keyed children; a promise additionally carries the registry category
// and constructor name extracted from its sigil key. The sigil key itself is
// not part of the child set.
type Node struct {
	kind     Kind
	scalar   cty.Value
	keys     []string
	children map[string]*Node
	category string
	name     string
}

// Scalar returns a new scalar node wrapping v.
func Scalar(v cty.Value) *Node {
	return &Node{kind: KindScalar, scalar: v}
}

// Mapping returns a new empty plain-mapping node.
func Mapping() *Node {
	return &Node{kind: KindMapping, children: make(map[string]*Node)}
}

// Promise returns a new promise node for the given registry category and
// constructor name, with no arguments yet.
func Promise(category, name string) *Node {
	return &Node{
		kind:     KindPromise,
		children: make(map[string]*Node),
		category: category,
		name:     name,
	}
}

// Kind reports which variant this node is.
func (n *Node) Kind() Kind { return n.kind }

// IsPromise reports whether the node designates a constructor invocation.
func (n *Node) IsPromise() bool { return n.kind == KindPromise }

// Value returns the scalar payload. It is cty.NilVal for non-scalar nodes.
func (n *Node) Value() cty.Value { return n.scalar }

// Keys returns the child keys in insertion order. The slice is a copy.
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.keys) }

// Child returns the child stored under key, or nil.
func (n *Node) Child(key string) *Node { return n.children[key] }

// SetChild stores child under key, preserving first-insertion order.
func (n *Node) SetChild(key string, child *Node) {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Category returns the registry category of a promise node, e.g. "layers".
func (n *Node) Category() string { return n.category }

// Name returns the constructor name of a promise node, e.g. "Embed.v0".
func (n *Node) Name() string { return n.name }

// SigilKey returns the promise's sigil key as written in the input,
// e.g. "@layers". It is empty for non-promise nodes.
func (n *Node) SigilKey() string {
	if n.kind != KindPromise {
		return ""
	}
	return Sigil + n.category
}
