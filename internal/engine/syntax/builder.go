package syntax

import (
	"fmt"

	"splc/internal/engine/token"
)

// Builder is the only way to create or mutate nodes. The parser owns one per
// parse and hands out the finished Tree.
type Builder struct {
	nodes []node
}

func NewBuilder(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{nodes: make([]node, 0, capacity)}
}

// Leaf allocates a leaf for tok.
func (b *Builder) Leaf(tok token.Token) NodeID {
	b.nodes = append(b.nodes, node{leaf: true, tok: tok, parent: NoNode})
	return NodeID(len(b.nodes) - 1)
}

// Internal allocates a childless internal node labelled label.
func (b *Builder) Internal(label string) NodeID {
	b.nodes = append(b.nodes, node{label: label, parent: NoNode})
	return NodeID(len(b.nodes) - 1)
}

// AddChild appends child to parent's child list and records the parent link.
// A node can be adopted once; leaves cannot have children.
func (b *Builder) AddChild(parent, child NodeID) error {
	if !b.valid(parent) || !b.valid(child) {
		return fmt.Errorf("syntax: add child %d to %d: node out of range", child, parent)
	}
	if parent == child {
		return fmt.Errorf("syntax: node %d cannot adopt itself", parent)
	}
	p := &b.nodes[parent]
	if p.leaf {
		return fmt.Errorf("syntax: leaf %d cannot have children", parent)
	}
	c := &b.nodes[child]
	if c.parent != NoNode {
		return fmt.Errorf("syntax: node %d already has parent %d", child, c.parent)
	}
	c.parent = parent
	p.children = append(p.children, child)
	return nil
}

// Label mirrors Tree.Label for nodes that are still under construction.
func (b *Builder) Label(id NodeID) string {
	if !b.valid(id) {
		return ""
	}
	if n := b.nodes[id]; n.leaf {
		return n.tok.Terminal()
	}
	return b.nodes[id].label
}

// Len is the number of nodes allocated so far.
func (b *Builder) Len() int { return len(b.nodes) }

// Finish seals the builder into a Tree rooted at root. The builder must not
// be used afterwards.
func (b *Builder) Finish(root NodeID) (*Tree, error) {
	if !b.valid(root) {
		return nil, fmt.Errorf("syntax: root %d out of range", root)
	}
	if b.nodes[root].parent != NoNode {
		return nil, fmt.Errorf("syntax: root %d has parent %d", root, b.nodes[root].parent)
	}
	t := &Tree{nodes: b.nodes, root: root}
	b.nodes = nil
	return t, nil
}

func (b *Builder) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(b.nodes)
}
