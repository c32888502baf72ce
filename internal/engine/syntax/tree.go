// Package syntax is the concrete syntax tree produced by the parser. Nodes
// live in an arena and are addressed by NodeID; parent links are indices, so
// the tree has a single owner and no reference cycles.
package syntax

import (
	"fmt"
	"strings"

	"splc/internal/engine/token"
)

// NodeID addresses a node inside one Tree.
type NodeID int32

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Node is either a Leaf or an Internal node.
type Node interface {
	NodeID() NodeID
	isNode()
}

// Leaf wraps exactly one input token.
type Leaf struct {
	ID    NodeID
	Token token.Token
}

// Internal is labelled with the nonterminal it was reduced to. Children are
// in source order and may be empty for epsilon productions.
type Internal struct {
	ID       NodeID
	Label    string
	Children []NodeID
}

func (l Leaf) NodeID() NodeID     { return l.ID }
func (n Internal) NodeID() NodeID { return n.ID }
func (Leaf) isNode()              {}
func (Internal) isNode()          {}

type node struct {
	leaf     bool
	label    string
	tok      token.Token
	parent   NodeID
	children []NodeID
}

// Tree is read-only once built.
type Tree struct {
	nodes []node
	root  NodeID
}

func (t *Tree) Root() NodeID { return t.root }

// Len is the total number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the tagged view of id. It panics on an id from another tree.
func (t *Tree) Node(id NodeID) Node {
	n := t.mustGet(id)
	if n.leaf {
		return Leaf{ID: id, Token: n.tok}
	}
	children := make([]NodeID, len(n.children))
	copy(children, n.children)
	return Internal{ID: id, Label: n.label, Children: children}
}

// IsLeaf reports whether id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.mustGet(id).leaf
}

// Label is the nonterminal of an internal node or the terminal of a leaf.
func (t *Tree) Label(id NodeID) string {
	n := t.mustGet(id)
	if n.leaf {
		return n.tok.Terminal()
	}
	return n.label
}

// Token returns the token of a leaf.
func (t *Tree) Token(id NodeID) (token.Token, bool) {
	n := t.mustGet(id)
	if !n.leaf {
		return token.Token{}, false
	}
	return n.tok, true
}

func (t *Tree) NumChildren(id NodeID) int {
	return len(t.mustGet(id).children)
}

// Child returns the i-th child of id, or NoNode when out of range.
func (t *Tree) Child(id NodeID, i int) NodeID {
	children := t.mustGet(id).children
	if i < 0 || i >= len(children) {
		return NoNode
	}
	return children[i]
}

// Children returns a copy of the child list of id.
func (t *Tree) Children(id NodeID) []NodeID {
	children := t.mustGet(id).children
	out := make([]NodeID, len(children))
	copy(out, children)
	return out
}

// Parent returns the parent of id; the root has none.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) {
		return NoNode, false
	}
	p := t.nodes[id].parent
	return p, p != NoNode
}

// Enclosing returns the nearest proper ancestor of id labelled label.
func (t *Tree) Enclosing(id NodeID, label string) (NodeID, bool) {
	for cur, ok := t.Parent(id); ok; cur, ok = t.Parent(cur) {
		if !t.nodes[cur].leaf && t.nodes[cur].label == label {
			return cur, true
		}
	}
	return NoNode, false
}

// Depth is the number of edges between id and the root.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for cur, ok := t.Parent(id); ok; cur, ok = t.Parent(cur) {
		depth++
	}
	return depth
}

// Walk visits every node in pre-order. Returning false from fn skips the
// children of that node. The walk uses an explicit stack.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	if !t.valid(t.root) {
		return
	}
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.id, top.depth) {
			continue
		}
		children := t.nodes[top.id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: children[i], depth: top.depth + 1})
		}
	}
}

// Leaves returns the tokens of all leaves in left-to-right order.
func (t *Tree) Leaves() []token.Token {
	out := make([]token.Token, 0)
	t.Walk(func(id NodeID, _ int) bool {
		if n := t.nodes[id]; n.leaf {
			out = append(out, n.tok)
		}
		return true
	})
	return out
}

// String renders one node per line, indented by depth.
func (t *Tree) String() string {
	var b strings.Builder
	t.Walk(func(id NodeID, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		if tok, ok := t.Token(id); ok {
			fmt.Fprintf(&b, "%s %q\n", tok.Terminal(), tok.Word)
		} else {
			b.WriteString(t.nodes[id].label)
			b.WriteByte('\n')
		}
		return true
	})
	return b.String()
}

func (t *Tree) mustGet(id NodeID) *node {
	if !t.valid(id) {
		panic(fmt.Sprintf("syntax: node %d out of range [0,%d)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}
