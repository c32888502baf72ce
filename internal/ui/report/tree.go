package report

import (
	"fmt"
	"io"

	"splc/internal/engine/syntax"
	"splc/internal/engine/token"
)

// TreeNode is the structured form of a syntax tree node.
type TreeNode struct {
	Label    string       `json:"label" yaml:"label"`
	Token    *token.Token `json:"token,omitempty" yaml:"token,omitempty"`
	Children []*TreeNode  `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildTree converts tree into nested TreeNodes without recursion.
func BuildTree(tree *syntax.Tree) *TreeNode {
	built := make(map[syntax.NodeID]*TreeNode, tree.Len())
	var root *TreeNode
	tree.Walk(func(id syntax.NodeID, _ int) bool {
		n := &TreeNode{Label: tree.Label(id)}
		if tok, ok := tree.Token(id); ok {
			n.Token = &tok
		}
		built[id] = n
		if parent, ok := tree.Parent(id); ok {
			p := built[parent]
			p.Children = append(p.Children, n)
		} else {
			root = n
		}
		return true
	})
	return root
}

// Tree writes the syntax tree, indented in text form.
func Tree(w io.Writer, tree *syntax.Tree, format Format) error {
	if format != FormatText {
		return encode(w, format, BuildTree(tree))
	}
	_, err := fmt.Fprint(w, tree.String())
	return err
}
