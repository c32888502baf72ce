package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splc/internal/engine/token"
)

// buildSample builds ALGO(begin, INSTRUC(), end) under a PROG root.
func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	b := NewBuilder(8)

	main := b.Leaf(token.Token{ID: 1, Class: token.ReservedKeyword, Word: "main"})
	begin := b.Leaf(token.Token{ID: 2, Class: token.ReservedKeyword, Word: "begin"})
	instruc := b.Internal("INSTRUC")
	end := b.Leaf(token.Token{ID: 3, Class: token.ReservedKeyword, Word: "end"})
	algo := b.Internal("ALGO")
	for _, c := range []NodeID{begin, instruc, end} {
		require.NoError(t, b.AddChild(algo, c))
	}
	root := b.Internal("PROG")
	require.NoError(t, b.AddChild(root, main))
	require.NoError(t, b.AddChild(root, algo))

	tree, err := b.Finish(root)
	require.NoError(t, err)
	return tree, map[string]NodeID{
		"main": main, "begin": begin, "INSTRUC": instruc, "end": end, "ALGO": algo, "PROG": root,
	}
}

func TestTreeNavigation(t *testing.T) {
	tree, ids := buildSample(t)

	assert.Equal(t, ids["PROG"], tree.Root())
	assert.Equal(t, 6, tree.Len())

	_, ok := tree.Parent(tree.Root())
	assert.False(t, ok, "root has no parent")

	parent, ok := tree.Parent(ids["INSTRUC"])
	require.True(t, ok)
	assert.Equal(t, ids["ALGO"], parent)

	enclosing, ok := tree.Enclosing(ids["end"], "PROG")
	require.True(t, ok)
	assert.Equal(t, ids["PROG"], enclosing)

	_, ok = tree.Enclosing(ids["end"], "DECL")
	assert.False(t, ok)

	assert.Equal(t, 2, tree.Depth(ids["begin"]))
	assert.Equal(t, []NodeID{ids["begin"], ids["INSTRUC"], ids["end"]}, tree.Children(ids["ALGO"]))
	assert.Equal(t, ids["end"], tree.Child(ids["ALGO"], 2))
	assert.Equal(t, NoNode, tree.Child(ids["ALGO"], 3))
	assert.Equal(t, 0, tree.NumChildren(ids["INSTRUC"]))
}

func TestTreeTaggedNodes(t *testing.T) {
	tree, ids := buildSample(t)

	switch n := tree.Node(ids["ALGO"]).(type) {
	case Internal:
		assert.Equal(t, "ALGO", n.Label)
		assert.Len(t, n.Children, 3)
	default:
		t.Fatalf("expected internal node, got %T", n)
	}

	switch n := tree.Node(ids["begin"]).(type) {
	case Leaf:
		assert.Equal(t, "begin", n.Token.Word)
	default:
		t.Fatalf("expected leaf, got %T", n)
	}

	assert.Equal(t, "begin", tree.Label(ids["begin"]))
	assert.Equal(t, "INSTRUC", tree.Label(ids["INSTRUC"]))
	assert.Panics(t, func() { tree.Node(99) })
}

func TestTreeLeavesAndWalk(t *testing.T) {
	tree, _ := buildSample(t)

	words := make([]string, 0)
	for _, tok := range tree.Leaves() {
		words = append(words, tok.Word)
	}
	assert.Equal(t, []string{"main", "begin", "end"}, words)

	order := make([]string, 0)
	tree.Walk(func(id NodeID, depth int) bool {
		order = append(order, tree.Label(id))
		return tree.Label(id) != "ALGO"
	})
	assert.Equal(t, []string{"PROG", "main", "ALGO"}, order)

	assert.Equal(t, "PROG\n  main \"main\"\n  ALGO\n    begin \"begin\"\n    INSTRUC\n    end \"end\"\n", tree.String())
}

func TestBuilderRejectsBadLinks(t *testing.T) {
	b := NewBuilder(0)
	leaf := b.Leaf(token.Token{ID: 1, Word: "skip"})
	a := b.Internal("A")
	c := b.Internal("C")

	assert.Error(t, b.AddChild(leaf, a), "leaves cannot adopt")
	assert.Error(t, b.AddChild(a, a), "self adoption")
	assert.Error(t, b.AddChild(a, 42), "out of range")
	require.NoError(t, b.AddChild(a, leaf))
	assert.Error(t, b.AddChild(c, leaf), "second parent")

	_, err := b.Finish(leaf)
	assert.Error(t, err, "root must be parentless")
}
