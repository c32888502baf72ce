package parser

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/grammar"
	"splc/internal/engine/syntax"
	"splc/internal/engine/token"
)

var acceptedPrograms = map[string]string{
	"assignment":   `main num V_x , begin V_x = 5 ; end $`,
	"print":        `main num V_x , begin V_x = 5 ; print V_x ; end $`,
	"two globals":  `main num V_a , text V_b , begin V_a = 1 ; end $`,
	"skip halt":    `main begin skip ; halt ; end $`,
	"input":        `main text V_s , begin V_s < input ; print "Hello" ; end $`,
	"nested ops":   `main num V_a , begin V_a = add ( V_a , mul ( 2 , V_a ) ) ; V_a = sqrt ( V_a ) ; end $`,
	"calls":        `main num V_r , begin V_r = F_f ( V_r , 1 , "Ab" ) ; F_f ( 1 , 2 , 3 ) ; end $`,
	"simple cond":  `main num V_x , begin if eq ( V_x , 1 ) then begin skip ; end else begin halt ; end ; end $`,
	"binary cond":  `main num V_x , begin if and ( grt ( V_x , 1 ) , eq ( V_x , V_x ) ) then begin skip ; end else begin skip ; end ; end $`,
	"unary cond":   `main num V_x , begin if not ( eq ( V_x , 1 ) ) then begin skip ; end else begin skip ; end ; end $`,
	"function":     `main begin skip ; end num F_f ( V_a , V_b , V_c ) { num V_d , num V_e , text V_f , begin return V_a ; end } end $`,
	"empty":        `main begin end $`,
	"subfunctions": `main begin skip ; end void F_outer ( V_a , V_b , V_c ) { num V_d , num V_e , text V_f , begin skip ; end } void F_inner ( V_a , V_b , V_c ) { num V_g , num V_h , num V_i , begin skip ; end } end end num F_last ( V_a , V_b , V_c ) { num V_j , num V_k , num V_l , begin skip ; end } end $`,
}

func TestParseAcceptsPrograms(t *testing.T) {
	p := New(grammar.SPL())
	for name, src := range acceptedPrograms {
		t.Run(name, func(t *testing.T) {
			toks := token.FromWords(src)
			tree, err := p.Parse(toks)
			require.NoError(t, err)

			assert.Equal(t, "PROG", tree.Label(tree.Root()))
			_, hasParent := tree.Parent(tree.Root())
			assert.False(t, hasParent)

			// Every input token except the end-of-input sentinel is a leaf,
			// in order.
			assert.Equal(t, toks[:len(toks)-1], tree.Leaves())
		})
	}
}

func TestParseScenarioA(t *testing.T) {
	tree, err := New(grammar.SPL()).Parse(token.FromWords(`main num V_x , begin V_x = 5 ; end $`))
	require.NoError(t, err)

	root := tree.Root()
	labels := make([]string, 0)
	for _, c := range tree.Children(root) {
		labels = append(labels, tree.Label(c))
	}
	assert.Equal(t, []string{"main", "GLOBVARS", "ALGO", "FUNCTIONS"}, labels)

	functions := tree.Child(root, 3)
	assert.Equal(t, 0, tree.NumChildren(functions), "FUNCTIONS reduced from epsilon")

	globals := tree.Child(root, 1)
	require.Equal(t, 4, tree.NumChildren(globals))
	assert.Equal(t, 0, tree.NumChildren(tree.Child(globals, 3)), "GLOBVARS tail is epsilon")
}

func TestParseEpsilonProgram(t *testing.T) {
	tree, err := New(grammar.SPL()).Parse(token.FromWords(`main begin end $`))
	require.NoError(t, err)

	root := tree.Root()
	require.Equal(t, 4, tree.NumChildren(root))
	assert.Equal(t, 0, tree.NumChildren(tree.Child(root, 1)), "GLOBVARS")
	algo := tree.Child(root, 2)
	require.Equal(t, 3, tree.NumChildren(algo))
	assert.Equal(t, "INSTRUC", tree.Label(tree.Child(algo, 1)))
	assert.Equal(t, 0, tree.NumChildren(tree.Child(algo, 1)))
	assert.Equal(t, 8, tree.Len())
}

func TestParseStackArity(t *testing.T) {
	var steps []Step
	p := New(grammar.SPL(), WithObserver(func(s Step) { steps = append(steps, s) }))

	toks := token.FromWords(acceptedPrograms["subfunctions"])
	_, err := p.Parse(toks)
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	shifts := 0
	for _, s := range steps {
		assert.Equal(t, s.StatesBefore, s.NodesBefore+1, "state stack is one deeper than node stack")
		assert.Equal(t, s.StatesAfter, s.NodesAfter+1)
		switch s.Kind {
		case StepShift:
			shifts++
			assert.Equal(t, s.StatesBefore+1, s.StatesAfter)
			assert.Equal(t, s.NodesBefore+1, s.NodesAfter)
		case StepReduce:
			assert.Equal(t, s.StatesBefore-s.Production.Len()+1, s.StatesAfter, s.Production.String())
			assert.Equal(t, s.NodesBefore-s.Production.Len()+1, s.NodesAfter)
		case StepAccept:
			assert.Equal(t, 1, s.NodesAfter)
			assert.Equal(t, 2, s.StatesAfter, "accepting state sits above state 0")
			assert.Equal(t, s.FromState, s.ToState)
		}
	}
	assert.Equal(t, len(toks)-1, shifts, "every token but the sentinel is shifted")
	assert.Equal(t, StepAccept, steps[len(steps)-1].Kind)
}

func TestParseScenarioCEmptyInput(t *testing.T) {
	_, err := New(grammar.SPL()).Parse([]token.Token{token.EOF(1)})
	require.Error(t, err)

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Position)
	assert.Equal(t, 0, se.State)
	assert.Equal(t, token.EndOfInput, se.Token.Class)
	assert.Equal(t, []string{"main"}, se.Expected)
	assert.True(t, domainerrors.IsCode(err, domainerrors.CodeSyntax))
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		position int
		state    int
		word     string
		atEnd    bool
		trailing bool
	}{
		{name: "missing comma", src: `main num V_x begin V_x = 5 ; end $`, position: 3, state: 9, word: "begin"},
		{name: "missing semicolon", src: `main begin skip end $`, position: 3, word: "end", state: 18},
		{name: "no sentinel", src: `main begin end`, position: 3, atEnd: true},
		{name: "after sentinel", src: `main begin end $ skip`, position: 4, word: "skip", trailing: true},
	}
	p := New(grammar.SPL())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(token.FromWords(tc.src))
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)

			assert.Equal(t, tc.position, se.Position)
			assert.Equal(t, tc.atEnd, se.AtEnd)
			assert.Equal(t, tc.trailing, se.Trailing)
			if !tc.atEnd {
				assert.Equal(t, tc.word, se.Token.Word)
				assert.Equal(t, se.Position+1, se.Token.ID, "positions index the list; IDs start at 1")
			}
			if !tc.atEnd && !tc.trailing {
				assert.Equal(t, tc.state, se.State)
			}
		})
	}
}

const listGrammar = `
version = 1
name = "list"

[[productions]]
id = 0
lhs = "START"
rhs = ["LIST"]

[[productions]]
id = 1
lhs = "LIST"
rhs = []

[[productions]]
id = 2
lhs = "LIST"
rhs = ["x", "LIST"]

[[states]]
id = 0
actions = { x = "s2", "$" = "r1" }
gotos = { LIST = 1 }

[[states]]
id = 1
actions = { "$" = "acc" }

[[states]]
id = 2
actions = { x = "s2", "$" = "r1" }
gotos = { LIST = 3 }

[[states]]
id = 3
actions = { "$" = "r2" }
`

func listTokens(n int) []token.Token {
	out := make([]token.Token, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, token.Token{ID: i + 1, Class: token.ReservedKeyword, Word: "x"})
	}
	return append(out, token.EOF(n+1))
}

func TestParseEpsilonOnlyInput(t *testing.T) {
	tbl, err := grammar.DecodeManifest(listGrammar)
	require.NoError(t, err)

	tree, err := New(tbl).Parse(listTokens(0))
	require.NoError(t, err)

	root := tree.Root()
	assert.Equal(t, "START", tree.Label(root))
	require.Equal(t, 1, tree.NumChildren(root))
	list := tree.Child(root, 0)
	assert.Equal(t, "LIST", tree.Label(list))
	assert.Equal(t, 0, tree.NumChildren(list))
	assert.Empty(t, tree.Leaves())
}

func TestParseRightRecursion(t *testing.T) {
	tbl, err := grammar.DecodeManifest(listGrammar)
	require.NoError(t, err)

	tree, err := New(tbl).Parse(listTokens(3))
	require.NoError(t, err)
	assert.Len(t, tree.Leaves(), 3)

	depth := 0
	tree.Walk(func(id syntax.NodeID, d int) bool {
		if d > depth {
			depth = d
		}
		return true
	})
	assert.Equal(t, 4, depth)
}

func TestParseReduceUnderflow(t *testing.T) {
	cases := map[string]string{
		"short stack": `
version = 1
name = "short"
terminals = ["x", "$"]
nonterminals = ["S", "A"]

[[productions]]
id = 0
lhs = "S"
rhs = ["A"]

[[productions]]
id = 1
lhs = "A"
rhs = ["x", "x"]

[[states]]
id = 0
actions = { x = "s1" }
gotos = { A = 2 }

[[states]]
id = 1
actions = { "$" = "r1" }

[[states]]
id = 2
actions = { "$" = "acc" }
`,
		"missing goto": `
version = 1
name = "nogoto"

[[productions]]
id = 0
lhs = "S"
rhs = ["A"]

[[productions]]
id = 1
lhs = "A"
rhs = ["x"]

[[states]]
id = 0
actions = { x = "s1" }

[[states]]
id = 1
actions = { "$" = "r1" }
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			tbl, err := grammar.DecodeManifest(src)
			require.NoError(t, err)
			assert.NotEmpty(t, tbl.Verify(), "a table that underflows must not verify")

			_, err = New(tbl).Parse(listTokens(1))
			var ru *ReduceUnderflow
			require.True(t, errors.As(err, &ru), "got %v", err)
			assert.Equal(t, 1, ru.Production)
			assert.True(t, domainerrors.IsCode(err, domainerrors.CodeReduceUnderflow))
			assert.False(t, domainerrors.IsCode(err, domainerrors.CodeSyntax))
		})
	}
}

func TestParseConcurrentUse(t *testing.T) {
	p := New(grammar.SPL())
	var wg sync.WaitGroup
	errs := make(chan error, len(acceptedPrograms))
	for _, src := range acceptedPrograms {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			_, err := p.Parse(token.FromWords(src))
			errs <- err
		}(src)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
