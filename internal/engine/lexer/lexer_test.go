package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/token"
)

func words(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Word)
	}
	return out
}

func TestLexProgram(t *testing.T) {
	src := "main num V_x ,\nbegin\n\tV_x = -12 ;\n\tprint \"Hello\" ;\nend\n"
	toks, err := Lex(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "num", "V_x", ",", "begin", "V_x", "=", "-12", ";", "print", `"Hello"`, ";", "end", "$"}, words(toks))

	last := toks[len(toks)-1]
	assert.Equal(t, token.EndOfInput, last.Class)
	assert.Equal(t, len(toks), last.ID)

	assert.Equal(t, token.Variable, toks[2].Class)
	assert.Equal(t, token.Number, toks[7].Class)
	assert.Equal(t, token.Text, toks[10].Class)

	assert.Equal(t, 3, toks[5].Line)
	assert.Equal(t, 2, toks[5].Column)
	for i, tok := range toks {
		assert.Equal(t, i+1, tok.ID)
	}
}

func TestLexInputAssignment(t *testing.T) {
	for _, src := range []string{"V_a <input", "V_a < input"} {
		toks, err := Lex(src)
		require.NoError(t, err, src)
		assert.Equal(t, []string{"V_a", "<", "input", "$"}, words(toks), src)
		assert.Equal(t, "<", toks[1].Terminal())
		assert.Equal(t, "input", toks[2].Terminal())
	}
}

func TestLexNumbers(t *testing.T) {
	valid := []string{"0", "7", "-7", "120", "0.5", "-0.05", "3.25"}
	for _, n := range valid {
		toks, err := Lex(n)
		require.NoError(t, err, n)
		require.Len(t, toks, 2, n)
		assert.Equal(t, token.Number, toks[0].Class, n)
		assert.Equal(t, n, toks[0].Word)
	}
}

func TestLexLongestMatch(t *testing.T) {
	toks, err := Lex("F_add(V_x1,V_end)")
	require.NoError(t, err)
	assert.Equal(t, []string{"F_add", "(", "V_x1", ",", "V_end", ")", "$"}, words(toks))
	assert.Equal(t, token.Function, toks[0].Class)
}

func TestLexErrors(t *testing.T) {
	cases := map[string]struct {
		src    string
		line   int
		column int
	}{
		"uppercase variable": {"main V_X", 1, 6},
		"long text":          {"print \"Abcdefghij\"", 1, 7},
		"stray symbol":       {"begin\n  skip ; #\nend", 2, 10},
		"lowercase text":     {"print \"hello\"", 1, 7},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Lex(tc.src)
			var le *LexicalError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.Equal(t, tc.line, le.Line)
			assert.Equal(t, tc.column, le.Column)
			assert.True(t, domainerrors.IsCode(err, domainerrors.CodeLexical))
		})
	}
}

func TestLexEmpty(t *testing.T) {
	toks, err := Lex("   \n\t ")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.EndOfInput, toks[0].Class)
	assert.Equal(t, 1, toks[0].ID)
}
