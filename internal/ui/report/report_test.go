package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"splc/internal/core/app"
	"splc/internal/data/history"
	"splc/internal/engine/grammar"
	"splc/internal/engine/lexer"
	"splc/internal/engine/parser"
)

const program = "main num V_x ,\nbegin\n  V_x = 5 ;\nend\n"

func run(t *testing.T, src string) (*app.Result, error) {
	t.Helper()
	return app.NewFrontend().Run(context.Background(), "prog.spl", src)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "yaml": FormatYAML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	toks, err := lexer.Lex(program)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, Tokens(&text, toks, FormatText, Styles{}))
	out := text.String()
	assert.Contains(t, out, "variable")
	assert.Contains(t, out, "3:3")
	assert.Contains(t, out, "end_of_input")

	var js bytes.Buffer
	require.NoError(t, Tokens(&js, toks, FormatJSON, Styles{}))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded, len(toks))
	assert.Equal(t, "reserved_keyword", decoded[0]["class"])
	assert.Equal(t, "main", decoded[0]["word"])
}

func TestTree(t *testing.T) {
	res, err := run(t, program)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, Tree(&text, res.Tree, FormatText))
	assert.True(t, strings.HasPrefix(text.String(), "PROG\n  main \"main\"\n"))

	root := BuildTree(res.Tree)
	assert.Equal(t, "PROG", root.Label)
	require.Len(t, root.Children, 4)
	assert.Equal(t, "main", root.Children[0].Label)
	require.NotNil(t, root.Children[0].Token)
	assert.Equal(t, "GLOBVARS", root.Children[1].Label)

	var y bytes.Buffer
	require.NoError(t, Tree(&y, res.Tree, FormatYAML))
	var decoded TreeNode
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &decoded))
	assert.Equal(t, "PROG", decoded.Label)
	assert.Len(t, decoded.Children, 4)
}

func TestSymbols(t *testing.T) {
	res, err := run(t, program)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, Symbols(&text, res.Symbols, FormatText, Styles{}))
	assert.Contains(t, text.String(), "scope main (depth 0)")
	assert.Contains(t, text.String(), "V_x")
	assert.Contains(t, text.String(), "v0")

	var y bytes.Buffer
	require.NoError(t, Symbols(&y, res.Symbols, FormatYAML, Styles{}))
	var frames []struct {
		Owner   string `yaml:"owner"`
		Symbols []struct {
			Name         string `yaml:"name"`
			Kind         string `yaml:"kind"`
			Type         string `yaml:"type"`
			InternalName string `yaml:"internal_name"`
			TokenID      int    `yaml:"token_id"`
		} `yaml:"symbols"`
	}
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &frames))
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Symbols, 1)
	sym := frames[0].Symbols[0]
	assert.Equal(t, "V_x", sym.Name)
	assert.Equal(t, "variable", sym.Kind)
	assert.Equal(t, "num", sym.Type)
	assert.Equal(t, "v0", sym.InternalName)
	assert.Equal(t, 3, sym.TokenID)
}

func TestTable(t *testing.T) {
	tbl := grammar.SPL()

	var text bytes.Buffer
	require.NoError(t, Table(&text, tbl, []int{0, 10}, FormatText, Styles{}))
	assert.Contains(t, text.String(), "main:s1")
	assert.Contains(t, text.String(), "$:acc")

	var js bytes.Buffer
	require.NoError(t, Table(&js, tbl, []int{0}, FormatJSON, Styles{}))
	var views []StateView
	require.NoError(t, json.Unmarshal(js.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, map[string]string{"main": "s1"}, views[0].Actions)

	assert.Error(t, Table(&text, tbl, []int{tbl.States()}, FormatText, Styles{}))

	var toml bytes.Buffer
	require.NoError(t, TableTOML(&toml, tbl))
	back, err := grammar.DecodeManifest(toml.String())
	require.NoError(t, err)
	assert.Equal(t, tbl.Fingerprint(), back.Fingerprint())

	var prods bytes.Buffer
	require.NoError(t, Productions(&prods, tbl))
	assert.True(t, strings.HasPrefix(prods.String(), "  0  PROG -> main GLOBVARS ALGO FUNCTIONS\n"))

	var issues bytes.Buffer
	require.NoError(t, Issues(&issues, tbl, tbl.Verify(), Styles{}))
	assert.True(t, strings.HasPrefix(issues.String(), "ok "))
}

func TestDiagnostic(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		wants []string
	}{
		{
			name:  "lexical",
			src:   "main begin\n  V_X = 1 ;\nend",
			wants: []string{"prog.spl:2:3: lexical error: no token matches \"V_X\"", "    2 |   V_X = 1 ;", "      |   ^"},
		},
		{
			name:  "syntax",
			src:   "main begin\n  skip end",
			wants: []string{"prog.spl:2:8: syntax error: unexpected reserved_keyword \"end\"", "expected one of:", "token 4, parser state"},
		},
		{
			name:  "undeclared",
			src:   "main num V_x ,\nbegin\n  print V_y ;\nend",
			wants: []string{"prog.spl:3:9: semantic error: V_y is not declared in scope main", "rule UndeclaredReference"},
		},
		{
			name:  "duplicate",
			src:   "main num V_x ,\nnum V_x ,\nbegin end",
			wants: []string{"prog.spl:2:5: semantic error: V_x is already declared in scope main", "previous declaration at 1:10"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.src)
			require.Error(t, err)

			var out bytes.Buffer
			require.NoError(t, Diagnostic(&out, err, tc.src, Styles{}))
			for _, want := range tc.wants {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestDiagnosticInternal(t *testing.T) {
	_, err := parser.New(grammar.SPL()).Parse(nil)
	require.Error(t, err)

	var out bytes.Buffer
	require.NoError(t, Diagnostic(&out, err, "", Styles{}))
	assert.Contains(t, out.String(), "syntax error: unexpected end of input")
	assert.Contains(t, out.String(), "parser state 0")
	assert.NotContains(t, out.String(), "token ")
}

func TestRunsAndSummary(t *testing.T) {
	res, err := run(t, program)
	require.NoError(t, err)

	var sum bytes.Buffer
	require.NoError(t, Summary(&sum, res, Styles{}))
	assert.True(t, strings.HasPrefix(sum.String(), "ok prog.spl: 11 tokens, "))

	var out bytes.Buffer
	require.NoError(t, Runs(&out, []history.Run{
		{ID: "0123456789abcdef", Source: "a.spl", Status: history.StatusOK, Tokens: 4},
		{ID: "fedcba9876543210", Source: "b.spl", Status: "SYNTAX_ERROR"},
	}, FormatText, Styles{}))
	assert.Contains(t, out.String(), "01234567")
	assert.Contains(t, out.String(), "SYNTAX_ERROR")

	var empty bytes.Buffer
	require.NoError(t, Runs(&empty, nil, FormatText, Styles{}))
	assert.Contains(t, empty.String(), "no runs recorded")
}

func TestStep(t *testing.T) {
	var out bytes.Buffer
	toks, err := lexer.Lex("main begin end")
	require.NoError(t, err)
	_, err = parser.New(grammar.SPL(), parser.WithObserver(func(s parser.Step) {
		require.NoError(t, Step(&out, s))
	})).Parse(toks)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Contains(t, lines[0], "shift")
	assert.Contains(t, lines[len(lines)-1], "accept")
}
