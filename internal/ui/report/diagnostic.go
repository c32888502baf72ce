package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/lexer"
	"splc/internal/engine/parser"
	"splc/internal/engine/scope"
	"splc/internal/engine/token"
)

// Diagnostic renders err for a human. src is the text the error came from;
// when given, positions are shown with the offending source line.
func Diagnostic(w io.Writer, err error, src string, st Styles) error {
	if err == nil {
		return nil
	}
	d := describe(err, src)
	d.path = pathOf(err)

	var b strings.Builder
	loc := d.path
	if d.line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d:%d", d.line, d.column)
	}
	if loc != "" {
		b.WriteString(loc + ": ")
	}
	b.WriteString(st.Error(d.kind) + ": " + d.message + "\n")
	if d.line > 0 && src != "" {
		b.WriteString(excerpt(src, d.line, d.column, st))
	}
	for _, note := range d.notes {
		b.WriteString("  " + st.Muted(note) + "\n")
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

type diagnostic struct {
	path         string
	kind         string
	message      string
	line, column int
	notes        []string
}

func describe(err error, src string) diagnostic {
	var (
		lexErr   *lexer.LexicalError
		synErr   *parser.SyntaxError
		underErr *parser.ReduceUnderflow
		semErr   *scope.SemanticError
		ruleErr  *scope.UnhandledRule
	)
	switch {
	case errors.As(err, &lexErr):
		return diagnostic{
			kind:    "lexical error",
			message: fmt.Sprintf("no token matches %q", lexErr.Near),
			line:    lexErr.Line,
			column:  lexErr.Column,
		}

	case errors.As(err, &synErr):
		d := diagnostic{kind: "syntax error", line: synErr.Token.Line, column: synErr.Token.Column}
		switch {
		case synErr.AtEnd:
			d.message = "unexpected end of input"
		case synErr.Trailing:
			d.message = fmt.Sprintf("unexpected %q after end of input", synErr.Token.Word)
		case synErr.Token.Class == token.EndOfInput:
			d.message = "unexpected end of program"
		default:
			d.message = fmt.Sprintf("unexpected %s %q", synErr.Token.Class, synErr.Token.Word)
		}
		if len(synErr.Expected) > 0 {
			d.notes = append(d.notes, "expected one of: "+strings.Join(synErr.Expected, " "))
		}
		if synErr.AtEnd {
			d.notes = append(d.notes, fmt.Sprintf("parser state %d", synErr.State))
		} else {
			d.notes = append(d.notes, fmt.Sprintf("token %d, parser state %d", syntaxTokenID(synErr), synErr.State))
		}
		return d

	case errors.As(err, &semErr):
		d := diagnostic{kind: "semantic error", message: semanticMessage(semErr)}
		toks := relex(src)
		if tok, ok := tokenByID(toks, semErr.TokenID); ok {
			d.line, d.column = tok.Line, tok.Column
		}
		if semErr.Previous > 0 {
			if prev, ok := tokenByID(toks, semErr.Previous); ok && prev.Line > 0 {
				d.notes = append(d.notes, fmt.Sprintf("previous declaration at %d:%d", prev.Line, prev.Column))
			} else {
				d.notes = append(d.notes, fmt.Sprintf("previous declaration is token %d", semErr.Previous))
			}
		}
		d.notes = append(d.notes, "rule "+string(semErr.Rule))
		return d

	case errors.As(err, &underErr):
		return diagnostic{kind: "internal error", message: underErr.Error(),
			notes: []string{"the parse table is inconsistent; run `splc table --verify`"}}

	case errors.As(err, &ruleErr):
		return diagnostic{kind: "internal error", message: ruleErr.Error(),
			notes: []string{"the analyzer does not handle this grammar rule"}}
	}

	kind := "error"
	if code := domainerrors.CodeOf(err); code != domainerrors.CodeInternal {
		kind = strings.ToLower(strings.ReplaceAll(string(code), "_", " "))
	}
	var de *domainerrors.DomainError
	if errors.As(err, &de) {
		msg := de.Message
		if de.Err != nil {
			msg += ": " + de.Err.Error()
		}
		return diagnostic{kind: kind, message: msg}
	}
	return diagnostic{kind: kind, message: err.Error()}
}

func semanticMessage(e *scope.SemanticError) string {
	switch e.Rule {
	case scope.RuleDuplicateDeclaration:
		return fmt.Sprintf("%s is already declared in scope %s", e.Name, e.Scope)
	case scope.RuleUndeclaredFunctionCall:
		return fmt.Sprintf("call to undeclared function %s", e.Name)
	case scope.RuleShadowedScopeName:
		return fmt.Sprintf("function %s has the same name as the function enclosing it", e.Name)
	default:
		return fmt.Sprintf("%s is not declared in scope %s", e.Name, e.Scope)
	}
}

func pathOf(err error) string {
	var de *domainerrors.DomainError
	if errors.As(err, &de) {
		if p, ok := de.Context[domainerrors.CtxPath].(string); ok {
			return p
		}
	}
	return ""
}

func relex(src string) []token.Token {
	if src == "" {
		return nil
	}
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil
	}
	return toks
}

func tokenByID(toks []token.Token, id int) (token.Token, bool) {
	// Lexer ids are 1-based and dense.
	if id < 1 || id > len(toks) {
		return token.Token{}, false
	}
	return toks[id-1], true
}

func excerpt(src string, line, column int, st Styles) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	text := strings.TrimRight(lines[line-1], "\r")
	gutter := fmt.Sprintf("%5d | ", line)
	pad := strings.Repeat(" ", len(gutter)-2) + "| "
	caret := ""
	if column > 0 {
		caret = pad + strings.Repeat(" ", column-1) + st.Error("^") + "\n"
	}
	return st.Muted(gutter) + text + "\n" + caret
}

// syntaxTokenID names the offending token the way semantic diagnostics do,
// by ID rather than by list index.
func syntaxTokenID(e *parser.SyntaxError) int {
	if e.Token.ID > 0 {
		return e.Token.ID
	}
	return e.Position + 1
}
