// Package lexer turns SPL source text into the token list the parser reads.
package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/token"
)

var keywords = []string{
	"main", "num", "text", "void", "begin", "end",
	"skip", "halt", "print", "return", "input",
	"if", "then", "else",
	"not", "sqrt", "or", "and", "eq", "grt", "add", "sub", "mul", "div",
}

var punctuation = []string{";", ",", "(", ")", "{", "}", "<", "="}

type rule struct {
	class   token.Class
	pattern *regexp.Regexp
}

// Rules are tried in order; the longest match wins and ties go to the
// earlier rule.
var rules = []rule{
	{token.ReservedKeyword, regexp.MustCompile(`\A(?:` + keywordPattern() + `)`)},
	{token.Variable, regexp.MustCompile(`\AV_[a-z][a-z0-9]*`)},
	{token.Function, regexp.MustCompile(`\AF_[a-z][a-z0-9]*`)},
	{token.Text, regexp.MustCompile(`\A"[A-Z][a-z]{0,7}"`)},
	{token.Number, regexp.MustCompile(`\A(?:-?0\.[0-9]*[1-9]|-?[1-9][0-9]*(?:\.[0-9]*[1-9])?|0)`)},
}

func keywordPattern() string {
	alts := make([]string, 0, len(keywords)+len(punctuation))
	alts = append(alts, keywords...)
	for _, p := range punctuation {
		alts = append(alts, regexp.QuoteMeta(p))
	}
	return strings.Join(alts, "|")
}

// LexicalError points at the first character no rule accepts.
type LexicalError struct {
	Line   int
	Column int
	Near   string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d near %q", e.Line, e.Column, e.Near)
}

func (e *LexicalError) ErrorCode() domainerrors.ErrorCode { return domainerrors.CodeLexical }

// Lex tokenizes src. Token ids start at 1 and the list always ends with the
// end-of-input token.
func Lex(src string) ([]token.Token, error) {
	out := make([]token.Token, 0, len(src)/3+1)
	line, col := 1, 1
	emit := func(class token.Class, word string, line, col int) {
		out = append(out, token.Token{ID: len(out) + 1, Class: class, Word: word, Line: line, Column: col})
	}

	for pos := 0; pos < len(src); {
		switch src[pos] {
		case '\n':
			line++
			col = 1
			pos++
			continue
		case ' ', '\t', '\r':
			col++
			pos++
			continue
		}

		rest := src[pos:]
		// "<input" is written as one word in older sources; the grammar
		// reads it as two terminals.
		if strings.HasPrefix(rest, "<input") {
			emit(token.ReservedKeyword, "<", line, col)
			emit(token.ReservedKeyword, "input", line, col+1)
			pos += len("<input")
			col += len("<input")
			continue
		}

		class, word := longestMatch(rest)
		if word == "" {
			return nil, &LexicalError{Line: line, Column: col, Near: nearText(rest)}
		}
		emit(class, word, line, col)
		pos += len(word)
		col += utf8.RuneCountInString(word)
	}

	out = append(out, token.Token{ID: len(out) + 1, Class: token.EndOfInput, Word: token.TerminalEOF, Line: line, Column: col})
	return out, nil
}

func longestMatch(s string) (token.Class, string) {
	var (
		bestClass token.Class
		best      string
	)
	for _, r := range rules {
		if m := r.pattern.FindString(s); len(m) > len(best) {
			bestClass, best = r.class, m
		}
	}
	return bestClass, best
}

func nearText(rest string) string {
	end := strings.IndexAny(rest, " \t\r\n")
	if end < 0 {
		end = len(rest)
	}
	if end > 16 {
		end = 16
	}
	return rest[:end]
}
