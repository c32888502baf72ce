package token

import "strings"

// Classify guesses the class of a single pre-separated word by its shape.
// It does not validate the word; the lexer is the authority for source text.
func Classify(word string) Class {
	switch {
	case word == TerminalEOF:
		return EndOfInput
	case strings.HasPrefix(word, "V_"):
		return Variable
	case strings.HasPrefix(word, "F_"):
		return Function
	case strings.HasPrefix(word, `"`):
		return Text
	case isNumeric(word):
		return Number
	default:
		return ReservedKeyword
	}
}

// FromWords builds a token list from whitespace separated words, numbering
// ids from 1. A trailing "$" is not added; include it when the list should
// be complete.
func FromWords(src string) []Token {
	fields := strings.Fields(src)
	out := make([]Token, 0, len(fields))
	for i, word := range fields {
		out = append(out, Token{ID: i + 1, Class: Classify(word), Word: word})
	}
	return out
}

func isNumeric(word string) bool {
	s := strings.TrimPrefix(word, "-")
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return s[0] != '.'
}
