// Package token defines the lexical tokens consumed by the SPL parser.
package token

import (
	"fmt"
	"strings"
)

// Class is the lexical category a token was recognised as.
type Class uint8

const (
	ReservedKeyword Class = iota
	Variable
	Function
	Number
	Text
	EndOfInput
)

var classNames = [...]string{
	ReservedKeyword: "reserved_keyword",
	Variable:        "variable",
	Function:        "user_defined_function",
	Number:          "number",
	Text:            "text",
	EndOfInput:      "end_of_input",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// ParseClass is the inverse of Class.String.
func ParseClass(s string) (Class, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range classNames {
		if name == normalized {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("unknown token class %q", s)
}

// Terminal names for the non-keyword classes. Keywords are their own terminal.
const (
	TerminalVariable = "V"
	TerminalFunction = "F"
	TerminalNumber   = "N"
	TerminalText     = "T"
	TerminalEOF      = "$"
)

// Token is a single lexeme. ID is unique within one token list and is what
// semantic diagnostics point back at. IDs start at 1, so the lexer gives the
// token at list index i the ID i+1; parser positions are list indexes, not
// IDs. Line and Column are 1-based and zero when the token was not produced
// from source text.
type Token struct {
	ID     int    `json:"id" yaml:"id"`
	Class  Class  `json:"class" yaml:"class"`
	Word   string `json:"word" yaml:"word"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// Terminal maps the token onto the grammar terminal the parse table is keyed by.
func (t Token) Terminal() string {
	switch t.Class {
	case Variable:
		return TerminalVariable
	case Function:
		return TerminalFunction
	case Number:
		return TerminalNumber
	case Text:
		return TerminalText
	case EndOfInput:
		return TerminalEOF
	default:
		return t.Word
	}
}

func (t Token) String() string {
	if t.Class == EndOfInput {
		return fmt.Sprintf("#%d $", t.ID)
	}
	return fmt.Sprintf("#%d %s %q", t.ID, t.Class, t.Word)
}

// EOF returns the end-of-input sentinel with the given id.
func EOF(id int) Token {
	return Token{ID: id, Class: EndOfInput, Word: TerminalEOF}
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(b []byte) error {
	parsed, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
