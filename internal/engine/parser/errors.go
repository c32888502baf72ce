package parser

import (
	"fmt"
	"strings"

	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/token"
)

// SyntaxError reports that the table has no action for the current token.
// Position is the 0-based index into the token list, one less than the
// offending token's ID for lexer output; when the list ran out before Accept,
// Position equals its length and AtEnd is set.
type SyntaxError struct {
	Position int
	Token    token.Token
	State    int
	Expected []string
	AtEnd    bool
	Trailing bool
}

func (e *SyntaxError) Error() string {
	switch {
	case e.AtEnd:
		return fmt.Sprintf("syntax error at position %d: unexpected end of input in state %d", e.Position, e.State)
	case e.Trailing:
		return fmt.Sprintf("syntax error at position %d: unexpected %q after end of input", e.Position, e.Token.Word)
	}
	msg := fmt.Sprintf("syntax error at position %d: unexpected %s %q in state %d", e.Position, e.Token.Class, e.Token.Word, e.State)
	if len(e.Expected) > 0 {
		msg += ", expected one of: " + strings.Join(e.Expected, " ")
	}
	return msg
}

func (e *SyntaxError) ErrorCode() domainerrors.ErrorCode { return domainerrors.CodeSyntax }

// ReduceUnderflow means the table and the stacks disagree: a reduction needed
// more entries than the stacks hold, or no goto exists for the reduced
// nonterminal. It indicates a broken table, never bad input.
type ReduceUnderflow struct {
	Production  int
	LHS         string
	State       int
	Have        int
	Need        int
	MissingGoto bool
}

func (e *ReduceUnderflow) Error() string {
	if e.MissingGoto {
		return fmt.Sprintf("reduce by production %d (%s): no goto from state %d", e.Production, e.LHS, e.State)
	}
	return fmt.Sprintf("reduce by production %d (%s) in state %d: need %d stack entries, have %d", e.Production, e.LHS, e.State, e.Need, e.Have)
}

func (e *ReduceUnderflow) ErrorCode() domainerrors.ErrorCode {
	return domainerrors.CodeReduceUnderflow
}
