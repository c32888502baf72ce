package scope

import (
	"fmt"

	domainerrors "splc/internal/core/errors"
)

// Rule names the scope rule a program broke.
type Rule string

const (
	RuleDuplicateDeclaration   Rule = "DuplicateDeclaration"
	RuleUndeclaredReference    Rule = "UndeclaredReference"
	RuleUndeclaredFunctionCall Rule = "UndeclaredFunctionCall"
	RuleShadowedScopeName      Rule = "ShadowedScopeName"
)

// SemanticError is a scope rule violation in an otherwise well-formed
// program. TokenID points at the offending occurrence; Previous, when set, at
// the earlier declaration it clashes with.
type SemanticError struct {
	Rule     Rule
	Name     string
	TokenID  int
	Previous int
	Scope    string
}

func (e *SemanticError) Error() string {
	switch e.Rule {
	case RuleDuplicateDeclaration:
		return fmt.Sprintf("%s: %s (token %d) is already declared in scope %s (token %d)", e.Rule, e.Name, e.TokenID, e.Scope, e.Previous)
	case RuleShadowedScopeName:
		return fmt.Sprintf("%s: function %s (token %d) has the same name as its enclosing function", e.Rule, e.Name, e.TokenID)
	default:
		return fmt.Sprintf("%s: %s (token %d) is not declared in scope %s", e.Rule, e.Name, e.TokenID, e.Scope)
	}
}

func (e *SemanticError) ErrorCode() domainerrors.ErrorCode { return domainerrors.CodeSemantic }

// UnhandledRule means the tree holds a shape the analyzer does not know. It
// points at a mismatch between the grammar and the analyzer, not bad input.
type UnhandledRule struct {
	Label  string
	Node   int
	Reason string
}

func (e *UnhandledRule) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unhandled rule %s at node %d", e.Label, e.Node)
	}
	return fmt.Sprintf("unhandled rule %s at node %d: %s", e.Label, e.Node, e.Reason)
}

func (e *UnhandledRule) ErrorCode() domainerrors.ErrorCode { return domainerrors.CodeInternal }
