package scope

import (
	"fmt"

	"splc/internal/engine/syntax"
	"splc/internal/engine/token"
)

// handler processes one internal node. Handlers never recurse; they schedule
// the children that matter on the walker's work list.
type handler func(w *walker, n syntax.Internal) error

type Option func(*Analyzer)

// WithStrict also rejects a nested function that reuses the name of the
// function it is declared in.
func WithStrict(strict bool) Option {
	return func(a *Analyzer) {
		a.strict = strict
	}
}

// Analyzer walks a syntax tree and produces its symbol table. It holds no
// per-run state and is safe for concurrent use.
type Analyzer struct {
	strict   bool
	handlers map[string]handler
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		handlers: map[string]handler{
			"PROG":      (*walker).visitProgram,
			"GLOBVARS":  (*walker).visitGlobals,
			"FUNCTIONS": (*walker).visitFunctions,
			"DECL":      (*walker).visitDecl,
			"HEADER":    (*walker).visitHeader,
			"BODY":      (*walker).visitBody,
			"LOCVARS":   (*walker).visitLocals,
			"SUBFUNCS":  (*walker).visitFirstChild,
			"ALGO":      (*walker).visitAlgo,
			"INSTRUC":   (*walker).visitInstructions,
			"COMMAND":   (*walker).visitCommand,
			"ASSIGN":    (*walker).visitAssign,
			"CALL":      (*walker).visitCall,
			"BRANCH":    (*walker).visitBranch,
			"TERM":      (*walker).visitFirstChild,
			"ARG":       (*walker).visitFirstChild,
			"COND":      (*walker).visitFirstChild,
			"OP":        (*walker).visitOperands,
			"SIMPLE":    (*walker).visitOperands,
			"COMPOSIT":  (*walker).visitOperands,
			"ATOMIC":    (*walker).visitAtomic,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Strict() bool { return a.strict }

// Analyze checks the scope rules of tree and returns the populated table.
// The first violation aborts the walk; no partial table is returned.
func (a *Analyzer) Analyze(tree *syntax.Tree) (*Table, error) {
	w := &walker{
		tree:     tree,
		table:    NewTable(),
		handlers: a.handlers,
		strict:   a.strict,
		work:     []task{{op: opVisit, node: tree.Root()}},
	}
	if err := w.drain(); err != nil {
		return nil, err
	}
	return w.table, nil
}

type opKind uint8

const (
	opVisit opKind = iota
	opPopScope
)

type task struct {
	op   opKind
	node syntax.NodeID
}

type walker struct {
	tree     *syntax.Tree
	table    *Table
	handlers map[string]handler
	strict   bool
	work     []task

	nextVariable int
	nextFunction int
}

func (w *walker) drain() error {
	for len(w.work) > 0 {
		next := w.work[len(w.work)-1]
		w.work = w.work[:len(w.work)-1]

		if next.op == opPopScope {
			if err := w.table.PopScope(); err != nil {
				return err
			}
			continue
		}

		n, ok := w.tree.Node(next.node).(syntax.Internal)
		if !ok {
			return &UnhandledRule{Label: w.tree.Label(next.node), Node: int(next.node), Reason: "leaf scheduled for analysis"}
		}
		h, ok := w.handlers[n.Label]
		if !ok {
			return &UnhandledRule{Label: n.Label, Node: int(n.ID)}
		}
		if err := h(w, n); err != nil {
			return err
		}
	}
	return nil
}

// schedule pushes nodes so that they are processed in the order given.
func (w *walker) schedule(ids ...syntax.NodeID) {
	for i := len(ids) - 1; i >= 0; i-- {
		w.work = append(w.work, task{op: opVisit, node: ids[i]})
	}
}

func (w *walker) visitProgram(n syntax.Internal) error {
	if err := w.expectChildren(n, 4); err != nil {
		return err
	}
	// Functions are bound before the main algorithm runs so it can call them.
	w.schedule(n.Children[1], n.Children[3], n.Children[2])
	return nil
}

func (w *walker) visitGlobals(n syntax.Internal) error {
	if len(n.Children) == 0 {
		return nil
	}
	if err := w.expectChildren(n, 4); err != nil {
		return err
	}
	if err := w.bindVariable(n.Children[0], n.Children[1]); err != nil {
		return err
	}
	w.schedule(n.Children[3])
	return nil
}

func (w *walker) visitFunctions(n syntax.Internal) error {
	if len(n.Children) == 0 {
		return nil
	}
	if err := w.expectChildren(n, 2); err != nil {
		return err
	}
	w.schedule(n.Children[0], n.Children[1])
	return nil
}

// visitDecl runs the header, which opens the function frame, then the body,
// then closes the frame.
func (w *walker) visitDecl(n syntax.Internal) error {
	if err := w.expectChildren(n, 2); err != nil {
		return err
	}
	w.work = append(w.work, task{op: opPopScope, node: n.ID})
	w.schedule(n.Children[0], n.Children[1])
	return nil
}

func (w *walker) visitHeader(n syntax.Internal) error {
	if err := w.expectChildren(n, 9); err != nil {
		return err
	}
	ftyp, err := w.wrapped(n.Children[0], "FTYP")
	if err != nil {
		return err
	}
	name, err := w.wrapped(n.Children[1], "FNAME")
	if err != nil {
		return err
	}

	enclosing := w.table.Current().Owner
	if w.strict && enclosing == name.Word {
		return &SemanticError{Rule: RuleShadowedScopeName, Name: name.Word, TokenID: name.ID, Scope: enclosing}
	}

	info := SymbolInfo{
		Kind:         KindFunction,
		Type:         Type(ftyp.Word),
		InternalName: fmt.Sprintf("f%d", w.nextFunction),
		TokenID:      name.ID,
	}
	if err := w.table.Bind(name.Word, info); err != nil {
		return err
	}
	w.nextFunction++

	w.table.PushScope(name.Word)
	for _, i := range []int{3, 5, 7} {
		param, err := w.wrapped(n.Children[i], "VNAME")
		if err != nil {
			return err
		}
		if err := w.declareVariable(param, TypeNum); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visitBody(n syntax.Internal) error {
	if err := w.expectChildren(n, 6); err != nil {
		return err
	}
	// Sub-functions are bound before the body's algorithm so it can call them.
	w.schedule(n.Children[1], n.Children[4], n.Children[2])
	return nil
}

func (w *walker) visitLocals(n syntax.Internal) error {
	if err := w.expectChildren(n, 9); err != nil {
		return err
	}
	for _, i := range []int{0, 3, 6} {
		if err := w.bindVariable(n.Children[i], n.Children[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visitAlgo(n syntax.Internal) error {
	if err := w.expectChildren(n, 3); err != nil {
		return err
	}
	w.schedule(n.Children[1])
	return nil
}

func (w *walker) visitInstructions(n syntax.Internal) error {
	if len(n.Children) == 0 {
		return nil
	}
	if err := w.expectChildren(n, 3); err != nil {
		return err
	}
	w.schedule(n.Children[0], n.Children[2])
	return nil
}

func (w *walker) visitCommand(n syntax.Internal) error {
	if err := w.expectChildren(n, 1, 2); err != nil {
		return err
	}
	first := n.Children[0]
	if !w.tree.IsLeaf(first) {
		w.schedule(first)
		return nil
	}
	switch w.tree.Label(first) {
	case "skip", "halt":
		return nil
	case "print", "return":
		if err := w.expectChildren(n, 2); err != nil {
			return err
		}
		w.schedule(n.Children[1])
		return nil
	default:
		return &UnhandledRule{Label: n.Label, Node: int(n.ID), Reason: fmt.Sprintf("unknown command %q", w.tree.Label(first))}
	}
}

func (w *walker) visitAssign(n syntax.Internal) error {
	if err := w.expectChildren(n, 3); err != nil {
		return err
	}
	target, err := w.wrapped(n.Children[0], "VNAME")
	if err != nil {
		return err
	}
	if err := w.resolveVariable(target); err != nil {
		return err
	}
	if w.tree.Label(n.Children[1]) == "=" {
		w.schedule(n.Children[2])
	}
	return nil
}

func (w *walker) visitCall(n syntax.Internal) error {
	if err := w.expectChildren(n, 8); err != nil {
		return err
	}
	name, err := w.wrapped(n.Children[0], "FNAME")
	if err != nil {
		return err
	}
	if sym, ok := w.table.LookupVisible(name.Word); !ok || sym.Kind != KindFunction {
		return &SemanticError{Rule: RuleUndeclaredFunctionCall, Name: name.Word, TokenID: name.ID, Scope: w.table.Current().Owner}
	}
	w.schedule(n.Children[2], n.Children[4], n.Children[6])
	return nil
}

func (w *walker) visitBranch(n syntax.Internal) error {
	if err := w.expectChildren(n, 6); err != nil {
		return err
	}
	w.schedule(n.Children[1], n.Children[3], n.Children[5])
	return nil
}

func (w *walker) visitFirstChild(n syntax.Internal) error {
	if err := w.expectChildren(n, 1); err != nil {
		return err
	}
	w.schedule(n.Children[0])
	return nil
}

// visitOperands handles OP, SIMPLE and COMPOSIT: an operator leaf-wrapper
// followed by parenthesised operands. The operator itself binds nothing.
func (w *walker) visitOperands(n syntax.Internal) error {
	if err := w.expectChildren(n, 4, 6); err != nil {
		return err
	}
	if len(n.Children) == 4 {
		w.schedule(n.Children[2])
		return nil
	}
	w.schedule(n.Children[2], n.Children[4])
	return nil
}

func (w *walker) visitAtomic(n syntax.Internal) error {
	if err := w.expectChildren(n, 1); err != nil {
		return err
	}
	child := n.Children[0]
	switch w.tree.Label(child) {
	case "CONST":
		return nil
	case "VNAME":
		ref, err := w.wrapped(child, "VNAME")
		if err != nil {
			return err
		}
		return w.resolveVariable(ref)
	default:
		return &UnhandledRule{Label: n.Label, Node: int(n.ID), Reason: "operand is neither a variable nor a constant"}
	}
}

func (w *walker) bindVariable(vtyp, vname syntax.NodeID) error {
	typ, err := w.wrapped(vtyp, "VTYP")
	if err != nil {
		return err
	}
	name, err := w.wrapped(vname, "VNAME")
	if err != nil {
		return err
	}
	return w.declareVariable(name, Type(typ.Word))
}

func (w *walker) declareVariable(name token.Token, typ Type) error {
	info := SymbolInfo{
		Kind:         KindVariable,
		Type:         typ,
		InternalName: fmt.Sprintf("v%d", w.nextVariable),
		TokenID:      name.ID,
	}
	if err := w.table.Bind(name.Word, info); err != nil {
		return err
	}
	w.nextVariable++
	return nil
}

func (w *walker) resolveVariable(ref token.Token) error {
	if sym, ok := w.table.LookupVisible(ref.Word); ok && sym.Kind == KindVariable {
		return nil
	}
	return &SemanticError{Rule: RuleUndeclaredReference, Name: ref.Word, TokenID: ref.ID, Scope: w.table.Current().Owner}
}

// wrapped returns the single token under a VNAME, FNAME, VTYP or FTYP node.
func (w *walker) wrapped(id syntax.NodeID, label string) (token.Token, error) {
	n, ok := w.tree.Node(id).(syntax.Internal)
	if !ok || n.Label != label || len(n.Children) != 1 {
		return token.Token{}, &UnhandledRule{Label: w.tree.Label(id), Node: int(id), Reason: "expected " + label}
	}
	tok, ok := w.tree.Token(n.Children[0])
	if !ok {
		return token.Token{}, &UnhandledRule{Label: label, Node: int(id), Reason: "expected a token"}
	}
	return tok, nil
}

func (w *walker) expectChildren(n syntax.Internal, counts ...int) error {
	for _, c := range counts {
		if len(n.Children) == c {
			return nil
		}
	}
	return &UnhandledRule{Label: n.Label, Node: int(n.ID), Reason: fmt.Sprintf("unexpected child count %d", len(n.Children))}
}
