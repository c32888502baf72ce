// Package parser is the table-driven shift-reduce engine. It turns a token
// list into a syntax.Tree using a grammar.Table and nothing else.
package parser

import (
	"fmt"

	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/grammar"
	"splc/internal/engine/syntax"
	"splc/internal/engine/token"
)

type StepKind uint8

const (
	StepShift StepKind = iota
	StepReduce
	StepAccept
)

func (k StepKind) String() string {
	switch k {
	case StepShift:
		return "shift"
	case StepReduce:
		return "reduce"
	default:
		return "accept"
	}
}

// Step describes one engine transition. Heights are taken immediately before
// and after the transition. For reduce and accept, Production is the rule
// that was applied.
type Step struct {
	Kind         StepKind
	Position     int
	Token        token.Token
	FromState    int
	ToState      int
	Production   grammar.Production
	StatesBefore int
	StatesAfter  int
	NodesBefore  int
	NodesAfter   int
}

// Observer receives every step of a parse, in order.
type Observer func(Step)

type Option func(*Parser)

func WithObserver(fn Observer) Option {
	return func(p *Parser) {
		p.observer = fn
	}
}

// Parser is safe for concurrent use; every Parse call owns its own stacks.
type Parser struct {
	table    *grammar.Table
	observer Observer
}

func New(table *grammar.Table, opts ...Option) *Parser {
	p := &Parser{table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Table() *grammar.Table { return p.table }

// Parse runs the engine over tokens, which must end with the end-of-input
// token. The sentinel drives Accept but does not become a leaf.
func (p *Parser) Parse(tokens []token.Token) (*syntax.Tree, error) {
	r := &run{
		table:    p.table,
		observer: p.observer,
		tokens:   tokens,
		states:   make([]int, 1, len(tokens)+1),
		nodes:    make([]syntax.NodeID, 0, len(tokens)),
		builder:  syntax.NewBuilder(2 * len(tokens)),
	}
	return r.loop()
}

type run struct {
	table    *grammar.Table
	observer Observer
	tokens   []token.Token
	pos      int
	states   []int
	nodes    []syntax.NodeID
	builder  *syntax.Builder
}

func (r *run) top() int { return r.states[len(r.states)-1] }

func (r *run) loop() (*syntax.Tree, error) {
	for {
		state := r.top()
		if r.pos >= len(r.tokens) {
			return nil, &SyntaxError{
				Position: r.pos,
				State:    state,
				Expected: r.table.Expected(state),
				AtEnd:    true,
			}
		}

		tok := r.tokens[r.pos]
		action := r.table.Action(state, tok.Terminal())
		switch action.Kind {
		case grammar.ActionShift:
			r.shift(action.Operand, tok)

		case grammar.ActionReduce:
			prod, ok := r.table.Production(action.Operand)
			if !ok {
				return nil, domainerrors.New(domainerrors.CodeInternal,
					fmt.Sprintf("state %d: reduce by unknown production %d", state, action.Operand))
			}
			if err := r.reduce(prod, tok); err != nil {
				return nil, err
			}

		case grammar.ActionAccept:
			root, err := r.accept(tok)
			if err != nil {
				return nil, err
			}
			if next := r.pos + 1; next < len(r.tokens) {
				return nil, &SyntaxError{Position: next, Token: r.tokens[next], State: r.top(), Trailing: true}
			}
			return r.builder.Finish(root)

		default:
			return nil, &SyntaxError{
				Position: r.pos,
				Token:    tok,
				State:    state,
				Expected: r.table.Expected(state),
			}
		}
	}
}

func (r *run) shift(target int, tok token.Token) {
	step := r.begin(StepShift, tok)
	r.states = append(r.states, target)
	r.nodes = append(r.nodes, r.builder.Leaf(tok))
	r.pos++
	r.emit(step)
}

func (r *run) reduce(prod grammar.Production, lookahead token.Token) error {
	step := r.begin(StepReduce, lookahead)
	step.Production = prod

	n := prod.Len()
	if len(r.nodes) < n {
		return &ReduceUnderflow{Production: prod.ID, LHS: prod.LHS, State: r.top(), Have: len(r.nodes), Need: n}
	}

	parent, err := r.fold(prod.LHS, n)
	if err != nil {
		return err
	}
	r.states = r.states[:len(r.states)-n]

	exposed := r.top()
	target, ok := r.table.Goto(exposed, prod.LHS)
	if !ok {
		return &ReduceUnderflow{Production: prod.ID, LHS: prod.LHS, State: exposed, MissingGoto: true}
	}
	r.states = append(r.states, target)
	r.nodes = append(r.nodes, parent)
	r.emit(step)
	return nil
}

// accept finishes the parse. If the node stack does not already hold just
// the start symbol, the start production folds it like a reduce. The start
// symbol has no goto, so the accepting state takes the goto's place and the
// state stack stays one deeper than the node stack.
func (r *run) accept(lookahead token.Token) (syntax.NodeID, error) {
	step := r.begin(StepAccept, lookahead)
	start := r.table.StartProduction()
	step.Production = start
	accepting := r.top()

	if len(r.nodes) == 1 && r.builder.Label(r.nodes[0]) == start.LHS {
		root := r.nodes[0]
		r.emit(step)
		return root, nil
	}

	n := start.Len()
	if len(r.nodes) != n {
		return syntax.NoNode, &ReduceUnderflow{Production: start.ID, LHS: start.LHS, State: r.top(), Have: len(r.nodes), Need: n}
	}
	root, err := r.fold(start.LHS, n)
	if err != nil {
		return syntax.NoNode, err
	}
	r.states = append(r.states[:len(r.states)-n], accepting)
	r.nodes = append(r.nodes, root)
	r.emit(step)
	return root, nil
}

// fold pops n nodes and adopts them, in source order, under a new node.
func (r *run) fold(label string, n int) (syntax.NodeID, error) {
	parent := r.builder.Internal(label)
	popped := r.nodes[len(r.nodes)-n:]
	for _, child := range popped {
		if err := r.builder.AddChild(parent, child); err != nil {
			return syntax.NoNode, domainerrors.Wrap(err, domainerrors.CodeInternal, "build syntax tree")
		}
	}
	r.nodes = r.nodes[:len(r.nodes)-n]
	return parent, nil
}

func (r *run) begin(kind StepKind, tok token.Token) Step {
	return Step{
		Kind:         kind,
		Position:     r.pos,
		Token:        tok,
		FromState:    r.top(),
		StatesBefore: len(r.states),
		NodesBefore:  len(r.nodes),
	}
}

func (r *run) emit(step Step) {
	if r.observer == nil {
		return
	}
	step.ToState = r.top()
	step.StatesAfter = len(r.states)
	step.NodesAfter = len(r.nodes)
	r.observer(step)
}
