// Package grammar holds LR parse tables: the productions of a grammar plus the
// ACTION and GOTO functions the shift-reduce engine is driven by.
package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"splc/internal/shared/util"
)

type ActionKind uint8

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table entry. Operand is the target state for a shift
// and the production id for a reduce; it is unused otherwise.
type Action struct {
	Kind    ActionKind
	Operand int
}

func Shift(state int) Action       { return Action{Kind: ActionShift, Operand: state} }
func Reduce(production int) Action { return Action{Kind: ActionReduce, Operand: production} }
func Accept() Action               { return Action{Kind: ActionAccept} }

// String renders the conventional compact form: s4, r12, acc. The error
// action renders as the empty string.
func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return "s" + strconv.Itoa(a.Operand)
	case ActionReduce:
		return "r" + strconv.Itoa(a.Operand)
	case ActionAccept:
		return "acc"
	default:
		return ""
	}
}

// ParseAction reads the form produced by Action.String.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "acc":
		return Accept(), nil
	case len(s) > 1 && (s[0] == 's' || s[0] == 'r'):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return Action{}, fmt.Errorf("invalid action operand in %q", s)
		}
		if s[0] == 's' {
			return Shift(n), nil
		}
		return Reduce(n), nil
	default:
		return Action{}, fmt.Errorf("invalid action %q", s)
	}
}

// Production is a grammar rule LHS -> RHS. An empty RHS is an epsilon rule.
type Production struct {
	ID  int
	LHS string
	RHS []string
}

// Len is the number of symbols a reduction by this production pops.
func (p Production) Len() int { return len(p.RHS) }

func (p Production) String() string {
	if len(p.RHS) == 0 {
		return p.LHS + " -> ε"
	}
	return p.LHS + " -> " + strings.Join(p.RHS, " ")
}

// Row is the table content for one parser state.
type Row struct {
	Actions map[string]Action
	Gotos   map[string]int
}

// Table is an immutable LR table. Production 0 is the start production; its
// LHS is the start symbol.
type Table struct {
	name         string
	productions  []Production
	rows         []Row
	terminals    []string
	nonterminals []string
}

// New builds a table from its parts. The inputs are copied. Terminals and
// nonterminals may be nil, in which case they are derived from the rows and
// productions in first-seen order.
func New(name string, productions []Production, rows []Row, terminals, nonterminals []string) (*Table, error) {
	if len(productions) == 0 {
		return nil, fmt.Errorf("grammar %q: at least one production is required", name)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grammar %q: at least one state is required", name)
	}

	t := &Table{
		name:        name,
		productions: make([]Production, len(productions)),
		rows:        make([]Row, len(rows)),
	}
	for i, p := range productions {
		if p.ID != i {
			return nil, fmt.Errorf("grammar %q: production %d declared with id %d", name, i, p.ID)
		}
		if strings.TrimSpace(p.LHS) == "" {
			return nil, fmt.Errorf("grammar %q: production %d has no left-hand side", name, i)
		}
		t.productions[i] = Production{ID: p.ID, LHS: p.LHS, RHS: append([]string(nil), p.RHS...)}
	}
	for i, r := range rows {
		row := Row{
			Actions: make(map[string]Action, len(r.Actions)),
			Gotos:   make(map[string]int, len(r.Gotos)),
		}
		for sym, a := range r.Actions {
			row.Actions[sym] = a
		}
		for sym, target := range r.Gotos {
			row.Gotos[sym] = target
		}
		t.rows[i] = row
	}

	if terminals == nil {
		terminals = t.deriveTerminals()
	}
	if nonterminals == nil {
		nonterminals = t.deriveNonterminals()
	}
	t.terminals = append([]string(nil), terminals...)
	t.nonterminals = append([]string(nil), nonterminals...)
	return t, nil
}

func (t *Table) Name() string { return t.name }

// Action returns the entry for (state, terminal). Missing entries and
// out-of-range states are the error action.
func (t *Table) Action(state int, terminal string) Action {
	if state < 0 || state >= len(t.rows) {
		return Action{}
	}
	return t.rows[state].Actions[terminal]
}

// Goto returns the state reached from state over a nonterminal.
func (t *Table) Goto(state int, nonterminal string) (int, bool) {
	if state < 0 || state >= len(t.rows) {
		return 0, false
	}
	target, ok := t.rows[state].Gotos[nonterminal]
	return target, ok
}

func (t *Table) Production(id int) (Production, bool) {
	if id < 0 || id >= len(t.productions) {
		return Production{}, false
	}
	return t.productions[id], true
}

// StartProduction is production 0.
func (t *Table) StartProduction() Production { return t.productions[0] }

func (t *Table) StartSymbol() string { return t.productions[0].LHS }

// States is the number of parser states.
func (t *Table) States() int { return len(t.rows) }

func (t *Table) Productions() []Production {
	out := make([]Production, len(t.productions))
	copy(out, t.productions)
	return out
}

func (t *Table) Terminals() []string { return append([]string(nil), t.terminals...) }

func (t *Table) Nonterminals() []string { return append([]string(nil), t.nonterminals...) }

// Expected lists the terminals with a non-error action in state, sorted.
func (t *Table) Expected(state int) []string {
	if state < 0 || state >= len(t.rows) {
		return nil
	}
	out := make([]string, 0, len(t.rows[state].Actions))
	for sym, a := range t.rows[state].Actions {
		if a.Kind != ActionError {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Table) deriveTerminals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.rows {
		for _, sym := range util.SortedStringKeys(row.Actions) {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}

func (t *Table) deriveNonterminals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range t.productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			out = append(out, p.LHS)
		}
	}
	return out
}
