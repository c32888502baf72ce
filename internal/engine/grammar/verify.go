package grammar

import (
	"fmt"
	"sort"

	"splc/internal/shared/util"
)

// Issue is one internal inconsistency found in a table.
type Issue struct {
	State  int
	Symbol string
	Reason string
}

func (i Issue) String() string {
	if i.State < 0 {
		return fmt.Sprintf("%s: %s", i.Symbol, i.Reason)
	}
	return fmt.Sprintf("state %d, %s: %s", i.State, i.Symbol, i.Reason)
}

type edge struct {
	to     int
	symbol string
}

// Verify checks that the table is internally consistent. A table with no
// issues can never make the engine fail with a reduce underflow.
func (t *Table) Verify() []Issue {
	issues := make([]Issue, 0)

	terminals := make(map[string]bool, len(t.terminals))
	for _, sym := range t.terminals {
		terminals[sym] = true
	}
	nonterminals := make(map[string]bool, len(t.nonterminals))
	for _, sym := range t.nonterminals {
		nonterminals[sym] = true
	}

	for _, p := range t.productions {
		if !nonterminals[p.LHS] {
			issues = append(issues, Issue{State: -1, Symbol: p.LHS, Reason: fmt.Sprintf("production %d has an undeclared left-hand side", p.ID)})
		}
		for _, sym := range p.RHS {
			if !terminals[sym] && !nonterminals[sym] {
				issues = append(issues, Issue{State: -1, Symbol: sym, Reason: fmt.Sprintf("production %d uses an undeclared symbol", p.ID)})
			}
		}
	}

	// Incoming edges keyed by target state, used to walk a reduction's
	// right-hand side backwards to the states that expose its goto.
	incoming := make(map[edge][]int)
	accepts := 0
	for state, row := range t.rows {
		for _, sym := range util.SortedStringKeys(row.Actions) {
			a := row.Actions[sym]
			if !terminals[sym] {
				issues = append(issues, Issue{State: state, Symbol: sym, Reason: "action on undeclared terminal"})
			}
			switch a.Kind {
			case ActionShift:
				if a.Operand < 0 || a.Operand >= len(t.rows) {
					issues = append(issues, Issue{State: state, Symbol: sym, Reason: fmt.Sprintf("shift to undefined state %d", a.Operand)})
					continue
				}
				incoming[edge{to: a.Operand, symbol: sym}] = append(incoming[edge{to: a.Operand, symbol: sym}], state)
			case ActionReduce:
				if a.Operand == 0 {
					issues = append(issues, Issue{State: state, Symbol: sym, Reason: "reduce by the start production; use accept"})
				} else if a.Operand < 0 || a.Operand >= len(t.productions) {
					issues = append(issues, Issue{State: state, Symbol: sym, Reason: fmt.Sprintf("reduce by unknown production %d", a.Operand)})
				}
			case ActionAccept:
				accepts++
			}
		}
		for _, sym := range util.SortedStringKeys(row.Gotos) {
			target := row.Gotos[sym]
			if !nonterminals[sym] {
				issues = append(issues, Issue{State: state, Symbol: sym, Reason: "goto on undeclared nonterminal"})
			}
			if target < 0 || target >= len(t.rows) {
				issues = append(issues, Issue{State: state, Symbol: sym, Reason: fmt.Sprintf("goto to undefined state %d", target)})
				continue
			}
			incoming[edge{to: target, symbol: sym}] = append(incoming[edge{to: target, symbol: sym}], state)
		}
	}
	if accepts != 1 {
		issues = append(issues, Issue{State: -1, Symbol: "$", Reason: fmt.Sprintf("expected exactly one accept entry, found %d", accepts)})
	}

	for state, row := range t.rows {
		for _, sym := range util.SortedStringKeys(row.Actions) {
			a := row.Actions[sym]
			if a.Kind != ActionReduce || a.Operand <= 0 || a.Operand >= len(t.productions) {
				continue
			}
			p := t.productions[a.Operand]
			candidates := exposedStates(incoming, state, p.RHS)
			if len(candidates) == 0 {
				issues = append(issues, Issue{
					State:  state,
					Symbol: sym,
					Reason: fmt.Sprintf("no path spells the right-hand side of production %d", p.ID),
				})
			}
			for _, exposed := range candidates {
				if _, ok := t.rows[exposed].Gotos[p.LHS]; !ok {
					issues = append(issues, Issue{
						State:  exposed,
						Symbol: p.LHS,
						Reason: fmt.Sprintf("missing goto for reduce by production %d in state %d on %q", p.ID, state, sym),
					})
				}
			}
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].State != issues[j].State {
			return issues[i].State < issues[j].State
		}
		if issues[i].Symbol != issues[j].Symbol {
			return issues[i].Symbol < issues[j].Symbol
		}
		return issues[i].Reason < issues[j].Reason
	})
	return dedupeIssues(issues)
}

// exposedStates returns the states that can be on top of the stack once a
// reduction in state by a production with the given right-hand side has
// popped its symbols.
func exposedStates(incoming map[edge][]int, state int, rhs []string) []int {
	current := map[int]bool{state: true}
	for i := len(rhs) - 1; i >= 0; i-- {
		next := make(map[int]bool)
		for s := range current {
			for _, from := range incoming[edge{to: s, symbol: rhs[i]}] {
				next[from] = true
			}
		}
		current = next
	}
	out := make([]int, 0, len(current))
	for s := range current {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

func dedupeIssues(issues []Issue) []Issue {
	out := issues[:0]
	for _, issue := range issues {
		if len(out) > 0 && issue == out[len(out)-1] {
			continue
		}
		out = append(out, issue)
	}
	return out
}
