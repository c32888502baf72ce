package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"splc/internal/engine/grammar"
)

// StateView is the structured form of one parse table row.
type StateView struct {
	State   int               `json:"state" yaml:"state"`
	Actions map[string]string `json:"actions" yaml:"actions"`
	Gotos   map[string]int    `json:"gotos,omitempty" yaml:"gotos,omitempty"`
}

// Table writes the ACTION and GOTO entries of the given states, or of every
// state when states is empty.
func Table(w io.Writer, t *grammar.Table, states []int, format Format, st Styles) error {
	if len(states) == 0 {
		states = make([]int, t.States())
		for i := range states {
			states[i] = i
		}
	}
	for _, s := range states {
		if s < 0 || s >= t.States() {
			return fmt.Errorf("state %d out of range [0,%d)", s, t.States())
		}
	}

	views := make([]StateView, 0, len(states))
	for _, s := range states {
		v := StateView{State: s, Actions: map[string]string{}, Gotos: map[string]int{}}
		for _, term := range t.Terminals() {
			if a := t.Action(s, term); a.Kind != grammar.ActionError {
				v.Actions[term] = a.String()
			}
		}
		for _, nt := range t.Nonterminals() {
			if to, ok := t.Goto(s, nt); ok {
				v.Gotos[nt] = to
			}
		}
		views = append(views, v)
	}
	if format != FormatText {
		return encode(w, format, views)
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{strconv.Itoa(v.State), joinActions(t.Terminals(), v.Actions), joinGotos(t.Nonterminals(), v.Gotos)})
	}
	_, err := fmt.Fprintln(w, grid(st, []string{"STATE", "ACTION", "GOTO"}, rows))
	return err
}

func joinActions(order []string, actions map[string]string) string {
	parts := make([]string, 0, len(actions))
	for _, term := range order {
		if a, ok := actions[term]; ok {
			parts = append(parts, term+":"+a)
		}
	}
	return strings.Join(parts, " ")
}

func joinGotos(order []string, gotos map[string]int) string {
	parts := make([]string, 0, len(gotos))
	for _, nt := range order {
		if to, ok := gotos[nt]; ok {
			parts = append(parts, fmt.Sprintf("%s:%d", nt, to))
		}
	}
	return strings.Join(parts, " ")
}

// Productions writes the numbered production list.
func Productions(w io.Writer, t *grammar.Table) error {
	for _, p := range t.Productions() {
		if _, err := fmt.Fprintf(w, "%3d  %s\n", p.ID, p); err != nil {
			return err
		}
	}
	return nil
}

// TableTOML writes the table as a grammar manifest.
func TableTOML(w io.Writer, t *grammar.Table) error {
	return grammar.WriteManifest(w, t)
}

// Issues writes the result of a table self-check.
func Issues(w io.Writer, t *grammar.Table, issues []grammar.Issue, st Styles) error {
	if len(issues) == 0 {
		_, err := fmt.Fprintf(w, "%s %s: %d states, %d productions, fingerprint %s\n",
			st.Success("ok"), t.Name(), t.States(), len(t.Productions()), shortPrint(t.Fingerprint()))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s: %d issues\n", st.Error("invalid"), t.Name(), len(issues)); err != nil {
		return err
	}
	for _, issue := range issues {
		if _, err := fmt.Fprintf(w, "  %s\n", issue); err != nil {
			return err
		}
	}
	return nil
}

func shortPrint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
