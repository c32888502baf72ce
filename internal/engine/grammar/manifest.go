package grammar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const ManifestVersion = 1

// Manifest is the TOML form of a table. It lets alternative or regenerated
// tables be loaded without recompiling and is what `splc table --toml` emits.
type Manifest struct {
	Version      int                  `toml:"version"`
	Name         string               `toml:"name"`
	Terminals    []string             `toml:"terminals"`
	Nonterminals []string             `toml:"nonterminals"`
	Productions  []ManifestProduction `toml:"productions"`
	States       []ManifestState      `toml:"states"`
}

type ManifestProduction struct {
	ID  int      `toml:"id"`
	LHS string   `toml:"lhs"`
	RHS []string `toml:"rhs"`
}

type ManifestState struct {
	ID      int               `toml:"id"`
	Actions map[string]string `toml:"actions,omitempty"`
	Gotos   map[string]int    `toml:"gotos,omitempty"`
}

// Manifest converts the table into its serialisable form.
func (t *Table) Manifest() Manifest {
	m := Manifest{
		Version:      ManifestVersion,
		Name:         t.name,
		Terminals:    t.Terminals(),
		Nonterminals: t.Nonterminals(),
		Productions:  make([]ManifestProduction, 0, len(t.productions)),
		States:       make([]ManifestState, 0, len(t.rows)),
	}
	for _, p := range t.productions {
		rhs := append([]string{}, p.RHS...)
		m.Productions = append(m.Productions, ManifestProduction{ID: p.ID, LHS: p.LHS, RHS: rhs})
	}
	for id, row := range t.rows {
		state := ManifestState{ID: id}
		if len(row.Actions) > 0 {
			state.Actions = make(map[string]string, len(row.Actions))
			for sym, a := range row.Actions {
				state.Actions[sym] = a.String()
			}
		}
		if len(row.Gotos) > 0 {
			state.Gotos = make(map[string]int, len(row.Gotos))
			for sym, target := range row.Gotos {
				state.Gotos[sym] = target
			}
		}
		m.States = append(m.States, state)
	}
	return m
}

// WriteManifest encodes the table as TOML.
func WriteManifest(w io.Writer, t *Table) error {
	return toml.NewEncoder(w).Encode(t.Manifest())
}

// Fingerprint is the hex sha256 of the table's TOML manifest. Two tables with
// the same fingerprint drive the engine identically.
func (t *Table) Fingerprint() string {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, t); err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(buf.Bytes()))
}

// LoadManifest reads a TOML manifest from disk and builds its table.
func LoadManifest(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeManifest(string(data))
}

// DecodeManifest parses TOML manifest text and builds its table.
func DecodeManifest(data string) (*Table, error) {
	var m Manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, err
	}

	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("manifest must define a name")
	}
	if len(m.Productions) == 0 {
		return nil, fmt.Errorf("manifest must define at least one production")
	}
	if len(m.States) == 0 {
		return nil, fmt.Errorf("manifest must define at least one state")
	}

	productions := make([]Production, 0, len(m.Productions))
	for _, p := range m.Productions {
		productions = append(productions, Production{ID: p.ID, LHS: strings.TrimSpace(p.LHS), RHS: p.RHS})
	}

	rows := make([]Row, len(m.States))
	for i, state := range m.States {
		ref := fmt.Sprintf("states[%d]", i)
		if state.ID != i {
			return nil, fmt.Errorf("%s declared with id %d", ref, state.ID)
		}
		row := Row{Actions: make(map[string]Action, len(state.Actions)), Gotos: state.Gotos}
		for sym, raw := range state.Actions {
			a, err := ParseAction(raw)
			if err != nil {
				return nil, fmt.Errorf("%s.actions[%q]: %w", ref, sym, err)
			}
			row.Actions[sym] = a
		}
		rows[i] = row
	}

	var terminals, nonterminals []string
	if len(m.Terminals) > 0 {
		terminals = m.Terminals
	}
	if len(m.Nonterminals) > 0 {
		nonterminals = m.Nonterminals
	}
	return New(m.Name, productions, rows, terminals, nonterminals)
}
