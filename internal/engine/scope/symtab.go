// Package scope builds the symbol table of a parsed SPL program and enforces
// its naming rules.
package scope

import (
	"fmt"

	domainerrors "splc/internal/core/errors"
)

type Kind uint8

const (
	KindVariable Kind = iota
	KindFunction
)

func (k Kind) String() string {
	if k == KindFunction {
		return "function"
	}
	return "variable"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Type is the declared SPL type of a symbol.
type Type string

const (
	TypeNum  Type = "num"
	TypeText Type = "text"
	TypeVoid Type = "void"
)

// SymbolInfo is what a declaration binds to a name.
type SymbolInfo struct {
	Kind Kind `json:"kind" yaml:"kind"`
	Type Type `json:"type" yaml:"type"`
	// InternalName is unique across the whole program, e.g. v3 or f0.
	InternalName string `json:"internal_name" yaml:"internal_name"`
	// TokenID is the id of the declaring token.
	TokenID int `json:"token_id" yaml:"token_id"`
}

type Symbol struct {
	Name       string `json:"name" yaml:"name"`
	SymbolInfo `yaml:",inline"`
	Depth      int `json:"depth" yaml:"depth"`
}

// Frame is one lexical scope. Owner is the function that opened it, or
// "main" for the global frame.
type Frame struct {
	Owner   string
	Depth   int
	symbols map[string]Symbol
	order   []string
}

func newFrame(owner string, depth int) *Frame {
	return &Frame{Owner: owner, Depth: depth, symbols: make(map[string]Symbol)}
}

func (f *Frame) Lookup(name string) (Symbol, bool) {
	sym, ok := f.symbols[name]
	return sym, ok
}

// Symbols returns the frame's symbols in declaration order.
func (f *Frame) Symbols() []Symbol {
	out := make([]Symbol, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.symbols[name])
	}
	return out
}

func (f *Frame) Len() int { return len(f.order) }

// GlobalOwner names the frame that is open for the whole program.
const GlobalOwner = "main"

// Table is a stack of frames. The global frame is pushed on creation and can
// never be popped. Frames that are popped are kept, in closing order, so
// later passes can still inspect function scopes.
type Table struct {
	frames []*Frame
	closed []*Frame
}

func NewTable() *Table {
	return &Table{frames: []*Frame{newFrame(GlobalOwner, 0)}}
}

// PushScope opens a frame owned by owner on top of the stack.
func (t *Table) PushScope(owner string) {
	t.frames = append(t.frames, newFrame(owner, len(t.frames)))
}

// PopScope closes the top frame. Popping the global frame is an internal error.
func (t *Table) PopScope() error {
	if len(t.frames) <= 1 {
		return domainerrors.New(domainerrors.CodeInternal, "pop of the global scope")
	}
	top := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]
	t.closed = append(t.closed, top)
	return nil
}

// Bind declares name in the top frame. Only the top frame is checked, so a
// nested declaration may shadow an outer one.
func (t *Table) Bind(name string, info SymbolInfo) error {
	top := t.Current()
	if prev, ok := top.symbols[name]; ok {
		return &SemanticError{
			Rule:     RuleDuplicateDeclaration,
			Name:     name,
			TokenID:  info.TokenID,
			Previous: prev.TokenID,
			Scope:    top.Owner,
		}
	}
	top.symbols[name] = Symbol{Name: name, SymbolInfo: info, Depth: top.Depth}
	top.order = append(top.order, name)
	return nil
}

// LookupLocal looks at the top frame only.
func (t *Table) LookupLocal(name string) (Symbol, bool) {
	return t.Current().Lookup(name)
}

// LookupVisible searches from the top frame down to the global one; the
// nearest declaration wins.
func (t *Table) LookupVisible(name string) (Symbol, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if sym, ok := t.frames[i].symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Depth is the number of open frames, the global one included.
func (t *Table) Depth() int { return len(t.frames) }

func (t *Table) Current() *Frame { return t.frames[len(t.frames)-1] }

func (t *Table) Global() *Frame { return t.frames[0] }

// Closed returns the frames popped so far, in the order they were closed.
func (t *Table) Closed() []*Frame {
	out := make([]*Frame, len(t.closed))
	copy(out, t.closed)
	return out
}

// Frames returns the open frames, global first, followed by every closed
// frame. After a successful analysis only the global frame is still open.
func (t *Table) Frames() []*Frame {
	out := make([]*Frame, 0, len(t.frames)+len(t.closed))
	out = append(out, t.frames...)
	return append(out, t.closed...)
}

// Len counts symbols across open and closed frames.
func (t *Table) Len() int {
	n := 0
	for _, f := range t.Frames() {
		n += f.Len()
	}
	return n
}

func (t *Table) String() string {
	return fmt.Sprintf("scope.Table{open: %d, closed: %d, symbols: %d}", len(t.frames), len(t.closed), t.Len())
}
