package report

import (
	"fmt"
	"io"
	"strconv"

	"splc/internal/engine/scope"
)

// FrameView is the structured form of one scope frame.
type FrameView struct {
	Owner   string         `json:"owner" yaml:"owner"`
	Depth   int            `json:"depth" yaml:"depth"`
	Symbols []scope.Symbol `json:"symbols" yaml:"symbols"`
}

// Frames lists every frame of tbl, global first, then closed frames in the
// order they were popped.
func Frames(tbl *scope.Table) []FrameView {
	frames := tbl.Frames()
	out := make([]FrameView, 0, len(frames))
	for _, f := range frames {
		out = append(out, FrameView{Owner: f.Owner, Depth: f.Depth, Symbols: f.Symbols()})
	}
	return out
}

// Symbols writes the symbol table.
func Symbols(w io.Writer, tbl *scope.Table, format Format, st Styles) error {
	frames := Frames(tbl)
	if format != FormatText {
		return encode(w, format, frames)
	}
	for _, f := range frames {
		if _, err := fmt.Fprintln(w, st.Heading(fmt.Sprintf("scope %s (depth %d)", f.Owner, f.Depth))); err != nil {
			return err
		}
		if len(f.Symbols) == 0 {
			if _, err := fmt.Fprintln(w, st.Muted("  no symbols")); err != nil {
				return err
			}
			continue
		}
		rows := make([][]string, 0, len(f.Symbols))
		for _, sym := range f.Symbols {
			rows = append(rows, []string{sym.Name, sym.Kind.String(), string(sym.Type), sym.InternalName, strconv.Itoa(sym.TokenID)})
		}
		if _, err := fmt.Fprintln(w, grid(st, []string{"NAME", "KIND", "TYPE", "INTERNAL", "TOKEN"}, rows)); err != nil {
			return err
		}
	}
	return nil
}
