package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"splc/internal/engine/token"
)

// Tokens writes the token list.
func Tokens(w io.Writer, toks []token.Token, format Format, st Styles) error {
	if format != FormatText {
		return encode(w, format, toks)
	}
	rows := make([][]string, 0, len(toks))
	for _, tok := range toks {
		pos := ""
		if tok.Line > 0 {
			pos = fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		}
		rows = append(rows, []string{strconv.Itoa(tok.ID), pos, tok.Class.String(), tok.Terminal(), tok.Word})
	}
	_, err := fmt.Fprintln(w, grid(st, []string{"ID", "POS", "CLASS", "TERMINAL", "WORD"}, rows))
	return err
}

func grid(st Styles, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if st.Color {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headingStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	} else {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.String()
}
