package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"splc/internal/data/history"
	"splc/internal/engine/parser"
)

// Runs writes run history rows, newest first.
func Runs(w io.Writer, runs []history.Run, format Format, st Styles) error {
	if format != FormatText {
		return encode(w, format, runs)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, st.Muted("no runs recorded"))
		return err
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := st.Success(r.Status)
		if !r.OK() {
			status = st.Error(r.Status)
		}
		rows = append(rows, []string{
			r.Timestamp.Local().Format(time.DateTime),
			shortID(r.ID),
			r.Source,
			status,
			strconv.Itoa(r.Tokens),
			strconv.Itoa(r.Symbols),
			r.Duration.Round(time.Microsecond).String(),
		})
	}
	_, err := fmt.Fprintln(w, grid(st, []string{"WHEN", "RUN", "SOURCE", "STATUS", "TOKENS", "SYMBOLS", "TOOK"}, rows))
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Step writes one parser step as a single trace line.
func Step(w io.Writer, s parser.Step) error {
	var line string
	switch s.Kind {
	case parser.StepShift:
		line = fmt.Sprintf("%4d  shift   %-8q %3d -> %-3d", s.Position, s.Token.Word, s.FromState, s.ToState)
	case parser.StepReduce:
		line = fmt.Sprintf("%4d  reduce  %-8q %3d -> %-3d r%d %s", s.Position, s.Token.Word, s.FromState, s.ToState, s.Production.ID, s.Production)
	default:
		line = fmt.Sprintf("%4d  accept  %-8q %3d", s.Position, s.Token.Word, s.FromState)
	}
	_, err := fmt.Fprintf(w, "%s  states=%d nodes=%d\n", line, s.StatesAfter, s.NodesAfter)
	return err
}
