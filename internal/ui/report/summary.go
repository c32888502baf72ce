package report

import (
	"fmt"
	"io"
	"time"

	"splc/internal/core/app"
)

// Summary writes the one-line outcome of a run.
func Summary(w io.Writer, res *app.Result, st Styles) error {
	_, err := fmt.Fprintf(w, "%s %s: %d tokens, %d nodes, %d symbols in %s %s\n",
		st.Success("ok"),
		res.Source,
		len(res.Tokens),
		res.Tree.Len(),
		res.Symbols.Len(),
		res.Duration.Round(time.Microsecond),
		st.Muted("run "+shortID(res.RunID)),
	)
	return err
}

// Update writes a watch-mode outcome: a summary on success, the diagnostic
// otherwise. src is the source the run read, used for excerpts.
func Update(w io.Writer, u app.Update, src string, st Styles) error {
	if u.Err != nil {
		return Diagnostic(w, u.Err, src, st)
	}
	return Summary(w, u.Result, st)
}
