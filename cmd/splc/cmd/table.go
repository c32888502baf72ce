package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"splc/internal/engine/grammar"
	"splc/internal/shared/util"
	"splc/internal/ui/report"
)

func newTableCmd(e *env) *cobra.Command {
	var (
		states      []int
		productions bool
		asTOML      bool
		verify      bool
		manifest    string
		output      string
	)
	c := &cobra.Command{
		Use:   "table",
		Short: "Inspect, verify or export the parse table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := grammar.SPL()
			if manifest != "" {
				loaded, err := grammar.LoadManifest(manifest)
				if err != nil {
					return err
				}
				tbl = loaded
			}

			var buf bytes.Buffer
			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				w = &buf
			}

			switch {
			case verify:
				issues := tbl.Verify()
				if err := report.Issues(w, tbl, issues, e.styles); err != nil {
					return err
				}
				if len(issues) > 0 {
					return errRejected
				}
			case productions:
				if err := report.Productions(w, tbl); err != nil {
					return err
				}
			case asTOML:
				if err := report.TableTOML(w, tbl); err != nil {
					return err
				}
			default:
				if err := report.Table(w, tbl, states, e.out, e.styles); err != nil {
					return err
				}
			}

			if output == "" {
				return nil
			}
			if err := util.WriteFileWithDirs(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			slog.Info("wrote parse table", "path", output, "bytes", buf.Len())
			return nil
		},
	}
	f := c.Flags()
	f.IntSliceVar(&states, "state", nil, "only show these states")
	f.BoolVar(&productions, "productions", false, "list the numbered productions")
	f.BoolVar(&asTOML, "toml", false, "export the table as a TOML manifest")
	f.BoolVar(&verify, "verify", false, "check the table for unreachable or inconsistent entries")
	f.StringVar(&manifest, "manifest", "", "read the table from a TOML manifest instead of the built-in one")
	f.StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	c.MarkFlagsMutuallyExclusive("productions", "toml", "verify")
	return c
}
