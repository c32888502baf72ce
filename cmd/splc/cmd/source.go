package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"splc/internal/core/app"
	domainerrors "splc/internal/core/errors"
	"splc/internal/engine/grammar"
	"splc/internal/engine/lexer"
	"splc/internal/engine/parser"
	"splc/internal/ui/report"
)

func newTokensCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "List the tokens of a source (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			toks, err := lexer.Lex(src)
			if err != nil {
				return e.reject(cmd, args[0], err, src)
			}
			return report.Tokens(cmd.OutOrStdout(), toks, e.out, e.styles)
		},
	}
}

func newParseCmd(e *env) *cobra.Command {
	var trace bool
	c := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a source and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			toks, err := lexer.Lex(src)
			if err != nil {
				return e.reject(cmd, args[0], err, src)
			}

			var opts []parser.Option
			if trace {
				w := cmd.ErrOrStderr()
				opts = append(opts, parser.WithObserver(func(s parser.Step) {
					_ = report.Step(w, s)
				}))
			}
			tree, err := parser.New(grammar.SPL(), opts...).Parse(toks)
			if err != nil {
				return e.reject(cmd, args[0], err, src)
			}
			return report.Tree(cmd.OutOrStdout(), tree, e.out)
		},
	}
	c.Flags().BoolVar(&trace, "trace", false, "write every shift and reduce to stderr")
	return c
}

func newCheckCmd(e *env) *cobra.Command {
	var (
		strict  bool
		all     bool
		symbols bool
	)
	c := &cobra.Command{
		Use:   "check [FILE...]",
		Short: "Run lexer, parser and scope analysis and report diagnostics",
		Long: `check runs the whole front end over each FILE. With --all it checks
every source under the configured watch paths instead. Runs are recorded
in the history database when [history] is enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("check needs a FILE or --all")
			}
			if cmd.Flags().Changed("strict") {
				e.cfg.Analysis.Strict = strict
			}
			a, err := app.New(e.cfg)
			if err != nil {
				return err
			}
			defer closeApp(a)

			ctx := cmd.Context()
			var updates []app.Update
			if all {
				if updates, err = a.CheckAll(ctx); err != nil {
					return err
				}
			} else {
				for _, path := range args {
					res, err := a.CheckFile(ctx, path)
					updates = append(updates, app.Update{Path: path, Result: res, Err: err})
				}
			}
			return e.writeUpdates(cmd, updates, symbols)
		},
	}
	c.Flags().BoolVar(&strict, "strict", false, "enable checks that are off by default")
	c.Flags().BoolVar(&all, "all", false, "check every source under the watch paths")
	c.Flags().BoolVar(&symbols, "symbols", false, "print the symbol table of accepted sources")
	return c
}

func (e *env) writeUpdates(cmd *cobra.Command, updates []app.Update, symbols bool) error {
	out := cmd.OutOrStdout()
	rejected := false
	for _, u := range updates {
		if u.Err != nil {
			rejected = true
			src, _ := readSource(cmd, u.Path)
			if err := report.Diagnostic(cmd.ErrOrStderr(), u.Err, src, e.styles); err != nil {
				return err
			}
			continue
		}
		if symbols {
			if err := report.Symbols(out, u.Result.Symbols, e.out, e.styles); err != nil {
				return err
			}
			continue
		}
		if err := report.Summary(out, u.Result, e.styles); err != nil {
			return err
		}
	}
	if rejected {
		return errRejected
	}
	return nil
}

// reject writes the diagnostic for err and marks the command failed.
func (e *env) reject(cmd *cobra.Command, path string, err error, src string) error {
	if path != "-" {
		err = domainerrors.AddContext(err, domainerrors.CtxPath, path)
	}
	if werr := report.Diagnostic(cmd.ErrOrStderr(), err, src, e.styles); werr != nil {
		return werr
	}
	return errRejected
}

func closeApp(a *app.App) {
	if err := a.Close(context.Background()); err != nil {
		slog.Warn("failed to close app", "error", err)
	}
}
