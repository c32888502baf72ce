// Package cmd holds the splc command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"splc/internal/core/config"
	"splc/internal/ui/report"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 2
)

// errRejected marks a run whose diagnostics were already written.
var errRejected = errors.New("source rejected")

// env is the state every subcommand shares once flags and config are read.
type env struct {
	cfgFile string
	verbose bool
	format  string
	noColor bool

	cfg     *config.Config
	cfgPath string // file cfg came from, empty for defaults
	styles  report.Styles
	out     report.Format
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errRejected):
		return exitRejected
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "splc",
		Short: "SPL front end: lexer, LALR parser and scope analyzer",
		Long: `splc reads SPL programs, parses them with a table-driven LALR(1)
parser and checks every name against its enclosing scopes.

Commands:
  tokens   - list the tokens of a source
  parse    - print the syntax tree
  check    - run the whole front end and report diagnostics
  table    - inspect or export the parse table
  watch    - re-check sources as they change
  history  - list recorded runs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" when present)")
	flags.BoolVarP(&e.verbose, "verbose", "v", false, "verbose logging")
	flags.StringVarP(&e.format, "format", "f", "", "output format: text, yaml or json (default from config)")
	flags.BoolVar(&e.noColor, "no-color", false, "disable styled output")

	root.AddCommand(
		newTokensCmd(e),
		newParseCmd(e),
		newCheckCmd(e),
		newTableCmd(e),
		newWatchCmd(e),
		newHistoryCmd(e),
		newVersionCmd(),
	)
	return root
}

func (e *env) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if e.cfgFile != "" {
		cfg, err = config.Load(e.cfgFile)
		e.cfgPath = e.cfgFile
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultFile)
		if _, statErr := os.Stat(config.DefaultFile); statErr == nil {
			e.cfgPath = config.DefaultFile
		}
	}
	if err != nil {
		return err
	}
	e.cfg = cfg

	format := cfg.Output.Format
	if e.format != "" {
		format = e.format
	}
	if e.out, err = report.ParseFormat(format); err != nil {
		return err
	}
	e.styles = report.Styles{Color: cfg.Output.ColorEnabled() && !e.noColor && isTerminal(cmd.OutOrStdout())}

	setupLogging(cmd.ErrOrStderr(), cfg.Log, e.verbose)
	return nil
}

func setupLogging(w io.Writer, cfg config.Log, verbose bool) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readSource reads path, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
