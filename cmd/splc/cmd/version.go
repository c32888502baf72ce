package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"splc/internal/engine/grammar"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			tbl := grammar.SPL()
			fp := tbl.Fingerprint()
			if len(fp) > 12 {
				fp = fp[:12]
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "splc v%s\n", Version)
			fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(w, "  Build Date: %s\n", BuildDate)
			fmt.Fprintf(w, "  Grammar:    %s (%d states, %s)\n", tbl.Name(), tbl.States(), fp)
			fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
