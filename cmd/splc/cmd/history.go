package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"splc/internal/data/history"
	"splc/internal/ui/report"
)

func newHistoryCmd(e *env) *cobra.Command {
	var (
		source string
		limit  int
		prune  int
		show   string
		where  string
	)
	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !e.cfg.History.Enabled {
				return fmt.Errorf("run history is disabled; set [history] enabled = true")
			}
			store, err := history.Open(e.cfg.History.Path, e.cfg.History.BusyTimeout)
			if err != nil {
				return err
			}
			defer store.Close()

			if cmd.Flags().Changed("prune") {
				removed, err := store.Prune(prune)
				if err != nil {
					return err
				}
				slog.Info("pruned run history", "removed", removed, "kept", prune)
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d runs\n", removed)
				return nil
			}

			var runs []history.Run
			if show != "" {
				run, err := store.Get(show)
				if err != nil {
					return err
				}
				runs = []history.Run{run}
			} else if where != "" {
				q, err := history.ParseQuery("SELECT runs WHERE " + where)
				if err != nil {
					return err
				}
				if runs, err = store.Select(q, limit); err != nil {
					return err
				}
			} else if runs, err = store.Recent(source, limit); err != nil {
				return err
			}
			return report.Runs(cmd.OutOrStdout(), runs, e.out, e.styles)
		},
	}
	f := c.Flags()
	f.StringVar(&source, "source", "", "only runs of this source")
	f.IntVarP(&limit, "limit", "n", 20, "maximum number of runs")
	f.IntVar(&prune, "prune", 0, "delete all but the newest N runs")
	f.StringVar(&show, "id", "", "show a single run")
	f.StringVar(&where, "where", "", `filter runs, e.g. "status = SYNTAX_ERROR AND tokens > 20"`)
	return c
}
