package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"splc/internal/core/app"
	"splc/internal/core/config"
	"splc/internal/shared/observability"
	"splc/internal/ui/report"
	"splc/internal/ui/tui"
)

func newWatchCmd(e *env) *cobra.Command {
	var (
		useTUI  bool
		metrics string
	)
	c := &cobra.Command{
		Use:   "watch [PATH...]",
		Short: "Check every source, then re-check sources as they change",
		Long: `watch checks every source under PATH (default: the configured watch
paths) and re-runs the front end on each file that changes. With
[metrics] enabled or --metrics it serves /metrics and /health.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				e.cfg.Watch.Paths = args
			}
			if metrics != "" {
				e.cfg.Metrics.Enabled = true
				e.cfg.Metrics.Address = metrics
			}
			if useTUI {
				// Keep log lines off the screen the TUI draws on.
				if f := openLogFile(); f != nil {
					defer f.Close()
					setupLogging(f, e.cfg.Log, e.verbose)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return e.watch(ctx, cmd, useTUI)
		},
	}
	c.Flags().BoolVar(&useTUI, "tui", false, "interactive terminal UI")
	c.Flags().StringVar(&metrics, "metrics", "", "serve /metrics and /health on this address")
	return c
}

func (e *env) watch(ctx context.Context, cmd *cobra.Command, useTUI bool) error {
	shutdown, err := observability.InitTracing(ctx, e.cfg.Tracing.Endpoint, e.cfg.Tracing.Insecure)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	a, err := app.New(e.cfg)
	if err != nil {
		return err
	}
	defer closeApp(a)

	if e.cfg.Metrics.Enabled {
		srv := observability.NewServer(e.cfg.Metrics.Address, a.Health)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(sctx)
		}()
	}

	if e.cfg.Watch.ReloadConfig && e.cfgPath != "" {
		cw := config.NewWatcher(e.cfgPath, func(cfg *config.Config) {
			slog.Info("config reloaded", "path", e.cfgPath)
			a.ApplyConfig(cfg)
		})
		if err := cw.Start(ctx); err != nil {
			slog.Warn("config reload disabled", "error", err)
		} else {
			defer cw.Stop()
		}
	}

	if !useTUI {
		a.SetUpdateHandler(func(u app.Update) { e.writeUpdate(cmd, u) })
	}
	initial, err := a.CheckAll(ctx)
	if err != nil {
		return err
	}
	if err := a.StartWatcher(ctx); err != nil {
		return err
	}
	slog.Info("watching", "paths", e.cfg.Watch.Paths, "sources", len(initial))

	if useTUI {
		return tui.Run(a, initial)
	}
	<-ctx.Done()
	return nil
}

func (e *env) writeUpdate(cmd *cobra.Command, u app.Update) {
	src := ""
	if u.Err != nil {
		src, _ = readSource(cmd, u.Path)
	}
	w := cmd.OutOrStdout()
	if u.Err != nil {
		w = cmd.ErrOrStderr()
	}
	if err := report.Update(w, u, src, e.styles); err != nil {
		slog.Warn("failed to write update", "path", u.Path, "error", err)
	}
}

func openLogFile() *os.File {
	logPath := resolveLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		return nil
	}
	if fi, err := os.Lstat(logPath); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
		return nil
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		return nil
	}
	return f
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "splc", "splc.log")
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "splc", "splc.log")
	}
	return "splc.log"
}
