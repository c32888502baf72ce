package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"splc/internal/core/watcher"
	"splc/internal/shared/observability"
)

// StartWatcher re-runs the pipeline whenever a watched source changes.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.ExcludeDirs,
		a.Config.Watch.ExcludeFiles,
		func(paths []string) { a.HandleChanges(ctx, paths) },
	)
	if err != nil {
		return err
	}
	w.SetExtensions(a.Config.Watch.Extensions)
	a.watcher = w
	return w.Watch(a.Config.Watch.Paths)
}

// HandleChanges runs the pipeline over each changed path. A path over its
// rate limit waits for the limiter instead of being dropped; removed files
// are skipped. Cancelling ctx abandons the remaining paths.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		limiter := a.limiters.Get(path)
		if !limiter.Allow(1) {
			observability.ThrottledRunsTotal.Inc()
			slog.Debug("run throttled", "path", path)
			if err := limiter.Wait(ctx, 1); err != nil {
				slog.Debug("throttled run abandoned", "path", path, "error", err)
				return
			}
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			slog.Info("source removed", "path", path)
			continue
		}

		res, err := a.CheckFile(ctx, path)
		a.publish(Update{Path: path, Result: res, Err: err, At: time.Now()})
	}
}
