package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"splc/internal/core/config"
	domainerrors "splc/internal/core/errors"
	"splc/internal/core/ports"
	"splc/internal/core/watcher"
	"splc/internal/data/history"
	"splc/internal/shared/util"
)

// Update is the outcome of one watch-triggered or batch run.
type Update struct {
	Path   string
	Result *Result
	Err    error
	At     time.Time
}

type App struct {
	Config   *config.Config
	Frontend *Frontend

	store    *history.Store
	recorder *recordQueue
	limiters *util.LimiterRegistry
	watcher  *watcher.Watcher

	updateMu sync.RWMutex
	onUpdate func(Update)
	last     Update
	hasLast  bool
}

// New wires the front end to the configured history store. opts are applied
// after the config-derived options, so they win.
func New(cfg *config.Config, opts ...FrontendOption) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := &App{Config: cfg}

	base := []FrontendOption{WithStrict(cfg.Analysis.Strict)}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path, cfg.History.BusyTimeout)
		if err != nil {
			return nil, domainerrors.AddContext(
				domainerrors.Wrap(err, domainerrors.CodeInternal, "open run history"),
				domainerrors.CtxPath, cfg.History.Path)
		}
		a.store = store
		a.recorder = newRecordQueue(history.NewAdapter(store), 64).withPruning(cfg.History.Keep, store.Prune)
		base = append(base, WithRecorder(a.recorder))
	}
	a.Frontend = NewFrontend(append(base, opts...)...)
	a.limiters = util.NewLimiterRegistry(cfg.Watch.MaxRunsPerSecond, cfg.Watch.Burst, time.Minute)
	return a, nil
}

// History returns the synchronous run store, or nil when history is off.
func (a *App) History() ports.RunRecorder {
	if a.store == nil {
		return nil
	}
	return history.NewAdapter(a.store)
}

// CheckFile runs the pipeline over the file at path.
func (a *App) CheckFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := domainerrors.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = domainerrors.CodeNotFound
		}
		return nil, domainerrors.AddContext(
			domainerrors.Wrap(err, code, "read source"),
			domainerrors.CtxPath, path)
	}
	return a.Frontend.Run(ctx, path, string(data))
}

// CheckAll runs the pipeline once over every source under the watch paths
// and publishes each outcome.
func (a *App) CheckAll(ctx context.Context) ([]Update, error) {
	files, err := ScanSources(a.Config.Watch)
	if err != nil {
		return nil, err
	}
	updates := make([]Update, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return updates, err
		}
		res, err := a.CheckFile(ctx, path)
		u := Update{Path: path, Result: res, Err: err, At: time.Now()}
		a.publish(u)
		updates = append(updates, u)
	}
	return updates, nil
}

// SetUpdateHandler registers fn to receive every published update.
func (a *App) SetUpdateHandler(fn func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = fn
}

// LastUpdate returns the most recently published update.
func (a *App) LastUpdate() (Update, bool) {
	a.updateMu.RLock()
	defer a.updateMu.RUnlock()
	return a.last, a.hasLast
}

func (a *App) publish(u Update) {
	a.updateMu.Lock()
	a.last = u
	a.hasLast = true
	fn := a.onUpdate
	a.updateMu.Unlock()

	if fn != nil {
		fn(u)
	}
}

// ApplyConfig takes the settings that can change while watching.
func (a *App) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.Frontend.SetStrict(cfg.Analysis.Strict)
	if a.watcher != nil {
		a.watcher.SetDebounce(cfg.Watch.Debounce)
	}
	a.Config.Analysis = cfg.Analysis
	a.Config.Watch.Debounce = cfg.Watch.Debounce
}

// Close stops watching and flushes pending history writes.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.recorder != nil {
		errs = append(errs, a.recorder.Close(ctx))
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	a.limiters.Close()
	return errors.Join(errs...)
}
