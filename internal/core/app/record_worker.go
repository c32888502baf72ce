package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	domainerrors "splc/internal/core/errors"
	"splc/internal/core/ports"
	"splc/internal/data/history"
	"splc/internal/shared/observability"
)

// recordQueue hands runs to a background writer so watch-mode runs never
// wait on the database. Record assigns the ID up front; the row appears
// once the worker has written it.
type recordQueue struct {
	store ports.RunRecorder
	queue chan history.Run
	keep  int

	prune func(keep int) (int64, error)

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var _ ports.RunRecorder = (*recordQueue)(nil)

func newRecordQueue(store ports.RunRecorder, capacity int) *recordQueue {
	if capacity <= 0 {
		capacity = 64
	}
	q := &recordQueue{
		store: store,
		queue: make(chan history.Run, capacity),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

// withPruning trims history to keep rows after every batch the worker drains.
func (q *recordQueue) withPruning(keep int, prune func(int) (int64, error)) *recordQueue {
	q.keep = keep
	q.prune = prune
	return q
}

func (q *recordQueue) Record(run history.Run) (history.Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return run, domainerrors.New(domainerrors.CodeInternal, "history queue closed")
	}
	select {
	case q.queue <- run:
		return run, nil
	default:
		return run, domainerrors.AddContext(
			domainerrors.New(domainerrors.CodeInternal, "history queue full"),
			domainerrors.CtxRunID, run.ID)
	}
}

func (q *recordQueue) Recent(source string, limit int) ([]history.Run, error) {
	return q.store.Recent(source, limit)
}

func (q *recordQueue) run() {
	defer close(q.done)
	for run := range q.queue {
		q.write(run)
		// Drain whatever queued up behind this run before pruning.
		for drained := false; !drained; {
			select {
			case next, ok := <-q.queue:
				if !ok {
					q.trim()
					return
				}
				q.write(next)
			default:
				drained = true
			}
		}
		q.trim()
	}
}

func (q *recordQueue) write(run history.Run) {
	if _, err := q.store.Record(run); err != nil {
		observability.HistoryWriteErrorsTotal.Inc()
		slog.Warn("history write failed", "run_id", run.ID, "source", run.Source, "error", err)
	}
}

func (q *recordQueue) trim() {
	if q.prune == nil || q.keep <= 0 {
		return
	}
	if n, err := q.prune(q.keep); err != nil {
		slog.Warn("history prune failed", "error", err)
	} else if n > 0 {
		slog.Debug("history pruned", "deleted", n)
	}
}

// Close stops accepting runs and waits until queued ones are written.
func (q *recordQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.queue)
	}
	q.mu.Unlock()
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
