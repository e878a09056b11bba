package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/ordtree/internal/logging"
)

// Rerun calls fn once and then again after every event from w, until ctx
// is done. Errors from fn and from w are logged and do not stop the loop.
// It returns nil when ctx is done and ErrWatcherClosed if w stops first.
func Rerun(ctx context.Context, w Watcher, log *logging.Logger, fn func(context.Context) error) error {
	if log == nil {
		log = logging.NullLogger
	}
	log = log.WithComponent("watch")

	run := func() {
		if err := fn(ctx); err != nil {
			log.Error("run failed: %v", err)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return ErrWatcherClosed
			}
			log.Info("%s changed (%s)", ev.Path, ev.Op)
			run()

		case err, ok := <-w.Errors():
			if !ok {
				return ErrWatcherClosed
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// File watches the file at path and runs fn through Rerun, coalescing
// changes that arrive within delay of each other.
func File(ctx context.Context, path string, delay time.Duration, log *logging.Logger, fn func(context.Context) error) error {
	if log == nil {
		log = logging.NullLogger
	}

	fsw, err := NewFSNotifyWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	dw := NewDebouncedWatcher(fsw, delay)
	defer dw.Close()

	if err := dw.Watch(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	log.WithComponent("watch").Info("watching %s (debounce %v)", path, delay)

	return Rerun(ctx, dw, log, fn)
}
