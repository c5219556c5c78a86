package session

import (
	"context"
	"sync"
	"time"
)

// Watcher drives the live countdown: once per second it recomputes the
// display text and hands it to the callback. Stop tears the ticker down so an
// unmounted view does not leak it.
type Watcher struct {
	source func() string
	onTick func(string)
	now    func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewWatcher builds a watcher reading the token from source.
func NewWatcher(source func() string, onTick func(string)) *Watcher {
	return &Watcher{source: source, onTick: onTick, now: time.Now}
}

// Start emits an immediate tick, then one per second until Stop or context
// cancellation. Calling Start twice is a no-op while running.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.stopped = make(chan struct{})

	go func() {
		defer close(w.stopped)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		w.onTick(Display(w.source(), w.now()))
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.onTick(Display(w.source(), w.now()))
			}
		}
	}()
}

// Stop halts the ticker and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	stopped := w.stopped
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}
