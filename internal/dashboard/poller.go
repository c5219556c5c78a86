package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller refreshes the dashboard on a fixed interval, starting with an
// immediate refresh. There is no retry inside an interval; a failed refresh
// waits for the next tick or a user-initiated one.
type Poller struct {
	agg      *Aggregator
	interval time.Duration
	onUpdate func(Summary)
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewPoller builds a poller pushing summaries into onUpdate.
func NewPoller(agg *Aggregator, interval time.Duration, onUpdate func(Summary), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{agg: agg, interval: interval, onUpdate: onUpdate, logger: logger}
}

// Start launches the refresh loop. Calling Start twice while running is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.stopped = make(chan struct{})

	go func() {
		defer close(p.stopped)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.onUpdate(p.agg.Refresh(ctx))
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.onUpdate(p.agg.Refresh(ctx))
			}
		}
	}()
	p.logger.Debug("dashboard poller started", zap.Duration("interval", p.interval))
}

// Stop tears the ticker down and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	stopped := p.stopped
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	p.logger.Debug("dashboard poller stopped")
}
