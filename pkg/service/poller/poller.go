package poller

import (
	"context"
	"sync"
	"time"

	"github.com/netmon-lab/tacdesk/pkg/utils/logging"
)

// DefaultInterval is the fixed polling cadence of the workspace
const DefaultInterval = 3 * time.Second

// TickFunc performs one poll. Returning done=true or a non-nil error
// stops the loop; errors are never retried.
type TickFunc func(ctx context.Context) (done bool, err error)

// Handle controls a running poll loop
type Handle struct {
	cancelOnce sync.Once
	stopCh     chan struct{}
	doneCh     chan struct{}

	mu  sync.Mutex
	err error
}

// Start runs tick at the given interval in a background goroutine. Ticks
// never overlap; if a tick is still running when the next interval fires,
// that interval is skipped. The loop exits on the first terminal tick,
// the first tick error, context cancellation, or Cancel.
func Start(ctx context.Context, interval time.Duration, tick TickFunc) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}

	h := &Handle{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go h.run(ctx, interval, tick)
	return h
}

// Cancel stops the loop. Safe to call from any goroutine, any number of
// times, including after the loop has already finished.
func (h *Handle) Cancel() {
	h.cancelOnce.Do(func() {
		close(h.stopCh)
	})
}

// Done is closed when the loop has fully stopped
func (h *Handle) Done() <-chan struct{} {
	return h.doneCh
}

// Err returns the tick error that terminated the loop, if any. Only valid
// after Done is closed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) run(ctx context.Context, interval time.Duration, tick TickFunc) {
	defer close(h.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			done, err := tick(ctx)
			if err != nil {
				logging.From(ctx).Debug("poll tick failed", "error", err.Error())
				h.mu.Lock()
				h.err = err
				h.mu.Unlock()
				return
			}
			if done {
				return
			}

		case <-h.stopCh:
			return

		case <-ctx.Done():
			h.mu.Lock()
			h.err = ctx.Err()
			h.mu.Unlock()
			return
		}
	}
}
