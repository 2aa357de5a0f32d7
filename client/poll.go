package client

import (
	"context"
	"sync"
	"time"
)

// Poller runs a task at a fixed interval until cancelled. It replaces the
// bare repeating timers screens used to leak on teardown.
type Poller struct {
	interval time.Duration
	task     func(context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller that will run task every interval
func NewPoller(interval time.Duration, task func(context.Context)) *Poller {
	return &Poller{
		interval: interval,
		task:     task,
	}
}

// Start begins polling. The task runs once per interval until Stop is
// called or ctx is cancelled. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.run(ctx, done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.task(ctx)
		}
	}
}

// Stop cancels polling and waits for an in-flight task to return. Stopping
// a poller that was never started is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
