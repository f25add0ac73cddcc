// Package clock provides the elapsed-time counter shown while a game runs.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock counts the time between Start and Stop and reports it on every tick.
// It is safe for concurrent use.
type Clock struct {
	interval time.Duration
	onTick   func(elapsed time.Duration)

	mu      sync.Mutex
	started time.Time
	elapsed time.Duration
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option customizes a Clock.
type Option func(*Clock)

// WithInterval sets the tick interval. The default is one second.
func WithInterval(d time.Duration) Option {
	return func(c *Clock) {
		c.interval = d
	}
}

// New creates a stopped clock. onTick may be nil; it runs on the clock's
// own goroutine and must not block on the goroutine that calls Stop.
func New(onTick func(elapsed time.Duration), opts ...Option) *Clock {
	c := &Clock{
		interval: time.Second,
		onTick:   onTick,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins counting. Starting a running clock does nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.started = time.Now()
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

// Stop freezes the elapsed time and waits for the tick goroutine to exit, so
// no callback fires after Stop returns.
func (c *Clock) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.elapsed += time.Since(c.started)
	c.running = false
	c.cancel()
	done := c.done
	c.mu.Unlock()
	<-done
}

// Elapsed returns the time counted so far.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return c.elapsed + time.Since(c.started)
	}
	return c.elapsed
}

// Running returns true between Start and Stop.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Clock) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Stop may have raced with this tick.
			if ctx.Err() != nil {
				return
			}
			if c.onTick != nil {
				c.onTick(c.Elapsed())
			}
		}
	}
}
