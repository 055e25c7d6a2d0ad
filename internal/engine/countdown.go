package engine

import (
	"context"
	"sync"
	"time"
)

// Countdown drives an Engine with a real ticker. Start arms a
// cancellable ticking goroutine and returns its handle semantics
// through the Countdown itself: Pause, Reset and Close all cancel the
// ticker, so no timer outlives the view that owns it.
type Countdown struct {
	mu       sync.Mutex
	eng      *Engine
	emit     func(Completed)
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCountdown wraps eng; emit is called (off the caller's goroutine)
// whenever a countdown completes naturally.
func NewCountdown(eng *Engine, emit func(Completed)) *Countdown {
	return &Countdown{
		eng:      eng,
		emit:     emit,
		interval: time.Second,
	}
}

// Start begins or resumes the countdown and arms the ticker.
func (c *Countdown) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.eng.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
	return nil
}

func (c *Countdown) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// The ticker already compensates for slow receivers, so each fire
	// is one engine second; a missed deadline shifts a tick, it does
	// not drop one.
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			completed := c.eng.Tick()
			running := c.eng.State() == StateRunning
			c.mu.Unlock()

			if completed != nil {
				c.emit(*completed)
			}
			if !running {
				return
			}
		}
	}
}

// Pause suspends the countdown and cancels the ticker.
func (c *Countdown) Pause() error {
	c.mu.Lock()
	err := c.eng.Pause()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.stop()
	return nil
}

// Reset discards the countdown from any state and cancels the ticker.
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.eng.Reset()
	c.mu.Unlock()
	c.stop()
}

// Close cancels any active ticker without touching engine state.
func (c *Countdown) Close() {
	c.stop()
}

func (c *Countdown) stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// State returns the underlying engine state.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.State()
}

// Phase returns the underlying engine phase.
func (c *Countdown) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Phase()
}

// Remaining returns the seconds left in the countdown.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Remaining()
}

// BindTask attaches a task to the next emitted record.
func (c *Countdown) BindTask(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eng.BindTask(id)
}
