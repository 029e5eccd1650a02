package timer

import (
	"context"
	"time"
)

// Runner drives an Engine once per interval until its context ends. It is
// the only recurring callback in the program; cancelling the context
// unregisters it.
type Runner struct {
	engine         *Engine
	interval       time.Duration
	onTick         func(TickResult)
	stopOnComplete bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithInterval overrides the one-second period. Tests use millisecond
// intervals.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTickHandler is called after every tick while the engine is running.
func WithTickHandler(fn func(TickResult)) RunnerOption {
	return func(r *Runner) {
		r.onTick = fn
	}
}

// StopOnComplete makes Run return after the first completed session.
func StopOnComplete() RunnerOption {
	return func(r *Runner) {
		r.stopOnComplete = true
	}
}

func NewRunner(e *Engine, opts ...RunnerOption) *Runner {
	r := &Runner{engine: e, interval: time.Second}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks, ticking the engine each interval. It reads the engine's live
// state on every tick, so mode switches and settings changes made from
// other goroutines take effect immediately. Run returns ctx.Err() when the
// context ends, or nil after a completion when StopOnComplete is set.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !r.engine.State().IsRunning {
				continue
			}
			res := r.engine.Tick()
			if r.onTick != nil {
				r.onTick(res)
			}
			if res.Completed && r.stopOnComplete {
				return nil
			}
		}
	}
}
