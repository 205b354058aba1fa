package stream

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matt-g-everett/ledtween/tween"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("frame loop stopped")

// Loop is the frame source for a tween.Scheduler. It owns one goroutine:
// every tick it runs the pending frame callbacks and then the frame hooks,
// and between ticks it runs functions posted from other goroutines. Tweens
// must only be touched from that goroutine.
type Loop struct {
	clock    tween.Clock
	interval time.Duration

	mu      sync.Mutex
	pending []func(time.Duration)
	hooks   []func(time.Duration)

	posts chan func()
	done  chan struct{}
}

// NewLoop creates a Loop ticking fps times per second.
func NewLoop(clock tween.Clock, fps float64) *Loop {
	if fps <= 0 {
		fps = 30
	}
	l := new(Loop)
	l.clock = clock
	l.interval = time.Duration(float64(time.Second) / fps)
	l.posts = make(chan func(), 64)
	l.done = make(chan struct{})
	return l
}

// RequestFrame schedules fn for the next tick.
func (l *Loop) RequestFrame(fn func(now time.Duration)) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

// OnFrame registers fn to run after the scheduler on every tick.
func (l *Loop) OnFrame(fn func(now time.Duration)) {
	l.mu.Lock()
	l.hooks = append(l.hooks, fn)
	l.mu.Unlock()
}

// Post queues fn to run on the loop goroutine. It is dropped if the loop has
// stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.posts <- fn:
	case <-l.done:
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.posts <- wrapped:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step runs one tick at now. Run calls it from the ticker.
func (l *Loop) Step(now time.Duration) {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	hooks := l.hooks
	l.mu.Unlock()

	for _, fn := range batch {
		fn(now)
	}
	for _, fn := range hooks {
		fn(now)
	}
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.posts:
			fn()
		case <-ticker.C:
			l.Step(l.clock.Now())
		}
	}
}
