package session

import (
	"context"
	"sync"
)

const defaultInboxSize = 64

// Loop runs posted closures one at a time, in the order they were posted.
// All session state is confined to the goroutine that drives it.
type Loop struct {
	inbox   chan func()
	stopped chan struct{}
	once    sync.Once

	after func()
}

func NewLoop(size int) *Loop {
	if size <= 0 {
		size = defaultInboxSize
	}

	return &Loop{
		inbox:   make(chan func(), size),
		stopped: make(chan struct{}),
	}
}

// Post queues fn. It blocks while the inbox is full and reports false once the loop has stopped.
func (that *Loop) Post(fn func()) bool {
	select {
	case <-that.stopped:
		return false
	default:
	}

	select {
	case that.inbox <- fn:
		return true
	case <-that.stopped:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (that *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})

	if !that.Post(func() {
		defer close(done)
		fn()
	}) {
		return context.Canceled
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-that.stopped:
		return context.Canceled
	}
}

// OnIdle registers fn to run after every processed closure.
func (that *Loop) OnIdle(fn func()) {
	that.after = fn
}

// Run drains the inbox until ctx is done. Posting fails afterwards.
func (that *Loop) Run(ctx context.Context) error {
	defer that.Stop()

	for that.Next(ctx) {
	}

	return ctx.Err()
}

// Next runs one closure. It reports false when ctx is done or the loop has stopped.
func (that *Loop) Next(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-that.stopped:
		return false
	case fn := <-that.inbox:
		fn()

		if that.after != nil {
			that.after()
		}

		return true
	}
}

func (that *Loop) Stop() {
	that.once.Do(func() { close(that.stopped) })
}
