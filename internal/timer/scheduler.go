package timer

import (
	"sync"
	"time"
)

// LoopScheduler runs a time.Ticker per schedule and hands every tick to post,
// which is expected to queue fn on the owner's event loop.
type LoopScheduler struct {
	post func(fn func()) bool
}

func NewLoopScheduler(post func(fn func()) bool) *LoopScheduler {
	return &LoopScheduler{post: post}
}

func (that *LoopScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if !that.post(fn) {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// ManualScheduler fires ticks only when told to. Tests use it to drive a Turn by hand.
type ManualScheduler struct {
	mu    sync.Mutex
	fn    func()
	armed int
}

func (that *ManualScheduler) Every(_ time.Duration, fn func()) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.fn = fn
	that.armed++
	armed := that.armed

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if that.armed == armed {
			that.fn = nil
		}
	}
}

// Fire invokes the active schedule n times and reports how many ticks were delivered.
func (that *ManualScheduler) Fire(n int) int {
	delivered := 0

	for range n {
		that.mu.Lock()
		fn := that.fn
		that.mu.Unlock()

		if fn == nil {
			break
		}

		fn()
		delivered++
	}

	return delivered
}

// Active reports whether a schedule is currently armed.
func (that *ManualScheduler) Active() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.fn != nil
}
