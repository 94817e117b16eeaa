package timer

import "time"

const DefaultCeiling = 30

// Scheduler calls fn every interval until stop is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// Turn is the per-match countdown. It is not safe for concurrent use: Reset, Stop and
// every scheduled tick must run on the same goroutine.
type Turn struct {
	ceiling   int
	interval  time.Duration
	scheduler Scheduler
	onTimeout func()

	remaining int
	running   bool
	gen       uint64
	stop      func()
}

func NewTurn(ceiling int, interval time.Duration, scheduler Scheduler, onTimeout func()) *Turn {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}

	return &Turn{
		ceiling:   ceiling,
		interval:  interval,
		scheduler: scheduler,
		onTimeout: onTimeout,
		remaining: ceiling,
	}
}

// Reset sets the remaining time to the ceiling and starts counting down.
func (that *Turn) Reset() {
	that.cancelSchedule()

	that.remaining = that.ceiling
	that.running = true

	gen := that.gen
	that.stop = that.scheduler.Every(that.interval, func() { that.tickFrom(gen) })
}

// Stop halts the countdown; ticks already queued by the scheduler are ignored.
func (that *Turn) Stop() {
	that.cancelSchedule()
	that.running = false
}

// Tick decrements the remaining time. Reaching zero stops the timer and fires the timeout once.
func (that *Turn) Tick() {
	if !that.running {
		return
	}

	that.remaining--
	if that.remaining > 0 {
		return
	}

	that.remaining = 0
	that.Stop()

	if that.onTimeout != nil {
		that.onTimeout()
	}
}

func (that *Turn) Remaining() int {
	return that.remaining
}

func (that *Turn) Running() bool {
	return that.running
}

func (that *Turn) Ceiling() int {
	return that.ceiling
}

func (that *Turn) tickFrom(gen uint64) {
	if gen != that.gen {
		return
	}

	that.Tick()
}

func (that *Turn) cancelSchedule() {
	that.gen++

	if that.stop != nil {
		that.stop()
		that.stop = nil
	}
}
