package reactor

import "time"

// CancelHandle cancels a previously scheduled timer. Cancel is safe to call
// more than once and safe to call after the timer has already fired.
type CancelHandle interface {
	Cancel()
}

// Reactor schedules timers and cross-goroutine tasks onto one dedicated
// goroutine. All callbacks run on that goroutine, one at a time: a callback
// must not block, and a slow callback delays every other pending timer.
type Reactor interface {
	// Start launches the reactor goroutine. A second call does nothing.
	Start()
	// Stop terminates the reactor goroutine. Pending timers are discarded
	// without running; tasks already posted but not yet drained are dropped.
	Stop()
	// CurrentTime returns the time the reactor goroutine last observed,
	// which is always very close to time.Now but reads without a syscall
	// when called from reactor-owned code.
	CurrentTime() time.Time
	// ScheduleAt arranges for fn to run on the reactor goroutine at or
	// after at. Scheduling a time in the past runs fn on the next tick.
	ScheduleAt(at time.Time, fn func()) CancelHandle
	// ScheduleAfter is ScheduleAt(CurrentTime().Add(d), fn).
	ScheduleAfter(d time.Duration, fn func()) CancelHandle
	// Post queues fn to run on the reactor goroutine as soon as it is free.
	// httpcore uses it to retry a connection's finish procedure while a
	// write is still in flight.
	Post(fn func())
}

// New returns a Reactor. The returned value is not started; call Start.
func New() Reactor {
	return newReactor()
}
