package reactor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleAtFires(t *testing.T) {
	r := New()
	r.Start()
	defer r.Stop()

	done := make(chan struct{})
	r.ScheduleAfter(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timer never fired")
	}
}

func TestCancelPreventsFire(t *testing.T) {
	r := New()
	r.Start()
	defer r.Stop()

	var fired int32
	h := r.ScheduleAfter(20*time.Millisecond, func() { atomic.StoreInt32(&fired, 1) })
	h.Cancel()

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatalf("cancelled timer fired anyway")
	}
}

func TestTimersFireInOrder(t *testing.T) {
	r := New()
	r.Start()
	defer r.Stop()

	order := make(chan int, 3)
	r.ScheduleAfter(30*time.Millisecond, func() { order <- 3 })
	r.ScheduleAfter(10*time.Millisecond, func() { order <- 1 })
	r.ScheduleAfter(20*time.Millisecond, func() { order <- 2 })

	for i, want := range []int{1, 2, 3} {
		select {
		case got := <-order:
			if got != want {
				t.Fatalf("fire %d = %d, want %d", i, got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timer %d never fired", i)
		}
	}
}

func TestPostRunsOnReactorGoroutine(t *testing.T) {
	r := New()
	r.Start()
	defer r.Stop()

	done := make(chan struct{})
	r.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("posted func never ran")
	}
}
