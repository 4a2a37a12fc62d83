// Package quantum implements the scheduler core's quantum-aligned batch
// timer: a single pending wakeup, re-armed at fixed multiples of the
// scheduling quantum on an injectable clock.
package quantum

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Timer schedules at most one pending cycle wakeup at a time, aligned to
// multiples of quantum on clk. Re-arming while already armed is a no-op,
// so at most one wakeup is ever in flight.
type Timer struct {
	clk     clock.Clock
	quantum time.Duration
	fire    func()

	mu     sync.Mutex
	armed  bool
	timer  clock.Timer
}

// New returns a Timer that invokes fire at the next quantum boundary each
// time RequestCycle is called, using clk as the time source. quantum must
// be > 0.
func New(clk clock.Clock, quantum time.Duration, fire func()) *Timer {
	return &Timer{clk: clk, quantum: quantum, fire: fire}
}

// RequestCycle arms a single one-shot wakeup at the next quantum boundary
// if none is currently armed; otherwise it is a no-op.
func (t *Timer) RequestCycle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.armed {
		return
	}

	now := t.clk.Now()
	delay := t.quantum - time.Duration(now.UnixNano())%t.quantum
	if delay <= 0 {
		delay += t.quantum
	}

	t.armed = true
	t.timer = t.clk.AfterFunc(delay, func() {
		t.mu.Lock()
		t.armed = false
		t.mu.Unlock()
		t.fire()
	})
}

// Armed reports whether a wakeup is currently pending.
func (t *Timer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Disarm cancels any pending wakeup, guaranteeing no cycle fires after
// shutdown.
func (t *Timer) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.armed = false
}
