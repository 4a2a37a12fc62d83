package quantum

import (
	"testing"
	"time"

	clocktesting "k8s.io/utils/clock/testing"
)

func TestRequestCycleAlignsToQuantumBoundary(t *testing.T) {
	start := time.Unix(0, 37*int64(time.Second))
	fake := clocktesting.NewFakeClock(start)

	fired := make(chan time.Time, 1)
	tm := New(fake, 60*time.Second, func() {
		fired <- fake.Now()
	})

	tm.RequestCycle()
	if !tm.Armed() {
		t.Fatal("expected timer to be armed")
	}

	fake.Step(23 * time.Second) // now at t=60
	select {
	case at := <-fired:
		if at.UnixNano()%int64(60*time.Second) != 0 {
			t.Fatalf("fired at non-aligned time: %v", at)
		}
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestRequestCycleIsNoopWhileArmed(t *testing.T) {
	start := time.Unix(0, 0)
	fake := clocktesting.NewFakeClock(start)

	calls := 0
	tm := New(fake, 60*time.Second, func() {
		calls++
	})

	tm.RequestCycle()
	tm.RequestCycle()
	tm.RequestCycle()

	fake.Step(60 * time.Second)
	time.Sleep(10 * time.Millisecond)

	if calls != 1 {
		t.Fatalf("expected exactly one fire, got %d", calls)
	}
}

func TestDisarmPreventsFire(t *testing.T) {
	start := time.Unix(0, 0)
	fake := clocktesting.NewFakeClock(start)

	fired := false
	tm := New(fake, 60*time.Second, func() {
		fired = true
	})

	tm.RequestCycle()
	tm.Disarm()
	fake.Step(60 * time.Second)
	time.Sleep(10 * time.Millisecond)

	if fired {
		t.Fatal("expected disarmed timer not to fire")
	}
	if tm.Armed() {
		t.Fatal("expected timer to report unarmed after Disarm")
	}
}
