package events

import (
	"sync"
	"testing"
	"time"
)

func TestBusPublishAndSubscribe(t *testing.T) {
	b := NewBus()
	defer b.Close()

	ch := b.Subscribe()
	b.Publish(VmScheduled{Name: "srv-1"})

	select {
	case ev := <-ch:
		got, ok := ev.(VmScheduled)
		if !ok || got.Name != "srv-1" {
			t.Fatalf("unexpected event: %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected event on subscriber channel")
	}
}

func TestBusMultipleSubscribersAllReceive(t *testing.T) {
	b := NewBus()
	defer b.Close()

	a := b.Subscribe()
	c := b.Subscribe()
	b.Publish(HypervisorAvailable{HostUID: "host-1"})

	for _, ch := range []<-chan Event{a, c} {
		select {
		case ev := <-ch:
			if _, ok := ev.(HypervisorAvailable); !ok {
				t.Fatalf("unexpected event: %#v", ev)
			}
		case <-time.After(time.Second):
			t.Fatal("expected event on subscriber channel")
		}
	}
}

func TestBusNonBlockingWhenBufferFull(t *testing.T) {
	b := NewBus()
	defer b.Close()

	ch := b.Subscribe()
	for i := 0; i < 100; i++ {
		b.Publish(VmStopped{Name: "srv-x"})
	}

	select {
	case <-ch:
	default:
		t.Fatal("expected at least one buffered event")
	}
}

func TestBusCloseClosesSubscribers(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()
	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("channel should be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("channel should have been closed")
	}

	// Double close must not panic.
	b.Close()
}

func TestBusPublishAfterCloseIsNoop(t *testing.T) {
	b := NewBus()
	b.Close()
	b.Publish(VmSubmissionInvalid{Name: "srv-2"})
}

func TestBusSubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := NewBus()
	b.Close()
	ch := b.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatal("expected already-closed channel")
	}
}

func TestBusConcurrentPublishAndSubscribe(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := b.Subscribe()
			select {
			case <-ch:
			case <-time.After(time.Second):
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(MetricsAvailable{Service: "novasched"})
		}()
	}
	wg.Wait()
}
