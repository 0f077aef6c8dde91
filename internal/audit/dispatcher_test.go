package audit

import (
	"sync"
	"testing"
	"time"
)

type memSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *memSink) Write(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *memSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatchDeliversToSink(t *testing.T) {
	sink := &memSink{}
	d := NewDispatcher(sink)

	d.Dispatch(Event{OwnerID: "owner-1", Action: "appointment_booked", Entity: "appointment"})

	deadline := time.Now().Add(2 * time.Second)
	for sink.len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("event never reached the sink")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.events[0].Action != "appointment_booked" {
		t.Fatalf("unexpected event: %+v", sink.events[0])
	}
}

func TestDispatchNeverBlocks(t *testing.T) {
	// A sink that never drains would wedge the worker; Dispatch must still
	// return immediately once the queue is full.
	block := make(chan struct{})
	d := NewDispatcher(sinkFunc(func(Event) error {
		<-block
		return nil
	}))
	defer close(block)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			d.Dispatch(Event{Action: "noise"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}

type sinkFunc func(Event) error

func (f sinkFunc) Write(ev Event) error { return f(ev) }
