package audit

import "log"

type Event struct {
	OwnerID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink persists audit events. The production sink writes to the database;
// tests plug in a fake.
type Sink interface {
	Write(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Write(ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch never blocks the request path. When the queue is full the
// event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}
