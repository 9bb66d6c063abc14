package core

// Event is a fire-and-forget notification emitted by the simulation,
// e.g. "hit" or "brick-break". Hosts use events for sound and logging.
type Event string

// EventSink receives simulation events. Implementations must not block.
type EventSink interface {
	Emit(e Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(e Event)

// Emit calls f(e).
func (f EventSinkFunc) Emit(e Event) {
	f(e)
}

// EventBuffer collects events until drained.
type EventBuffer struct {
	events []Event
}

// Emit appends e to the buffer.
func (b *EventBuffer) Emit(e Event) {
	b.events = append(b.events, e)
}

// Len returns the number of buffered events.
func (b *EventBuffer) Len() int {
	return len(b.events)
}

// Drain returns the buffered events and empties the buffer.
func (b *EventBuffer) Drain() []Event {
	if len(b.events) == 0 {
		return nil
	}
	out := b.events
	b.events = nil
	return out
}

// Tee returns a sink that forwards each event to every non-nil sink in order.
func Tee(sinks ...EventSink) EventSink {
	var live []EventSink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return EventSinkFunc(func(e Event) {
		for _, s := range live {
			s.Emit(e)
		}
	})
}

// Discard drops every event.
var Discard EventSink = EventSinkFunc(func(Event) {})
