// internal/event/event.go
package event

// EventType names an event.
type EventType string

// Event is a single notification. Data carries one of the payload types from
// types.go, or nil.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher fans events out to subscribers synchronously, in subscription
// order. It is not safe for concurrent use; the engine calls it under its
// own lock.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for eventType.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes the first registration of listener. The slice is
// rebuilt rather than shifted so a Dispatch iterating the old one is not
// disturbed. ListenerFunc values are not comparable and cannot be
// unsubscribed.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if l != listener {
			continue
		}
		kept := make([]Listener, 0, len(listeners)-1)
		kept = append(kept, listeners[:i]...)
		d.listeners[eventType] = append(kept, listeners[i+1:]...)
		return
	}
}

// Dispatch delivers event to every subscriber of its type.
func (d *Dispatcher) Dispatch(event Event) {
	if listeners, exists := d.listeners[event.Type]; exists {
		for _, listener := range listeners {
			listener.OnEvent(event)
		}
	}
}
