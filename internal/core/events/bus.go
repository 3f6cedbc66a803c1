package events

import "sync"

// Bus fans events and notifications out to subscriber channels.
// Sends never block: a subscriber whose buffer is full misses the value.
type Bus struct {
	mu            sync.Mutex
	events        []chan Event
	notifications []chan Notification
	closed        bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new event observer channel.
func (bus *Bus) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.closed {
		close(ch)
		return ch
	}
	bus.events = append(bus.events, ch)
	return ch
}

// SubscribeNotifications registers a new banner observer channel.
func (bus *Bus) SubscribeNotifications(buffer int) <-chan Notification {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.closed {
		close(ch)
		return ch
	}
	bus.notifications = append(bus.notifications, ch)
	return ch
}

// Emit implements Sink.
func (bus *Bus) Emit(event Event) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for _, ch := range bus.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// Notify implements Sink.
func (bus *Bus) Notify(notification Notification) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for _, ch := range bus.notifications {
		select {
		case ch <- notification:
		default:
		}
	}
}

// Close closes every subscriber channel. Later emits are dropped.
func (bus *Bus) Close() {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.closed {
		return
	}
	bus.closed = true
	for _, ch := range bus.events {
		close(ch)
	}
	for _, ch := range bus.notifications {
		close(ch)
	}
	bus.events = nil
	bus.notifications = nil
}
