package status

import (
	"sync"
)

// Status is the backend connectivity state as seen by the most recent fetch.
type Status string

const (
	Unknown      Status = "unknown"
	Connected    Status = "connected"
	Disconnected Status = "disconnected"
)

// Listener receives connectivity changes.
type Listener interface {
	Notify(Status)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Status)

func (f ListenerFunc) Notify(s Status) { f(s) }

// Publisher is the single source of truth for backend connectivity. It starts
// as Unknown and is shared by every fetch orchestrator.
//
// Deliveries are serialized so every listener sees changes in the order they
// were made. Listeners must not call Set or Subscribe from Notify.
type Publisher struct {
	// notifyMu is held across a whole delivery; mu only guards the fields.
	notifyMu  sync.Mutex
	mu        sync.Mutex
	current   Status
	listeners map[uint64]Listener
	nextID    uint64
	closed    bool
}

func New() *Publisher {
	return &Publisher{
		current:   Unknown,
		listeners: make(map[uint64]Listener),
	}
}

// Status returns the current value.
func (p *Publisher) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Subscribe registers l and immediately notifies it with the current status.
// The returned func removes the registration; calling it more than once is a
// no-op. Subscribing to a closed publisher only delivers the current value.
func (p *Publisher) Subscribe(l Listener) (unsubscribe func()) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	current := p.current
	if p.closed {
		p.mu.Unlock()
		l.Notify(current)
		return func() {}
	}
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	l.Notify(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// Set records s and notifies listeners. It reports whether the value changed;
// setting the current value again notifies nobody.
func (p *Publisher) Set(s Status) bool {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if s == p.current {
		p.mu.Unlock()
		return false
	}
	p.current = s
	snapshot := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		snapshot = append(snapshot, l)
	}
	p.mu.Unlock()

	// Delivered outside the lock so listeners may unsubscribe mid-loop.
	for _, l := range snapshot {
		l.Notify(s)
	}
	return true
}

// Close drops every listener. Status keeps working after Close.
func (p *Publisher) Close() {
	p.mu.Lock()
	p.closed = true
	p.listeners = make(map[uint64]Listener)
	p.mu.Unlock()
}

// Listeners returns the number of active subscriptions.
func (p *Publisher) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}
