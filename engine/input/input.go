// Package input defines the platform-neutral input events consumed by controllers and a
// Dispatcher that fans them out to registered listeners.
package input

import "sync"

// EventType identifies the kind of input event.
type EventType uint8

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerCancel
	EventContextMenu
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "key_down"
	case EventKeyUp:
		return "key_up"
	case EventPointerDown:
		return "pointer_down"
	case EventPointerMove:
		return "pointer_move"
	case EventPointerUp:
		return "pointer_up"
	case EventPointerCancel:
		return "pointer_cancel"
	case EventContextMenu:
		return "context_menu"
	default:
		return "unknown"
	}
}

// Target identifies which element a pointer event landed on.
type Target uint8

const (
	// TargetNone is used for events with no element, such as key events.
	TargetNone Target = iota
	// TargetSurface is the rendering surface (the canvas the scene is drawn into).
	TargetSurface
	// TargetOverlay is UI drawn over the surface; pointer gestures there do not steer the scene.
	TargetOverlay
)

// Event is a single input event.
type Event struct {
	Type EventType

	// Key is the virtual key code for key events (see common.Key*).
	Key uint32

	// X, Y are the pointer client coordinates in device-independent pixels.
	X, Y float64

	// Target is the element under the pointer for pointer events.
	Target Target
}

// Listener receives input events.
type Listener func(e Event)

// ListenerID identifies a registered listener for later removal.
type ListenerID uint64

// Source is a global input surface that controllers subscribe to.
type Source interface {
	// AddListener registers l for events of type t.
	//
	// Parameters:
	//   - t: the event type to listen for
	//   - l: the callback
	//
	// Returns:
	//   - ListenerID: handle used to remove the listener
	AddListener(t EventType, l Listener) ListenerID

	// RemoveListener unregisters a listener. Unknown IDs are ignored.
	//
	// Parameters:
	//   - t: the event type the listener was registered for
	//   - id: the handle returned by AddListener
	RemoveListener(t EventType, id ListenerID)
}

type registration struct {
	id       ListenerID
	listener Listener
}

// Dispatcher is the concrete Source. Listeners run in registration order on the
// goroutine that calls Dispatch, outside the dispatcher lock, so a listener may
// add or remove listeners without deadlocking.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[EventType][]registration
}

var _ Source = &Dispatcher{}

// NewDispatcher creates an empty Dispatcher.
//
// Returns:
//   - *Dispatcher: the dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]registration),
	}
}

func (d *Dispatcher) AddListener(t EventType, l Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners[t] = append(d.listeners[t], registration{id: d.nextID, listener: l})
	return d.nextID
}

func (d *Dispatcher) RemoveListener(t EventType, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	regs := d.listeners[t]
	for i, r := range regs {
		if r.id == id {
			// copy so an in-flight Dispatch keeps iterating its own snapshot
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			d.listeners[t] = next
			return
		}
	}
}

// Dispatch delivers e to every listener registered for e.Type.
//
// Parameters:
//   - e: the event to deliver
func (d *Dispatcher) Dispatch(e Event) {
	d.mu.Lock()
	regs := d.listeners[e.Type]
	d.mu.Unlock()

	for _, r := range regs {
		r.listener(e)
	}
}

// ListenerCount returns the number of listeners registered for t.
//
// Parameters:
//   - t: the event type
//
// Returns:
//   - int: number of registered listeners
func (d *Dispatcher) ListenerCount(t EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[t])
}

// TotalListeners returns the number of listeners across all event types.
//
// Returns:
//   - int: total registered listeners
func (d *Dispatcher) TotalListeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, regs := range d.listeners {
		n += len(regs)
	}
	return n
}
