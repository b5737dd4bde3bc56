package event

import "time"

// Event is one published occurrence: a name, an opaque payload, and the
// publication timestamp.
type Event struct {
	Name      string
	Payload   any
	Timestamp time.Time
}

// Handler consumes a published event. A returned error marks the listener as
// failed for that delivery; the bus logs it and keeps dispatching to the
// remaining listeners.
type Handler func(Event) error

// Middleware inspects an event before listener dispatch. Returning false
// cancels dispatch: no listener runs, but the event is still recorded in the
// bus history.
type Middleware func(Event) bool

// Unsubscribe removes the listener it was returned for. Calling it more than
// once is a no-op. Removal during dispatch takes effect for future
// deliveries only.
type Unsubscribe func()
