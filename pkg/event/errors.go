package event

import "errors"

var (
	// ErrNilHandler is returned when subscribing with a nil handler.
	ErrNilHandler = errors.New("event: handler is required")

	// ErrEmptyName is returned when subscribing or publishing with an empty
	// event name.
	ErrEmptyName = errors.New("event: event name is required")

	// ErrWaitTimeout is returned by WaitFor when the awaited event does not
	// fire inside the window.
	ErrWaitTimeout = errors.New("event: wait timed out")
)
