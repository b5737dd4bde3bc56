package event

import (
	"context"
	"time"
)

// WaitFor blocks until the named event fires, the timeout elapses, or ctx is
// cancelled. The internal listener is unregistered on every outcome so
// abandoned waits do not leak subscriptions.
func (b *Bus) WaitFor(ctx context.Context, name string, timeout time.Duration) (Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	received := make(chan Event, 1)
	unsubscribe, err := b.SubscribeOnce(name, func(evt Event) error {
		received <- evt
		return nil
	})
	if err != nil {
		return Event{}, err
	}
	defer unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case evt := <-received:
		return evt, nil
	case <-timer.C:
		return Event{}, ErrWaitTimeout
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}
