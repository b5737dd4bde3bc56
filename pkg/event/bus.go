package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultHistoryCapacity bounds the introspection buffer of published events.
const DefaultHistoryCapacity = 100

// Bus is an in-process publish/subscribe hub. Listeners for an event fire in
// descending priority order, ties broken by registration order; that order is
// stable across repeated publishes. A middleware chain runs before dispatch
// and may cancel it. Failed listeners are logged and never interrupt the
// remaining dispatch loop.
type Bus struct {
	mu         sync.RWMutex
	listeners  map[string][]*subscription
	middleware []Middleware
	history    *historyRing
	logger     *slog.Logger
	seq        atomic.Uint64
}

type subscription struct {
	id       uint64
	name     string
	priority int
	once     bool
	handler  Handler
	active   atomic.Bool
}

// Option customises the bus configuration.
type Option func(*Bus)

// WithLogger overrides the logger used to report listener failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithHistoryCapacity overrides the size of the event history buffer.
func WithHistoryCapacity(capacity int) Option {
	return func(b *Bus) {
		if capacity > 0 {
			b.history = newHistoryRing(capacity)
		}
	}
}

// WithMiddleware appends middleware to the chain in call order.
func WithMiddleware(mws ...Middleware) Option {
	return func(b *Bus) {
		for _, mw := range mws {
			if mw != nil {
				b.middleware = append(b.middleware, mw)
			}
		}
	}
}

// New constructs a Bus applying any provided options.
func New(options ...Option) *Bus {
	b := &Bus{
		listeners: make(map[string][]*subscription),
		history:   newHistoryRing(DefaultHistoryCapacity),
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// SubscribeOption customises a single subscription.
type SubscribeOption func(*subscription)

// WithPriority sets the dispatch priority. Higher values fire earlier.
func WithPriority(priority int) SubscribeOption {
	return func(s *subscription) {
		s.priority = priority
	}
}

// Use appends middleware to the chain after construction.
func (b *Bus) Use(mw Middleware) {
	if mw == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middleware = append(b.middleware, mw)
}

// Subscribe registers handler for the named event and returns its
// unsubscribe handle.
func (b *Bus) Subscribe(name string, handler Handler, opts ...SubscribeOption) (Unsubscribe, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	sub := &subscription{
		id:      b.seq.Add(1),
		name:    name,
		handler: handler,
	}
	sub.active.Store(true)
	for _, opt := range opts {
		if opt != nil {
			opt(sub)
		}
	}

	b.mu.Lock()
	b.listeners[name] = insertByPriority(b.listeners[name], sub)
	b.mu.Unlock()

	return func() { b.remove(sub) }, nil
}

// SubscribeOnce registers handler for a single delivery. The subscription is
// removed after the first event it receives, whether or not the handler
// fails.
func (b *Bus) SubscribeOnce(name string, handler Handler, opts ...SubscribeOption) (Unsubscribe, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	opts = append(opts, func(s *subscription) { s.once = true })
	return b.Subscribe(name, handler, opts...)
}

// Publish dispatches the event synchronously, invoking listeners in priority
// order on the calling goroutine.
func (b *Bus) Publish(name string, payload any) error {
	evt, subs, ok, err := b.prepare(name, payload)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, sub := range subs {
		if !sub.claim() {
			continue
		}
		b.invoke(sub, evt)
		if sub.once {
			b.remove(sub)
		}
	}
	return nil
}

// PublishAsync dispatches the event with all listeners running concurrently
// and returns once every listener has finished. Listener failures are logged,
// never propagated, so one failing listener cannot abort its siblings.
func (b *Bus) PublishAsync(ctx context.Context, name string, payload any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	evt, subs, ok, err := b.prepare(name, payload)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var group errgroup.Group
	for _, sub := range subs {
		if !sub.claim() {
			continue
		}
		sub := sub
		group.Go(func() error {
			b.invoke(sub, evt)
			if sub.once {
				b.remove(sub)
			}
			return nil
		})
	}
	return group.Wait()
}

// History returns the buffered events, oldest first. Vetoed events appear in
// the buffer even though no listener ran for them.
func (b *Bus) History() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.snapshot()
}

// ListenerCount reports the number of live subscriptions for name.
func (b *Bus) ListenerCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	count := 0
	for _, sub := range b.listeners[name] {
		if sub.active.Load() {
			count++
		}
	}
	return count
}

// prepare records the event, runs the middleware chain, and snapshots the
// listener list. The boolean reports whether dispatch should proceed.
func (b *Bus) prepare(name string, payload any) (Event, []*subscription, bool, error) {
	if name == "" {
		return Event{}, nil, false, ErrEmptyName
	}

	evt := Event{Name: name, Payload: payload, Timestamp: time.Now()}

	b.mu.Lock()
	b.history.append(evt)
	middleware := b.middleware
	subs := make([]*subscription, len(b.listeners[name]))
	copy(subs, b.listeners[name])
	b.mu.Unlock()

	for _, mw := range middleware {
		if !mw(evt) {
			return evt, nil, false, nil
		}
	}
	return evt, subs, true, nil
}

// invoke runs one handler with panic containment. Failures are best-effort
// logged and swallowed.
func (b *Bus) invoke(sub *subscription, evt Event) {
	defer func() {
		if recovered := recover(); recovered != nil {
			b.logger.Error("event listener panicked",
				"event", evt.Name,
				"panic", fmt.Sprint(recovered))
		}
	}()
	if err := sub.handler(evt); err != nil {
		b.logger.Error("event listener failed",
			"event", evt.Name,
			"error", err)
	}
}

// claim reports whether the subscription should receive this delivery and,
// for one-shot subscriptions, consumes it.
func (s *subscription) claim() bool {
	if s.once {
		return s.active.CompareAndSwap(true, false)
	}
	return s.active.Load()
}

func (b *Bus) remove(sub *subscription) {
	sub.active.Store(false)
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.listeners[sub.name]
	for i, candidate := range subs {
		if candidate.id == sub.id {
			b.listeners[sub.name] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}

// insertByPriority keeps the slice ordered by descending priority with
// insertion order preserved among equals.
func insertByPriority(subs []*subscription, sub *subscription) []*subscription {
	at := len(subs)
	for i, existing := range subs {
		if sub.priority > existing.priority {
			at = i
			break
		}
	}
	subs = append(subs, nil)
	copy(subs[at+1:], subs[at:])
	subs[at] = sub
	return subs
}
