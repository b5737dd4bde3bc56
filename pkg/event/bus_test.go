package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietBus(opts ...Option) *Bus {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(opts...)
}

func TestSubscribeValidation(t *testing.T) {
	t.Parallel()

	bus := quietBus()

	_, err := bus.Subscribe("field.changed", nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = bus.Subscribe("", func(Event) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestPublishPriorityOrder(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	var order []string

	_, err := bus.Subscribe("field.changed", func(Event) error {
		order = append(order, "B")
		return nil
	}, WithPriority(5))
	require.NoError(t, err)

	_, err = bus.Subscribe("field.changed", func(Event) error {
		order = append(order, "A")
		return nil
	}, WithPriority(10))
	require.NoError(t, err)

	require.NoError(t, bus.Publish("field.changed", nil))
	assert.Equal(t, []string{"A", "B"}, order)
}

func TestPublishStableOrderAmongEqualPriorities(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	var order []int

	for i := 0; i < 5; i++ {
		i := i
		_, err := bus.Subscribe("tick", func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, bus.Publish("tick", nil))
	require.NoError(t, bus.Publish("tick", nil))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}, order)
}

func TestFailingListenerDoesNotStopDispatch(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	var reached bool

	_, err := bus.Subscribe("save", func(Event) error {
		return errors.New("boom")
	}, WithPriority(1))
	require.NoError(t, err)

	_, err = bus.Subscribe("save", func(Event) error {
		reached = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish("save", nil))
	assert.True(t, reached, "listener after a failing one must still run")
}

func TestPanickingListenerIsContained(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	var reached bool

	_, err := bus.Subscribe("save", func(Event) error { panic("bad listener") }, WithPriority(1))
	require.NoError(t, err)
	_, err = bus.Subscribe("save", func(Event) error {
		reached = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish("save", nil))
	assert.True(t, reached)
}

func TestSubscribeOnceFiresOnce(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	count := 0

	_, err := bus.SubscribeOnce("load", func(Event) error {
		count++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish("load", nil))
	require.NoError(t, bus.Publish("load", nil))
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.ListenerCount("load"))
}

func TestUnsubscribeHandle(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	count := 0

	unsubscribe, err := bus.Subscribe("tick", func(Event) error {
		count++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish("tick", nil))
	unsubscribe()
	unsubscribe() // repeated calls are harmless
	require.NoError(t, bus.Publish("tick", nil))
	assert.Equal(t, 1, count)
}

func TestMiddlewareVetoStillRecordsHistory(t *testing.T) {
	t.Parallel()

	bus := quietBus(WithMiddleware(func(evt Event) bool {
		return evt.Name != "blocked"
	}))
	var delivered bool

	_, err := bus.Subscribe("blocked", func(Event) error {
		delivered = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish("blocked", "payload"))
	assert.False(t, delivered, "vetoed event must not reach listeners")

	history := bus.History()
	require.Len(t, history, 1)
	assert.Equal(t, "blocked", history[0].Name)
	assert.Equal(t, "payload", history[0].Payload)
}

func TestHistoryEvictsOldest(t *testing.T) {
	t.Parallel()

	bus := quietBus(WithHistoryCapacity(3))
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, bus.Publish(name, nil))
	}

	history := bus.History()
	require.Len(t, history, 3)
	assert.Equal(t, "b", history[0].Name)
	assert.Equal(t, "d", history[2].Name)
}

func TestPublishAsyncAwaitsAllListeners(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	var mu sync.Mutex
	seen := 0

	for i := 0; i < 4; i++ {
		_, err := bus.Subscribe("gen", func(Event) error {
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			seen++
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, bus.PublishAsync(context.Background(), "gen", nil))
	assert.Equal(t, 4, seen, "PublishAsync must resolve after every listener")
}

func TestPublishAsyncFailureDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	var mu sync.Mutex
	succeeded := 0

	_, err := bus.Subscribe("gen", func(Event) error { return errors.New("boom") })
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := bus.Subscribe("gen", func(Event) error {
			mu.Lock()
			succeeded++
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, bus.PublishAsync(context.Background(), "gen", nil))
	assert.Equal(t, 3, succeeded)
}

func TestWaitForReceivesEvent(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	done := make(chan struct{})

	go func() {
		defer close(done)
		evt, err := bus.WaitFor(context.Background(), "ready", time.Second)
		assert.NoError(t, err)
		assert.Equal(t, 42, evt.Payload)
	}()

	// Give the waiter time to register its listener.
	for i := 0; i < 100; i++ {
		if bus.ListenerCount("ready") > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, bus.Publish("ready", 42))
	<-done

	assert.Equal(t, 0, bus.ListenerCount("ready"), "waiter listener must be unregistered")
}

func TestWaitForTimesOut(t *testing.T) {
	t.Parallel()

	bus := quietBus()
	_, err := bus.WaitFor(context.Background(), "never", 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrWaitTimeout)
	assert.Equal(t, 0, bus.ListenerCount("never"))
}
