package debounce

import (
	"sync"
	"time"

	"github.com/hotel-site/room-filter/internal/infrastructure/timeutil"
)

// Value publishes the most recent input once it has been stable for the delay.
// The initial value is published immediately.
type Value[T any] struct {
	mu        sync.Mutex
	published T
	next      T
	onPublish func(T)
	fn        *Func
}

// NewValue creates a debounced value. onPublish, when non-nil, is called with every
// published value on the goroutine that publishes it.
func NewValue[T any](clock timeutil.Clock, initial T, delay time.Duration, onPublish func(T)) *Value[T] {
	v := &Value[T]{
		published: initial,
		next:      initial,
		onPublish: onPublish,
	}
	v.fn = New(clock, delay, v.publish)
	return v
}

// Get returns the currently published value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.published
}

// Set records a new input and restarts the quiet period.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.next = value
	v.mu.Unlock()

	v.fn.Call()
}

// Cancel drops a pending publication. The published value is unchanged.
func (v *Value[T]) Cancel() {
	v.fn.Cancel()
}

// Pending reports whether an input is waiting to be published.
func (v *Value[T]) Pending() bool {
	return v.fn.Pending()
}

// Flush publishes a pending input immediately.
func (v *Value[T]) Flush() bool {
	return v.fn.Flush()
}

func (v *Value[T]) publish() {
	v.mu.Lock()
	v.published = v.next
	value := v.published
	cb := v.onPublish
	v.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}
