package event

import "sync"

// Queue is a multi-producer event queue drained by a single consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends item.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Poll returns and clears everything queued, or nil when empty.
func (q *Queue[T]) Poll() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Emitter returns a handle that pushes into q.
func (q *Queue[T]) Emitter() Emitter[T] {
	return Emitter[T]{queue: q}
}

// Emitter is a copyable send-only handle to a Queue. The zero value drops
// everything.
type Emitter[T any] struct {
	queue *Queue[T]
}

// Emit pushes item.
func (e Emitter[T]) Emit(item T) {
	if e.queue == nil {
		return
	}
	e.queue.Push(item)
}

// IsEmpty reports whether the target queue holds nothing.
func (e Emitter[T]) IsEmpty() bool {
	return e.queue == nil || e.queue.Len() == 0
}

// IsZero reports whether the emitter has no target.
func (e Emitter[T]) IsZero() bool {
	return e.queue == nil
}
