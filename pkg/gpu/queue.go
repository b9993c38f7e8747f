package gpu

import (
	"context"
	"sync"

	"github.com/terramach/terramach/pkg/graphics"
)

type command interface {
	isCommand()
}

type pushCommand struct{ frame Frame }
type resizeCommand struct{ size graphics.Size }
type registerTextureCommand struct {
	id      TextureID
	texture RenderTexture
}
type invalidateTextureCommand struct{ id TextureID }
type updateTextureCommand struct{ id TextureID }
type unregisterTextureCommand struct{ id TextureID }
type terminateCommand struct{}

func (pushCommand) isCommand()              {}
func (resizeCommand) isCommand()            {}
func (registerTextureCommand) isCommand()   {}
func (invalidateTextureCommand) isCommand() {}
func (updateTextureCommand) isCommand()     {}
func (unregisterTextureCommand) isCommand() {}
func (terminateCommand) isCommand()         {}

// commandQueue is an unbounded multi-producer, single-consumer queue.
// Pushes never block; pushes after close are dropped.
type commandQueue struct {
	mu     sync.Mutex
	items  []command
	closed bool
	ready  chan struct{}
}

func newCommandQueue() *commandQueue {
	return &commandQueue{ready: make(chan struct{}, 1)}
}

func (q *commandQueue) push(c command) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, c)
	q.mu.Unlock()
	q.signal()
	return true
}

func (q *commandQueue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// wait blocks until at least one command is queued and returns everything
// queued so far. It reports false once the queue is closed and empty or ctx
// is done.
func (q *commandQueue) wait(ctx context.Context) ([]command, bool) {
	for {
		if items := q.drain(); len(items) > 0 {
			return items, true
		}
		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil, false
		}
		select {
		case <-q.ready:
		case <-ctx.Done():
			return nil, false
		}
	}
}

func (q *commandQueue) drain() []command {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func (q *commandQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}
