// Package worker is the fixed-size goroutine pool that drains requests
// dequeued from the ring (spec.md §4.4). It is a plain Go channel-based
// pool: idiomatic Go here IS the standard library, so this package has no
// third-party dependency (see DESIGN.md).
package worker

import (
	"sync"

	"github.com/kvshm/kvshm/pkg/ring"
)

// Handler processes one dequeued request. It is called from a worker
// goroutine, never from the dequeue loop itself.
type Handler func(req ring.Request)

// Pool is a fixed number of goroutines draining a shared work channel.
type Pool struct {
	work chan ring.Request
	wg   sync.WaitGroup
}

// New starts size worker goroutines, each running handler over incoming
// requests until the pool is closed. size is clamped to at least 1.
func New(size int, handler Handler) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{work: make(chan ring.Request, size)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go func() {
			defer p.wg.Done()
			for req := range p.work {
				handler(req)
			}
		}()
	}
	return p
}

// Submit hands req to whichever worker picks it up next. It blocks only
// when every worker is busy and the channel's buffer is also full.
func (p *Pool) Submit(req ring.Request) {
	p.work <- req
}

// Close stops accepting new work and blocks until every in-flight handler
// call has returned.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
}
