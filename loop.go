package overlay

import (
	"sync"
	"time"
)

// Scheduler provides the engine's deferred execution primitives. Post queues
// a function for execution as soon as possible; After queues one for
// execution no earlier than d from now. Both must deliver on the same single
// worker that all other engine calls run on — that serialization is what
// lets the engine hold state without locks.
//
// Expiry callbacks scheduled via After are never cancelled. The engine
// guards them by re-checking registry membership when they fire, so a stale
// callback is a no-op.
type Scheduler interface {
	Post(fn func())
	After(d time.Duration, fn func())
}

// Loop is the production Scheduler: a single goroutine draining a function
// queue. Everything posted runs in order on that one goroutine.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	stopped bool
	done    chan struct{}
}

// NewLoop creates and starts a Loop.
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.pending) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if l.stopped {
			l.mu.Unlock()
			return
		}
		fn := l.pending[0]
		l.pending = l.pending[1:]
		l.mu.Unlock()

		fn()
	}
}

// Post queues fn on the loop worker. Posts after Stop are discarded.
// Safe for concurrent use from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if !l.stopped {
		l.pending = append(l.pending, fn)
		l.cond.Signal()
	}
	l.mu.Unlock()
}

// After schedules fn on the loop worker once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Sync blocks until everything posted before it has run. Useful for tests
// and for transports that need a completion barrier.
func (l *Loop) Sync() {
	ch := make(chan struct{})
	l.Post(func() { close(ch) })
	select {
	case <-ch:
	case <-l.done:
	}
}

// Stop halts the worker. Queued functions that have not yet run are
// discarded; timers that fire later post into the void. Stop blocks until
// the worker has exited.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.stopped = true
	l.cond.Signal()
	l.mu.Unlock()
	<-l.done
}
