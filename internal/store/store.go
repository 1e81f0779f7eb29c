// Package store holds the per-visitor state containers behind the view
// layer. Each store owns one slice of state, mutates it only through its own
// methods, and notifies subscribers after every applied change. Server-backed
// stores (session, catalog, reviews) apply results confirm-then-apply: state
// changes only after the backend accepts the mutation.
package store

import "sync"

// emitter is the subscriber registry shared by all stores. Notifications run
// outside the owning store's state lock, so a subscriber may read the store
// again without deadlocking.
type emitter struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

// Subscribe registers fn to run after every applied state change and returns
// a cancel function.
func (e *emitter) Subscribe(fn func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs == nil {
		e.subs = make(map[int]func())
	}
	id := e.next
	e.next++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

func (e *emitter) notify() {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// TokenSource supplies the current bearer credential to stores that call
// privileged backend endpoints.
type TokenSource interface {
	Token() string
}
