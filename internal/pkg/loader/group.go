// Package loader runs keyed background loads where only the latest load for a key may
// deliver its result.
package loader

import (
	"context"
	"sync"
	"time"
)

type LoadFunc[T any] func(ctx context.Context) (T, error)

type DeliverFunc[T any] func(result T, err error)

type StoreFunc[T any] func(result T)

type task struct {
	id     uint64
	cancel context.CancelFunc
}

// entry is the per-key state. gen moves on every Go and Cancel for the key, so a result
// loaded under an older gen is out of date. deliverMu is held for the whole delivery.
type entry struct {
	deliverMu sync.Mutex
	gen       uint64
	task      *task
	refs      int
}

// Group tracks one in-flight load per key. Starting a load for a key cancels the load
// already running for it, and a superseded, cancelled or closed load never delivers.
//
// Deliveries for one key run one at a time and never under the group lock, so a slow
// delivery only holds up its own key. Cancel and Close wait for a delivery already
// running. A DeliverFunc or StoreFunc must not call back into the Group.
type Group[T any] struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	entries map[string]*entry
	nextID  uint64
	closed  bool
	timeout time.Duration
}

// NewGroup returns a Group whose loads are cancelled after timeout. Zero disables it.
func NewGroup[T any](timeout time.Duration) *Group[T] {
	return &Group[T]{
		entries: make(map[string]*entry),
		timeout: timeout,
	}
}

// Go starts load for key in a new goroutine and reports whether it was started. The
// load context keeps the values of parent but not its cancellation, since loads usually
// outlive the request or message that triggered them.
func (g *Group[T]) Go(parent context.Context, key string, load LoadFunc[T], deliver DeliverFunc[T]) bool {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return false
	}

	e := g.acquire(key)
	if e.task != nil {
		e.task.cancel()
	}
	e.gen++
	gen := e.gen

	base := context.WithoutCancel(parent)
	var ctx context.Context
	var cancel context.CancelFunc
	if g.timeout > 0 {
		ctx, cancel = context.WithTimeout(base, g.timeout)
	} else {
		ctx, cancel = context.WithCancel(base)
	}

	g.nextID++
	current := &task{id: g.nextID, cancel: cancel}
	e.task = current
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		defer cancel()

		result, err := load(ctx)

		g.deliver(key, e, gen, func() { deliver(result, err) })

		g.mu.Lock()
		if e.task == current {
			e.task = nil
		}
		g.release(key, e)
		g.mu.Unlock()
	}()

	return true
}

// Fill runs load on the caller's goroutine and returns its result. A successful result
// is handed to store only if no Go or Cancel for key happened since Fill started and the
// group is still open. Concurrent Fills for a key do not cancel each other.
func (g *Group[T]) Fill(ctx context.Context, key string, load LoadFunc[T], store StoreFunc[T]) (T, error) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return load(ctx)
	}
	e := g.acquire(key)
	gen := e.gen
	g.wg.Add(1)
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.release(key, e)
		g.mu.Unlock()
		g.wg.Done()
	}()

	result, err := load(ctx)
	if err != nil {
		return result, err
	}

	g.deliver(key, e, gen, func() { store(result) })
	return result, nil
}

// Cancel stops the load running for key, if any, and marks every result loaded so far
// for key as out of date. It returns once a delivery already running for key is done.
func (g *Group[T]) Cancel(key string) {
	g.mu.Lock()
	e, ok := g.entries[key]
	if !ok {
		g.mu.Unlock()
		return
	}
	if e.task != nil {
		e.task.cancel()
		e.task = nil
	}
	e.gen++
	e.refs++
	g.mu.Unlock()

	e.deliverMu.Lock()
	e.deliverMu.Unlock()

	g.mu.Lock()
	g.release(key, e)
	g.mu.Unlock()
}

// InFlight returns the number of keys with a load that may still deliver.
func (g *Group[T]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	count := 0
	for _, e := range g.entries {
		if e.task != nil {
			count++
		}
	}
	return count
}

// Wait blocks until every started load has returned.
func (g *Group[T]) Wait() {
	g.wg.Wait()
}

// Close cancels all loads and waits for them. No delivery starts after Close starts,
// and later calls to Go are refused.
func (g *Group[T]) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	for _, e := range g.entries {
		if e.task != nil {
			e.task.cancel()
			e.task = nil
		}
	}
	g.mu.Unlock()

	g.wg.Wait()
}

// deliver runs fn while holding the key's delivery lock, provided gen is still current
// and the group is open.
func (g *Group[T]) deliver(key string, e *entry, gen uint64, fn func()) {
	e.deliverMu.Lock()
	defer e.deliverMu.Unlock()

	g.mu.Lock()
	current := !g.closed && e.gen == gen
	g.mu.Unlock()
	if !current {
		return
	}
	fn()
}

// acquire and release must be called with g.mu held.
func (g *Group[T]) acquire(key string) *entry {
	e, ok := g.entries[key]
	if !ok {
		e = &entry{}
		g.entries[key] = e
	}
	e.refs++
	return e
}

func (g *Group[T]) release(key string, e *entry) {
	e.refs--
	if e.refs == 0 && e.task == nil {
		delete(g.entries, key)
	}
}
