// Package store holds the in-memory authoritative copy of the synced entity
// collections. All entity mutation flows through a Collection; the UI layer
// only ever reads value snapshots and subscribes to change notifications.
package store

import (
	"context"
	"sync"
	"time"

	domainerrors "mise/internal/domain/errors"
	"mise/internal/errors"

	"github.com/google/uuid"
)

// State is the fetch lifecycle of a collection scope.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrSuperseded is returned to a load whose result was discarded because the
// collection was reset (logout) while the fetch was in flight.
var ErrSuperseded = errors.New("load superseded by a store reset")

// Snapshot is an immutable value copy of a collection at one point in time.
// A failed refresh keeps the last-good Items alongside Err.
type Snapshot[T any] struct {
	State       State
	Items       []T
	Err         error
	LastFetched time.Time
}

// Observer receives a snapshot after every visible state change. Callbacks
// run sequentially on the goroutine that performed the change and must not
// call back into the collection.
type Observer[T any] func(Snapshot[T])

type loadResult struct {
	done chan struct{}
	err  error
}

// Collection tracks one resource scope through Empty -> Loading -> Loaded or
// Failed, with at most one in-flight fetch at a time and per-entity
// serialization of optimistic mutations.
type Collection[T any] struct {
	idOf         func(T) string
	clone        func(T) T
	recoverEmpty func(error) bool
	now          func() time.Time

	mu          sync.Mutex
	state       State
	items       []T
	err         error
	lastFetched time.Time
	stale       bool
	generation  uuid.UUID
	inflight    *loadResult
	busy        map[string]struct{}

	subMu   sync.Mutex
	subs    map[uint64]Observer[T]
	nextSub uint64
}

// NewCollection creates an empty collection. idOf extracts the entity key
// used for mutation serialization; clone must produce a copy deep enough
// that rolling back to it restores the exact pre-mutation value.
func NewCollection[T any](idOf func(T) string, clone func(T) T) *Collection[T] {
	return &Collection[T]{
		idOf:       idOf,
		clone:      clone,
		now:        time.Now,
		generation: uuid.New(),
		busy:       make(map[string]struct{}),
		subs:       make(map[uint64]Observer[T]),
	}
}

// RecoverEmpty installs a predicate that converts matching fetch errors into
// an empty-success. Used by the orders scope, where a backend not-found means
// "no orders yet" rather than a failure.
func (c *Collection[T]) RecoverEmpty(match func(error) bool) {
	c.recoverEmpty = match
}

// Load drives one fetch of the scope. If a fetch is already in flight the
// caller does not issue a duplicate: it waits for the shared result. A
// loaded, non-invalidated collection is served from cache unless force is
// set. On success the items are replaced atomically; on failure the last-good
// items are kept and the error recorded.
func (c *Collection[T]) Load(ctx context.Context, force bool, fetch func(context.Context) ([]T, error)) error {
	c.mu.Lock()
	if res := c.inflight; res != nil {
		c.mu.Unlock()

		select {
		case <-res.done:
			return res.err
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		}
	}
	if !force && c.state == StateLoaded && !c.stale {
		c.mu.Unlock()

		return nil
	}
	res := &loadResult{done: make(chan struct{})}
	c.inflight = res
	c.state = StateLoading
	gen := c.generation
	c.mu.Unlock()
	c.notify()

	items, err := fetch(ctx)
	if err != nil && c.recoverEmpty != nil && c.recoverEmpty(err) {
		items, err = []T{}, nil
	}

	c.mu.Lock()
	if c.generation != gen {
		// The collection was reset while the fetch ran; its result no
		// longer belongs to this session and must not be committed.
		res.err = ErrSuperseded
		close(res.done)
		c.mu.Unlock()

		return ErrSuperseded
	}
	if err != nil {
		c.state = StateFailed
		c.err = err
	} else {
		c.state = StateLoaded
		c.items = items
		c.err = nil
		c.stale = false
		c.lastFetched = c.now()
	}
	res.err = err
	c.inflight = nil
	close(res.done)
	c.mu.Unlock()
	c.notify()

	return err
}

// Mutate applies transform locally, then runs remote. The local change is
// visible to observers before the call resolves; remote failure rolls the
// entity back to its exact pre-transform value. A second mutation on an
// entity already mid-flight is rejected with the busy condition without
// touching the network.
func (c *Collection[T]) Mutate(ctx context.Context, entityID string, transform func(*T), remote func(context.Context) error) error {
	c.mu.Lock()
	idx := c.indexOf(entityID)
	if idx < 0 {
		c.mu.Unlock()

		return domainerrors.ErrNotFound.WrapMessage("entity " + entityID + " is not in the store")
	}
	if _, inflight := c.busy[entityID]; inflight {
		c.mu.Unlock()

		return domainerrors.ErrBusy.WrapMessage("entity " + entityID)
	}
	before := c.clone(c.items[idx])
	transform(&c.items[idx])
	c.busy[entityID] = struct{}{}
	gen := c.generation
	c.mu.Unlock()
	c.notify()

	err := remote(ctx)

	c.mu.Lock()
	delete(c.busy, entityID)
	if c.generation != gen {
		// Store was reset mid-flight; there is nothing left to commit or
		// roll back.
		c.mu.Unlock()

		return err
	}
	if err != nil {
		if j := c.indexOf(entityID); j >= 0 {
			c.items[j] = before
		}
	}
	c.mu.Unlock()
	c.notify()

	return err
}

// Invalidate forces the next Load to bypass the cached value.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Reset discards all state and starts a new generation. In-flight fetch and
// mutation results from the previous generation are dropped on arrival.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	c.generation = uuid.New()
	c.state = StateEmpty
	c.items = nil
	c.err = nil
	c.stale = false
	c.lastFetched = time.Time{}
	c.inflight = nil
	c.busy = make(map[string]struct{})
	c.mu.Unlock()
	c.notify()
}

// Snapshot returns a value copy of the current collection state.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// IsBusy reports whether a mutation for the entity is currently in flight.
func (c *Collection[T]) IsBusy(entityID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, busy := c.busy[entityID]

	return busy
}

// Subscribe registers an observer and immediately delivers the current
// snapshot to it. The returned function removes the subscription.
func (c *Collection[T]) Subscribe(obs Observer[T]) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = obs
	c.subMu.Unlock()

	obs(c.Snapshot())

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Collection[T]) snapshotLocked() Snapshot[T] {
	items := make([]T, len(c.items))
	for i, item := range c.items {
		items[i] = c.clone(item)
	}

	return Snapshot[T]{
		State:       c.state,
		Items:       items,
		Err:         c.err,
		LastFetched: c.lastFetched,
	}
}

func (c *Collection[T]) indexOf(entityID string) int {
	for i, item := range c.items {
		if c.idOf(item) == entityID {
			return i
		}
	}

	return -1
}

func (c *Collection[T]) notify() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.subMu.Lock()
	observers := make([]Observer[T], 0, len(c.subs))
	for _, obs := range c.subs {
		observers = append(observers, obs)
	}
	c.subMu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}
