package rawhttp

import (
	"fmt"
	"hash/fnv"
)

// MatchStatus reports the outcome of a [Router.Lookup].
type MatchStatus int

const (
	MatchOK MatchStatus = iota
	MatchFailed
)

// entry is one slot of the table. A slot is occupied when handler is non-nil.
type entry struct {
	handler Handler
	key     string
}

// Router maps routes to handlers using a fixed-capacity open-addressing table with
// linear probing. It never resizes: once every slot is taken, further attaches are
// silently dropped. The table is filled before serving and read-only afterwards.
type Router struct {
	capacity int
	size     int
	slots    []entry
	frozen   bool
}

// NewRouter creates a router with the given capacity, which must be a positive power
// of two. Any other value panics because slot selection masks the hash with capacity-1.
func NewRouter(capacity int) *Router {
	if !IsPowerOfTwo(capacity) {
		panic(fmt.Sprintf("rawhttp: router capacity must be a power of two, got: %d", capacity))
	}

	return &Router{
		capacity: capacity,
		slots:    make([]entry, capacity),
	}
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Size returns the number of occupied slots.
func (r *Router) Size() int { return r.size }

// Capacity returns the fixed number of slots.
func (r *Router) Capacity() int { return r.capacity }

// Freeze marks the table read-only. Attaching after this panics.
func (r *Router) Freeze() { r.frozen = true }

// Attach stores handler in the slot for route. Attaching to a full table is a no-op.
// Attaching the same route twice takes a second slot; lookups keep returning the first.
func (r *Router) Attach(route Route, handler Handler) {
	switch {
	case route.Len() == 0:
		panic("rawhttp: cannot attach a route with an empty path")
	case route.Method == MethodUnknown:
		panic("rawhttp: cannot attach a route with an unknown method")
	case handler == nil:
		panic("rawhttp: cannot attach a nil handler")
	case r.frozen:
		panic("rawhttp: cannot call Attach() after the router is frozen")
	}

	if r.size == r.capacity {
		return // TODO: grow on load factor once callers can observe capacity changes
	}

	key := route.Key()
	start := r.hash(key)

	i := start
	for r.slots[i].handler != nil {
		i = (i + 1) % r.capacity
		if i == start {
			return
		}
	}

	r.slots[i] = entry{handler: handler, key: key}
	r.size++
}

// Lookup finds the handler attached for route. It never mutates the table.
func (r *Router) Lookup(route Route) (Handler, MatchStatus) {
	if r == nil || r.capacity == 0 {
		return nil, MatchFailed
	}

	key := route.Key()
	start := r.hash(key)

	i := start
	for r.slots[i].handler != nil {
		if r.slots[i].key == key {
			return r.slots[i].handler, MatchOK
		}

		i = (i + 1) % r.capacity
		if i == start {
			break
		}
	}

	return nil, MatchFailed
}

// Destroy releases every slot and resets the router to zero capacity. It is safe to
// call more than once and on a nil router.
func (r *Router) Destroy() {
	if r == nil || r.slots == nil {
		return
	}

	clear(r.slots)
	r.slots = nil
	r.size = 0
	r.capacity = 0
}

// hash computes the FNV-1a hash of key masked into [0, capacity-1].
func (r *Router) hash(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return int(h.Sum32() & uint32(r.capacity-1)) //nolint:gosec
}
