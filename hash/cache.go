package hash

import "sync/atomic"

// Cache is a write-once cell holding an optional Hash. Once set, the value
// never changes and always equals the true hash of the node that owns it.
//
// The tree is a single-owner value (see the package-level concurrency
// notes in the tct package), so in ordinary use Cache never sees concurrent
// writers. It is nonetheless built on atomic.Pointer rather than a plain
// field, because read-heavy callers (e.g. two goroutines sharing a
// read-only snapshot of the tree under an external RWMutex) may both
// observe "uncached" and race to compute it; both computations agree, so
// whichever store wins leaves the cache in a consistent state.
type Cache struct {
	v atomic.Pointer[Hash]
}

// Get observes the cached hash, if any has been computed yet.
func (c *Cache) Get() (Hash, bool) {
	p := c.v.Load()
	if p == nil {
		return Hash{}, false
	}
	return *p, true
}

// SetIfEmpty evaluates f only if the cache is empty, and returns the
// resulting (possibly already-cached) hash either way.
func (c *Cache) SetIfEmpty(f func() Hash) Hash {
	if p := c.v.Load(); p != nil {
		return *p
	}
	h := f()
	c.v.CompareAndSwap(nil, &h)
	// Whether our CAS won or a racing writer's did, the value is the same,
	// so re-reading is just as correct and avoids a second allocation path.
	return *c.v.Load()
}

// SetUnchecked installs hash into the cache if it is empty, without
// verifying that it is actually the correct hash of the owning node. This
// is only safe to call when the hash is already known to be correct, e.g.
// when reconstructing a node whose hash could not have changed.
func (c *Cache) SetUnchecked(hash Hash) {
	c.v.CompareAndSwap(nil, &hash)
}
