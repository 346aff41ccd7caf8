package geogrid

import "sync"

// Store is the process-wide in-memory form of one variant's artifact pair:
// the dense, ID-ordered item vector and the cell candidate grid (spec §3,
// "Global state"). Once built it is immutable; all of Engine's query
// methods only read from it.
type Store[A Attributes] struct {
	items []Item[A]
	grid  [][]uint32
}

func newStore[A Attributes](items []Item[A], grid [][]uint32) *Store[A] {
	return &Store[A]{items: items, grid: grid}
}

// Items returns the dense item vector, indexed by id.
func (s *Store[A]) Items() []Item[A] { return s.items }

// ItemByID returns the item at id, or false if id is out of range.
func (s *Store[A]) ItemByID(id uint32) (Item[A], bool) {
	if int(id) >= len(s.items) {
		return Item[A]{}, false
	}
	return s.items[id], true
}

// CandidateIDs returns the raw candidate id list for the cell containing
// (x, y), or nil if the point falls outside the grid domain.
func (s *Store[A]) CandidateIDs(x, y RoundInt) []uint32 {
	idx, ok := cellIndex(x, y)
	if !ok {
		return nil
	}
	return s.grid[idx]
}

// OnceCache lazily builds a *Store[A] exactly once and hands every caller
// the same pointer, the Go analogue of the Rust crate's per-corpus
// OnceLock<Vec<T>>/OnceLock<HashMap<...>> pair (rtz/src/geo/tz/ned.rs).
// Concurrent callers before the first completes block on the same sync.Once;
// a loader error is fatal and re-raised as a panic on every call, matching
// the "corrupt embedded artifact" panic policy — there is no way to recover
// a second, different artifact for the life of the process.
type OnceCache[A Attributes] struct {
	once   sync.Once
	loader func() (*Store[A], error)
	store  *Store[A]
	err    error
}

// NewOnceCache wraps loader (typically a closure over LoadEmbedded or
// LoadFromDisk) in a one-time-initialization guard.
func NewOnceCache[A Attributes](loader func() (*Store[A], error)) *OnceCache[A] {
	return &OnceCache[A]{loader: loader}
}

// Get returns the cached Store, building it on the first call. A build
// failure panics, since a corrupt embedded artifact is not a condition
// calling code can recover from.
func (c *OnceCache[A]) Get() *Store[A] {
	c.once.Do(func() {
		c.store, c.err = c.loader()
	})
	if c.err != nil {
		panic(&DecodeError{Kind: ErrKindMalformedCorpus, Msg: "store initialization failed: " + c.err.Error()})
	}
	return c.store
}
