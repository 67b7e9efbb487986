package filter

import (
	"strconv"
	"sync"
)

// Key identifies a sinc table configuration. The clock ratio is rendered
// with strconv.FormatFloat so the key is canonical and locale-independent:
// two constructions with the same physical parameters always hit the same
// entry. Mathematically identical ratios that round to different final bits
// miss the cache and duplicate work, but never corrupt it.
type Key struct {
	Length   int
	PhaseRes int
	Ratio    string
}

// Key returns the cache key for spec.
func (s TableSpec) Key() Key {
	return Key{
		Length:   s.Length,
		PhaseRes: s.PhaseRes,
		Ratio:    strconv.FormatFloat(s.CyclesPerSample, 'g', -1, 64),
	}
}

// Cache stores finished sinc tables keyed by their configuration.
//
// Tables are built lazily on first use, shared by reference thereafter and
// never evicted. A published table is never mutated, so readers holding a
// reference need no further synchronization. The probe/build/publish
// sequence runs under a single lock: table construction is exempt from the
// real-time constraint, and the lock keeps concurrent constructions of the
// same configuration from duplicating the work.
type Cache struct {
	mu     sync.Mutex
	tables map[Key][][]float64
}

// NewCache creates an empty table cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[Key][][]float64)}
}

// Get returns the table for spec, building and publishing it first if no
// matching entry exists.
func (c *Cache) Get(spec TableSpec) [][]float64 {
	key := spec.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	if table, ok := c.tables[key]; ok {
		return table
	}

	table := Build(spec)
	c.tables[key] = table
	return table
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}

// shared is the process-wide cache used by default. Resampler
// configurations come from a very small set of choices, so entries persist
// for the process lifetime.
var shared = NewCache()

// Shared returns the process-wide table cache.
func Shared() *Cache {
	return shared
}
