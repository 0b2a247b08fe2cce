// Package cache provides the bounded memoization store shared by date parsing stages.
package cache

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultSize is the number of entries kept by a memo created with NewMemo(0).
const DefaultSize = 8192

// keySeparator cannot appear in HTML text fragments after whitespace normalization.
const keySeparator = "\x00"

// Memo is a bounded, concurrency-safe LRU keyed by 64-bit hashes.
// A nil *Memo is valid and never stores anything, so callers can disable
// memoization without branching.
type Memo struct {
	store *lru.Cache
	size  int
}

// NewMemo creates a memo holding at most size entries.
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultSize
	}
	store, err := lru.New(size)
	if err != nil {
		// lru.New only fails on a non-positive size, excluded above
		panic(err)
	}
	return &Memo{store: store, size: size}
}

// Key hashes the given parts into a memo key.
func Key(parts ...string) uint64 {
	d := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = d.WriteString(keySeparator)
		}
		_, _ = d.WriteString(p)
	}
	return d.Sum64()
}

// Get retrieves a memoized value.
func (m *Memo) Get(key uint64) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	return m.store.Get(key)
}

// Add stores a value, evicting the least recently used entry when full.
func (m *Memo) Add(key uint64, value interface{}) {
	if m == nil {
		return
	}
	m.store.Add(key, value)
}

// Len returns the number of entries currently held.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	return m.store.Len()
}

// Size returns the capacity of the memo.
func (m *Memo) Size() int {
	if m == nil {
		return 0
	}
	return m.size
}

// Purge removes every entry.
func (m *Memo) Purge() {
	if m == nil {
		return
	}
	m.store.Purge()
}
