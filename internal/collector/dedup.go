package collector

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Deduplicator handles file path deduplication using a Bloom filter.
// Concurrent traversal can reach the same path twice through overlapping
// directory entries or symlinks; paths pass through here exactly once.
type Deduplicator struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	exact  map[string]struct{} // For exact matching when the Bloom filter might give false positives
	count  int
}

// NewDeduplicator creates a new deduplicator.
func NewDeduplicator(estimatedItems int) *Deduplicator {
	if estimatedItems < 1000 {
		estimatedItems = 1000
	}

	return &Deduplicator{
		filter: bloom.NewWithEstimates(uint(estimatedItems), 0.001),
		exact:  make(map[string]struct{}),
	}
}

// Add records a path, reporting whether it was new.
func (d *Deduplicator) Add(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.filter.TestString(path) {
		// Confirm against the exact set; the filter may false-positive.
		if _, exists := d.exact[path]; exists {
			return false
		}
	}

	d.filter.AddString(path)
	d.exact[path] = struct{}{}
	d.count++
	return true
}

// Count returns the number of unique paths seen.
func (d *Deduplicator) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Reset clears the deduplicator.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filter.ClearAll()
	d.exact = make(map[string]struct{})
	d.count = 0
}
