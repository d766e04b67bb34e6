package session

import (
	"sync"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/analysis"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// DefaultCacheSize bounds the number of parameter sets whose arrays are kept.
const DefaultCacheSize = 32

type cacheKey struct {
	params  circuit.Parameters
	samples int
}

// arrays holds the sampled panels of one parameter set. Slices are shared
// between snapshots and must not be modified.
type arrays struct {
	response circuit.FrequencyResponse
	waveform circuit.Waveform
	spectrum *analysis.Spectrum
}

// arrayCache is a mutex-guarded map evicting the oldest insertion once it
// holds more than capacity entries.
type arrayCache struct {
	mu       sync.Mutex
	items    map[cacheKey]arrays
	order    []cacheKey
	capacity int

	hits, misses int
}

func newArrayCache(capacity int) *arrayCache {
	if capacity < 1 {
		capacity = 1
	}
	return &arrayCache{
		items:    make(map[cacheKey]arrays),
		capacity: capacity,
	}
}

func (c *arrayCache) Get(key cacheKey) (arrays, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.items[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return a, ok
}

func (c *arrayCache) Set(key cacheKey, a arrays) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; !ok {
		c.order = append(c.order, key)
	}
	c.items[key] = a
	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
}

func (c *arrayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *arrayCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
