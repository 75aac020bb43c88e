// Package metrics provides metrics collection for the route scanner.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector collects and aggregates scan metrics.
type Collector struct {
	// Counters
	filesCollected atomic.Int64
	filesMatched   atomic.Int64
	endpointsFound atomic.Int64
	warningsTotal  atomic.Int64

	// Per-framework endpoint counts
	frameworkCounts map[string]*atomic.Int64
	frameworkMu     sync.RWMutex

	// Start time
	startTime time.Time
}

// New creates a new metrics collector.
func New() *Collector {
	return &Collector{
		frameworkCounts: make(map[string]*atomic.Int64),
		startTime:       time.Now(),
	}
}

// RecordFileCollected increments collected files.
func (c *Collector) RecordFileCollected() {
	c.filesCollected.Add(1)
}

// RecordFileMatched increments files matched by at least one matcher.
func (c *Collector) RecordFileMatched() {
	c.filesMatched.Add(1)
}

// RecordEndpoint records an extracted endpoint for a framework.
func (c *Collector) RecordEndpoint(framework string) {
	c.endpointsFound.Add(1)

	c.frameworkMu.Lock()
	if c.frameworkCounts[framework] == nil {
		c.frameworkCounts[framework] = &atomic.Int64{}
	}
	c.frameworkCounts[framework].Add(1)
	c.frameworkMu.Unlock()
}

// RecordWarning records a recovered extraction failure.
func (c *Collector) RecordWarning() {
	c.warningsTotal.Add(1)
}

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Timestamp       time.Time
	Uptime          time.Duration
	FilesCollected  int64
	FilesMatched    int64
	EndpointsFound  int64
	WarningsTotal   int64
	FrameworkCounts map[string]int64
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() *Snapshot {
	s := &Snapshot{
		Timestamp:       time.Now(),
		Uptime:          time.Since(c.startTime),
		FilesCollected:  c.filesCollected.Load(),
		FilesMatched:    c.filesMatched.Load(),
		EndpointsFound:  c.endpointsFound.Load(),
		WarningsTotal:   c.warningsTotal.Load(),
		FrameworkCounts: make(map[string]int64),
	}

	c.frameworkMu.RLock()
	for k, v := range c.frameworkCounts {
		s.FrameworkCounts[k] = v.Load()
	}
	c.frameworkMu.RUnlock()

	return s
}

// Reset clears all counters.
func (c *Collector) Reset() {
	c.filesCollected.Store(0)
	c.filesMatched.Store(0)
	c.endpointsFound.Store(0)
	c.warningsTotal.Store(0)

	c.frameworkMu.Lock()
	c.frameworkCounts = make(map[string]*atomic.Int64)
	c.frameworkMu.Unlock()

	c.startTime = time.Now()
}
