// Package metrics holds the scheduler core's own counters and their
// Prometheus mirror.
package metrics

import "sync/atomic"

// Counters tracks the five monotone (except queued/running, which move
// both ways) VM lifecycle counters. The invariant
// submitted = running + finished + queued + unscheduled
// must hold at every observation boundary.
type Counters struct {
	submitted   int64
	queued      int64
	running     int64
	finished    int64
	unscheduled int64
}

// NewCounters returns a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

// Submit records a newly accepted launch request.
func (c *Counters) Submit() {
	atomic.AddInt64(&c.submitted, 1)
	atomic.AddInt64(&c.queued, 1)
}

// Schedule moves a request from queued to running, on a successful spawn.
func (c *Counters) Schedule() {
	atomic.AddInt64(&c.running, 1)
	atomic.AddInt64(&c.queued, -1)
}

// RejectInfeasible moves a request from queued to unscheduled, permanently.
func (c *Counters) RejectInfeasible() {
	atomic.AddInt64(&c.queued, -1)
	atomic.AddInt64(&c.unscheduled, 1)
}

// Finish moves a server from running to finished, on reaching SHUTOFF.
func (c *Counters) Finish() {
	atomic.AddInt64(&c.running, -1)
	atomic.AddInt64(&c.finished, 1)
}

// Snapshot is a read of every counter. Each field is loaded separately, so
// the values are mutually consistent only when no mutation runs
// concurrently with the read.
type Snapshot struct {
	Submitted   int64
	Queued      int64
	Running     int64
	Finished    int64
	Unscheduled int64
}

// Snapshot returns the current values of every counter.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Submitted:   atomic.LoadInt64(&c.submitted),
		Queued:      atomic.LoadInt64(&c.queued),
		Running:     atomic.LoadInt64(&c.running),
		Finished:    atomic.LoadInt64(&c.finished),
		Unscheduled: atomic.LoadInt64(&c.unscheduled),
	}
}
