package ministry

import (
	"sync"
	"time"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/attendance"
)

// coalescer collapses bursts of one tenant's attendance snapshots into a
// single delivery per debounce window. Within an open window only the latest
// snapshot is retained, so a rapid burst costs one merge pass. Tenants are
// independent and carry no ordering guarantee between each other.
type coalescer struct {
	clock   domain.Clock
	window  time.Duration
	deliver func(tenantID string, records []attendance.Record)

	mu      sync.Mutex
	pending map[string]*pendingBatch
	stopped bool
}

type pendingBatch struct {
	records []attendance.Record
	timer   domain.Timer
}

func newCoalescer(clock domain.Clock, window time.Duration, deliver func(string, []attendance.Record)) *coalescer {
	return &coalescer{
		clock:   clock,
		window:  window,
		deliver: deliver,
		pending: make(map[string]*pendingBatch),
	}
}

// Schedule records the latest snapshot for a tenant and arms the window timer
// if one is not already running.
func (c *coalescer) Schedule(tenantID string, records []attendance.Record) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if p, ok := c.pending[tenantID]; ok {
		p.records = records
		c.mu.Unlock()
		return
	}
	p := &pendingBatch{records: records}
	c.pending[tenantID] = p
	p.timer = c.clock.AfterFunc(c.window, func() { c.fire(tenantID) })
	c.mu.Unlock()
}

func (c *coalescer) fire(tenantID string) {
	c.mu.Lock()
	p, ok := c.pending[tenantID]
	if ok {
		delete(c.pending, tenantID)
	}
	stopped := c.stopped
	c.mu.Unlock()
	if ok && !stopped {
		c.deliver(tenantID, p.records)
	}
}

// Flush delivers a tenant's pending snapshot immediately, if any.
func (c *coalescer) Flush(tenantID string) {
	c.mu.Lock()
	p, ok := c.pending[tenantID]
	if ok {
		delete(c.pending, tenantID)
		if p.timer != nil {
			p.timer.Stop()
		}
	}
	stopped := c.stopped
	c.mu.Unlock()
	if ok && !stopped {
		c.deliver(tenantID, p.records)
	}
}

// Stop cancels every armed timer and drops pending snapshots without
// delivering them.
func (c *coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	for id, p := range c.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(c.pending, id)
	}
}
