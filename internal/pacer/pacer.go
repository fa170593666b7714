// Package pacer spaces repeated runs at a fixed rate.
//
// A Pacer keeps a virtual schedule that advances by 1/rate per run. When a
// run overruns its slot the next one starts immediately, but missed slots
// are not replayed as a burst.
package pacer

import (
	"context"
	"sync"
	"time"
)

// Pacer schedules runs at a fixed rate. It is safe for concurrent use.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
	waited   time.Duration
	runs     int64
}

// New creates a Pacer for perSecond runs per second. A non-positive rate
// yields an unpaced Pacer whose Wait never blocks.
func New(perSecond float64) *Pacer {
	p := &Pacer{now: time.Now}
	if perSecond > 0 {
		p.interval = time.Duration(float64(time.Second) / perSecond)
	}
	return p
}

// Interval returns the spacing between runs, zero when unpaced.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Reserve claims the next slot and returns when it starts. The first slot
// starts immediately.
func (p *Pacer) Reserve() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.runs++
	if p.interval == 0 {
		return now
	}

	start := p.next
	if start.Before(now) {
		// Behind schedule: run now and restart the schedule from here.
		start = now
	}
	p.next = start.Add(p.interval)
	p.waited += start.Sub(now)
	return start
}

// Wait blocks until the next slot. It returns ctx.Err() if the context is
// cancelled first.
func (p *Pacer) Wait(ctx context.Context) error {
	start := p.Reserve()
	d := start.Sub(p.now())
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stats summarizes the slots handed out so far.
type Stats struct {
	Runs      int64         `json:"runs"`
	Interval  time.Duration `json:"interval"`
	TotalWait time.Duration `json:"totalWait"`
}

// Stats returns the current counters.
func (p *Pacer) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Runs: p.runs, Interval: p.interval, TotalWait: p.waited}
}
