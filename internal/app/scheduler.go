package app

import (
	"sort"
	"time"
)

// Scheduler runs fn once after d has elapsed. Callbacks must run on the same
// logical thread as every other engine call.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type scheduledTask struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// ManualClock is a deterministic Scheduler. Time only moves when Advance is called,
// and due callbacks run on the caller's goroutine.
type ManualClock struct {
	now   time.Duration
	seq   uint64
	tasks []scheduledTask
}

// NewManualClock returns a clock at time zero with nothing scheduled.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// After schedules fn to run once the clock has advanced by d. Negative delays run on the next Advance.
func (c *ManualClock) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.seq++
	c.tasks = append(c.tasks, scheduledTask{at: c.now + d, seq: c.seq, fn: fn})
}

// Advance moves the clock forward by d and runs every callback that comes due,
// in deadline order with ties broken by scheduling order. Callbacks scheduled
// by a running callback fire in the same call if they fall inside the window.
// It returns the number of callbacks run.
func (c *ManualClock) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := c.now + d
	fired := 0
	for {
		idx := c.nextDue(target)
		if idx < 0 {
			break
		}
		task := c.tasks[idx]
		c.tasks = append(c.tasks[:idx], c.tasks[idx+1:]...)
		c.now = task.at
		task.fn()
		fired++
	}
	c.now = target
	return fired
}

// pending returns the number of scheduled callbacks that have not run yet.
func (c *ManualClock) pending() int {
	return len(c.tasks)
}

// NextDeadline returns the time remaining until the earliest pending callback.
// Hosts driven by wall time use it to sleep exactly until the next step.
func (c *ManualClock) NextDeadline() (time.Duration, bool) {
	if len(c.tasks) == 0 {
		return 0, false
	}
	sorted := make([]scheduledTask, len(c.tasks))
	copy(sorted, c.tasks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].at < sorted[j].at })
	return sorted[0].at - c.now, true
}

func (c *ManualClock) nextDue(target time.Duration) int {
	best := -1
	for i, task := range c.tasks {
		if task.at > target {
			continue
		}
		if best < 0 || task.at < c.tasks[best].at || (task.at == c.tasks[best].at && task.seq < c.tasks[best].seq) {
			best = i
		}
	}
	return best
}
