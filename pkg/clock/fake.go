package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a deterministic Clock for tests.
// Callbacks run on the goroutine that calls Advance or Set.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeHandle
}

type fakeHandle struct {
	clock    *Fake
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// NewFake creates a fake clock starting at the given time.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake time.
func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run once the fake time reaches now+d.
// A non-positive d fires on the next Advance, including Advance(0).
func (c *Fake) AfterFunc(d time.Duration, f func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	h := &fakeHandle{
		clock:    c,
		deadline: c.now.Add(d),
		seq:      c.seq,
		fn:       f,
	}
	c.pending = append(c.pending, h)
	return h
}

// Advance moves the fake time forward and fires every callback whose
// deadline has been reached, earliest first.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	c.Set(target)
}

// Set moves the fake time to t and fires due callbacks.
// Callbacks scheduled by a firing callback are considered too.
func (c *Fake) Set(t time.Time) {
	for {
		c.mu.Lock()
		h := c.nextDueLocked(t)
		if h == nil {
			c.now = t
			c.mu.Unlock()
			return
		}
		if h.deadline.After(c.now) {
			c.now = h.deadline
		}
		h.done = true
		c.removeLocked(h)
		fn := h.fn
		c.mu.Unlock()

		fn()
	}
}

// Pending returns the number of callbacks that have not fired or been stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Fake) nextDueLocked(t time.Time) *fakeHandle {
	sort.Slice(c.pending, func(i, j int) bool {
		if c.pending[i].deadline.Equal(c.pending[j].deadline) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].deadline.Before(c.pending[j].deadline)
	})
	if len(c.pending) == 0 || c.pending[0].deadline.After(t) {
		return nil
	}
	return c.pending[0]
}

func (c *Fake) removeLocked(h *fakeHandle) {
	for i, p := range c.pending {
		if p == h {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Stop implements Handle.
func (h *fakeHandle) Stop() bool {
	h.clock.mu.Lock()
	defer h.clock.mu.Unlock()

	if h.done {
		return false
	}
	h.done = true
	h.clock.removeLocked(h)
	return true
}
