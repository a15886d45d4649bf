// Package frameloop provides frame schedulers for hosts without a native
// repaint callback: a manually stepped queue and a rate-paced loop.
package frameloop

import "github.com/matsen/routeviz/internal/anim"

type entry struct {
	handle anim.Handle
	fn     func()
}

// Manual queues frame callbacks until Step is called. Callbacks requested
// while a frame runs are deferred to the following frame, as with a
// browser's requestAnimationFrame.
type Manual struct {
	last     anim.Handle
	pending  []entry
	inflight map[anim.Handle]bool
}

// NewManual returns an empty queue.
func NewManual() *Manual {
	return &Manual{}
}

// RequestTick implements anim.Scheduler.
func (m *Manual) RequestTick(fn func()) anim.Handle {
	m.last++
	m.pending = append(m.pending, entry{handle: m.last, fn: fn})
	return m.last
}

// CancelTick implements anim.Scheduler.
func (m *Manual) CancelTick(h anim.Handle) {
	if h == 0 {
		return
	}
	for i, e := range m.pending {
		if e.handle == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
	// Taken out of the queue by the running Step but not yet called.
	delete(m.inflight, h)
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Step runs every callback queued before the call and returns how many ran.
func (m *Manual) Step() int {
	batch := m.pending
	m.pending = nil

	m.inflight = make(map[anim.Handle]bool, len(batch))
	for _, e := range batch {
		m.inflight[e.handle] = true
	}
	defer func() { m.inflight = nil }()

	ran := 0
	for _, e := range batch {
		if !m.inflight[e.handle] {
			continue
		}
		delete(m.inflight, e.handle)
		e.fn()
		ran++
	}
	return ran
}

// RunUntilIdle steps until nothing is queued or limit frames have run
// (limit <= 0 means no limit). It returns the number of frames stepped.
func (m *Manual) RunUntilIdle(limit int) int {
	frames := 0
	for m.Pending() > 0 {
		if limit > 0 && frames >= limit {
			break
		}
		m.Step()
		frames++
	}
	return frames
}
