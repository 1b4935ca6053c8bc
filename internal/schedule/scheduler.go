// Package schedule runs deferred callbacks that can be cancelled before they
// fire. It backs notice auto-dismissal.
package schedule

import (
	"sync"
	"time"
)

// Handle tracks a single deferred callback.
type Handle struct {
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	finished bool
	owner    *Scheduler
}

// Cancel prevents the callback from running. It reports true only when the
// call stopped a pending run.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return false
	}
	stopped := h.timer == nil || h.timer.Stop()
	if stopped {
		h.finished = true
	}
	h.mu.Unlock()
	if stopped {
		h.owner.forget(h)
		close(h.done)
	}
	return stopped
}

// Done is closed once the callback has run or the handle was cancelled.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) fire(fn func()) {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	defer func() {
		h.owner.forget(h)
		h.mu.Lock()
		h.finished = true
		h.mu.Unlock()
		close(h.done)
	}()
	fn()
}

// Scheduler owns a set of pending handles.
type Scheduler struct {
	mu      sync.Mutex
	pending map[*Handle]struct{}
	stopped bool
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{pending: make(map[*Handle]struct{})}
}

// After runs fn once d has elapsed unless the returned handle is cancelled
// first. After Stop it returns an already cancelled handle.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	h := &Handle{done: make(chan struct{}), owner: s}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || fn == nil {
		h.finished = true
		close(h.done)
		return h
	}
	s.pending[h] = struct{}{}
	h.mu.Lock()
	h.timer = time.AfterFunc(d, func() { h.fire(fn) })
	h.mu.Unlock()
	return h
}

// Pending reports the number of handles that have not yet fired or been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending handle and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	handles := make([]*Handle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	s.mu.Unlock()
	for _, h := range handles {
		h.Cancel()
	}
}

func (s *Scheduler) forget(h *Handle) {
	s.mu.Lock()
	delete(s.pending, h)
	s.mu.Unlock()
}
