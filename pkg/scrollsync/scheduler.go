package scrollsync

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler batches callbacks and runs them together on the next tick.
type FrameScheduler struct {
	interval time.Duration
	mu       sync.Mutex
	queued   []func()
	timer    *time.Timer
	stopped  bool
}

// NewFrameScheduler creates a scheduler ticking every interval.
func NewFrameScheduler(interval time.Duration) (s *FrameScheduler) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	s = &FrameScheduler{interval: interval}
	return s
}

// RequestFrame implements Scheduler. It refuses fn once the scheduler is stopped.
func (s *FrameScheduler) RequestFrame(fn func()) (accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return accepted
	}
	s.queued = append(s.queued, fn)
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.flush)
	}
	accepted = true
	return accepted
}

// Stop cancels pending callbacks and refuses new ones. Callbacks already queued
// never run, so callers must not rely on them after Stop.
func (s *FrameScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.queued = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *FrameScheduler) flush() {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.timer = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
}
