package draft

import (
	"sync"
	"time"
)

// saveScheduler is a trailing-debounce timer: Reset (re)arms a single
// pending invocation of fn after the quiet period; only the final state of
// a mutation burst is ever persisted. An invocation whose I/O has already
// started is never cancelled, which at worst lands one extra idempotent
// snapshot write.
type saveScheduler struct {
	mu    sync.Mutex
	quiet time.Duration
	fn    func()
	timer *time.Timer
}

func newSaveScheduler(quiet time.Duration, fn func()) *saveScheduler {
	return &saveScheduler{quiet: quiet, fn: fn}
}

// Reset restarts the quiet period, superseding any pending invocation.
func (s *saveScheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.fn)
}

// Stop cancels a pending invocation, reporting whether one was pending.
func (s *saveScheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return false
	}
	pending := s.timer.Stop()
	s.timer = nil
	return pending
}
