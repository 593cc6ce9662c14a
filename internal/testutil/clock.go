package testutil

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a virtual clock for timer-driven code under test.
//
// Callbacks registered with AfterFunc run only when Advance moves virtual
// time past their deadline, in deadline order (registration order breaks
// ties). Callbacks run on the goroutine calling Advance, with no internal
// lock held, so they may call back into the scheduler.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers map[uint64]*manualTimer
}

type manualTimer struct {
	id       uint64
	deadline time.Duration
	f        func()
}

// NewManualScheduler creates a scheduler at virtual time 0.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{timers: make(map[uint64]*manualTimer)}
}

// AfterFunc registers f to run once virtual time reaches now+d.
//
// Implements engine.Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.timers[id] = &manualTimer{id: id, deadline: s.now + d, f: f}

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.timers[id]; !ok {
			return false
		}
		delete(s.timers, id)
		return true
	}
}

// Advance moves virtual time forward by d and runs every callback that
// became due. Virtual time steps to each deadline before its callback runs,
// so a callback that schedules another timer within the window sees it fire
// in the same Advance.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// popDue removes the earliest timer due at or before target and moves
// virtual time to its deadline.
func (s *ManualScheduler) popDue(target time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if t.deadline <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].id < due[j].id
	})
	delete(s.timers, due[0].id)
	if due[0].deadline > s.now {
		s.now = due[0].deadline
	}
	return due[0]
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers not yet run or stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
