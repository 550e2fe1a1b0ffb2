package lifecycle

import (
	"sync"
	"time"
)

// Token identifies one scheduled task.
type Token struct {
	slot string
	seq  uint64
}

// Slot returns the slot the task was scheduled in.
func (t Token) Slot() string { return t.slot }

// IsZero reports whether t was returned by a stopped scheduler.
func (t Token) IsZero() bool { return t.seq == 0 }

type task struct {
	tok   Token
	timer *time.Timer
}

// Scheduler runs at most one pending task per slot.
type Scheduler struct {
	mu      sync.Mutex
	seq     uint64
	pending map[string]*task
	stopped bool
	running sync.WaitGroup
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]*task)}
}

// Schedule runs fn after delay unless the slot is rescheduled or cancelled
// first. Any task already pending in slot is cancelled.
func (s *Scheduler) Schedule(slot string, delay time.Duration, fn func()) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return Token{}
	}
	if old := s.pending[slot]; old != nil {
		old.timer.Stop()
	}
	s.seq++
	t := &task{tok: Token{slot: slot, seq: s.seq}}
	s.pending[slot] = t
	tok := t.tok
	t.timer = time.AfterFunc(delay, func() { s.fire(tok, fn) })
	return tok
}

func (s *Scheduler) fire(tok Token, fn func()) {
	s.mu.Lock()
	cur := s.pending[tok.slot]
	if s.stopped || cur == nil || cur.tok != tok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, tok.slot)
	s.running.Add(1)
	s.mu.Unlock()

	defer s.running.Done()
	fn()
}

// Cancel stops the task identified by tok if it has not fired yet.
func (s *Scheduler) Cancel(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.pending[tok.slot]
	if cur == nil || cur.tok != tok {
		return false
	}
	cur.timer.Stop()
	delete(s.pending, tok.slot)
	return true
}

// CancelSlot stops whatever task is pending in slot.
func (s *Scheduler) CancelSlot(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.pending[slot]
	if cur == nil {
		return false
	}
	cur.timer.Stop()
	delete(s.pending, slot)
	return true
}

// Pending reports whether a task is waiting in slot.
func (s *Scheduler) Pending(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[slot] != nil
}

// Stop cancels every pending task and waits for running ones to return.
// Tasks must not call Stop themselves.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for slot, t := range s.pending {
		t.timer.Stop()
		delete(s.pending, slot)
	}
	s.mu.Unlock()
	s.running.Wait()
}
