// Package scheduler owns expiring one-slot timers such as the error banner auto-clear.
package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDelay = errors.New("scheduler: invalid delay")
	ErrStopped      = errors.New("scheduler: timer stopped")
)

type Expiry struct {
	Seq     uint64
	Key     string
	FiredAt time.Time
}

// SlotTimer holds at most one pending expiry. Arming replaces whatever is pending,
// so only the latest Arm can ever be delivered on C.
type SlotTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	seq     uint64
	key     string
	out     chan Expiry
	stopped bool
	dropped uint64
}

func NewSlotTimer(delay time.Duration, bufferSize int) (*SlotTimer, error) {
	if delay <= 0 {
		return nil, ErrInvalidDelay
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &SlotTimer{
		delay: delay,
		out:   make(chan Expiry, bufferSize),
	}, nil
}

func (s *SlotTimer) C() <-chan Expiry {
	return s.out
}

func (s *SlotTimer) Delay() time.Duration {
	return s.delay
}

// Arm cancels any pending expiry and schedules a new one for key.
func (s *SlotTimer) Arm(key string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return 0, ErrStopped
	}
	stopTimer(s.timer)
	s.seq++
	seq := s.seq
	s.key = key
	s.timer = time.AfterFunc(s.delay, func() { s.fire(seq) })
	return seq, nil
}

// Cancel drops the pending expiry, if any, and reports whether one was pending.
func (s *SlotTimer) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return false
	}
	stopTimer(s.timer)
	s.timer = nil
	s.key = ""
	return true
}

func (s *SlotTimer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// PendingKey returns the key of the pending expiry, or "" when nothing is armed.
func (s *SlotTimer) PendingKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Stop cancels the pending expiry and closes C. Later Arm calls fail with ErrStopped.
func (s *SlotTimer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	stopTimer(s.timer)
	s.timer = nil
	s.key = ""
	close(s.out)
}

func (s *SlotTimer) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

func (s *SlotTimer) fire(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A replaced timer may already be running its func when Arm stops it.
	if s.stopped || s.timer == nil || s.seq != seq {
		return
	}
	ev := Expiry{Seq: seq, Key: s.key, FiredAt: time.Now().UTC()}
	s.timer = nil
	s.key = ""
	select {
	case s.out <- ev:
	default:
		atomic.AddUint64(&s.dropped, 1)
	}
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	timer.Stop()
}
