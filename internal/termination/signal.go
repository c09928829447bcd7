// Package termination provides the run-wide stop flag shared by the
// philosophers, the action log and the monitor.
package termination

import (
	"fmt"
	"sync"
)

// Cause identifies why a run ended.
type Cause int

const (
	// Running means the signal has not been raised.
	Running Cause = iota
	// Starvation means a philosopher went longer than time_to_die without eating.
	Starvation
	// QuotaReached means every philosopher ate the required number of meals.
	QuotaReached
	// Interrupted means the run's context was cancelled from outside.
	Interrupted
	// Aborted means setup failed after some philosophers were already running.
	Aborted
)

func (c Cause) String() string {
	switch c {
	case Running:
		return "running"
	case Starvation:
		return "starvation"
	case QuotaReached:
		return "quota_reached"
	case Interrupted:
		return "interrupted"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("cause(%d)", int(c))
	}
}

// Signal is a write-once boolean. Once stopped it is never reset, and the
// first Stop call decides the cause.
type Signal struct {
	mu      sync.Mutex
	stopped bool
	cause   Cause
	actor   int
	done    chan struct{}
}

// New returns a raised-false Signal.
func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Stop raises the signal. It reports whether this call was the one that
// raised it; later calls are no-ops.
func (s *Signal) Stop(cause Cause, actor int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.stopped = true
	s.cause = cause
	s.actor = actor
	close(s.done)
	return true
}

// Stopped reports whether the signal has been raised.
func (s *Signal) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Done returns a channel closed when the signal is raised.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Cause returns the recorded cause and the actor that triggered it (0 when
// no single philosopher is responsible).
func (s *Signal) Cause() (Cause, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cause, s.actor
}
