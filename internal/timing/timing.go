// Package timing provides the clock and the bounded, cooperatively
// cancellable wait used by philosophers and the monitor.
package timing

import "time"

// DefaultPollInterval is how often BoundedWait re-checks its stop condition.
// It must stay well under a millisecond: death detection depends on it.
const DefaultPollInterval = 100 * time.Microsecond

// Clock returns the current time. Values returned by time.Now carry a
// monotonic reading, so differences are immune to wall-clock jumps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Service bundles a Clock with the poll interval used for waits.
type Service struct {
	clock Clock
	poll  time.Duration
}

// New creates a Service. A nil clock means SystemClock, a non-positive poll
// interval means DefaultPollInterval.
func New(clock Clock, poll time.Duration) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Service{clock: clock, poll: poll}
}

// Now returns the current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Elapsed returns whole milliseconds since t.
func (s *Service) Elapsed(t time.Time) int64 {
	return s.clock.Now().Sub(t).Milliseconds()
}

// BoundedWait blocks until d has elapsed or stopped reports true, whichever
// comes first. It returns true only if the full duration elapsed.
func (s *Service) BoundedWait(d time.Duration, stopped func() bool) bool {
	start := s.clock.Now()
	for {
		if stopped != nil && stopped() {
			return false
		}
		remaining := d - s.clock.Now().Sub(start)
		if remaining <= 0 {
			return true
		}
		time.Sleep(min(remaining, s.poll))
	}
}
